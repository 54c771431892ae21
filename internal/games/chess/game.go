// Package chess implements a player-versus-engine chess game. Legality is
// delegated to a rules engine and the opponent's moves come from a
// pluggable suggestion engine (see package suggest).
package chess

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/zriley/portfolio-arcade/internal/config"
	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/dependencies/clock"
	"github.com/zriley/portfolio-arcade/internal/games/chess/suggest"
	"github.com/zriley/portfolio-arcade/internal/registry"
)

// Game implements registry.Game for chess.
type Game struct {
	cfg       config.ChessConfig
	cfgLoaded bool
	rules     Rules
	engine    suggest.Suggester
	ownEngine bool
	adapter   *Adapter
	clk       clock.Clock
	logger    *log.Logger
	notice    string
	level     int
	transport string

	tick     uint64
	cursor   Square
	selected Square
	paused   bool

	screenW int
	screenH int
}

// Package-level settings applied on the next Reset, set by the CLI and menus.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelOverride    int
	transport        string
	enginePath       string
	logger           = log.Default()
)

// SetConfigPath sets an explicit config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLevel overrides the configured opponent level (1-5); 0 clears it.
func SetLevel(level int) {
	levelOverride = level
}

// SetTransport overrides the configured suggestion transport.
func SetTransport(name string) {
	transport = name
}

// SetEnginePath overrides the UCI engine binary.
func SetEnginePath(path string) {
	enginePath = path
}

// SetLogger sets the logger used by new games.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading chess.yaml.
func WithConfig(cfg config.ChessConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgLoaded = true
	}
}

// WithSuggester uses s instead of building one from the config. The game
// does not close it.
func WithSuggester(s suggest.Suggester) Option {
	return func(g *Game) { g.engine = s }
}

// WithRules replaces the rules engine.
func WithRules(r Rules) Option {
	return func(g *Game) { g.rules = r }
}

// WithLevel overrides the opponent level for this game only.
func WithLevel(level int) Option {
	return func(g *Game) { g.level = level }
}

// WithTransport overrides the suggestion transport for this game only.
func WithTransport(name string) Option {
	return func(g *Game) { g.transport = name }
}

// WithClock injects the clock used for the opponent delay.
func WithClock(c clock.Clock) Option {
	return func(g *Game) { g.clk = c }
}

// WithLogger sets the game's logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// New creates a chess game. The suggestion engine is started on Reset.
func New(opts ...Option) *Game {
	g := &Game{
		rules:    NewRules(),
		clk:      clock.New(),
		selected: NoSquare,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logger.WithPrefix("chess")
	}
	return g
}

func init() {
	registry.Register("chess", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "chess"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Chess"
}

// Reset starts a new game from the standard position.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgLoaded {
		loaded, err := config.LoadChess(configPath)
		if err != nil {
			g.logger.Warn("using default chess config", "err", err)
			loaded = config.DefaultChessConfig()
		}
		config.ApplyChessPreset(&loaded, difficultyPreset)
		if levelOverride != 0 {
			loaded.Level = clampLevel(levelOverride)
		}
		if transport != "" {
			loaded.Transport = transport
		}
		if enginePath != "" {
			loaded.UCI.Path = enginePath
		}
		g.cfg = loaded
		g.cfgLoaded = true
	}
	if g.level != 0 {
		g.cfg.Level = clampLevel(g.level)
	}
	if g.transport != "" {
		g.cfg.Transport = g.transport
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	if g.engine == nil {
		g.engine, g.notice = g.startEngine()
		g.ownEngine = true
	}
	if g.adapter == nil {
		g.adapter = NewAdapter(g.rules, g.engine,
			WithAdapterClock(g.clk),
			WithAdapterLogger(g.logger),
			WithMoveDelay(g.cfg.MoveDelay()),
			WithSuggestTimeout(g.cfg.SuggestTimeout()),
			WithLevelParams(func(level int) (int, int) {
				p := g.cfg.LevelParams(level)
				return p.Depth, p.Skill
			}),
			WithAdapterLevel(g.cfg.Level),
		)
	} else {
		g.adapter.Reset()
	}
	g.restart()
}

func (g *Game) restart() {
	g.tick = 0
	g.cursor = NewSquare(4, 1)
	g.selected = NoSquare
	g.paused = false
}

// startEngine builds the configured transport. A missing UCI binary falls
// back to the built-in search.
func (g *Game) startEngine() (suggest.Suggester, string) {
	switch g.cfg.Transport {
	case "cloud":
		client := &http.Client{Timeout: g.cfg.SuggestTimeout()}
		return suggest.NewCloud(g.cfg.Cloud.BaseURL, client), ""
	case "embedded":
		return suggest.NewSearch(g.cfg.Embedded.MaxDepth), ""
	}

	u, err := suggest.StartUCI(context.Background(), suggest.UCIOptions{
		Path:    g.cfg.UCI.Path,
		Threads: g.cfg.UCI.Threads,
		HashMB:  g.cfg.UCI.HashMB,
		Logger:  g.logger,
	})
	if err != nil {
		g.logger.Warn("uci engine unavailable, using built-in search", "path", g.cfg.UCI.Path, "err", err)
		g.cfg.Transport = "embedded"
		return suggest.NewSearch(g.cfg.Embedded.MaxDepth), fmt.Sprintf("%s not found: built-in engine", g.cfg.UCI.Path)
	}
	return u, ""
}

// Adapter exposes the underlying turn state machine.
func (g *Game) Adapter() *Adapter {
	return g.adapter
}

// Step polls the opponent and applies cursor input.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.adapter == nil {
		return core.StepResult{State: g.State()}
	}
	g.tick++
	g.adapter.Poll()

	if input.Has(core.ActionRestart) {
		g.adapter.Reset()
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && g.adapter.Status() == StatusPlaying {
		g.paused = !g.paused
	}
	if g.paused || g.adapter.Status() != StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Presses() {
		switch a {
		case core.ActionUp:
			g.moveCursor(0, 1)
		case core.ActionDown:
			g.moveCursor(0, -1)
		case core.ActionLeft:
			g.moveCursor(-1, 0)
		case core.ActionRight:
			g.moveCursor(1, 0)
		case core.ActionConfirm, core.ActionDrop:
			g.activate()
		case core.ActionCancel:
			g.selected = NoSquare
		case core.ActionRetry:
			g.adapter.Retry()
		}
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(df, dr int) {
	f := core.Clamp(g.cursor.File()+df, 0, 7)
	r := core.Clamp(g.cursor.Rank()+dr, 0, 7)
	g.cursor = NewSquare(f, r)
}

// activate picks up the piece under the cursor, or drops the selected
// piece there. Dropping on another own piece switches the selection.
func (g *Game) activate() {
	piece := g.adapter.Board().At(g.cursor)
	if g.selected == NoSquare {
		if !piece.Empty() && piece.Color == PlayerColor {
			g.selected = g.cursor
		}
		return
	}
	if g.cursor == g.selected {
		g.selected = NoSquare
		return
	}
	if g.adapter.SubmitMove(Move{From: g.selected, To: g.cursor}) {
		g.selected = NoSquare
		return
	}
	if !piece.Empty() && piece.Color == PlayerColor {
		g.selected = g.cursor
	}
}

// State returns the current game state. Chess has no score.
func (g *Game) State() core.GameState {
	return core.GameState{
		GameOver: g.adapter != nil && g.adapter.Status() != StatusPlaying,
		Paused:   g.paused,
	}
}

// Outcome reports the result once the game is over.
func (g *Game) Outcome() (registry.Outcome, bool) {
	if g.adapter == nil || g.adapter.Status() == StatusPlaying {
		return registry.Outcome{}, false
	}
	result := registry.ResultDraw
	if g.adapter.Status() == StatusCheckmate {
		result = registry.ResultLoss
		if g.adapter.Winner() == PlayerColor {
			result = registry.ResultWin
		}
	}
	return registry.Outcome{
		Result:    result,
		Level:     g.adapter.Level(),
		Transport: g.adapter.EngineName(),
		Plies:     len(g.adapter.History()),
		FinalFEN:  g.adapter.FEN(),
	}, true
}

// Close stops outstanding requests and the engine process, if owned.
func (g *Game) Close() error {
	if g.adapter != nil {
		g.adapter.Close()
		g.adapter = nil
	}
	if !g.ownEngine || g.engine == nil {
		return nil
	}
	err := g.engine.Close()
	g.engine = nil
	g.ownEngine = false
	return err
}

// DebugState returns a one-line summary of the game state.
func (g *Game) DebugState() string {
	a := g.adapter
	if a == nil {
		return "closed"
	}
	return fmt.Sprintf("tick=%d status=%s player=%v thinking=%v gen=%d level=%d fen=%q",
		g.tick, a.Status(), a.PlayerTurn(), a.Thinking(), a.Generation(), a.Level(), a.FEN())
}
