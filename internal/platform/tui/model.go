package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/registry"
	"github.com/zriley/portfolio-arcade/internal/storage"
)

// storeTimeout bounds every storage call made from the UI loop.
const storeTimeout = 2 * time.Second

// GameModel runs one game: it maps keys to actions, steps the game on every
// tick and records the final score or outcome once.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      storage.Store
	config     core.RuntimeConfig
	palette    Palette
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	gen        uint64
	best       int
	recorded   bool
	quitting   bool
	backToMenu bool
}

// GameOption customizes a GameModel.
type GameOption func(*GameModel)

// WithPalette sets the styles used to draw the screen.
func WithPalette(p Palette) GameOption {
	return func(m *GameModel) { m.palette = p }
}

// WithModelLogger sets the logger used for storage failures.
func WithModelLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	cfg = cfg.WithDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		palette:    DefaultPalette(),
		logger:     log.Default(),
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gen:        1,
	}
	for _, opt := range opts {
		opt(&m)
	}

	// The game is reset here rather than in Init so the first tick already
	// sees a started game.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.best = m.loadBest()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		}
		return m, nil
	}

	action := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame)
	switch action {
	case core.ActionQuit:
		m.closeGame()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.closeGame()
		m.gen++
		m.backToMenu = true
		return m, nil

	case core.ActionRestart:
		if m.gameState.GameOver {
			return m, m.restart()
		}
	}
	return m, nil
}

// restart resets a finished game and starts a new tick loop.
func (m *GameModel) restart() tea.Cmd {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorded = false
	m.inputFrame.Clear()
	m.gen++
	return tickCmd(m.config.TickRate, m.gen)
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.recorded {
		m.recorded = true
		m.record()
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// record saves the finished game: an outcome for games that report one,
// otherwise a non-zero score.
func (m *GameModel) record() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if r, ok := m.game.(registry.OutcomeReporter); ok {
		o, done := r.Outcome()
		if !done {
			return
		}
		rec := storage.NewOutcome(m.game.ID(), string(o.Result), o.Level, o.Transport, o.Plies, o.FinalFEN)
		if err := m.store.SaveOutcome(ctx, rec); err != nil {
			m.logger.Warn("cannot save outcome", "game", m.game.ID(), "err", err)
		}
		return
	}

	score := m.gameState.Score
	if score <= 0 {
		return
	}
	if err := m.store.SaveScore(ctx, m.game.ID(), score); err != nil {
		m.logger.Warn("cannot save score", "game", m.game.ID(), "score", score, "err", err)
		return
	}
	m.best = max(m.best, score)
}

func (m GameModel) loadBest() int {
	if m.store == nil {
		return 0
	}
	if _, ok := m.game.(registry.OutcomeReporter); ok {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	best, err := m.store.HighScore(ctx, m.game.ID())
	if err != nil {
		m.logger.Debug("no high score", "game", m.game.ID(), "err", err)
		return 0
	}
	return best
}

// closeGame releases game resources such as a chess engine process.
func (m *GameModel) closeGame() {
	c, ok := m.game.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		m.logger.Warn("closing game", "game", m.game.ID(), "err", err)
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.arcade/screenshots.
func (m *GameModel) saveScreenshot() error {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	return os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	if m.best > 0 {
		label := fmt.Sprintf("Best: %d", m.best)
		m.screen.DrawTextColor(m.screen.Width()-len(label)-1, 0, label, core.ColorGray)
	}
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last state reported by the game.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game in the terminal.
func Run(game registry.Game, store storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, WithModelLogger(logger))

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.closeGame()
	return err
}
