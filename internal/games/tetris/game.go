// Package tetris implements Tetris with wall-kick rotation, a hold slot and
// a one-piece lookahead.
package tetris

import (
	"fmt"
	"time"

	"github.com/zriley/portfolio-arcade/internal/config"
	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/dependencies/clock"
	"github.com/zriley/portfolio-arcade/internal/dependencies/random"
	"github.com/zriley/portfolio-arcade/internal/registry"
)

// Game implements Tetris.
type Game struct {
	cfg       config.TetrisConfig
	cfgLoaded bool
	rng       random.Random
	fixedRNG  bool
	clk       clock.Clock

	tick    uint64
	board   Board
	active  ActivePiece
	next    Tetromino
	held    *Tetromino
	canHold bool
	score   int
	lines   int

	gameOver bool
	paused   bool

	lastRotation time.Time
	hasRotated   bool

	stepDur      time.Duration
	sinceGravity time.Duration

	screenW int
	screenH int
}

// Package-level settings applied on the next Reset, set by the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets an explicit config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Option customizes a Game.
type Option func(*Game)

// WithConfig uses cfg instead of loading tetris.yaml.
func WithConfig(cfg config.TetrisConfig) Option {
	return func(g *Game) {
		g.cfg = cfg
		g.cfgLoaded = true
	}
}

// WithRandom replaces the seeded generator created on Reset.
func WithRandom(r random.Random) Option {
	return func(g *Game) {
		g.rng = r
		g.fixedRNG = true
	}
}

// WithClock sets the clock used for the rotation cooldown.
func WithClock(c clock.Clock) Option {
	return func(g *Game) {
		g.clk = c
	}
}

// New creates a new Tetris game.
func New(opts ...Option) *Game {
	g := &Game{clk: clock.New()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgLoaded {
		loaded, err := config.LoadTetris(configPath)
		if err != nil {
			loaded = config.DefaultTetrisConfig()
		}
		config.ApplyTetrisPreset(&loaded, difficultyPreset)
		g.cfg = loaded
		g.cfgLoaded = true
	}
	if !g.fixedRNG {
		g.rng = random.New(cfg.Seed)
	}

	g.stepDur = cfg.StepDuration()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.restart()
}

func (g *Game) restart() {
	g.tick = 0
	g.board = newBoard(g.cfg.Board.Rows, g.cfg.Board.Cols)
	g.held = nil
	g.canHold = true
	g.score = 0
	g.lines = 0
	g.gameOver = false
	g.paused = false
	g.hasRotated = false
	g.sinceGravity = 0

	g.active = ActivePiece{Tetromino: g.randomPiece(), Pos: g.spawnPos()}
	g.next = g.randomPiece()
}

// randomPiece draws uniformly from the seven kinds with no bag.
func (g *Game) randomPiece() Tetromino {
	return newTetromino(Kind(g.rng.Intn(int(kindCount))))
}

func (g *Game) spawnPos() core.Point {
	return core.Point{X: g.cfg.Board.SpawnX, Y: g.cfg.Board.SpawnY}
}

// spawn places t at the spawn point, or ends the game if it does not fit.
func (g *Game) spawn(t Tetromino) {
	pos := g.spawnPos()
	if g.board.collides(t.Shape, pos) {
		g.gameOver = true
		return
	}
	g.active = ActivePiece{Tetromino: t, Pos: pos}
}

// AttemptTranslate moves the active piece by (dx, dy) if the target is free.
func (g *Game) AttemptTranslate(dx, dy int) bool {
	if g.gameOver {
		return false
	}
	pos := g.active.Pos.Add(core.Point{X: dx, Y: dy})
	if g.board.collides(g.active.Shape, pos) {
		return false
	}
	g.active.Pos = pos
	return true
}

// AttemptRotate turns the active piece, trying each wall kick in order.
// Attempts inside the cooldown after a successful rotation are ignored.
func (g *Game) AttemptRotate(clockwise bool) bool {
	if g.gameOver || g.active.Kind == KindO {
		return false
	}

	now := g.clk.Now()
	if g.hasRotated && now.Sub(g.lastRotation) < g.cfg.RotateCooldown() {
		return false
	}

	var rotated Shape
	if clockwise {
		rotated = g.active.Shape.RotateCW()
	} else {
		rotated = g.active.Shape.RotateCCW()
	}

	for _, kick := range g.active.Kind.Kicks(clockwise) {
		pos := g.active.Pos.Add(kick)
		if !g.board.collides(rotated, pos) {
			g.active.Shape = rotated
			g.active.Pos = pos
			g.lastRotation = now
			g.hasRotated = true
			return true
		}
	}
	return false
}

// HardDrop moves the piece as far down as it goes. The lock happens on the
// next gravity tick. Returns the number of rows dropped.
func (g *Game) HardDrop() int {
	if g.gameOver {
		return 0
	}
	n := 0
	for g.AttemptTranslate(0, 1) {
		n++
	}
	return n
}

// Tick applies gravity, locking the piece when it cannot fall.
func (g *Game) Tick() {
	if g.gameOver {
		return
	}
	if g.AttemptTranslate(0, 1) {
		return
	}
	g.lock()
}

func (g *Game) lock() {
	g.board.merge(g.active)
	cleared := g.board.clearLines()
	g.score += cleared * g.cfg.Scoring.LinePoints
	g.lines += cleared
	g.canHold = true

	n := g.next
	g.next = g.randomPiece()
	g.spawn(n)
}

// Hold stashes the active piece. With an empty slot the next piece comes in;
// otherwise the held piece is swapped in at the spawn point. Allowed once
// per locked piece.
func (g *Game) Hold() bool {
	if g.gameOver || !g.canHold {
		return false
	}
	g.canHold = false

	current := g.active.Tetromino
	if g.held == nil {
		g.held = &current
		n := g.next
		g.next = g.randomPiece()
		g.spawn(n)
		return true
	}

	swap := *g.held
	g.held = &current
	g.spawn(swap)
	return true
}

// Step advances the game by one platform step.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.gameOver {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	for _, a := range input.Presses() {
		g.apply(a)
		if g.gameOver {
			return core.StepResult{State: g.State()}
		}
	}

	g.sinceGravity += g.stepDur
	if g.sinceGravity >= g.cfg.Gravity() {
		g.sinceGravity -= g.cfg.Gravity()
		g.Tick()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.AttemptTranslate(-1, 0)
	case core.ActionRight:
		g.AttemptTranslate(1, 0)
	case core.ActionDown:
		g.AttemptTranslate(0, 1)
	case core.ActionUp, core.ActionRotateCW:
		g.AttemptRotate(true)
	case core.ActionRotateCCW:
		g.AttemptRotate(false)
	case core.ActionHold:
		g.Hold()
	case core.ActionDrop:
		g.HardDrop()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// DebugState returns a one-line summary of the game state.
func (g *Game) DebugState() string {
	held := "-"
	if g.held != nil {
		held = g.held.Kind.String()
	}
	return fmt.Sprintf("tick=%d score=%d lines=%d active=%s@%v next=%s held=%s canHold=%v over=%v",
		g.tick, g.score, g.lines, g.active.Kind, g.active.Pos, g.next.Kind, held, g.canHold, g.gameOver)
}
