// Package snake implements the Snake game: a head-first body on a fixed grid,
// a small buffer of pending turns, and food placed on random free cells.
package snake

import (
	"fmt"
	"time"

	"github.com/zriley/portfolio-arcade/internal/config"
	"github.com/zriley/portfolio-arcade/internal/core"
	"github.com/zriley/portfolio-arcade/internal/dependencies/random"
	"github.com/zriley/portfolio-arcade/internal/registry"
)

// Game implements the Snake game.
type Game struct {
	cfg       config.SnakeConfig
	cfgLoaded bool
	rng       random.Random
	fixedRNG  bool

	tick     uint64
	score    int
	body     []core.Point // Head at index 0
	dir      Direction
	queue    []Direction
	food     core.Point
	gameOver bool
	paused   bool

	stepDur   time.Duration
	sinceMove time.Duration

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

// WithConfig uses cfg instead of loading snake.yaml.
func WithConfig(cfg config.SnakeConfig) Option {
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

// New creates a new Snake game.
func New(opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.cfgLoaded {
		loaded, err := config.LoadSnake(configPath)
		if err != nil {
			loaded = config.DefaultSnakeConfig()
		}
		config.ApplySnakePreset(&loaded, difficultyPreset)
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

// restart restores the initial board without touching the random source.
func (g *Game) restart() {
	w, h := g.cfg.Board.Width, g.cfg.Board.Height

	g.tick = 0
	g.score = 0
	g.body = []core.Point{{X: w / 2, Y: h / 2}}
	g.dir = DirUp
	g.queue = g.queue[:0]
	g.gameOver = false
	g.paused = false
	g.sinceMove = 0
	g.placeFood()
}

// EnqueueDirection buffers a turn for a later tick. A turn is dropped when it
// repeats or reverses the last buffered heading (the current heading if the
// buffer is empty), or when the buffer is full. Returns whether it was kept.
func (g *Game) EnqueueDirection(d Direction) bool {
	ref := g.dir
	if n := len(g.queue); n > 0 {
		ref = g.queue[n-1]
	}
	if d == ref || d == ref.Opposite() {
		return false
	}
	if len(g.queue) >= g.cfg.Gameplay.InputBuffer {
		return false
	}
	g.queue = append(g.queue, d)
	return true
}

// Tick advances the snake by one cell.
func (g *Game) Tick() {
	if g.gameOver || len(g.body) == 0 {
		return
	}

	if len(g.queue) > 0 {
		g.dir = g.queue[0]
		g.queue = g.queue[1:]
	}

	head := g.body[0].Add(g.dir.Vector())

	if !head.In(g.cfg.Board.Width, g.cfg.Board.Height) {
		g.gameOver = true
		return
	}
	// Every segment counts, the tail included.
	if g.occupied(head) {
		g.gameOver = true
		return
	}

	g.body = append([]core.Point{head}, g.body...)

	if head == g.food {
		g.score += g.cfg.Gameplay.FoodReward
		g.placeFood()
		return
	}
	g.body = g.body[:len(g.body)-1]
}

// placeFood samples random cells until one is free of the body.
func (g *Game) placeFood() {
	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	if len(g.body) >= w*h {
		g.food = core.Point{X: -1, Y: -1}
		return
	}
	for {
		p := core.Point{X: g.rng.Intn(w), Y: g.rng.Intn(h)}
		if !g.occupied(p) {
			g.food = p
			return
		}
	}
}

func (g *Game) occupied(p core.Point) bool {
	for _, seg := range g.body {
		if seg == p {
			return true
		}
	}
	return false
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
		if d, ok := directionFor(a); ok {
			g.EnqueueDirection(d)
		}
	}

	g.sinceMove += g.stepDur
	if g.sinceMove >= g.cfg.TickInterval() {
		g.sinceMove -= g.cfg.TickInterval()
		g.Tick()
	}

	return core.StepResult{State: g.State()}
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
	head := core.Point{}
	if len(g.body) > 0 {
		head = g.body[0]
	}
	return fmt.Sprintf("tick=%d score=%d len=%d head=%v dir=%s food=%v over=%v",
		g.tick, g.score, len(g.body), head, g.dir, g.food, g.gameOver)
}
