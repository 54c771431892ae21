package chess

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/zriley/portfolio-arcade/internal/dependencies/clock"
	"github.com/zriley/portfolio-arcade/internal/games/chess/suggest"
)

// ErrIllegalSuggestion is recorded when the engine proposes a move the
// rules reject.
var ErrIllegalSuggestion = errors.New("chess: illegal suggestion")

// PlayerColor is the side the human plays.
const PlayerColor = White

// Status is the game status as seen by the adapter.
type Status int

const (
	StatusPlaying Status = iota
	StatusCheckmate
	StatusStalemate
)

func (s Status) String() string {
	switch s {
	case StatusCheckmate:
		return "checkmate"
	case StatusStalemate:
		return "stalemate"
	}
	return "playing"
}

// Level bounds.
const (
	MinLevel = 1
	MaxLevel = 5
)

// LevelParams maps a strength level to suggestion parameters.
type LevelParams func(level int) (depth, skill int)

type suggestion struct {
	gen  uint64
	move string
	err  error
}

// Adapter turns a rules engine and a move suggester into a turn-based
// player-vs-engine game. All methods must be called from one goroutine;
// suggestions are computed in the background and handed back through Poll
// or Await. Every request carries the generation it was issued under, and
// a result whose generation is no longer current is dropped.
type Adapter struct {
	rules   Rules
	engine  suggest.Suggester
	clk     clock.Clock
	logger  *log.Logger
	params  LevelParams
	delay   time.Duration
	timeout time.Duration

	pos        Position
	status     Status
	winner     Color
	playerTurn bool
	thinking   bool
	scheduled  bool
	dueAt      time.Time
	deadline   time.Time
	level      int
	generation uint64
	cancel     context.CancelFunc
	history    []Move
	lastErr    error

	results   chan suggestion
	done      chan struct{}
	closeOnce sync.Once
}

// AdapterOption customizes an Adapter.
type AdapterOption func(*Adapter)

// WithAdapterClock injects the clock used for the move delay and deadlines.
func WithAdapterClock(c clock.Clock) AdapterOption {
	return func(a *Adapter) { a.clk = c }
}

// WithAdapterLogger sets the logger for failures and discarded results.
func WithAdapterLogger(l *log.Logger) AdapterOption {
	return func(a *Adapter) { a.logger = l }
}

// WithMoveDelay sets the pause between the player's move and the request.
func WithMoveDelay(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.delay = d }
}

// WithSuggestTimeout bounds each suggestion request.
func WithSuggestTimeout(d time.Duration) AdapterOption {
	return func(a *Adapter) { a.timeout = d }
}

// WithLevelParams sets how levels translate into depth and skill.
func WithLevelParams(p LevelParams) AdapterOption {
	return func(a *Adapter) { a.params = p }
}

// WithAdapterLevel sets the starting level.
func WithAdapterLevel(level int) AdapterOption {
	return func(a *Adapter) { a.level = clampLevel(level) }
}

// NewAdapter returns an adapter at the starting position with the player
// to move.
func NewAdapter(rules Rules, engine suggest.Suggester, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		rules:   rules,
		engine:  engine,
		clk:     clock.New(),
		logger:  log.Default(),
		params:  defaultLevelParams,
		delay:   500 * time.Millisecond,
		timeout: 30 * time.Second,
		level:   2,
		results: make(chan suggestion, 8),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reset()
	return a
}

func defaultLevelParams(level int) (int, int) {
	depths := [...]int{1, 3, 6, 10, 15}
	skills := [...]int{0, 5, 10, 15, 20}
	i := clampLevel(level) - 1
	return depths[i], skills[i]
}

func clampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

// Position returns the current position.
func (a *Adapter) Position() Position { return a.pos }

// FEN returns the serialized current position.
func (a *Adapter) FEN() string { return a.rules.Serialize(a.pos) }

// Status returns whether the game is still running.
func (a *Adapter) Status() Status { return a.status }

// Winner is meaningful only after checkmate.
func (a *Adapter) Winner() Color { return a.winner }

// PlayerTurn reports whether the player may move.
func (a *Adapter) PlayerTurn() bool { return a.playerTurn }

// Thinking reports whether a suggestion request is outstanding.
func (a *Adapter) Thinking() bool { return a.thinking }

// Pending reports whether a request is scheduled but not yet issued.
func (a *Adapter) Pending() bool { return a.scheduled }

// Level returns the current strength level.
func (a *Adapter) Level() int { return a.level }

// Generation returns the current request generation.
func (a *Adapter) Generation() uint64 { return a.generation }

// History returns the accepted moves in order.
func (a *Adapter) History() []Move {
	return append([]Move(nil), a.history...)
}

// LastMove returns the most recent accepted move.
func (a *Adapter) LastMove() (Move, bool) {
	if len(a.history) == 0 {
		return Move{}, false
	}
	return a.history[len(a.history)-1], true
}

// LastError is the reason the most recent suggestion was abandoned.
func (a *Adapter) LastError() error { return a.lastErr }

// EngineName names the suggestion transport.
func (a *Adapter) EngineName() string { return a.engine.Name() }

// Board returns the piece layout of the current position.
func (a *Adapter) Board() Board { return a.rules.Board(a.pos) }

// LegalMoves lists the legal moves in the current position.
func (a *Adapter) LegalMoves() []Move { return a.rules.LegalMoves(a.pos) }

func (a *Adapter) idle() bool {
	return a.playerTurn && !a.thinking && !a.scheduled
}

// SubmitPlayerMove submits a move given as two square names. A pawn
// reaching the last rank promotes to a queen.
func (a *Adapter) SubmitPlayerMove(from, to string) bool {
	f, err := ParseSquare(from)
	if err != nil {
		return false
	}
	t, err := ParseSquare(to)
	if err != nil {
		return false
	}
	return a.SubmitMove(Move{From: f, To: t})
}

// SubmitMove applies the player's move when it is their turn and the
// rules accept it, then schedules the engine's reply after the move delay.
func (a *Adapter) SubmitMove(m Move) bool {
	if a.status != StatusPlaying || !a.idle() {
		return false
	}
	if a.pos.SideToMove() != PlayerColor {
		return false
	}
	next, ok := a.rules.ApplyMove(a.pos, m)
	if !ok {
		return false
	}

	a.commit(next, m, PlayerColor)
	a.lastErr = nil
	a.playerTurn = false
	if a.status == StatusPlaying {
		a.scheduled = true
		a.dueAt = clock.DueIn(a.clk, a.delay)
	}
	return true
}

// RequestOpponentMove issues a suggestion request for the current
// position. It does nothing unless the engine is due to move and no
// request is in flight.
func (a *Adapter) RequestOpponentMove() bool {
	if a.status != StatusPlaying || a.playerTurn || a.thinking {
		return false
	}
	a.scheduled = false
	a.thinking = true
	a.generation++
	gen := a.generation

	depth, skill := a.params(a.level)
	req := suggest.Request{FEN: a.rules.Serialize(a.pos), Depth: depth, Skill: skill}
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	a.cancel = cancel
	a.deadline = clock.DueIn(a.clk, a.timeout)

	engine, results, done := a.engine, a.results, a.done
	go func() {
		move, err := engine.Suggest(ctx, req)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		select {
		case results <- suggestion{gen: gen, move: move, err: err}:
		case <-done:
		}
	}()
	a.logger.Debug("requested suggestion", "gen", gen, "depth", depth, "skill", skill, "fen", req.FEN)
	return true
}

// Poll advances the adapter without blocking: it issues a due request,
// applies any finished suggestion and abandons one past its deadline.
// It reports whether anything changed.
func (a *Adapter) Poll() bool {
	changed := false
	if a.scheduled && clock.Reached(a.clk, a.dueAt) {
		changed = a.RequestOpponentMove() || changed
	}

drain:
	for {
		select {
		case r := <-a.results:
			changed = a.apply(r) || changed
		default:
			break drain
		}
	}

	if a.thinking && clock.Reached(a.clk, a.deadline) {
		a.abandon(fmt.Errorf("suggestion timed out after %s: %w", a.timeout, context.DeadlineExceeded))
		changed = true
	}
	return changed
}

// Await blocks until the outstanding request resolves or ctx ends. It
// returns true when a current result was applied.
func (a *Adapter) Await(ctx context.Context) bool {
	for a.thinking {
		select {
		case r := <-a.results:
			if a.apply(r) {
				return true
			}
		case <-ctx.Done():
			return false
		}
	}
	return false
}

func (a *Adapter) apply(r suggestion) bool {
	if r.gen != a.generation || !a.thinking {
		a.logger.Debug("discarding stale suggestion", "gen", r.gen, "current", a.generation, "move", r.move)
		return false
	}
	a.thinking = false
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	if r.err != nil {
		a.fail(r.err)
		return true
	}
	m, err := ParseMove(r.move)
	if err != nil {
		a.fail(err)
		return true
	}
	next, ok := a.rules.ApplyMove(a.pos, m)
	if !ok {
		a.fail(fmt.Errorf("%w: %s is not legal", ErrIllegalSuggestion, r.move))
		return true
	}

	a.commit(next, m, PlayerColor.Other())
	a.lastErr = nil
	a.playerTurn = true
	return true
}

// fail hands the turn back to the player without changing the position.
func (a *Adapter) fail(err error) {
	a.lastErr = err
	a.playerTurn = true
	legal := a.rules.LegalMoves(a.pos)
	names := make([]string, 0, len(legal))
	for _, m := range legal {
		names = append(names, m.String())
	}
	a.logger.Warn("suggestion failed", "err", err, "fen", a.FEN(), "legal", strings.Join(names, " "))
}

func (a *Adapter) abandon(err error) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.generation++
	a.thinking = false
	a.fail(err)
}

func (a *Adapter) commit(next Position, m Move, mover Color) {
	a.pos = next
	a.history = append(a.history, m)
	switch {
	case a.rules.IsCheckmate(next):
		a.status = StatusCheckmate
		a.winner = mover
	case a.rules.IsStalemate(next):
		a.status = StatusStalemate
	default:
		a.status = StatusPlaying
	}
}

// Retry asks the engine again after a failed suggestion left it to move.
func (a *Adapter) Retry() bool {
	if a.status != StatusPlaying || !a.idle() {
		return false
	}
	if a.pos.SideToMove() == PlayerColor {
		return false
	}
	a.playerTurn = false
	return a.RequestOpponentMove()
}

// SetLevel changes the strength. It is refused while the engine is due to
// move or thinking.
func (a *Adapter) SetLevel(level int) bool {
	if !a.idle() {
		return false
	}
	a.level = clampLevel(level)
	return true
}

// Reset returns to the starting position. Any outstanding request is
// cancelled and its result will be ignored.
func (a *Adapter) Reset() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.generation++
	a.reset()
}

func (a *Adapter) reset() {
	a.pos = a.rules.NewGame()
	a.status = StatusPlaying
	a.winner = White
	a.playerTurn = true
	a.thinking = false
	a.scheduled = false
	a.history = nil
	a.lastErr = nil
}

// Load replaces the position, e.g. to resume from FEN. The side to move
// decides whose turn it is; an engine move is scheduled if needed.
func (a *Adapter) Load(fen string) error {
	pos, err := a.rules.LoadPosition(fen)
	if err != nil {
		return err
	}
	a.Reset()
	a.pos = pos
	a.commit(pos, Move{}, pos.SideToMove().Other())
	a.history = nil
	if a.status == StatusPlaying && pos.SideToMove() != PlayerColor {
		a.playerTurn = false
		a.scheduled = true
		a.dueAt = clock.DueIn(a.clk, a.delay)
	}
	return nil
}

// Close cancels outstanding work. The suggester is not closed.
func (a *Adapter) Close() {
	a.closeOnce.Do(func() {
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		a.generation++
		a.thinking = false
		close(a.done)
	})
}
