package snake

import "github.com/zriley/portfolio-arcade/internal/core"

// Snapshot is an immutable copy of the board for tests and replays.
type Snapshot struct {
	Tick     uint64
	Score    int
	Body     []core.Point
	Dir      Direction
	Queue    []Direction
	Food     core.Point
	Width    int
	Height   int
	GameOver bool
	Paused   bool
}

// Head returns the head segment.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{}
	}
	return s.Body[0]
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Body:     append([]core.Point(nil), g.body...),
		Dir:      g.dir,
		Queue:    append([]Direction(nil), g.queue...),
		Food:     g.food,
		Width:    g.cfg.Board.Width,
		Height:   g.cfg.Board.Height,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}
