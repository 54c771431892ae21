package tetris

// Snapshot is an immutable copy of the game for tests and rendering.
type Snapshot struct {
	Tick     uint64
	Board    Board
	Active   ActivePiece
	Next     Tetromino
	Held     *Tetromino
	CanHold  bool
	Score    int
	Lines    int
	GameOver bool
	Paused   bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Board:    g.board.Clone(),
		Active:   g.active,
		Next:     g.next,
		CanHold:  g.canHold,
		Score:    g.score,
		Lines:    g.lines,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	s.Active.Shape = g.active.Shape.Clone()
	if g.held != nil {
		held := *g.held
		held.Shape = held.Shape.Clone()
		s.Held = &held
	}
	return s
}

// Display returns the board with the active piece drawn in.
func (s Snapshot) Display() Board {
	out := s.Board.Clone()
	if s.GameOver {
		return out
	}
	for _, c := range s.Active.Cells() {
		if c.In(out.cols(), out.rows()) {
			out[c.Y][c.X] = int(s.Active.Kind) + 1
		}
	}
	return out
}
