package chess

// Snapshot is an immutable copy of the game for rendering and tests.
type Snapshot struct {
	Tick       uint64
	Board      Board
	FEN        string
	Status     Status
	Winner     Color
	PlayerTurn bool
	Thinking   bool
	Pending    bool
	Level      int
	Generation uint64
	Engine     string
	History    []Move
	Cursor     Square
	Selected   Square
	Paused     bool
	Notice     string
	LastError  string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	a := g.adapter
	s := Snapshot{
		Tick:       g.tick,
		Board:      a.Board(),
		FEN:        a.FEN(),
		Status:     a.Status(),
		Winner:     a.Winner(),
		PlayerTurn: a.PlayerTurn(),
		Thinking:   a.Thinking(),
		Pending:    a.Pending(),
		Level:      a.Level(),
		Generation: a.Generation(),
		Engine:     a.EngineName(),
		History:    a.History(),
		Cursor:     g.cursor,
		Selected:   g.selected,
		Paused:     g.paused,
		Notice:     g.notice,
	}
	if err := a.LastError(); err != nil {
		s.LastError = err.Error()
	}
	return s
}

// StatusText is the one-line status shown beside the board.
func (s Snapshot) StatusText() string {
	switch s.Status {
	case StatusCheckmate:
		if s.Winner == PlayerColor {
			return "Checkmate! You win!"
		}
		return "Checkmate! Engine wins."
	case StatusStalemate:
		return "Stalemate. Draw."
	}
	switch {
	case s.Thinking:
		return "Engine thinking..."
	case s.Pending:
		return "Engine to move"
	case s.LastError != "" && Position(s.FEN).SideToMove() != PlayerColor:
		return "Engine failed - E to retry"
	}
	return "Your turn"
}
