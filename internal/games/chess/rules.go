package chess

import (
	"fmt"

	notnil "github.com/notnil/chess"
)

// Rules is the move-legality engine the adapter delegates to. It owns all
// chess knowledge: board state, legal moves, terminal detection, FEN.
type Rules interface {
	NewGame() Position
	LoadPosition(fen string) (Position, error)
	// ApplyMove returns the position after m, or false when m is illegal.
	// An unspecified promotion defaults to a queen.
	ApplyMove(pos Position, m Move) (Position, bool)
	IsCheckmate(pos Position) bool
	IsStalemate(pos Position) bool
	Serialize(pos Position) string
	LegalMoves(pos Position) []Move
	Board(pos Position) Board
}

// NotnilRules implements Rules on top of github.com/notnil/chess.
type NotnilRules struct{}

// NewRules returns the default rules engine.
func NewRules() NotnilRules {
	return NotnilRules{}
}

var _ Rules = NotnilRules{}

func (NotnilRules) NewGame() Position {
	return Position(notnil.NewGame().Position().String())
}

func (r NotnilRules) LoadPosition(fen string) (Position, error) {
	p, err := r.decode(Position(fen))
	if err != nil {
		return "", err
	}
	return Position(p.String()), nil
}

func (NotnilRules) decode(pos Position) (*notnil.Position, error) {
	opt, err := notnil.FEN(string(pos))
	if err != nil {
		return nil, fmt.Errorf("chess: cannot load position %q: %w", pos, err)
	}
	return notnil.NewGame(opt).Position(), nil
}

func (r NotnilRules) ApplyMove(pos Position, m Move) (Position, bool) {
	p, err := r.decode(pos)
	if err != nil {
		return pos, false
	}

	want := m.Promotion
	if want == NoKind {
		want = Queen
	}
	for _, vm := range p.ValidMoves() {
		if Square(vm.S1()) != m.From || Square(vm.S2()) != m.To {
			continue
		}
		if vm.Promo() != notnil.NoPieceType && fromNotnilKind(vm.Promo()) != want {
			continue
		}
		return Position(p.Update(vm).String()), true
	}
	return pos, false
}

func (r NotnilRules) IsCheckmate(pos Position) bool {
	p, err := r.decode(pos)
	return err == nil && p.Status() == notnil.Checkmate
}

func (r NotnilRules) IsStalemate(pos Position) bool {
	p, err := r.decode(pos)
	return err == nil && p.Status() == notnil.Stalemate
}

func (NotnilRules) Serialize(pos Position) string {
	return string(pos)
}

func (r NotnilRules) LegalMoves(pos Position) []Move {
	p, err := r.decode(pos)
	if err != nil {
		return nil
	}
	valid := p.ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, vm := range valid {
		moves = append(moves, Move{
			From:      Square(vm.S1()),
			To:        Square(vm.S2()),
			Promotion: fromNotnilKind(vm.Promo()),
		})
	}
	return moves
}

func (r NotnilRules) Board(pos Position) Board {
	var b Board
	p, err := r.decode(pos)
	if err != nil {
		return b
	}
	for sq, pc := range p.Board().SquareMap() {
		s := Square(sq)
		b[s.Rank()][s.File()] = Piece{
			Kind:  fromNotnilKind(pc.Type()),
			Color: fromNotnilColor(pc.Color()),
		}
	}
	return b
}

func fromNotnilKind(t notnil.PieceType) PieceKind {
	switch t {
	case notnil.Pawn:
		return Pawn
	case notnil.Knight:
		return Knight
	case notnil.Bishop:
		return Bishop
	case notnil.Rook:
		return Rook
	case notnil.Queen:
		return Queen
	case notnil.King:
		return King
	}
	return NoKind
}

func fromNotnilColor(c notnil.Color) Color {
	if c == notnil.Black {
		return Black
	}
	return White
}
