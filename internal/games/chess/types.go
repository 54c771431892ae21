package chess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedMove is returned for text that is not a coordinate move.
var ErrMalformedMove = errors.New("chess: malformed move")

// Color is a side.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind is a chess piece type. NoKind marks an empty square or an
// unspecified promotion.
type PieceKind int

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = map[PieceKind]byte{
	Pawn:   'p',
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
	King:   'k',
}

// Letter returns the lowercase piece letter, or 0 for NoKind.
func (k PieceKind) Letter() byte {
	return kindLetters[k]
}

func promotionKind(b byte) (PieceKind, bool) {
	switch b {
	case 'q':
		return Queen, true
	case 'r':
		return Rook, true
	case 'b':
		return Bishop, true
	case 'n':
		return Knight, true
	}
	return NoKind, false
}

// Piece is a colored piece; the zero value is an empty square.
type Piece struct {
	Kind  PieceKind
	Color Color
}

// Empty reports whether the square holds nothing.
func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// Rune returns the FEN letter: uppercase for white, lowercase for black.
func (p Piece) Rune() rune {
	if p.Empty() {
		return ' '
	}
	r := rune(p.Kind.Letter())
	if p.Color == White {
		r -= 'a' - 'A'
	}
	return r
}

// Square is a board square, a1 = 0 through h8 = 63.
type Square int

// NoSquare marks an absent square.
const NoSquare Square = -1

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// File returns 0 for the a-file through 7 for the h-file.
func (s Square) File() int { return int(s) % 8 }

// Rank returns 0 for rank 1 through 7 for rank 8.
func (s Square) Rank() int { return int(s) / 8 }

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s >= 0 && s < 64 }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare parses algebraic square names such as "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformedMove, name)
	}
	f, r := name[0], name[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%w: bad square %q", ErrMalformedMove, name)
	}
	return NewSquare(int(f-'a'), int(r-'1')), nil
}

// Move is a coordinate-notation move. Promotion is NoKind when absent.
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// String renders the move in coordinate notation, e.g. "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoKind {
		s += string(m.Promotion.Letter())
	}
	return s
}

// ParseMove parses a 4 or 5 character coordinate move. The optional fifth
// character must name a promotion piece (q, r, b or n).
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, err
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		kind, ok := promotionKind(s[4])
		if !ok {
			return Move{}, fmt.Errorf("%w: bad promotion in %q", ErrMalformedMove, s)
		}
		m.Promotion = kind
	}
	return m, nil
}

// Board is a read-only piece grid indexed [rank][file], rank 0 being rank 1.
type Board [8][8]Piece

// At returns the piece on s.
func (b Board) At(s Square) Piece {
	if !s.Valid() {
		return Piece{}
	}
	return b[s.Rank()][s.File()]
}

// Position is the serialized (FEN) form of a position. Only the rules
// engine looks inside it.
type Position string

// SideToMove reads the active color field of the FEN.
func (p Position) SideToMove() Color {
	fields := strings.Fields(string(p))
	if len(fields) > 1 && fields[1] == "b" {
		return Black
	}
	return White
}
