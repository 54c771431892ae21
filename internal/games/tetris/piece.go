package tetris

import "github.com/zriley/portfolio-arcade/internal/core"

// Kind is one of the seven tetrominoes. Board cells store Kind+1.
type Kind int

const (
	KindI Kind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
	kindCount
)

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

func shape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

var spawnShapes = [kindCount]Shape{
	KindI: shape(
		"....",
		"####",
		"....",
		"....",
	),
	KindJ: shape(
		"#..",
		"###",
		"...",
	),
	KindL: shape(
		"..#",
		"###",
		"...",
	),
	KindO: shape(
		"##",
		"##",
	),
	KindS: shape(
		".##",
		"##.",
		"...",
	),
	KindT: shape(
		".#.",
		"###",
		"...",
	),
	KindZ: shape(
		"##.",
		".##",
		"...",
	),
}

var kindColors = [kindCount]core.Color{
	KindI: core.ColorCyan,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
	KindO: core.ColorYellow,
	KindS: core.ColorGreen,
	KindT: core.ColorMagenta,
	KindZ: core.ColorRed,
}

var kindNames = [kindCount]string{"I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "?"
	}
	return kindNames[k]
}

// Color returns the display color of the kind.
func (k Kind) Color() core.Color {
	return kindColors[k]
}

// Wall-kick offsets, tried in order. y grows downwards.
var (
	kicksICW  = []core.Point{{X: 0, Y: 0}, {X: -2, Y: 0}, {X: 1, Y: 0}, {X: -2, Y: -1}, {X: 1, Y: 2}}
	kicksICCW = []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: -1, Y: 0}, {X: 2, Y: 1}, {X: -1, Y: -2}}
	kicksO    = []core.Point{{X: 0, Y: 0}}
	kicksCW   = []core.Point{{X: 0, Y: 0}, {X: -1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: -2}, {X: -1, Y: -2}}
	kicksCCW  = []core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: -2}, {X: 1, Y: -2}}
)

// Kicks returns the offset table for rotating this kind.
func (k Kind) Kicks(clockwise bool) []core.Point {
	switch k {
	case KindI:
		if clockwise {
			return kicksICW
		}
		return kicksICCW
	case KindO:
		return kicksO
	default:
		if clockwise {
			return kicksCW
		}
		return kicksCCW
	}
}

// Tetromino is a piece that is not on the board: the next piece or the
// one in the hold slot.
type Tetromino struct {
	Kind  Kind
	Shape Shape
}

func newTetromino(k Kind) Tetromino {
	return Tetromino{Kind: k, Shape: spawnShapes[k]}
}

// ActivePiece is the falling piece.
type ActivePiece struct {
	Tetromino
	Pos core.Point
}

// Cells returns the board coordinates the piece occupies.
func (p ActivePiece) Cells() []core.Point {
	return p.Shape.cellsAt(p.Pos)
}

func (s Shape) cellsAt(pos core.Point) []core.Point {
	var cells []core.Point
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, core.Point{X: pos.X + x, Y: pos.Y + y})
			}
		}
	}
	return cells
}

// RotateCW returns the shape turned a quarter clockwise.
func (s Shape) RotateCW() Shape {
	n := len(s)
	if n == 0 {
		return s
	}
	m := len(s[0])
	out := make(Shape, m)
	for i := 0; i < m; i++ {
		out[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			out[i][j] = s[n-1-j][i]
		}
	}
	return out
}

// RotateCCW returns the shape turned a quarter counter-clockwise.
func (s Shape) RotateCCW() Shape {
	n := len(s)
	if n == 0 {
		return s
	}
	m := len(s[0])
	out := make(Shape, m)
	for i := 0; i < m; i++ {
		out[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			out[i][j] = s[j][m-1-i]
		}
	}
	return out
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = append([]bool(nil), s[y]...)
	}
	return out
}

// Equal reports whether two shapes have the same occupancy.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}
