package tetris

import "github.com/zriley/portfolio-arcade/internal/core"

// Board is the well, indexed [row][col]. 0 is empty, otherwise Kind+1.
type Board [][]int

func newBoard(rows, cols int) Board {
	b := make(Board, rows)
	for y := range b {
		b[y] = make([]int, cols)
	}
	return b
}

func (b Board) rows() int { return len(b) }

func (b Board) cols() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// collides reports whether shape placed at pos leaves the well or overlaps
// a filled cell.
func (b Board) collides(s Shape, pos core.Point) bool {
	for _, c := range s.cellsAt(pos) {
		if !c.In(b.cols(), b.rows()) || b[c.Y][c.X] != 0 {
			return true
		}
	}
	return false
}

// merge writes the piece into the board.
func (b Board) merge(p ActivePiece) {
	for _, c := range p.Cells() {
		if c.In(b.cols(), b.rows()) {
			b[c.Y][c.X] = int(p.Kind) + 1
		}
	}
}

// clearLines drops every full row, shifts the rest down and refills the
// top with empty rows. Returns the number of rows removed.
func (b Board) clearLines() int {
	rows, cols := b.rows(), b.cols()
	kept := make([][]int, 0, rows)
	for _, row := range b {
		if !full(row) {
			kept = append(kept, row)
		}
	}

	cleared := rows - len(kept)
	if cleared == 0 {
		return 0
	}

	for i := 0; i < cleared; i++ {
		b[i] = make([]int, cols)
	}
	copy(b[cleared:], kept)
	return cleared
}

func full(row []int) bool {
	for _, c := range row {
		if c == 0 {
			return false
		}
	}
	return true
}

// Filled counts non-empty cells.
func (b Board) Filled() int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c != 0 {
				n++
			}
		}
	}
	return n
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	out := make(Board, len(b))
	for y := range b {
		out[y] = append([]int(nil), b[y]...)
	}
	return out
}
