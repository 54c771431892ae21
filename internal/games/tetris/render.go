package tetris

import (
	"fmt"

	"github.com/zriley/portfolio-arcade/internal/core"
)

// Render draws the well on the left and the next/hold previews on the right.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.Snapshot()
	display := snap.Display()
	rows, cols := display.rows(), display.cols()

	wellW := cols*2 + 2
	wellH := rows + 2
	panelW := 14
	totalW := wellW + 2 + panelW

	if dst.Width() < totalW || dst.Height() < wellH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	ox := (dst.Width() - totalW) / 2
	oy := (dst.Height() - wellH) / 2
	dst.DrawBox(core.NewRect(ox, oy, wellW, wellH), core.ColorGray)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sx, sy := ox+1+x*2, oy+1+y
			if v := display[y][x]; v != 0 {
				color := Kind(v - 1).Color()
				dst.SetColor(sx, sy, '█', color)
				dst.SetColor(sx+1, sy, '█', color)
			} else {
				dst.SetColor(sx, sy, ' ', core.ColorDefault)
				dst.SetColor(sx+1, sy, '.', core.ColorGray)
			}
		}
	}

	px := ox + wellW + 2
	dst.DrawText(px, oy, "TETRIS")
	dst.DrawText(px, oy+2, fmt.Sprintf("Score %d", snap.Score))
	dst.DrawText(px, oy+3, fmt.Sprintf("Lines %d", snap.Lines))

	dst.DrawText(px, oy+5, "Next")
	drawPreview(dst, px, oy+6, &snap.Next)

	holdLabel := "Hold"
	if !snap.CanHold {
		holdLabel = "Hold (used)"
	}
	dst.DrawText(px, oy+12, holdLabel)
	drawPreview(dst, px, oy+13, snap.Held)

	dst.DrawTextColor(px, oy+19, "←→ move  ↓ soft", core.ColorGray)
	dst.DrawTextColor(px, oy+20, "↑/x z rotate", core.ColorGray)
	dst.DrawTextColor(px, oy+21, "c hold  ␣ drop", core.ColorGray)

	switch {
	case snap.GameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  -  R to restart", snap.Score))
	case snap.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// drawPreview draws a piece into a 4x4 mini grid.
func drawPreview(dst *core.Screen, x, y int, t *Tetromino) {
	dst.DrawBox(core.NewRect(x, y, 10, 6), core.ColorGray)
	if t == nil {
		return
	}
	for _, c := range t.Shape.cellsAt(core.Point{}) {
		sx, sy := x+1+c.X*2, y+1+c.Y
		dst.SetColor(sx, sy, '█', t.Kind.Color())
		dst.SetColor(sx+1, sy, '█', t.Kind.Color())
	}
}

func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	x := (dst.Width() - width) / 2
	y := (dst.Height() - 5) / 2

	dst.DrawRect(core.NewRect(x, y, width, 5), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(x, y, width, 5), core.ColorWhite)
	dst.DrawTextCentered(y+1, line1)
	dst.DrawTextCentered(y+3, line2)
}
