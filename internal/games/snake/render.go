package snake

import (
	"fmt"

	"github.com/zriley/portfolio-arcade/internal/core"
)

const hudHeight = 2

// Render draws the board, two screen columns per grid cell.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	boxW := w*2 + 2
	boxH := h + 2

	hud := fmt.Sprintf(" Snake   Score: %d   Length: %d", g.score, len(g.body))
	dst.DrawText(0, 0, hud)
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, 1, '─', core.ColorGray)
	}

	if dst.Width() < boxW || dst.Height() < boxH+hudHeight {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	ox := (dst.Width() - boxW) / 2
	oy := hudHeight + (dst.Height()-hudHeight-boxH)/2
	dst.DrawBox(core.NewRect(ox, oy, boxW, boxH), core.ColorGray)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetColor(ox+1+x*2, oy+1+y, '·', core.ColorGray)
		}
	}

	if g.food.X >= 0 {
		fx, fy := ox+1+g.food.X*2, oy+1+g.food.Y
		dst.SetColor(fx, fy, '●', core.ColorBrightRed)
	}

	for i := len(g.body) - 1; i >= 0; i-- {
		seg := g.body[i]
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
		}
		sx, sy := ox+1+seg.X*2, oy+1+seg.Y
		dst.SetColor(sx, sy, '█', color)
		dst.SetColor(sx+1, sy, '█', color)
	}

	switch {
	case g.gameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  -  R to restart", g.score))
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	x := (dst.Width() - width) / 2
	y := (dst.Height() - 5) / 2

	dst.DrawRect(core.NewRect(x, y, width, 5), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(x, y, width, 5), core.ColorWhite)
	dst.DrawTextCentered(y+1, line1)
	dst.DrawTextCentered(y+3, line2)
}
