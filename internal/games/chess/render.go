package chess

import (
	"fmt"

	"github.com/zriley/portfolio-arcade/internal/core"
)

const (
	squareW   = 3
	boardBoxW = 8*squareW + 2
	boardBoxH = 8 + 2
	panelW    = 28
	layoutW   = 2 + boardBoxW + 2 + panelW
	layoutH   = boardBoxH + 3
)

var levelNames = [...]string{"Easy", "Medium", "Hard", "Expert", "Master"}

// LevelName returns the display name of a 1-based level.
func LevelName(level int) string {
	return levelNames[clampLevel(level)-1]
}

// Render draws the board with rank and file labels and a status panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.adapter == nil {
		return
	}
	s := g.Snapshot()

	if dst.Width() < layoutW || dst.Height() < layoutH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}

	ox := (dst.Width() - layoutW) / 2
	oy := (dst.Height() - layoutH) / 2
	bx := ox + 2

	dst.DrawBox(core.NewRect(bx, oy, boardBoxW, boardBoxH), core.ColorGray)
	for i := 0; i < 8; i++ {
		dst.SetColor(ox, oy+1+i, rune('8'-i), core.ColorGray)
		dst.SetColor(bx+1+i*squareW+1, oy+boardBoxH, rune('a'+i), core.ColorGray)
	}

	last, hasLast := Move{}, len(s.History) > 0
	if hasLast {
		last = s.History[len(s.History)-1]
	}

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			x := bx + 1 + file*squareW
			y := oy + 1 + (7 - rank)

			piece := s.Board.At(sq)
			switch {
			case !piece.Empty():
				color := core.ColorBrightWhite
				if piece.Color == Black {
					color = core.ColorBrightRed
				}
				dst.SetColor(x+1, y, piece.Rune(), color)
			case (file+rank)%2 == 0:
				dst.SetColor(x+1, y, '·', core.ColorGray)
			}

			switch {
			case sq == s.Cursor:
				dst.SetColor(x, y, '[', core.ColorBrightYellow)
				dst.SetColor(x+2, y, ']', core.ColorBrightYellow)
			case sq == s.Selected:
				dst.SetColor(x, y, '<', core.ColorBrightGreen)
				dst.SetColor(x+2, y, '>', core.ColorBrightGreen)
			case hasLast && (sq == last.From || sq == last.To):
				dst.SetColor(x, y, '(', core.ColorCyan)
				dst.SetColor(x+2, y, ')', core.ColorCyan)
			}
		}
	}

	g.renderPanel(dst, s, bx+boardBoxW+2, oy)
	dst.DrawTextColor(ox, oy+boardBoxH+1, "Arrows move  Enter pick/drop  Esc cancel", core.ColorGray)
	dst.DrawTextColor(ox, oy+boardBoxH+2, "E retry engine  P pause  R new game  Q quit", core.ColorGray)

	switch {
	case s.Status != StatusPlaying:
		renderOverlay(dst, s.StatusText(), "Press R to play again")
	case s.Paused:
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderPanel(dst *core.Screen, s Snapshot, px, py int) {
	dst.DrawTextColor(px, py, "CHESS", core.ColorBrightCyan)

	statusColor := core.ColorBrightGreen
	if s.Thinking || s.Pending {
		statusColor = core.ColorYellow
	}
	if s.LastError != "" && s.Status == StatusPlaying {
		statusColor = core.ColorRed
	}
	dst.DrawTextColor(px, py+1, s.StatusText(), statusColor)

	dst.DrawText(px, py+3, fmt.Sprintf("Level:  %d (%s)", s.Level, LevelName(s.Level)))
	dst.DrawText(px, py+4, "Engine: "+s.Engine)
	if s.Notice != "" {
		dst.DrawTextColor(px, py+5, truncate(s.Notice, panelW), core.ColorGray)
	}

	dst.DrawText(px, py+6, "Moves:")
	const shown = 3
	pairs := (len(s.History) + 1) / 2
	start := max(0, pairs-shown)
	for i := start; i < pairs; i++ {
		line := fmt.Sprintf("%3d. %s", i+1, s.History[2*i])
		if 2*i+1 < len(s.History) {
			line += "  " + s.History[2*i+1].String()
		}
		dst.DrawText(px, py+7+i-start, line)
	}

}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
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
