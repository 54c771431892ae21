package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zriley/portfolio-arcade/internal/core"
)

// Palette holds one lipgloss style per screen color. Styles are bound to a
// renderer so SSH sessions get the color profile of the remote terminal.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	plain  lipgloss.Style
}

// DefaultPalette uses the process-wide renderer (the local terminal).
func DefaultPalette() Palette {
	return NewPalette(lipgloss.DefaultRenderer())
}

// NewPalette builds styles from r.
func NewPalette(r *lipgloss.Renderer) Palette {
	p := Palette{
		styles: make(map[core.Color]lipgloss.Style),
		plain:  r.NewStyle(),
	}
	for _, c := range core.Colors() {
		if code, ok := c.ANSI256(); ok {
			p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
		}
	}
	return p
}

func (p Palette) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.plain
}

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one escape sequence.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != c {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(c).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with the default palette.
func RenderScreen(s *core.Screen) string {
	return DefaultPalette().Render(s)
}
