package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zriley/portfolio-arcade/internal/games/chess"
)

// ChessSetup is the opponent configuration chosen before a chess game.
type ChessSetup struct {
	Level     int
	Transport string
}

var chessTransports = []struct {
	name  string
	label string
}{
	{"uci", "Local engine (UCI)"},
	{"cloud", "Cloud analysis"},
	{"embedded", "Built-in search"},
}

const (
	setupRowLevel = iota
	setupRowEngine
	setupRowStart
	setupRows
)

// ChessSetupModel lets the player pick the opponent level and where its
// moves come from.
type ChessSetupModel struct {
	row        int
	level      int
	transport  int
	width      int
	height     int
	keyMapper  *KeyMapper
	standalone bool // quit the program once a choice is made
	done       bool
	back       bool
	quitting   bool
}

// NewChessSetupModel starts from the given level and transport.
func NewChessSetupModel(width, height int, initial ChessSetup) ChessSetupModel {
	m := ChessSetupModel{
		level:     min(max(initial.Level, chess.MinLevel), chess.MaxLevel),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for i, t := range chessTransports {
		if t.name == initial.Transport {
			m.transport = i
		}
	}
	return m
}

// Init initializes the model.
func (m ChessSetupModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m ChessSetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m ChessSetupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.row > 0 {
			m.row--
		}
	case MenuActionDown:
		if m.row < setupRows-1 {
			m.row++
		}
	case MenuActionPrev:
		m.change(-1)
	case MenuActionNext:
		m.change(1)
	case MenuActionSelect:
		if m.row == setupRowStart {
			m.done = true
			if m.standalone {
				return m, tea.Quit
			}
		} else {
			m.change(1)
		}
	case MenuActionBack:
		m.back = true
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *ChessSetupModel) change(d int) {
	switch m.row {
	case setupRowLevel:
		m.level = min(max(m.level+d, chess.MinLevel), chess.MaxLevel)
	case setupRowEngine:
		n := len(chessTransports)
		m.transport = (m.transport + d + n) % n
	}
}

// View renders the setup screen.
func (m ChessSetupModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("C H E S S", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("You play white.", m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Level:  < %d %-7s >", m.level, chess.LevelName(m.level)),
		fmt.Sprintf("Engine: < %-18s >", chessTransports[m.transport].label),
		"Start game",
	}
	for i, r := range rows {
		cursor := "  "
		if i == m.row {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-30s", cursor, r), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Left/Right: Change  |  Enter: Select  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// Selected returns the chosen setup, or nil while the player is choosing.
func (m ChessSetupModel) Selected() *ChessSetup {
	if !m.done {
		return nil
	}
	return &ChessSetup{Level: m.level, Transport: chessTransports[m.transport].name}
}

// IsQuitting returns true if user wants to quit.
func (m ChessSetupModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m ChessSetupModel) WantsBack() bool {
	return m.back
}

// RunChessSetup shows the setup screen as its own program. It returns nil
// when the player backs out or quits.
func RunChessSetup(width, height int, initial ChessSetup) (*ChessSetup, error) {
	model := NewChessSetupModel(width, height, initial)
	model.standalone = true

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m, ok := final.(ChessSetupModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
