package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zriley/portfolio-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"x rotates", runeKey('x'), core.ActionRotateCW, false},
		{"z rotates back", runeKey('z'), core.ActionRotateCCW, false},
		{"space drops", tea.KeyMsg{Type: tea.KeySpace}, core.ActionDrop, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel, false},
		{"e retries", runeKey('e'), core.ActionRetry, false},
		{"r restarts", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('y'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrameKeepsHostActions(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if got := km.MapKeyToFrame(runeKey('q'), &frame); got != core.ActionQuit {
		t.Errorf("expected Quit, got %v", got)
	}
	if got := km.MapKeyToFrame(runeKey('b'), &frame); got != core.ActionBack {
		t.Errorf("expected Back, got %v", got)
	}
	if !frame.Empty() {
		t.Errorf("quit and back must not reach the game, got %v", frame.Presses())
	}

	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyLeft}, &frame)
	if got := len(frame.Presses()); got != 2 {
		t.Errorf("expected 2 buffered presses, got %d", got)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{runeKey('a'), MenuActionPrev},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionNext},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('y'), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}
