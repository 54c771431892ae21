package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zriley/portfolio-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	bindings map[string]core.Action
}

var defaultBindings = map[string]core.Action{
	"up":       core.ActionUp,
	"w":        core.ActionUp,
	"down":     core.ActionDown,
	"s":        core.ActionDown,
	"left":     core.ActionLeft,
	"a":        core.ActionLeft,
	"right":    core.ActionRight,
	"d":        core.ActionRight,
	"x":        core.ActionRotateCW,
	"z":        core.ActionRotateCCW,
	"shift+up": core.ActionRotateCCW,
	"c":        core.ActionHold,
	" ":        core.ActionDrop,
	"space":    core.ActionDrop,
	"enter":    core.ActionConfirm,
	"esc":      core.ActionCancel,
	"e":        core.ActionRetry,
	"p":        core.ActionPause,
	"r":        core.ActionRestart,
	"b":        core.ActionBack,
	"q":        core.ActionQuit,
	"ctrl+c":   core.ActionQuit,
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{bindings: defaultBindings}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.bindings[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame updates an input frame based on a key message.
// Quit and Back are not forwarded to the game. Returns the action so the
// caller can handle those.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) core.Action {
	action, _ := km.MapKey(msg)
	switch action {
	case core.ActionNone, core.ActionQuit, core.ActionBack:
	default:
		frame.Set(action)
	}
	return action
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionPrev
	MenuActionNext
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionPrev
	case "d", "right", "l":
		return MenuActionNext
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
