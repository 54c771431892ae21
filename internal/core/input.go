package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with intents; the platform owns the key bindings.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow - move up; rotate clockwise in Tetris
	ActionDown             // S, Down arrow - move down; soft drop in Tetris
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionRotateCW         // X - rotate clockwise
	ActionRotateCCW        // Z, Shift+Up - rotate counter-clockwise
	ActionHold             // C - swap with the hold slot
	ActionDrop             // Space - hard drop; select square in Chess
	ActionConfirm          // Enter - confirm selection
	ActionCancel           // Esc - clear selection
	ActionRetry            // E - ask the opponent engine again
	ActionBack             // B - go back to menu
	ActionRestart          // R - restart game
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:      "None",
	ActionUp:        "Up",
	ActionDown:      "Down",
	ActionLeft:      "Left",
	ActionRight:     "Right",
	ActionRotateCW:  "RotateCW",
	ActionRotateCCW: "RotateCCW",
	ActionHold:      "Hold",
	ActionDrop:      "Drop",
	ActionConfirm:   "Confirm",
	ActionCancel:    "Cancel",
	ActionRetry:     "Retry",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the actions triggered between two simulation steps.
// Actions answers "was it pressed at all"; Presses keeps the order and
// repetition of presses so that buffered inputs (two quick turns in Snake,
// three taps to the left in Tetris) survive until the next step.
type InputFrame struct {
	Actions map[Action]bool
	presses []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame and records the press.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.presses = append(f.presses, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Presses returns the actions in the order they were pressed.
func (f InputFrame) Presses() []Action {
	return f.presses
}

// Empty reports whether nothing was pressed.
func (f InputFrame) Empty() bool {
	return len(f.presses) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.presses = f.presses[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.presses = append([]Action(nil), f.presses...)
	return clone
}
