package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionStart           // Enter, Space - start the game
	ActionSelect          // Digit keys - touch the object carrying a label
	ActionLanguage        // L - toggle narration language
	ActionRestart         // R - new game after the last round
	ActionPause           // P - pause/unpause
	ActionBack            // B, Escape - back to menu
	ActionQuit            // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionSelect:
		return "Select"
	case ActionLanguage:
		return "Language"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Selected is the label the player touched when ActionSelect is set.
	Selected string
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Select records a touch on the object carrying label.
func (f *InputFrame) Select(label string) {
	f.Set(ActionSelect)
	f.Selected = label
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Selected = ""
}
