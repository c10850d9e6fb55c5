package core

// Action represents a semantic input event, abstracted from physical key presses.
// The session reacts to these edge-triggered events, never to raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Enter - advance help, start recording, start game
	ActionClap           // Space - clap for the synthetic amplitude source
	ActionAny            // Set for every key press
	ActionQuit           // Esc, Ctrl+C - exit
	ActionDigit0
	ActionDigit1
	ActionDigit2
	ActionDigit3
	ActionDigit4
	ActionDigit5
	ActionDigit6
	ActionDigit7
	ActionDigit8
	ActionDigit9
)

// DigitAction returns the action for the digit n (0-9).
func DigitAction(n int) Action {
	if n < 0 || n > 9 {
		return ActionNone
	}
	return ActionDigit0 + Action(n)
}

// Digit returns the digit carried by a digit action.
func (a Action) Digit() (int, bool) {
	if a < ActionDigit0 || a > ActionDigit9 {
		return 0, false
	}
	return int(a - ActionDigit0), true
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if d, ok := a.Digit(); ok {
		return "Digit" + string(rune('0'+d))
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionClap:
		return "Clap"
	case ActionAny:
		return "Any"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
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

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Digit returns the lowest digit pressed this frame.
func (f InputFrame) Digit() (int, bool) {
	for n := 0; n <= 9; n++ {
		if f.Has(DigitAction(n)) {
			return n, true
		}
	}
	return 0, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
