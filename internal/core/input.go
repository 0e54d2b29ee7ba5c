package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor/held piece up, menu up
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionGrab           // Space - pick up or drop the piece under the cursor
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // Esc - open/close the in-game menu
	ActionRestart        // R key - restart the current level
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - same as Back while playing
	ActionHint           // H - toggle solution hint overlay
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionGrab:    "Grab",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
	ActionHint:    "Hint",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// PointerKind distinguishes mouse events.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerPress
	PointerRelease
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "Move"
	case PointerPress:
		return "Press"
	case PointerRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// PointerEvent is a mouse event in terminal cell coordinates.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame and the
// pointer events in arrival order.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer holds mouse events received since the previous tick.
	Pointer []PointerEvent
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

// AddPointer appends a pointer event. Consecutive moves are merged so a
// burst of motion events costs one drag resolution per tick.
func (f *InputFrame) AddPointer(ev PointerEvent) {
	if n := len(f.Pointer); n > 0 && ev.Kind == PointerMove && f.Pointer[n-1].Kind == PointerMove {
		f.Pointer[n-1] = ev
		return
	}
	f.Pointer = append(f.Pointer, ev)
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Pointer) == 0 && len(f.Actions) == 0
}

// Clear resets all actions and pointer events for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = append([]PointerEvent(nil), f.Pointer...)
	return clone
}
