package core

import "fmt"

// Sound identifies a sound effect requested by a game.
type Sound int

const (
	SoundPing      Sound = iota // drag collision
	SoundGem                    // a new gem lit while playing
	SoundGemSolved              // a new gem lit during the solution replay
)

func (s Sound) String() string {
	switch s {
	case SoundPing:
		return "Ping"
	case SoundGem:
		return "Gem"
	case SoundGemSolved:
		return "GemSolved"
	default:
		return fmt.Sprintf("Sound(%d)", int(s))
	}
}

// IntentKind is a request from a game to the platform.
type IntentKind int

const (
	IntentNone IntentKind = iota
	// IntentExit ends the session.
	IntentExit
	// IntentBack returns to the platform menu.
	IntentBack
	// IntentOpenLevel records that a level was reached.
	IntentOpenLevel
	// IntentSetSound persists the sound setting.
	IntentSetSound
	// IntentSolved records a solved level.
	IntentSolved
)

func (k IntentKind) String() string {
	switch k {
	case IntentNone:
		return "None"
	case IntentExit:
		return "Exit"
	case IntentBack:
		return "Back"
	case IntentOpenLevel:
		return "OpenLevel"
	case IntentSetSound:
		return "SetSound"
	case IntentSolved:
		return "Solved"
	default:
		return fmt.Sprintf("IntentKind(%d)", int(k))
	}
}

// Intent carries a request and its arguments. Only the fields relevant to
// Kind are set.
type Intent struct {
	Kind  IntentKind
	Level int
	Sound bool

	// Seconds and Moves describe a solve (IntentSolved).
	Seconds float64
	Moves   int
}

func (in Intent) String() string {
	switch in.Kind {
	case IntentOpenLevel:
		return fmt.Sprintf("OpenLevel(%d)", in.Level)
	case IntentSetSound:
		return fmt.Sprintf("SetSound(%t)", in.Sound)
	case IntentSolved:
		return fmt.Sprintf("Solved(%d, %.1fs, %d moves)", in.Level, in.Seconds, in.Moves)
	default:
		return in.Kind.String()
	}
}

// OpenLevel returns an intent recording that level n was reached.
func OpenLevel(n int) Intent {
	return Intent{Kind: IntentOpenLevel, Level: n}
}

// SetSound returns an intent persisting the sound setting.
func SetSound(on bool) Intent {
	return Intent{Kind: IntentSetSound, Sound: on}
}

// Solved returns an intent recording a solve.
func Solved(level int, seconds float64, moves int) Intent {
	return Intent{Kind: IntentSolved, Level: level, Seconds: seconds, Moves: moves}
}
