// Package narration drives the two-language typewriter narration: it reveals
// script lines one rune at a time and fires the matching audio cues.
package narration

import (
	"fmt"
	"strings"
)

// Mode selects which script category is narrated.
type Mode int

const (
	ModePrimary Mode = iota
	ModeSecondary
	ModeAffirmative
	ModeNegative
	ModeVictory
)

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModePrimary, ModeSecondary, ModeAffirmative, ModeNegative, ModeVictory}
}

// String returns the key used for the mode in script files.
func (m Mode) String() string {
	switch m {
	case ModePrimary:
		return "primary"
	case ModeSecondary:
		return "secondary"
	case ModeAffirmative:
		return "affirmative"
	case ModeNegative:
		return "negative"
	case ModeVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// holds reports whether the mode walks the whole script and then holds its
// last line.
func (m Mode) holds() bool {
	return m == ModePrimary || m == ModeSecondary
}

// ParseMode resolves a script file key to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return ModePrimary, fmt.Errorf("narration: unknown mode %q", s)
}

// Bank names an audio clip bank. Each narration mode has its own bank and the
// spoken numbers have a separate one.
type Bank string

const (
	BankNumber Bank = "number"
	BankEffect Bank = "effect" // touch sounds: 0 correct, 1 wrong
)

// bankFor returns the clip bank of a mode.
func bankFor(m Mode) Bank {
	return Bank(m.String())
}
