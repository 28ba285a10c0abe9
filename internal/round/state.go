package round

// State is the process-wide round status.
type State int

const (
	StateNotStarted State = iota
	StatePlaying
	StateAdvancing
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StatePlaying:
		return "playing"
	case StateAdvancing:
		return "advancing"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// canTransition lists the legal edges of the round state machine.
func canTransition(from, to State) bool {
	switch from {
	case StateNotStarted:
		return to == StatePlaying
	case StatePlaying:
		return to == StateAdvancing || to == StateFinished
	case StateAdvancing:
		return to == StatePlaying
	default:
		return false
	}
}

// Outcome is the result of comparing a selection against the goal.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}
