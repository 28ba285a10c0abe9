package round

import "github.com/vovakirdan/numhunt/internal/lang"

// Event is emitted by the Machine to its subscribers.
type Event interface {
	roundEvent()
}

// StateChangedEvent is sent on every state transition.
type StateChangedEvent struct {
	From State
	To   State
}

func (StateChangedEvent) roundEvent() {}

// GoalDrawnEvent is sent when a new goal label is drawn from the target pool.
type GoalDrawnEvent struct {
	Goal  Label
	Round int
}

func (GoalDrawnEvent) roundEvent() {}

// ScoredEvent is sent when the player selects the goal.
type ScoredEvent struct {
	Goal     Label
	Score    int
	Mistakes int
}

func (ScoredEvent) roundEvent() {}

// MissedEvent is sent when the player selects a label other than the goal.
type MissedEvent struct {
	Goal     Label
	Selected Label
}

func (MissedEvent) roundEvent() {}

// LanguageChangedEvent is sent by SetLanguage.
type LanguageChangedEvent struct {
	Language lang.Language
}

func (LanguageChangedEvent) roundEvent() {}
