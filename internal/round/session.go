package round

import (
	"slices"

	"github.com/google/uuid"

	"github.com/vovakirdan/numhunt/internal/lang"
)

// Session is the state that survives a scene restart: the chosen language,
// the round status and the target pool. It is created when a game starts and
// handed to every component rebuilt during that game. Only Machine mutates it.
type Session struct {
	id       string
	alphabet []Label
	language lang.Language
	state    State
	goal     Label
	target   *Pool
	round    int
	score    int
	mistakes int

	// mistakes made since the current goal was drawn
	roundMistakes int
}

// NewSession creates a session whose target pool holds every label of alphabet.
func NewSession(alphabet []Label, l lang.Language) *Session {
	if len(alphabet) == 0 {
		alphabet = DefaultAlphabet
	}
	return &Session{
		id:       uuid.NewString(),
		alphabet: slices.Clone(alphabet),
		language: l,
		state:    StateNotStarted,
		target:   NewPool(alphabet),
	}
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// Alphabet returns the full label set of the session.
func (s *Session) Alphabet() []Label { return slices.Clone(s.alphabet) }

// Language returns the narration language.
func (s *Session) Language() lang.Language { return s.language }

// State returns the current round status.
func (s *Session) State() State { return s.state }

// Goal returns the label the player is currently looking for.
func (s *Session) Goal() Label { return s.goal }

// Round returns the 1-based round number, 0 before StartGame.
func (s *Session) Round() int { return s.round }

// Score returns the number of correct matches.
func (s *Session) Score() int { return s.score }

// Mistakes returns the number of incorrect selections in the whole session.
func (s *Session) Mistakes() int { return s.mistakes }

// RoundMistakes returns the incorrect selections made for the current goal.
func (s *Session) RoundMistakes() int { return s.roundMistakes }

// TargetsLeft returns how many goals remain to be drawn.
func (s *Session) TargetsLeft() int { return s.target.Len() }
