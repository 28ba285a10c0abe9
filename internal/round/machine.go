package round

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numhunt/internal/lang"
)

// Machine drives the round state of a Session:
// NotStarted -> Playing -> (Advancing -> Playing)* -> Finished.
// Requests that do not fit the current state are ignored.
type Machine struct {
	session   *Session
	rng       *rand.Rand
	logger    *log.Logger
	listeners []func(Event)
	onScore   func(ScoredEvent)
}

// NewMachine creates a machine over session. A nil logger discards output.
func NewMachine(session *Session, rng *rand.Rand, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{
		session: session,
		rng:     rng,
		logger:  logger.WithPrefix("round"),
	}
}

// Session returns the session the machine mutates.
func (m *Machine) Session() *Session {
	return m.session
}

// Subscribe registers fn to receive every event emitted from now on.
func (m *Machine) Subscribe(fn func(Event)) {
	m.listeners = append(m.listeners, fn)
}

// OnScore sets the scoring callback invoked on a correct match.
func (m *Machine) OnScore(fn func(ScoredEvent)) {
	m.onScore = fn
}

// State returns the current round status.
func (m *Machine) State() State {
	return m.session.state
}

// Goal returns the current goal label.
func (m *Machine) Goal() Label {
	return m.session.goal
}

// Language returns the session language.
func (m *Machine) Language() lang.Language {
	return m.session.language
}

// Active reports whether placement and narration may run.
func (m *Machine) Active() bool {
	s := m.session.state
	return s == StatePlaying || s == StateAdvancing
}

// StartGame moves NotStarted -> Playing and draws the first goal.
// Returns false when ignored: wrong state or empty target pool.
func (m *Machine) StartGame() bool {
	if m.session.state != StateNotStarted {
		m.logger.Debug("start ignored", "state", m.session.state)
		return false
	}
	if m.session.target.Empty() {
		m.logger.Warn("start ignored: target pool is empty")
		return false
	}
	m.transition(StatePlaying)
	m.drawGoal()
	return true
}

// ReportMatchOutcome compares selected against the goal. It never changes the
// state; a correct match fires the scoring callback.
func (m *Machine) ReportMatchOutcome(selected Label) Outcome {
	if m.session.state != StatePlaying {
		m.logger.Debug("selection ignored", "state", m.session.state, "selected", selected)
		return Incorrect
	}

	if selected != m.session.goal {
		m.session.mistakes++
		m.session.roundMistakes++
		m.logger.Info("miss", "goal", m.session.goal, "selected", selected)
		m.emit(MissedEvent{Goal: m.session.goal, Selected: selected})
		return Incorrect
	}

	m.session.score++
	ev := ScoredEvent{
		Goal:     m.session.goal,
		Score:    m.session.score,
		Mistakes: m.session.roundMistakes,
	}
	m.logger.Info("match", "goal", ev.Goal, "score", ev.Score)
	if m.onScore != nil {
		m.onScore(ev)
	}
	m.emit(ev)
	return Correct
}

// AdvanceOrFinish is called after scoring. With goals left the round passes
// through Advancing (restart listeners run there) and returns to Playing with
// a fresh goal; otherwise the game is Finished.
func (m *Machine) AdvanceOrFinish() State {
	if m.session.state != StatePlaying {
		m.logger.Debug("advance ignored", "state", m.session.state)
		return m.session.state
	}

	if m.session.target.Empty() {
		m.transition(StateFinished)
		return m.session.state
	}

	m.transition(StateAdvancing)
	m.transition(StatePlaying)
	m.drawGoal()
	return m.session.state
}

// SetLanguage changes the narration language. Legal in any state.
func (m *Machine) SetLanguage(l lang.Language) {
	if !l.Valid() || l == m.session.language {
		return
	}
	m.session.language = l
	m.emit(LanguageChangedEvent{Language: l})
}

func (m *Machine) drawGoal() {
	goal, ok := m.session.target.Draw(m.rng)
	if !ok {
		return
	}
	m.session.goal = goal
	m.session.round++
	m.session.roundMistakes = 0
	m.logger.Info("goal drawn", "goal", goal, "round", m.session.round, "left", m.session.target.Len())
	m.emit(GoalDrawnEvent{Goal: goal, Round: m.session.round})
}

func (m *Machine) transition(to State) {
	from := m.session.state
	if !canTransition(from, to) {
		m.logger.Debug("transition ignored", "from", from, "to", to)
		return
	}
	m.session.state = to
	m.logger.Debug("state", "from", from, "to", to)
	m.emit(StateChangedEvent{From: from, To: to})
}

func (m *Machine) emit(ev Event) {
	for _, fn := range m.listeners {
		fn(ev)
	}
}
