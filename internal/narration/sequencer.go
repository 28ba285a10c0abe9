package narration

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numhunt/internal/lang"
)

// ErrNoScript is returned by SetMode when the library has no lines for the
// requested mode and language. The sequencer stays idle.
var ErrNoScript = errors.New("narration: no script")

// Cue identifies an audio clip: an index into a bank for one language.
type Cue struct {
	Bank     Bank
	Index    int
	Language lang.Language
}

// TextSink receives the visible narration text.
type TextSink interface {
	SetText(text string)
}

// AudioSink starts playback of a clip. Playback is fire-and-forget.
type AudioSink interface {
	Play(cue Cue)
}

// TextFunc adapts a function to TextSink.
type TextFunc func(text string)

func (f TextFunc) SetText(text string) { f(text) }

// AudioFunc adapts a function to AudioSink.
type AudioFunc func(cue Cue)

func (f AudioFunc) Play(cue Cue) { f(cue) }

// Timing configures the pacing of a Sequencer.
type Timing struct {
	StartDelay          time.Duration // wait before the first line of a session
	SecondaryStartDelay time.Duration // start delay of secondary-language sessions once a prompt line completed in it
	LineDelay           time.Duration // pause between lines
	CharDelay           time.Duration // pause after each revealed rune
	HoldMin             time.Duration // shortest pause before a held line replays
	HoldMax             time.Duration // longest pause before a held line replays
	Marker              string        // appended after each rune while a line is revealed; "_" gives a cursor

	// MarkerBeforeDelay shows the marker alone during the start delay.
	MarkerBeforeDelay bool
}

// DefaultTiming returns the standard pacing.
func DefaultTiming() Timing {
	return Timing{
		StartDelay:          1500 * time.Millisecond,
		SecondaryStartDelay: 10 * time.Second,
		LineDelay:           500 * time.Millisecond,
		CharDelay:           40 * time.Millisecond,
		HoldMin:             6 * time.Second,
		HoldMax:             12 * time.Second,
	}
}

func (t Timing) normalized() Timing {
	if t.HoldMin <= 0 {
		t.HoldMin = time.Millisecond
	}
	if t.HoldMax < t.HoldMin {
		t.HoldMax = t.HoldMin
	}
	return t
}

type phase int

const (
	phaseIdle phase = iota
	phaseStarting
	phaseRevealing
	phaseLinePause
	phaseHolding
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseStarting:
		return "starting"
	case phaseRevealing:
		return "revealing"
	case phaseLinePause:
		return "line_pause"
	case phaseHolding:
		return "holding"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// session is one narration run. Replacing the Sequencer's session cancels
// the previous run: nothing of it is ever touched again.
type session struct {
	mode     Mode
	language lang.Language
	lines    Script
	hold     bool

	phase    phase
	wait     time.Duration
	index    int
	runes    []rune
	revealed int
	finished bool
}

// Sequencer reveals scripts one rune at a time on a simulated clock.
// It is driven by Advance and is not safe for concurrent use.
type Sequencer struct {
	lib    *Library
	timing Timing
	text   TextSink
	audio  AudioSink
	rng    *rand.Rand
	logger *log.Logger

	// secondaryPaced is set once a Primary or Secondary line completes in
	// the secondary language. It widens the start delay of later sessions
	// in that language until ResetPacing.
	secondaryPaced bool
	numberCue      int
	visible        string
	sess           *session
}

// NewSequencer creates an idle sequencer. Nil sinks discard their output.
func NewSequencer(lib *Library, timing Timing, text TextSink, audio AudioSink, rng *rand.Rand, logger *log.Logger) *Sequencer {
	if text == nil {
		text = TextFunc(func(string) {})
	}
	if audio == nil {
		audio = AudioFunc(func(Cue) {})
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	timing = timing.normalized()
	return &Sequencer{
		lib:    lib,
		timing: timing,
		text:   text,
		audio:  audio,
		rng:    rng,
		logger: logger.WithPrefix("narration"),
	}
}

// SetMode cancels any running narration and starts mode in language.
// Primary and Secondary walk the whole script and hold the last line.
// Affirmative and Negative narrate one randomly chosen line. Victory narrates
// its first line.
func (s *Sequencer) SetMode(mode Mode, language lang.Language) error {
	s.sess = nil

	script, ok := s.lib.Script(mode, language)
	if !ok {
		s.setText("")
		s.logger.Warn("no narration lines", "mode", mode, "lang", language)
		return ErrNoScript
	}

	sess := &session{
		mode:     mode,
		language: language,
		hold:     mode.holds(),
		phase:    phaseStarting,
		wait:     s.StartDelay(language),
	}
	switch mode {
	case ModeAffirmative, ModeNegative:
		sess.lines = Script{script[s.rng.Intn(len(script))]}
	case ModeVictory:
		sess.lines = script[:1]
	default:
		sess.lines = script
	}
	s.sess = sess

	if s.timing.MarkerBeforeDelay {
		s.setText(s.timing.Marker)
	} else {
		s.setText("")
	}
	s.logger.Debug("narration started", "mode", mode, "lang", language, "lines", len(sess.lines), "delay", sess.wait)
	return nil
}

// Stop cancels any running narration and clears the text.
func (s *Sequencer) Stop() {
	s.sess = nil
	s.setText("")
}

// SetNumberCue sets the clip played in place of a held line's own cue.
func (s *Sequencer) SetNumberCue(index int) {
	s.numberCue = index
}

// Advance moves the narration clock forward by dt, emitting every text update
// and cue that falls inside the interval.
func (s *Sequencer) Advance(dt time.Duration) {
	for s.sess != nil {
		ss := s.sess
		if ss.phase == phaseIdle || ss.phase == phaseDone {
			return
		}
		if ss.wait > dt {
			ss.wait -= dt
			return
		}
		dt -= ss.wait
		ss.wait = 0

		switch ss.phase {
		case phaseStarting:
			s.beginLine(0)
		case phaseLinePause:
			s.beginLine(ss.index + 1)
		case phaseHolding:
			s.beginLine(ss.index)
		case phaseRevealing:
			if ss.revealed < len(ss.runes) {
				ss.revealed++
				s.setText(string(ss.runes[:ss.revealed]) + s.timing.Marker)
				ss.wait = s.timing.CharDelay
				continue
			}
			s.finishLine()
		}
	}
}

func (s *Sequencer) beginLine(i int) {
	ss := s.sess
	line := ss.lines[i]
	ss.index = i
	ss.runes = []rune(line.Text)
	ss.revealed = 0
	ss.phase = phaseRevealing
	s.setText("")

	if ss.hold && i == len(ss.lines)-1 {
		ss.finished = true
		s.audio.Play(Cue{Bank: BankNumber, Index: s.numberCue, Language: ss.language})
		return
	}
	s.audio.Play(Cue{Bank: bankFor(ss.mode), Index: line.Cue, Language: ss.language})
}

func (s *Sequencer) finishLine() {
	ss := s.sess
	if s.timing.Marker != "" {
		s.setText(string(ss.runes))
	}

	switch {
	case !ss.hold:
		ss.phase = phaseDone
	case ss.index == len(ss.lines)-1:
		ss.phase = phaseHolding
		ss.wait = s.holdPause()
	default:
		ss.phase = phaseLinePause
		ss.wait = s.timing.LineDelay
	}

	if ss.hold && ss.language.Secondary() {
		s.secondaryPaced = true
	}
}

// holdPause draws a replay pause uniformly from [HoldMin, HoldMax].
func (s *Sequencer) holdPause() time.Duration {
	span := int64(s.timing.HoldMax - s.timing.HoldMin)
	return s.timing.HoldMin + time.Duration(s.rng.Int63n(span+1))
}

func (s *Sequencer) setText(text string) {
	s.visible = text
	s.text.SetText(text)
}

// Visible returns the text currently shown.
func (s *Sequencer) Visible() string {
	return s.visible
}

// Mode returns the running mode and false when idle.
func (s *Sequencer) Mode() (Mode, bool) {
	if s.sess == nil {
		return ModePrimary, false
	}
	return s.sess.mode, true
}

// Language returns the language of the running session.
func (s *Sequencer) Language() (lang.Language, bool) {
	if s.sess == nil {
		return lang.English, false
	}
	return s.sess.language, true
}

// LineIndex returns the index of the line being revealed or last revealed.
func (s *Sequencer) LineIndex() int {
	if s.sess == nil {
		return 0
	}
	return s.sess.index
}

// Finished reports whether the current session reached its last line.
// Held scripts become finished as soon as the last line starts revealing.
func (s *Sequencer) Finished() bool {
	if s.sess == nil {
		return false
	}
	return s.sess.finished || s.sess.phase == phaseDone
}

// Done reports whether a one-shot session has completed.
func (s *Sequencer) Done() bool {
	return s.sess != nil && s.sess.phase == phaseDone
}

// Idle reports whether no session is running.
func (s *Sequencer) Idle() bool {
	return s.sess == nil
}

// Phase returns a short name of the current phase, for status lines.
func (s *Sequencer) Phase() string {
	if s.sess == nil {
		return phaseIdle.String()
	}
	return s.sess.phase.String()
}

// StartDelay returns the delay applied to the next session in language.
func (s *Sequencer) StartDelay(language lang.Language) time.Duration {
	if s.secondaryPaced && language.Secondary() {
		return s.timing.SecondaryStartDelay
	}
	return s.timing.StartDelay
}

// ResetPacing drops the widened secondary-language start delay, as a freshly
// loaded scene starts with the standard pacing.
func (s *Sequencer) ResetPacing() {
	s.secondaryPaced = false
}
