package narration

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/lang"
)

type recorder struct {
	texts []string
	cues  []Cue
}

func (r *recorder) SetText(text string) { r.texts = append(r.texts, text) }
func (r *recorder) Play(cue Cue) { r.cues = append(r.cues, cue) }

func (r *recorder) lastCue() Cue {
	if len(r.cues) == 0 {
		return Cue{}
	}
	return r.cues[len(r.cues)-1]
}

func testTiming() Timing {
	return Timing{
		StartDelay:          1500 * time.Millisecond,
		SecondaryStartDelay: 10 * time.Second,
		LineDelay:           500 * time.Millisecond,
		CharDelay:           40 * time.Millisecond,
		HoldMin:             6 * time.Second,
		HoldMax:             12 * time.Second,
		Marker:              "_",
	}
}

func testLibrary() *Library {
	lib := NewLibrary()
	for _, l := range lang.All() {
		lib.Set(ModePrimary, l, Script{{"ab", 0}, {"cd", 1}, {"ef", 2}, {"gh", 3}})
		lib.Set(ModeSecondary, l, Script{{"xy", 0}, {"zw", 1}})
		lib.Set(ModeAffirmative, l, Script{{"y0", 0}, {"y1", 1}, {"y2", 2}})
		lib.Set(ModeNegative, l, Script{{"n0", 0}, {"n1", 1}, {"n2", 2}, {"n3", 3}, {"n4", 4}})
	}
	lib.Set(ModeVictory, lang.English, Script{{"win", 0}, {"unused", 1}})
	return lib
}

func newTestSequencer(seed int64) (*Sequencer, *recorder) {
	rec := &recorder{}
	return NewSequencer(testLibrary(), testTiming(), rec, rec, rand.New(rand.NewSource(seed)), nil), rec
}

func TestPrimaryHoldsLastLine(t *testing.T) {
	s, rec := newTestSequencer(1)
	s.SetNumberCue(4)
	if err := s.SetMode(ModePrimary, lang.English); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}

	// Start delay, then three 2-rune lines each followed by a line pause.
	s.Advance(3239 * time.Millisecond)
	if s.Finished() {
		t.Fatal("Finished() should be false before the last line starts")
	}
	if s.LineIndex() != 2 {
		t.Errorf("LineIndex() = %d, expected 2", s.LineIndex())
	}

	s.Advance(time.Millisecond)
	if !s.Finished() {
		t.Fatal("Finished() should be true once the last line starts revealing")
	}
	if got := rec.lastCue(); got.Bank != BankNumber || got.Index != 4 {
		t.Errorf("last line cue = %+v, expected number cue 4", got)
	}
	for i, c := range rec.cues[:3] {
		if c.Bank != Bank("primary") || c.Index != i {
			t.Errorf("cue %d = %+v, expected primary %d", i, c, i)
		}
	}
}

func TestHeldLineReplaysWithinBounds(t *testing.T) {
	s, rec := newTestSequencer(7)
	s.SetMode(ModePrimary, lang.English)
	s.Advance(3240 * time.Millisecond)

	const step = 10 * time.Millisecond
	var starts []time.Duration
	seen := len(rec.cues)
	for clock := step; clock <= 2*time.Minute; clock += step {
		s.Advance(step)
		for ; seen < len(rec.cues); seen++ {
			if rec.cues[seen].Bank != BankNumber {
				t.Fatalf("unexpected cue during hold: %+v", rec.cues[seen])
			}
			starts = append(starts, clock)
		}
	}

	if len(starts) < 9 {
		t.Fatalf("held line replayed %d times in 2 minutes, expected at least 9", len(starts))
	}
	// Each replay follows the 80ms reveal plus a 6-12s pause.
	prev := time.Duration(0)
	for _, at := range starts {
		gap := at - prev
		if gap < 6080*time.Millisecond-step || gap > 12080*time.Millisecond+step {
			t.Errorf("replay gap %v outside [6.08s, 12.08s]", gap)
		}
		prev = at
	}
	if s.LineIndex() != 3 {
		t.Errorf("LineIndex() = %d, expected 3 while holding", s.LineIndex())
	}
}

func TestMarkerFollowsRevealedText(t *testing.T) {
	s, rec := newTestSequencer(1)
	s.SetMode(ModePrimary, lang.English)

	s.Advance(1500 * time.Millisecond)
	if s.Visible() != "a_" {
		t.Errorf("Visible() = %q, expected %q", s.Visible(), "a_")
	}
	s.Advance(40 * time.Millisecond)
	if s.Visible() != "ab_" {
		t.Errorf("Visible() = %q, expected %q", s.Visible(), "ab_")
	}
	s.Advance(40 * time.Millisecond)
	if s.Visible() != "ab" {
		t.Errorf("Visible() = %q, expected marker stripped", s.Visible())
	}

	want := []string{"", "", "a_", "ab_", "ab"}
	if len(rec.texts) != len(want) {
		t.Fatalf("texts = %q, expected %q", rec.texts, want)
	}
	for i := range want {
		if rec.texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, expected %q", i, rec.texts[i], want[i])
		}
	}
}

func TestMarkerBeforeDelay(t *testing.T) {
	timing := testTiming()
	timing.MarkerBeforeDelay = true
	s := NewSequencer(testLibrary(), timing, nil, nil, rand.New(rand.NewSource(1)), nil)
	s.SetMode(ModeAffirmative, lang.English)

	if s.Visible() != "_" {
		t.Errorf("Visible() = %q during start delay, expected the marker", s.Visible())
	}
}

func TestFeedbackNarratesOneLine(t *testing.T) {
	s, rec := newTestSequencer(3)
	s.SetMode(ModeAffirmative, lang.English)

	s.Advance(1579 * time.Millisecond)
	if s.Done() {
		t.Fatal("Done() should be false before the line completes")
	}
	s.Advance(time.Millisecond)
	if !s.Done() || !s.Finished() {
		t.Fatal("feedback should be done after its single line")
	}
	if len(rec.cues) != 1 || rec.cues[0].Bank != Bank("affirmative") {
		t.Errorf("cues = %+v, expected one affirmative cue", rec.cues)
	}

	s.Advance(time.Hour)
	if len(rec.cues) != 1 {
		t.Errorf("done session should stay silent, got %d cues", len(rec.cues))
	}
}

func TestNegativeSameSeedSameLines(t *testing.T) {
	for _, l := range lang.All() {
		t.Run(l.String(), func(t *testing.T) {
			run := func() []int {
				s, rec := newTestSequencer(42)
				for range 20 {
					s.SetMode(ModeNegative, l)
					s.Advance(2 * time.Second)
				}
				var got []int
				for _, c := range rec.cues {
					if c.Language != l {
						t.Fatalf("cue %+v, expected language %v", c, l)
					}
					got = append(got, c.Index)
				}
				return got
			}

			a, b := run(), run()
			if len(a) != 20 || len(b) != 20 {
				t.Fatalf("expected 20 cues per run, got %d and %d", len(a), len(b))
			}
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("line %d differs: %d vs %d", i, a[i], b[i])
				}
			}
		})
	}
}

func TestNegativeLineChoiceIsUniform(t *testing.T) {
	for _, l := range lang.All() {
		t.Run(l.String(), func(t *testing.T) {
			s, rec := newTestSequencer(99)
			const draws = 2000
			for range draws {
				s.SetMode(ModeNegative, l)
				s.Advance(2 * time.Second)
			}

			counts := make(map[int]int)
			for _, c := range rec.cues {
				counts[c.Index]++
			}
			for i := range 5 {
				if counts[i] < 300 || counts[i] > 500 {
					t.Errorf("line %d chosen %d times out of %d, expected about 400", i, counts[i], draws)
				}
			}
		})
	}
}

func TestSetModeCancelsRunningSession(t *testing.T) {
	s, rec := newTestSequencer(5)
	s.SetMode(ModePrimary, lang.English)
	s.Advance(2100 * time.Millisecond)
	if s.LineIndex() != 1 {
		t.Fatalf("LineIndex() = %d, expected 1", s.LineIndex())
	}

	s.SetMode(ModeNegative, lang.English)
	if s.Visible() != "" {
		t.Errorf("Visible() = %q after switching, expected empty", s.Visible())
	}
	before := len(rec.cues)
	s.Advance(time.Minute)

	for _, c := range rec.cues[before:] {
		if c.Bank != Bank("negative") {
			t.Errorf("cancelled session emitted %+v", c)
		}
	}
	if m, ok := s.Mode(); !ok || m != ModeNegative {
		t.Errorf("Mode() = %v, %v, expected negative", m, ok)
	}
}

func TestSetModeFailsClosed(t *testing.T) {
	s, rec := newTestSequencer(1)
	s.SetMode(ModePrimary, lang.English)
	s.Advance(1520 * time.Millisecond)

	err := s.SetMode(ModeVictory, lang.Japanese)
	if !errors.Is(err, ErrNoScript) {
		t.Fatalf("SetMode() error = %v, expected ErrNoScript", err)
	}
	if !s.Idle() || s.Visible() != "" {
		t.Errorf("sequencer should be idle with no text, got phase %s and %q", s.Phase(), s.Visible())
	}
	before := len(rec.cues)
	s.Advance(time.Minute)
	if len(rec.cues) != before {
		t.Error("idle sequencer should not emit cues")
	}
}

func TestVictoryUsesFirstLine(t *testing.T) {
	s, rec := newTestSequencer(1)
	s.SetMode(ModeVictory, lang.English)
	s.Advance(time.Minute)

	if s.Visible() != "win" {
		t.Errorf("Visible() = %q, expected %q", s.Visible(), "win")
	}
	if len(rec.cues) != 1 || rec.cues[0] != (Cue{Bank: Bank("victory"), Index: 0, Language: lang.English}) {
		t.Errorf("cues = %+v", rec.cues)
	}
}

func TestSecondaryLanguageWidensStartDelay(t *testing.T) {
	s, _ := newTestSequencer(1)
	s.SetMode(ModeSecondary, lang.English)
	s.Advance(2 * time.Second)
	if d := s.StartDelay(lang.Japanese); d != 1500*time.Millisecond {
		t.Errorf("StartDelay(ja) = %v after English narration", d)
	}

	s.SetMode(ModeSecondary, lang.Japanese)
	s.Advance(2 * time.Second)
	if d := s.StartDelay(lang.Japanese); d != 10*time.Second {
		t.Errorf("StartDelay(ja) = %v, expected 10s after Japanese narration", d)
	}
	if d := s.StartDelay(lang.English); d != 1500*time.Millisecond {
		t.Errorf("StartDelay(en) = %v, expected the standard delay", d)
	}

	s.SetMode(ModeAffirmative, lang.Japanese)
	s.Advance(9 * time.Second)
	if s.Visible() != "" {
		t.Errorf("line revealed before the widened start delay: %q", s.Visible())
	}
}

func TestSwitchToPrimaryLanguageKeepsStandardDelay(t *testing.T) {
	s, rec := newTestSequencer(1)
	s.SetMode(ModePrimary, lang.Japanese)
	s.Advance(2100 * time.Millisecond)

	s.SetMode(ModePrimary, lang.English)
	before := len(rec.cues)
	s.Advance(1500 * time.Millisecond)
	if len(rec.cues) != before+1 || rec.cues[before].Language != lang.English {
		t.Errorf("cues after switching to English = %+v, expected the first line after 1.5s", rec.cues[before:])
	}
}

func TestResetPacing(t *testing.T) {
	s, rec := newTestSequencer(1)
	s.SetMode(ModePrimary, lang.Japanese)
	s.Advance(2100 * time.Millisecond)
	if d := s.StartDelay(lang.Japanese); d != 10*time.Second {
		t.Fatalf("StartDelay(ja) = %v, expected 10s", d)
	}

	s.ResetPacing()
	s.SetMode(ModeSecondary, lang.Japanese)
	before := len(rec.cues)
	s.Advance(1500 * time.Millisecond)
	if len(rec.cues) != before+1 {
		t.Errorf("first line did not start 1.5s after a pacing reset")
	}
}

func TestDefaultTimingHasNoMarker(t *testing.T) {
	s := NewSequencer(testLibrary(), DefaultTiming(), nil, nil, rand.New(rand.NewSource(1)), nil)
	s.SetMode(ModeAffirmative, lang.English)
	s.Advance(1500 * time.Millisecond)
	if s.Visible() != "y" {
		t.Errorf("Visible() = %q, expected the first rune with no marker", s.Visible())
	}
}
