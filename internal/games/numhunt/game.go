// Package numhunt implements the number hunt: a goal number is narrated,
// numbered objects appear on the surfaces a scene reveals, and the player
// touches the object carrying the goal.
package numhunt

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numhunt/internal/config"
	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/lang"
	"github.com/vovakirdan/numhunt/internal/narration"
	"github.com/vovakirdan/numhunt/internal/placement"
	"github.com/vovakirdan/numhunt/internal/registry"
	"github.com/vovakirdan/numhunt/internal/round"
	"github.com/vovakirdan/numhunt/internal/scenes/tabletop"
)

const (
	ID    = "numhunt"
	Title = "Number Hunt"

	flashDuration = 2 * time.Second

	// rescanAfter is how long a round may go with every batch finished and
	// the goal still unplaced before the scene is loaded again.
	rescanAfter = 45 * time.Second
)

// Options configures a Game. Zero values fall back to the embedded defaults.
type Options struct {
	Config   config.GameConfig
	Library  *narration.Library
	Scene    registry.Scene
	Language lang.Language
	Logger   *log.Logger
	Recorder Recorder
	Audio    narration.AudioSink // receives every cue in addition to the HUD
}

// Game wires the round machine, the placement planner and the two narrators
// to a scene. Each Step advances all of them by one tick.
type Game struct {
	cfg      config.GameConfig
	lib      *narration.Library
	scene    registry.Scene
	logger   *log.Logger
	recorder Recorder
	audio    narration.AudioSink
	labels   []round.Label
	language lang.Language

	rt   core.RuntimeConfig
	dt   time.Duration
	seed int64
	tick uint64

	session  *round.Session
	machine  *round.Machine
	store    *placement.Store
	planner  *placement.Planner
	spawner  *placement.Spawner
	main     *narration.Sequencer
	feedback *narration.Sequencer

	clock      time.Duration // game time since Reset
	sceneClock time.Duration // time since the scene was last loaded
	roundStart time.Duration
	scoring    bool
	scoreWait  time.Duration
	paused     bool
	recorded   bool
	rescans    int

	lastCue  narration.Cue
	cueCount int
	flash    string
	flashFor time.Duration
}

// New creates a game. Call Reset before the first Step.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg := opts.Config
	if len(cfg.Round.Alphabet) == 0 {
		cfg = config.DefaultGameConfig()
	}
	lib := opts.Library
	if lib == nil {
		var err error
		if lib, err = config.DefaultNarration(); err != nil {
			logger.Error("embedded narration unusable", "err", err)
			lib = narration.NewLibrary()
		}
	}
	scene := opts.Scene
	if scene == nil {
		scene = tabletop.New()
	}
	language := opts.Language
	if !language.Valid() {
		language = lang.English
	}

	return &Game{
		cfg:      cfg,
		lib:      lib,
		scene:    scene,
		logger:   logger.WithPrefix(ID),
		recorder: opts.Recorder,
		audio:    opts.Audio,
		labels:   cfg.Round.Labels(),
		language: language,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset starts a fresh session. The seed in rt drives every random choice:
// goals, placement offsets, batch budgets, feedback lines and the scene.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.rt = rt
	g.dt = rt.TickDuration()
	g.seed = rt.Seed
	g.tick = 0

	rng := rand.New(rand.NewSource(rt.Seed))
	sub := func() *rand.Rand { return rand.New(rand.NewSource(rng.Int63())) }

	g.session = round.NewSession(g.labels, g.language)
	g.machine = round.NewMachine(g.session, sub(), g.logger)
	g.machine.Subscribe(g.onEvent)

	g.store = placement.NewStore(g.labels, g.cfg.Placement.Rules())
	g.planner = placement.NewPlanner(g.store, g.machine, g, sub(), g.logger)
	g.planner.SetClock(g.now)
	g.spawner = placement.NewSpawner(g.planner, sub(), g.cfg.Round.MaxObjects, g.cfg.Placement.BatchMin, g.cfg.Placement.BatchMax)

	timing := g.cfg.Narration.Timing()
	g.main = narration.NewSequencer(g.lib, timing, nil, narration.AudioFunc(g.play), sub(), g.logger)
	g.feedback = narration.NewSequencer(g.lib, timing, nil, narration.AudioFunc(g.play), sub(), g.logger.WithPrefix("feedback"))

	g.scene.Reset(rt.Seed)
	g.clock, g.sceneClock, g.roundStart = 0, 0, 0
	g.scoring, g.scoreWait = false, 0
	g.paused, g.recorded = false, false
	g.rescans = 0
	g.lastCue, g.cueCount = narration.Cue{}, 0
	g.flash, g.flashFor = "", 0

	g.logger.Info("session ready", "session", g.session.ID(), "scene", g.scene.ID(), "seed", rt.Seed, "lang", g.language)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionPause) && g.machine.State() != round.StateNotStarted {
		g.paused = !g.paused
	}
	if in.Has(core.ActionLanguage) {
		g.ToggleLanguage()
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch g.machine.State() {
	case round.StateNotStarted:
		if in.Has(core.ActionStart) {
			g.machine.StartGame()
		}
	case round.StateFinished:
		if in.Has(core.ActionRestart) {
			g.restart()
			return core.StepResult{State: g.State()}
		}
	}

	if in.Has(core.ActionSelect) {
		g.Touch(round.Label(in.Selected))
	}

	g.advance(g.dt)
	return core.StepResult{State: g.State()}
}

func (g *Game) advance(dt time.Duration) {
	g.clock += dt

	if g.machine.Active() {
		g.sceneClock += dt
		g.spawner.Observe(g.scene.Discover(g.sceneClock))
	}
	for _, rec := range g.spawner.Advance(dt) {
		g.logger.Debug("object placed", "label", rec.Label, "asset", rec.Asset, "bootstrap", rec.Bootstrap)
	}
	if g.goalMissing() {
		g.rescans++
		g.logger.Info("goal never placed, rescanning", "goal", g.session.Goal(), "placed", g.store.Len(), "rescans", g.rescans)
		g.reloadScene()
	}

	if g.scoring {
		g.scoreWait -= dt
		if g.scoreWait <= 0 {
			g.scoring = false
			g.completeRound()
		}
	}

	g.main.Advance(dt)
	g.feedback.Advance(dt)

	if g.flashFor > 0 {
		g.flashFor -= dt
		if g.flashFor <= 0 {
			g.flash = ""
		}
	}
}

// CanTouch reports whether a touch would be judged now: the game is
// playing, the prompt has reached its last line and no score is pending.
func (g *Game) CanTouch() bool {
	return g.machine.State() == round.StatePlaying &&
		g.main.Finished() &&
		!g.scoring &&
		!g.paused
}

// Touch is the hit-test: it resolves label against the placed objects and
// reports the match to the round machine.
func (g *Game) Touch(label round.Label) {
	if !g.CanTouch() {
		g.logger.Debug("touch ignored", "label", label, "state", g.machine.State(), "scoring", g.scoring)
		return
	}
	rec, ok := g.store.Find(label)
	if !ok {
		g.setFlash(fmt.Sprintf("No %s in view", label))
		return
	}
	if rec.Collected {
		return
	}

	language := g.machine.Language()
	switch g.machine.ReportMatchOutcome(label) {
	case round.Correct:
		g.store.Collect(label)
		g.play(narration.Cue{Bank: narration.BankEffect, Index: 0, Language: language})
		g.say(g.feedback, narration.ModeAffirmative)
		g.scoring = true
		g.scoreWait = g.cfg.Round.ScoreDelay
	case round.Incorrect:
		g.play(narration.Cue{Bank: narration.BankEffect, Index: 1, Language: language})
		g.say(g.feedback, narration.ModeNegative)
	}
}

// completeRound runs once the score delay after a correct match has elapsed.
func (g *Game) completeRound() {
	g.record(RoundResult{
		SessionID: g.session.ID(),
		Round:     g.session.Round(),
		Goal:      string(g.session.Goal()),
		Mistakes:  g.session.RoundMistakes(),
		Duration:  g.clock - g.roundStart,
	})
	g.machine.AdvanceOrFinish()
}

func (g *Game) onEvent(ev round.Event) {
	switch e := ev.(type) {
	case round.StateChangedEvent:
		switch e.To {
		case round.StateAdvancing:
			g.reloadScene()
		case round.StateFinished:
			g.feedback.Stop()
			g.say(g.main, narration.ModeVictory)
			g.recordSession(true)
		}
	case round.GoalDrawnEvent:
		g.main.SetNumberCue(round.IndexOf(g.labels, e.Goal))
		g.roundStart = g.clock
		g.say(g.main, g.promptMode())
	case round.LanguageChangedEvent:
		g.language = e.Language
		g.feedback.Stop()
		switch g.machine.State() {
		case round.StatePlaying:
			g.say(g.main, g.promptMode())
		case round.StateFinished:
			g.say(g.main, narration.ModeVictory)
		}
	}
}

// goalMissing reports a round the scene can no longer serve: placement has
// stopped and the goal is not among the objects.
func (g *Game) goalMissing() bool {
	if g.machine.State() != round.StatePlaying || g.scoring {
		return false
	}
	if g.sceneClock < rescanAfter || g.spawner.Running() > 0 {
		return false
	}
	_, ok := g.store.Find(g.session.Goal())
	return !ok
}

// promptMode is the full introduction in the first round and the short
// prompt afterwards.
func (g *Game) promptMode() narration.Mode {
	if g.session.Round() <= 1 {
		return narration.ModePrimary
	}
	return narration.ModeSecondary
}

// reloadScene clears every placed object and lets the scene rediscover its
// surfaces, as loading the scene again does.
func (g *Game) reloadScene() {
	g.store.Reset()
	g.spawner.Reset()
	g.sceneClock = 0
	g.main.ResetPacing()
	g.scene.Reset(g.seed + int64(g.session.Round()) + int64(g.rescans)*7919)
	g.logger.Debug("scene reloaded", "round", g.session.Round())
}

func (g *Game) say(seq *narration.Sequencer, mode narration.Mode) {
	if err := seq.SetMode(mode, g.machine.Language()); err != nil {
		g.logger.Warn("narration unavailable", "mode", mode, "lang", g.machine.Language(), "err", err)
	}
}

func (g *Game) play(cue narration.Cue) {
	g.lastCue = cue
	g.cueCount++
	g.logger.Debug("cue", "bank", cue.Bank, "index", cue.Index, "lang", cue.Language)
	if g.audio != nil {
		g.audio.Play(cue)
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashFor = flashDuration
}

func (g *Game) restart() {
	rt := g.rt
	rt.Seed = g.seed + 1
	g.Reset(rt)
}

// now stamps placement records on the game clock so runs are reproducible.
func (g *Game) now() time.Time {
	return time.Unix(0, 0).Add(g.clock)
}

// ViewerPosition implements placement.Viewer.
func (g *Game) ViewerPosition() core.Vec3 {
	return g.scene.Viewer(g.sceneClock)
}

// ToggleLanguage switches between the two narration languages and restarts
// the narration of the current state in the new language.
func (g *Game) ToggleLanguage() {
	g.SetLanguage(g.machine.Language().Toggle())
}

// SetLanguage sets the narration language.
func (g *Game) SetLanguage(l lang.Language) {
	g.language = l
	g.machine.SetLanguage(l)
}

// Abandon records an unfinished session. Platforms call it when the player
// leaves mid-game.
func (g *Game) Abandon() {
	if g.machine.State() == round.StateNotStarted {
		return
	}
	g.recordSession(false)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Mistakes: g.session.Mistakes(),
		Round:    g.session.Round(),
		GameOver: g.machine.State() == round.StateFinished,
		Paused:   g.paused,
	}
}

// Session returns the current session.
func (g *Game) Session() *round.Session { return g.session }

// Store returns the placement store of the current session.
func (g *Game) Store() *placement.Store { return g.store }

// Scene returns the scene being played.
func (g *Game) Scene() registry.Scene { return g.scene }

// Elapsed returns game time since Reset.
func (g *Game) Elapsed() time.Duration { return g.clock }

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 { return g.seed }

// Narration returns the visible text of the prompt and feedback narrators.
func (g *Game) Narration() (prompt, feedback string) {
	return g.main.Visible(), g.feedback.Visible()
}

// LastCue returns the most recently played cue and whether any cue has played.
func (g *Game) LastCue() (narration.Cue, bool) {
	return g.lastCue, g.cueCount > 0
}
