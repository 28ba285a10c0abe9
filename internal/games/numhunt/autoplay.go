package numhunt

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/round"
)

// Autoplayer produces input for headless runs. It starts the game, waits a
// reaction time once touches are allowed, then touches the goal when it is
// placed, or a wrong object with probability missRate.
type Autoplayer struct {
	rng      *rand.Rand
	missRate float64
	reaction time.Duration
	wait     time.Duration
}

// NewAutoplayer creates an autoplayer with its own seeded rng.
func NewAutoplayer(seed int64, missRate float64, reaction time.Duration) *Autoplayer {
	return &Autoplayer{
		rng:      rand.New(rand.NewSource(seed)),
		missRate: missRate,
		reaction: reaction,
		wait:     reaction,
	}
}

// Next returns the input for the next tick of g. dt is the tick duration.
func (a *Autoplayer) Next(g *Game, dt time.Duration) core.InputFrame {
	in := core.NewInputFrame()

	if g.Session().State() == round.StateNotStarted {
		in.Set(core.ActionStart)
		return in
	}
	if !g.CanTouch() {
		a.wait = a.reaction
		return in
	}
	if a.wait > 0 {
		a.wait -= dt
		return in
	}
	a.wait = a.reaction

	goal := g.Session().Goal()
	var goalPlaced bool
	var wrong []round.Label
	for _, rec := range g.Store().Records() {
		switch {
		case rec.Label == goal:
			goalPlaced = !rec.Collected
		case !rec.Collected:
			wrong = append(wrong, rec.Label)
		}
	}

	if len(wrong) > 0 && a.rng.Float64() < a.missRate {
		in.Select(string(wrong[a.rng.Intn(len(wrong))]))
		return in
	}
	if goalPlaced {
		in.Select(string(goal))
	}
	return in
}
