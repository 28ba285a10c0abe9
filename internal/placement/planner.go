package placement

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numhunt/internal/core"
)

// Gate reports whether placement may run. The round machine implements it.
type Gate interface {
	Active() bool
}

// Viewer supplies the current viewer (camera) position.
type Viewer interface {
	ViewerPosition() core.Vec3
}

// Planner turns anchors into placement batches against a shared Store.
type Planner struct {
	store  *Store
	gate   Gate
	viewer Viewer
	rng    *rand.Rand
	logger *log.Logger
	now    func() time.Time
}

// NewPlanner creates a planner. A nil logger discards output.
func NewPlanner(store *Store, gate Gate, viewer Viewer, rng *rand.Rand, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Planner{
		store:  store,
		gate:   gate,
		viewer: viewer,
		rng:    rng,
		logger: logger.WithPrefix("placement"),
		now:    time.Now,
	}
}

// SetClock replaces the clock used to stamp records.
func (p *Planner) SetClock(now func() time.Time) {
	p.now = now
}

// Store returns the shared store.
func (p *Planner) Store() *Store {
	return p.store
}

// PlanNextBatch starts a batch of placements around anchor. countHint is the
// attempt budget, not a promised number of objects. The batch waits one
// SpawnDelay before its first attempt.
func (p *Planner) PlanNextBatch(anchor core.Anchor, countHint int) *Batch {
	b := &Batch{
		planner: p,
		anchor:  anchor,
		budget:  countHint,
		wait:    p.store.rules.SpawnDelay,
	}
	if countHint <= 0 {
		b.done = true
	}
	return b
}

// Batch is a finite cooperative task producing placements for one anchor.
// It is consumed by Advance and cannot be restarted.
type Batch struct {
	planner  *Planner
	anchor   core.Anchor
	budget   int
	attempts int
	placed   int
	wait     time.Duration
	done     bool
}

// Anchor returns the anchor the batch places around.
func (b *Batch) Anchor() core.Anchor { return b.anchor }

// Done reports whether the batch has used its budget or run out of labels.
func (b *Batch) Done() bool { return b.done }

// Attempts returns how many placement attempts were made.
func (b *Batch) Attempts() int { return b.attempts }

// Placed returns how many records the batch produced.
func (b *Batch) Placed() int { return b.placed }

// Advance runs the batch for dt of simulated time and returns the records
// placed in that slice. Nothing happens, and no time passes for the batch,
// while the gate is closed.
func (b *Batch) Advance(dt time.Duration) []Record {
	if b.done || !b.planner.gate.Active() {
		return nil
	}

	var out []Record
	for !b.done {
		if b.wait > dt {
			b.wait -= dt
			return out
		}
		dt -= b.wait
		b.wait = 0

		rec, ok := b.attempt()
		if ok {
			out = append(out, rec)
		} else if !b.done {
			b.wait = b.planner.store.rules.SpawnDelay
		}
	}
	return out
}

func (b *Batch) attempt() (Record, bool) {
	p := b.planner
	store := p.store

	if store.SpawnRemaining() == 0 {
		b.done = true
		return Record{}, false
	}

	b.attempts++
	if b.attempts >= b.budget {
		b.done = true
	}

	off := store.rules.MaxOffset
	pos := b.anchor.Position.Add(core.V3(
		(p.rng.Float64()*2-1)*off,
		0,
		(p.rng.Float64()*2-1)*off,
	))

	rec, ok := store.TryPlace(pos, p.viewer.ViewerPosition(), p.rng.Intn, p.now())
	if !ok {
		p.logger.Debug("attempt rejected", "anchor", b.anchor.ID, "attempt", b.attempts)
		return Record{}, false
	}
	b.placed++
	p.logger.Debug("placed", "anchor", b.anchor.ID, "label", rec.Label, "asset", rec.Asset, "bootstrap", rec.Bootstrap)
	return rec, true
}
