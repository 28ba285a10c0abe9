package placement

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
)

// Spawner starts one batch per newly discovered anchor and advances all
// running batches together. Batches interleave within a tick; each sees the
// records the others placed before it.
type Spawner struct {
	planner    *Planner
	rng        *rand.Rand
	maxObjects int
	batchMin   int
	batchMax   int
	seen       map[string]bool
	batches    []*Batch
}

// NewSpawner creates a spawner. Every new anchor gets a batch with an attempt
// budget drawn from [batchMin, batchMax] while fewer than maxObjects exist.
func NewSpawner(planner *Planner, rng *rand.Rand, maxObjects, batchMin, batchMax int) *Spawner {
	if batchMin < 1 {
		batchMin = 1
	}
	if batchMax < batchMin {
		batchMax = batchMin
	}
	return &Spawner{
		planner:    planner,
		rng:        rng,
		maxObjects: maxObjects,
		batchMin:   batchMin,
		batchMax:   batchMax,
		seen:       make(map[string]bool),
	}
}

// Observe registers anchors. Anchors already seen are skipped; an anchor seen
// while the scene is full is consumed without a batch.
func (s *Spawner) Observe(anchors []core.Anchor) {
	for _, a := range anchors {
		if s.seen[a.ID] {
			continue
		}
		s.seen[a.ID] = true
		if s.planner.store.Len() >= s.maxObjects {
			continue
		}
		budget := s.batchMin + s.rng.Intn(s.batchMax-s.batchMin+1)
		s.batches = append(s.batches, s.planner.PlanNextBatch(a, budget))
	}
}

// Advance runs every batch for dt and returns the records they placed.
func (s *Spawner) Advance(dt time.Duration) []Record {
	var out []Record
	running := s.batches[:0]
	for _, b := range s.batches {
		out = append(out, b.Advance(dt)...)
		if !b.Done() {
			running = append(running, b)
		}
	}
	s.batches = running
	return out
}

// Running returns the number of unfinished batches.
func (s *Spawner) Running() int {
	return len(s.batches)
}

// Reset forgets all anchors and drops running batches.
func (s *Spawner) Reset() {
	s.seen = make(map[string]bool)
	s.batches = nil
}
