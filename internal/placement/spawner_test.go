package placement

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
)

func TestSpawnerOneBatchPerAnchor(t *testing.T) {
	p := newTestPlanner(1, open)
	s := NewSpawner(p, rand.New(rand.NewSource(1)), 10, 1, 3)

	a := core.Anchor{ID: "a", Position: core.V3(3, 0, 0)}
	s.Observe([]core.Anchor{a})
	s.Observe([]core.Anchor{a})

	if s.Running() != 1 {
		t.Fatalf("Running() = %d, expected 1", s.Running())
	}
	s.Advance(time.Hour)
	if s.Running() != 0 {
		t.Errorf("finished batches should be dropped, %d running", s.Running())
	}
}

func TestSpawnerRespectsMaxObjects(t *testing.T) {
	p := newTestPlanner(2, open)
	s := NewSpawner(p, rand.New(rand.NewSource(2)), 1, 1, 1)

	s.Observe([]core.Anchor{{ID: "a", Position: core.V3(3, 0, 0)}})
	s.Advance(time.Hour)
	if p.Store().Len() != 1 {
		t.Fatalf("expected one placement, got %d", p.Store().Len())
	}

	s.Observe([]core.Anchor{{ID: "b", Position: core.V3(-3, 0, 0)}})
	if s.Running() != 0 {
		t.Error("no batch should start once maxObjects is reached")
	}

	s.Reset()
	if s.Running() != 0 {
		t.Error("Reset should drop batches")
	}
}
