package placement

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/round"
)

type gateFunc func() bool

func (f gateFunc) Active() bool { return f() }

type fixedViewer core.Vec3

func (v fixedViewer) ViewerPosition() core.Vec3 { return core.Vec3(v) }

var open = gateFunc(func() bool { return true })

func newTestPlanner(seed int64, gate Gate) *Planner {
	store := NewStore(round.DefaultAlphabet, DefaultRules())
	return NewPlanner(store, gate, fixedViewer{}, rand.New(rand.NewSource(seed)), nil)
}

func assertSeparated(t *testing.T, records []Record, minSep float64) {
	t.Helper()
	for i := range records {
		for j := i + 1; j < len(records); j++ {
			if d := core.Distance(records[i].Position, records[j].Position); d <= minSep {
				t.Errorf("records %q and %q are %f apart, need > %f", records[i].Label, records[j].Label, d, minSep)
			}
		}
	}
}

func TestBatchWaitsSpawnDelay(t *testing.T) {
	p := newTestPlanner(1, open)
	b := p.PlanNextBatch(core.Anchor{ID: "a", Position: core.V3(3, 0, 0)}, 1)

	if got := b.Advance(time.Second); len(got) != 0 || b.Attempts() != 0 {
		t.Fatalf("no attempt expected before the spawn delay, got %d records, %d attempts", len(got), b.Attempts())
	}
	got := b.Advance(300 * time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("expected the first attempt after 1.25s to place, got %d", len(got))
	}
	if !b.Done() {
		t.Error("batch with budget 1 should be done")
	}
	if !got[0].Bootstrap {
		t.Error("first record in an empty scene should be the bootstrap record")
	}
}

func TestBootstrapViewerClearance(t *testing.T) {
	p := newTestPlanner(2, open)

	// Anchor 1.0 from the viewer: only the relaxed 0.5 clearance passes.
	near := core.Anchor{ID: "near", Position: core.V3(1.0, 0, 0)}
	b := p.PlanNextBatch(near, 10)
	got := b.Advance(time.Hour)

	if len(got) != 1 {
		t.Fatalf("expected exactly the bootstrap placement near the viewer, got %d", len(got))
	}
	d := core.Distance(got[0].Position, core.Vec3{})
	if d <= 0.5 || d > 1.5 {
		t.Errorf("bootstrap record at viewer distance %f, expected (0.5, 1.5]", d)
	}
	if b.Attempts() != 10 {
		t.Errorf("failed attempts should consume the budget, used %d of 10", b.Attempts())
	}

	// A second near anchor can no longer place anything.
	b2 := p.PlanNextBatch(core.Anchor{ID: "near2", Position: core.V3(0, 0, 1.2)}, 5)
	if got := b2.Advance(time.Hour); len(got) != 0 {
		t.Errorf("placements within 1.5 of the viewer after the first: %d", len(got))
	}
}

func TestTooCloseFirstPlacementRejected(t *testing.T) {
	p := newTestPlanner(3, open)
	b := p.PlanNextBatch(core.Anchor{ID: "feet", Position: core.V3(0.2, 0, 0.2)}, 5)

	if got := b.Advance(time.Hour); len(got) != 0 {
		t.Errorf("nothing may be placed within 0.5 of the viewer, got %d", len(got))
	}
}

func TestSeparationInvariant(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		p := newTestPlanner(seed, open)
		s := NewSpawner(p, rand.New(rand.NewSource(seed)), 10, 1, 3)

		var anchors []core.Anchor
		for i := 0; i < 8; i++ {
			anchors = append(anchors, core.Anchor{
				ID:       string(rune('a' + i)),
				Position: core.V3(2+0.1*float64(i%3), 0, 0.1*float64(i/3)),
			})
		}
		s.Observe(anchors)
		for range 50 {
			s.Advance(500 * time.Millisecond)
		}

		records := p.Store().Records()
		assertSeparated(t, records, 0.15)

		seen := map[round.Label]bool{}
		for _, r := range records {
			if seen[r.Label] {
				t.Errorf("seed %d: label %q placed twice", seed, r.Label)
			}
			seen[r.Label] = true
			if round.DefaultAlphabet[r.Asset] != r.Label {
				t.Errorf("seed %d: asset %d does not match label %q", seed, r.Asset, r.Label)
			}
		}
		if len(records)+p.Store().SpawnRemaining() != len(round.DefaultAlphabet) {
			t.Errorf("seed %d: placed %d + remaining %d != %d", seed, len(records), p.Store().SpawnRemaining(), len(round.DefaultAlphabet))
		}
	}
}

func TestSpawnPoolExhaustionEndsBatch(t *testing.T) {
	store := NewStore([]round.Label{"1", "2"}, DefaultRules())
	p := NewPlanner(store, open, fixedViewer{}, rand.New(rand.NewSource(5)), nil)

	far := []core.Anchor{
		{ID: "a", Position: core.V3(3, 0, 0)},
		{ID: "b", Position: core.V3(0, 0, 3)},
		{ID: "c", Position: core.V3(-3, 0, 0)},
	}
	var placed []Record
	for _, a := range far {
		placed = append(placed, p.PlanNextBatch(a, 3).Advance(time.Hour)...)
	}

	if len(placed) != 2 {
		t.Fatalf("expected both labels placed, got %d", len(placed))
	}
	b := p.PlanNextBatch(core.Anchor{ID: "d", Position: core.V3(0, 0, -3)}, 3)
	if got := b.Advance(time.Hour); len(got) != 0 || !b.Done() {
		t.Error("batch on an empty spawn pool should end silently")
	}
	if b.Attempts() != 0 {
		t.Errorf("no attempt should be counted on an empty pool, got %d", b.Attempts())
	}
}

func TestGateClosedPausesBatch(t *testing.T) {
	active := false
	p := newTestPlanner(6, gateFunc(func() bool { return active }))
	b := p.PlanNextBatch(core.Anchor{ID: "a", Position: core.V3(3, 0, 0)}, 1)

	if got := b.Advance(time.Hour); len(got) != 0 {
		t.Fatal("closed gate must block placement")
	}
	if b.Done() {
		t.Fatal("closed gate should pause, not drop, the batch")
	}

	active = true
	if got := b.Advance(2 * time.Second); len(got) != 1 {
		t.Errorf("expected placement once the gate opens, got %d", len(got))
	}
}

func TestZeroBudgetBatch(t *testing.T) {
	p := newTestPlanner(7, open)
	b := p.PlanNextBatch(core.Anchor{ID: "a", Position: core.V3(3, 0, 0)}, 0)
	if !b.Done() || len(b.Advance(time.Hour)) != 0 {
		t.Error("zero budget batch should be done immediately")
	}
}

func TestCollectAndFind(t *testing.T) {
	p := newTestPlanner(8, open)
	got := p.PlanNextBatch(core.Anchor{ID: "a", Position: core.V3(3, 0, 0)}, 1).Advance(time.Hour)
	if len(got) != 1 {
		t.Fatal("expected one placement")
	}
	label := got[0].Label

	if !p.Store().Collect(label) {
		t.Error("first Collect should succeed")
	}
	if p.Store().Collect(label) {
		t.Error("second Collect should report already collected")
	}
	rec, ok := p.Store().Find(label)
	if !ok || !rec.Collected {
		t.Error("Find should return the collected record")
	}
	if _, ok := p.Store().Find("missing"); ok {
		t.Error("Find of an unplaced label should fail")
	}

	p.Store().Reset()
	if p.Store().Len() != 0 || p.Store().SpawnRemaining() != len(round.DefaultAlphabet) {
		t.Error("Reset should clear records and refill the spawn pool")
	}
}

func TestConcurrentBatchesShareStore(t *testing.T) {
	store := NewStore(round.DefaultAlphabet, DefaultRules())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := NewPlanner(store, open, fixedViewer{}, rand.New(rand.NewSource(int64(i))), nil)
			a := core.Anchor{ID: "shared", Position: core.V3(2.5, 0, 0)}
			for range 5 {
				p.PlanNextBatch(a, 4).Advance(time.Hour)
			}
		}(i)
	}
	wg.Wait()

	assertSeparated(t, store.Records(), 0.15)
}

func TestPlannerDeterminism(t *testing.T) {
	run := func() []Record {
		p := newTestPlanner(42, open)
		p.SetClock(func() time.Time { return time.Unix(0, 0) })
		s := NewSpawner(p, rand.New(rand.NewSource(42)), 10, 1, 3)
		s.Observe([]core.Anchor{
			{ID: "a", Position: core.V3(2, 0, 0)},
			{ID: "b", Position: core.V3(0, 0, 2)},
		})
		for range 20 {
			s.Advance(time.Second)
		}
		return p.Store().Records()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ: %d vs %d records", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("record %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
