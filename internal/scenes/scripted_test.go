package scenes

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
)

func lineLayout(rng *rand.Rand) ([]Spot, []Waypoint) {
	var spots []Spot
	for i := 3; i >= 0; i-- {
		spots = append(spots, Spot{
			At:     time.Duration(i) * time.Second,
			Anchor: core.Anchor{ID: fmt.Sprintf("a%d", i), Position: core.V3(float64(i)+Jitter(rng, 0.1), 0, 2)},
		})
	}
	path := []Waypoint{
		{At: time.Second, Position: core.V3(0, 1, 0)},
		{At: 3 * time.Second, Position: core.V3(2, 1, 0)},
	}
	return spots, path
}

func TestDiscoverIsAppendOnly(t *testing.T) {
	s := NewScripted("line", "Line", "test", lineLayout)
	s.Reset(1)

	if got := s.Discover(-time.Second); len(got) != 0 {
		t.Errorf("Discover before start = %v", got)
	}
	prev := s.Discover(0)
	if len(prev) != 1 || prev[0].ID != "a0" {
		t.Fatalf("Discover(0) = %+v", prev)
	}
	for _, at := range []time.Duration{time.Second, 1500 * time.Millisecond, 3 * time.Second, time.Hour} {
		cur := s.Discover(at)
		if len(cur) < len(prev) {
			t.Fatalf("Discover(%v) shrank from %d to %d", at, len(prev), len(cur))
		}
		for i := range prev {
			if cur[i] != prev[i] {
				t.Fatalf("Discover(%v) reordered anchors", at)
			}
		}
		prev = cur
	}
	if len(prev) != s.Total() {
		t.Errorf("all %d anchors should eventually be discovered, got %d", s.Total(), len(prev))
	}
}

func TestViewerInterpolates(t *testing.T) {
	s := NewScripted("line", "Line", "test", lineLayout)

	tests := []struct {
		at   time.Duration
		want core.Vec3
	}{
		{0, core.V3(0, 1, 0)},
		{2 * time.Second, core.V3(1, 1, 0)},
		{time.Minute, core.V3(2, 1, 0)},
	}
	for _, tc := range tests {
		if got := s.Viewer(tc.at); got != tc.want {
			t.Errorf("Viewer(%v) = %+v, expected %+v", tc.at, got, tc.want)
		}
	}
}

func TestResetIsDeterministic(t *testing.T) {
	a := NewScripted("line", "Line", "test", lineLayout)
	b := NewScripted("line", "Line", "test", lineLayout)
	a.Reset(9)
	b.Reset(9)

	x, y := a.Discover(time.Hour), b.Discover(time.Hour)
	for i := range x {
		if x[i] != y[i] {
			t.Fatalf("anchor %d differs: %+v vs %+v", i, x[i], y[i])
		}
	}
}
