// Package scenes provides scripted AR environments for the simulated host.
// Each subpackage registers one scene with the registry in init().
package scenes

import (
	"math/rand"
	"sort"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
)

// Spot is an anchor and the time it is discovered.
type Spot struct {
	At     time.Duration
	Anchor core.Anchor
}

// Waypoint is a point on the viewer's path.
type Waypoint struct {
	At       time.Duration
	Position core.Vec3
}

// Layout generates the spots and viewer path of a scene from a seeded rng.
type Layout func(rng *rand.Rand) ([]Spot, []Waypoint)

// Scripted is a scene driven by a precomputed layout.
type Scripted struct {
	id          string
	title       string
	description string
	layout      Layout

	spots []Spot
	path  []Waypoint
}

// NewScripted creates a scene and lays it out with seed 0.
func NewScripted(id, title, description string, layout Layout) *Scripted {
	s := &Scripted{id: id, title: title, description: description, layout: layout}
	s.Reset(0)
	return s
}

func (s *Scripted) ID() string { return s.id }
func (s *Scripted) Title() string { return s.title }
func (s *Scripted) Description() string { return s.description }

// Reset regenerates the layout.
func (s *Scripted) Reset(seed int64) {
	s.spots, s.path = s.layout(rand.New(rand.NewSource(seed)))
	sort.SliceStable(s.spots, func(i, j int) bool { return s.spots[i].At < s.spots[j].At })
	sort.SliceStable(s.path, func(i, j int) bool { return s.path[i].At < s.path[j].At })
}

// Discover returns the anchors whose discovery time is at or before elapsed.
func (s *Scripted) Discover(elapsed time.Duration) []core.Anchor {
	n := sort.Search(len(s.spots), func(i int) bool { return s.spots[i].At > elapsed })
	out := make([]core.Anchor, n)
	for i := range n {
		out[i] = s.spots[i].Anchor
	}
	return out
}

// Total returns the number of anchors the scene will ever reveal.
func (s *Scripted) Total() int {
	return len(s.spots)
}

// Viewer interpolates the viewer path linearly. Before the first waypoint and
// after the last the viewer stands still.
func (s *Scripted) Viewer(elapsed time.Duration) core.Vec3 {
	if len(s.path) == 0 {
		return core.Vec3{}
	}
	if elapsed <= s.path[0].At {
		return s.path[0].Position
	}
	for i := 1; i < len(s.path); i++ {
		a, b := s.path[i-1], s.path[i]
		if elapsed <= b.At {
			span := b.At - a.At
			if span <= 0 {
				return b.Position
			}
			return core.Lerp(a.Position, b.Position, float64(elapsed-a.At)/float64(span))
		}
	}
	return s.path[len(s.path)-1].Position
}

// Jitter returns a uniform value in [-amount, amount].
func Jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}
