// Package tabletop registers a seated scene: the viewer stays at a table
// while nearby furniture surfaces are detected one after another.
package tabletop

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/registry"
	"github.com/vovakirdan/numhunt/internal/scenes"
)

const (
	ID          = "tabletop"
	viewerY     = 1.2
	tableY      = 0.7
	surfaces    = 9
	minDistance = 1.8
	maxDistance = 3.0
)

// heights of the surfaces found around the table: floor, shelf, counter.
var heights = []float64{0, 0.45, 0.9}

func init() {
	registry.Register(ID, func() registry.Scene { return New() })
}

// New creates the tabletop scene.
func New() *scenes.Scripted {
	return scenes.NewScripted(ID, "Tabletop", "Seated at a table; surfaces appear in front of you", layout)
}

func layout(rng *rand.Rand) ([]scenes.Spot, []scenes.Waypoint) {
	// The table top itself is found first, within arm's reach.
	spots := []scenes.Spot{{
		At:     500 * time.Millisecond,
		Anchor: core.Anchor{ID: "table", Position: core.V3(scenes.Jitter(rng, 0.1), tableY, 0.6)},
	}}

	at := 500 * time.Millisecond
	for i := range surfaces {
		at += 1500*time.Millisecond + time.Duration(rng.Int63n(int64(1500*time.Millisecond)))
		angle := (rng.Float64() - 0.5) * math.Pi * 0.8
		dist := minDistance + rng.Float64()*(maxDistance-minDistance)
		spots = append(spots, scenes.Spot{
			At: at,
			Anchor: core.Anchor{
				ID:       fmt.Sprintf("surface-%d", i+1),
				Position: core.V3(math.Sin(angle)*dist, heights[rng.Intn(len(heights))], math.Cos(angle)*dist),
			},
		})
	}

	path := []scenes.Waypoint{{At: 0, Position: core.V3(0, viewerY, 0)}}
	return spots, path
}
