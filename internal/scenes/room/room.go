// Package room registers a walking scene: the viewer circles the middle of a
// room while wall-side surfaces are detected.
package room

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
	ID        = "room"
	viewerY   = 1.5
	walkR     = 1.0
	wallR     = 3.5
	surfaces  = 12
	lap       = 40 * time.Second
	waypoints = 16
)

func init() {
	registry.Register(ID, func() registry.Scene { return New() })
}

// New creates the room scene.
func New() *scenes.Scripted {
	return scenes.NewScripted(ID, "Living Room", "Walk around a room; surfaces appear along the walls", layout)
}

func layout(rng *rand.Rand) ([]scenes.Spot, []scenes.Waypoint) {
	var spots []scenes.Spot
	for i := range surfaces {
		angle := 2*math.Pi*float64(i)/surfaces + scenes.Jitter(rng, 0.2)
		r := wallR + scenes.Jitter(rng, 0.3)
		at := time.Second + time.Duration(i)*2*time.Second + time.Duration(rng.Int63n(int64(time.Second)))
		spots = append(spots, scenes.Spot{
			At: at,
			Anchor: core.Anchor{
				ID:       fmt.Sprintf("wall-%02d", i+1),
				Position: core.V3(math.Cos(angle)*r, rng.Float64()*0.8, math.Sin(angle)*r),
			},
		})
	}

	// Several laps so the walk outlasts a full game.
	var path []scenes.Waypoint
	for i := 0; i <= waypoints*10; i++ {
		angle := 2 * math.Pi * float64(i%waypoints) / waypoints
		path = append(path, scenes.Waypoint{
			At:       time.Duration(i) * lap / waypoints,
			Position: core.V3(math.Cos(angle)*walkR, viewerY, math.Sin(angle)*walkR),
		})
	}
	return spots, path
}
