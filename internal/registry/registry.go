// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
)

// ErrUnknownScene is returned by Create for an unregistered id.
var ErrUnknownScene = errors.New("registry: unknown scene")

// Scene is a simulated AR environment: it reveals anchor surfaces over time
// and reports where the viewer stands.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "tabletop").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Description returns a one-line summary for menus.
	Description() string

	// Reset lays out the scene for a new game.
	// The same seed always produces the same anchors and viewer path.
	Reset(seed int64)

	// Discover returns every anchor found up to elapsed.
	// Later calls return a superset of earlier ones, in the same order.
	Discover(elapsed time.Duration) []core.Anchor

	// Viewer returns the viewer (camera) position at elapsed.
	Viewer(elapsed time.Duration) core.Vec3
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SceneInfo)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	s := f()
	infos[id] = SceneInfo{ID: id, Title: s.Title(), Description: s.Description()}
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}

	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
