// Package placement decides where numbered objects may be placed around
// discovered anchors. It owns the live placement records and the spawn and
// verification pools; the host only renders what it emits.
package placement

import (
	"slices"
	"sync"
	"time"

	"github.com/vovakirdan/numhunt/internal/core"
	"github.com/vovakirdan/numhunt/internal/round"
)

// Rules are the distance constraints and pacing of placement.
type Rules struct {
	MinSeparation      float64       // minimum distance between two live records
	ViewerClearance    float64       // minimum viewer distance once records exist
	BootstrapClearance float64       // minimum viewer distance for the first record
	MaxOffset          float64       // max random offset from the anchor on X and Z
	SpawnDelay         time.Duration // wait before a batch starts and between failed attempts
}

// DefaultRules returns the standard placement constraints.
func DefaultRules() Rules {
	return Rules{
		MinSeparation:      0.15,
		ViewerClearance:    1.5,
		BootstrapClearance: 0.5,
		MaxOffset:          0.1,
		SpawnDelay:         1250 * time.Millisecond,
	}
}

// Record is one placed object.
type Record struct {
	Label     round.Label
	Asset     int // index into the asset table, resolved through the verification pool
	Position  core.Vec3
	CreatedAt time.Time
	Bootstrap bool // placed into an empty scene under the relaxed viewer clearance
	Collected bool // already matched by the player
}

// Store is the single shared store of live records and label pools.
// Every batch of a round reads and writes the same Store, and the
// check-then-insert sequence runs under one lock so two batches can never
// place within MinSeparation of each other.
type Store struct {
	mu       sync.Mutex
	rules    Rules
	alphabet []round.Label
	records  []Record
	spawn    *round.Pool
	verify   []round.Label // parallel to the asset table; never mutated
}

// NewStore creates a store whose spawn and verification pools hold alphabet.
func NewStore(alphabet []round.Label, rules Rules) *Store {
	s := &Store{
		rules:    rules,
		alphabet: slices.Clone(alphabet),
	}
	s.Reset()
	return s
}

// Reset clears the records and refills the spawn pool, as a scene reload does.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.spawn = round.NewPool(s.alphabet)
	s.verify = slices.Clone(s.alphabet)
}

// Rules returns the store's placement rules.
func (s *Store) Rules() Rules {
	return s.rules
}

// TryPlace attempts to place one object at pos. pick chooses an index into
// the spawn pool given its size. The candidate must be more than
// MinSeparation from every live record and more than the viewer clearance
// from viewer; the clearance is relaxed to BootstrapClearance while the scene
// is empty. On success the label leaves the spawn pool.
func (s *Store) TryPlace(pos, viewer core.Vec3, pick func(n int) int, now time.Time) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spawn.Empty() {
		return Record{}, false
	}
	label := s.spawn.At(pick(s.spawn.Len()))

	bootstrap := len(s.records) == 0
	for _, rec := range s.records {
		if core.Distance(pos, rec.Position) <= s.rules.MinSeparation {
			return Record{}, false
		}
	}

	clearance := s.rules.ViewerClearance
	if bootstrap {
		clearance = s.rules.BootstrapClearance
	}
	if core.Distance(pos, viewer) <= clearance {
		return Record{}, false
	}

	asset := slices.Index(s.verify, label)
	if asset < 0 {
		return Record{}, false
	}

	rec := Record{
		Label:     label,
		Asset:     asset,
		Position:  pos,
		CreatedAt: now,
		Bootstrap: bootstrap,
	}
	s.records = append(s.records, rec)
	s.spawn.Remove(label)
	return rec, true
}

// Records returns a snapshot of the live records in placement order.
func (s *Store) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Len returns the number of live records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SpawnRemaining returns how many labels are still eligible to be placed.
func (s *Store) SpawnRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spawn.Len()
}

// Find returns the live record carrying label.
func (s *Store) Find(label round.Label) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.Label == label {
			return rec, true
		}
	}
	return Record{}, false
}

// Collect marks the record carrying label as matched.
// Returns false if no such record exists or it was already collected.
func (s *Store) Collect(label round.Label) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].Label == label {
			if s.records[i].Collected {
				return false
			}
			s.records[i].Collected = true
			return true
		}
	}
	return false
}
