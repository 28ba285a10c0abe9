// Package round implements game progression: the label pools, the explicit
// session context and the round state machine.
package round

import (
	"math/rand"
	"slices"
)

// Label identifies a placed object. It must match the round's goal to count
// as a correct selection.
type Label string

// DefaultAlphabet is the fixed label set "1".."10".
var DefaultAlphabet = []Label{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}

// IndexOf returns the position of l in alphabet, or -1.
// The index doubles as the asset and number-cue index for the label.
func IndexOf(alphabet []Label, l Label) int {
	return slices.Index(alphabet, l)
}

// Pool is an unordered set of unused labels.
// Draw order is decided by the caller's rng, so a seeded rng replays the same
// sequence of draws.
type Pool struct {
	labels []Label
}

// NewPool creates a pool holding a copy of labels.
func NewPool(labels []Label) *Pool {
	return &Pool{labels: slices.Clone(labels)}
}

// Len returns the number of labels left.
func (p *Pool) Len() int {
	return len(p.labels)
}

// Empty reports whether the pool is exhausted.
func (p *Pool) Empty() bool {
	return len(p.labels) == 0
}

// At returns the label at index i without removing it.
func (p *Pool) At(i int) Label {
	return p.labels[i]
}

// Contains reports whether l is still in the pool.
func (p *Pool) Contains(l Label) bool {
	return slices.Contains(p.labels, l)
}

// Remove deletes l from the pool. Returns false if it was not present.
func (p *Pool) Remove(l Label) bool {
	i := slices.Index(p.labels, l)
	if i < 0 {
		return false
	}
	p.labels = slices.Delete(p.labels, i, i+1)
	return true
}

// Draw removes and returns a uniformly chosen label.
// Returns false if the pool is empty.
func (p *Pool) Draw(rng *rand.Rand) (Label, bool) {
	if len(p.labels) == 0 {
		return "", false
	}
	l := p.labels[rng.Intn(len(p.labels))]
	p.Remove(l)
	return l, true
}

// Labels returns a copy of the remaining labels.
func (p *Pool) Labels() []Label {
	return slices.Clone(p.labels)
}
