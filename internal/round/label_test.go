package round

import (
	"math/rand"
	"testing"
)

func TestPoolDrawExhausts(t *testing.T) {
	p := NewPool(DefaultAlphabet)
	rng := rand.New(rand.NewSource(1))

	seen := map[Label]bool{}
	for i := 0; i < len(DefaultAlphabet); i++ {
		l, ok := p.Draw(rng)
		if !ok {
			t.Fatalf("Draw() failed after %d draws", i)
		}
		if seen[l] {
			t.Fatalf("label %q drawn twice", l)
		}
		seen[l] = true
	}

	if !p.Empty() {
		t.Error("pool should be empty")
	}
	if _, ok := p.Draw(rng); ok {
		t.Error("Draw() from an empty pool should fail")
	}
}

func TestPoolIsCopy(t *testing.T) {
	src := []Label{"a", "b"}
	p := NewPool(src)
	p.Remove("a")

	if src[0] != "a" {
		t.Error("NewPool must not alias the caller's slice")
	}
	if p.Remove("a") {
		t.Error("removing a missing label should report false")
	}
	if !p.Contains("b") || p.Len() != 1 {
		t.Errorf("unexpected pool contents: %v", p.Labels())
	}
}

func TestIndexOf(t *testing.T) {
	if IndexOf(DefaultAlphabet, "1") != 0 || IndexOf(DefaultAlphabet, "10") != 9 {
		t.Error("IndexOf should follow alphabet order")
	}
	if IndexOf(DefaultAlphabet, "11") != -1 {
		t.Error("unknown label should return -1")
	}
}
