package core

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected float64
	}{
		{"same point", V3(1, 2, 3), V3(1, 2, 3), 0},
		{"unit x", V3(0, 0, 0), V3(1, 0, 0), 1},
		{"3-4-5 on floor", V3(0, 0, 0), V3(3, 0, 4), 5},
		{"negative coords", V3(-1, -1, -1), V3(1, 1, 1), math.Sqrt(12)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Distance(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Distance() = %f, expected %f", got, tc.expected)
			}
			// Also test symmetry
			if rev := Distance(tc.b, tc.a); math.Abs(rev-got) > 1e-12 {
				t.Errorf("Distance() not symmetric: %f vs %f", got, rev)
			}
		})
	}
}

func TestVecAddSub(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(0.5, -1, 2)

	if got := a.Add(b); got != V3(1.5, 1, 5) {
		t.Errorf("Add() = %+v", got)
	}
	if got := a.Add(b).Sub(b); got != a {
		t.Errorf("Add then Sub should round-trip, got %+v", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
}

func TestLerp(t *testing.T) {
	a, b := V3(0, 0, 0), V3(2, 4, -2)
	if got := Lerp(a, b, 0.5); got != V3(1, 2, -1) {
		t.Errorf("Lerp(0.5) = %+v", got)
	}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(0) = %+v", got)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %+v", got)
	}
}
