package swell

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestRectContains(t *testing.T) {
	r := Rect{X: -5, Z: -10, Width: 10, Depth: 20}
	tests := []struct {
		x, z float64
		want bool
	}{
		{0, 0, true},
		{-5, -10, true},
		{5, 10, true},
		{5.01, 0, false},
		{0, -10.01, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.z); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X: 0, Z: 0, Width: 10, Depth: 10}
	if !a.Intersects(Rect{X: 5, Z: 5, Width: 10, Depth: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if !a.Intersects(Rect{X: 10, Z: 0, Width: 5, Depth: 5}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if a.Intersects(Rect{X: 11, Z: 0, Width: 5, Depth: 5}) {
		t.Error("separated rects should not intersect")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		a, m, want float64
	}{
		{0, 10, 0},
		{4, 10, 4},
		{5, 10, -5},
		{6, 10, -4},
		{-6, 10, 4},
		{25, 10, -5},
		{-23, 10, -3},
		{3, 0, 3},
	}
	for _, tt := range tests {
		if got := wrap(tt.a, tt.m); !approxEqual(got, tt.want, 1e-12) {
			t.Errorf("wrap(%v, %v) = %v, want %v", tt.a, tt.m, got, tt.want)
		}
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-0.5) != 0 || clamp01(1.5) != 1 || clamp01(0.25) != 0.25 {
		t.Error("clamp01 out of range")
	}
	if !math.IsNaN(clamp01(math.NaN())) {
		t.Error("clamp01 should pass NaN through")
	}
}

func TestRangeRandom(t *testing.T) {
	rng := NewRand(7)
	r := Range{Min: 2, Max: 5}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < 2 || v > 5 {
			t.Fatalf("Random() = %v, outside [2, 5]", v)
		}
	}
	if got := (Range{Min: 3, Max: 3}).Random(rng); got != 3 {
		t.Errorf("degenerate range = %v, want 3", got)
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different sequences")
		}
	}
	if NewRand(1).Uint64() == NewRand(2).Uint64() {
		t.Error("different seeds produced the same first value")
	}
}

func TestHeading(t *testing.T) {
	d := Heading(math.Pi / 2)
	if !approxEqual(d.X, 0, 1e-12) || !approxEqual(d.Z, 1, 1e-12) {
		t.Errorf("Heading(π/2) = %+v, want (0, 1)", d)
	}
	if !approxEqual(Heading(1.234).Len(), 1, 1e-12) {
		t.Error("Heading should return a unit vector")
	}
}

func TestVec2Ops(t *testing.T) {
	a := Vec2{X: 1, Z: 2}
	b := Vec2{X: 3, Z: -1}
	if got := a.Add(b); got != (Vec2{X: 4, Z: 1}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: -2, Z: 3}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 2, Z: 4}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Dot(b); got != 1 {
		t.Errorf("Dot = %v, want 1", got)
	}
}
