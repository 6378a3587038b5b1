package visualid

import (
	"math"
	"testing"
)

func TestNormalizeProducesUnitVector(t *testing.T) {
	v, err := Normalize([]float32{3, 4})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if !v.IsNormalized() {
		t.Fatalf("expected unit vector, norm = %f", v.Norm())
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Fatalf("unexpected components: %v", v)
	}
}

func TestNormalizeRejectsDegenerateInput(t *testing.T) {
	if _, err := Normalize(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize([]float32{0, 0, 0}); err == nil {
		t.Fatal("expected error for zero vector")
	}
}

func TestDotIsCosineForUnitVectors(t *testing.T) {
	a := Vector{1, 0}
	b := Vector{0, 1}
	if got := a.Dot(b); got != 0 {
		t.Fatalf("orthogonal vectors: got %f, want 0", got)
	}
	if got := a.Dot(a); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical vectors: got %f, want 1", got)
	}

	c, err := Normalize([]float32{1, 1})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got := a.Dot(c); math.Abs(got-math.Sqrt2/2) > 1e-6 {
		t.Fatalf("45 degree vectors: got %f, want %f", got, math.Sqrt2/2)
	}
}

func TestDotMismatchedLengths(t *testing.T) {
	a := Vector{1, 0}
	b := Vector{1, 0, 0}
	if got := a.Dot(b); got != 0 {
		t.Fatalf("mismatched lengths: got %f, want 0", got)
	}
}
