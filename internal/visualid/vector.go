package visualid

import (
	"errors"
	"fmt"
	"math"
)

// normTolerance bounds how far a unit vector's norm may drift from 1.0 before
// the index refuses it. Embeddings arrive as float32, so allow a little slack.
const normTolerance = 1e-3

// Vector is a dense embedding, L2-normalized at creation time.
type Vector []float32

// Dot returns the dot product of two vectors. For normalized vectors this is
// the cosine similarity.
func (v Vector) Dot(other Vector) float64 {
	if len(v) != len(other) {
		return 0
	}
	var dot float64
	for i := range v {
		dot += float64(v[i]) * float64(other[i])
	}
	return dot
}

// Norm returns the L2 norm.
func (v Vector) Norm() float64 {
	var sum float64
	for _, value := range v {
		sum += float64(value) * float64(value)
	}
	return math.Sqrt(sum)
}

// IsNormalized reports whether the vector's norm is 1.0 within tolerance.
func (v Vector) IsNormalized() bool {
	return math.Abs(v.Norm()-1) <= normTolerance
}

// Normalize scales values to unit length. Zero or empty input is an error:
// a zero vector carries no direction to compare against.
func Normalize(values []float32) (Vector, error) {
	if len(values) == 0 {
		return nil, errors.New("normalize: empty vector")
	}
	v := Vector(values)
	norm := v.Norm()
	if norm == 0 {
		return nil, errors.New("normalize: zero vector")
	}
	out := make(Vector, len(values))
	for i, value := range values {
		out[i] = float32(float64(value) / norm)
	}
	return out, nil
}

func validateVector(v Vector, dims int) error {
	if len(v) != dims {
		return fmt.Errorf("vector has %d dimensions, expected %d", len(v), dims)
	}
	if !v.IsNormalized() {
		return fmt.Errorf("vector norm %.6f is not unit length", v.Norm())
	}
	return nil
}
