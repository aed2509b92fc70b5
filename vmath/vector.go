package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates, t is not clamped
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates both components toward b
func LerpVec(a, b r2.Vec, t float64) r2.Vec {
	return r2.Vec{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// ClampMagnitude limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func ClampMagnitude(v r2.Vec, maxMag float64) r2.Vec {
	magSq := r2.Norm2(v)
	if magSq <= maxMag*maxMag {
		return v
	}
	return r2.Scale(maxMag/math.Sqrt(magSq), v)
}

// WithMagnitude rescales v to length mag keeping direction
// A zero vector is treated as a tiny +X vector rather than producing NaN
func WithMagnitude(v r2.Vec, mag float64) r2.Vec {
	cur := r2.Norm(v)
	if cur == 0 {
		return r2.Vec{X: mag}
	}
	return r2.Scale(mag/cur, v)
}

// Wrap maps v into [0, size] toroidally, an exit past one edge re-enters at the opposite edge
func Wrap(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}

// Polar builds a vector from angle (radians) and length
func Polar(angle, length float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{X: c * length, Y: s * length}
}
