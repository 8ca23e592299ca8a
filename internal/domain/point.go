package domain

import "math"

// Immutable planar coordinate.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Return the point as [x, y] for JSON rendering.
func (p Point) CoordsToList() []float64 { return []float64{p.X, p.Y} }
