package game

import "math"

// Rect is an axis-aligned collision box, addressed by its center.
type Rect struct {
	X, Y float64 // Center
	W, H float64
}

// Intersects reports whether two boxes overlap.
func (r Rect) Intersects(o Rect) bool {
	return math.Abs(r.X-o.X)*2 < r.W+o.W && math.Abs(r.Y-o.Y)*2 < r.H+o.H
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
