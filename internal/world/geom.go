package world

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a world-space position. Y is up; the encounter plays out on the
// X/Z plane but every distance is full 3D.
type Point = r3.Vec

// Pt builds a Point.
func Pt(x, y, z float64) Point { return Point{X: x, Y: y, Z: z} }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 { return r3.Norm(r3.Sub(a, b)) }

// Direction returns the unit vector from a toward b, or the zero vector when
// the points coincide.
func Direction(from, to Point) Point {
	d := r3.Sub(to, from)
	n := r3.Norm(d)
	if n < 1e-9 {
		return Point{}
	}
	return r3.Scale(1/n, d)
}

// Offset returns p moved by dist along dir (dir need not be normalized).
func Offset(p, dir Point, dist float64) Point {
	n := r3.Norm(dir)
	if n < 1e-9 {
		return p
	}
	return r3.Add(p, r3.Scale(dist/n, dir))
}

// Clamp01 clamps v into [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates from a to b by t, with t clamped to [0,1].
func Lerp(a, b, t float64) float64 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// Box is an axis-aligned volume.
type Box struct {
	Min, Max Point
}

// Contains reports whether p lies inside the box, bounds inclusive.
func (b Box) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b Box) Center() Point { return r3.Scale(0.5, r3.Add(b.Min, b.Max)) }

// Canon returns the box with Min and Max swapped per axis where needed.
func (b Box) Canon() Box {
	return Box{
		Min: Pt(math.Min(b.Min.X, b.Max.X), math.Min(b.Min.Y, b.Max.Y), math.Min(b.Min.Z, b.Max.Z)),
		Max: Pt(math.Max(b.Min.X, b.Max.X), math.Max(b.Min.Y, b.Max.Y), math.Max(b.Min.Z, b.Max.Z)),
	}
}
