package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Extent is an axis-aligned bounding box in map units.
type Extent r2.Box

// NewExtent returns the extent spanning the two corners, in any order.
func NewExtent(x0, y0, x1, y1 float64) Extent {
	return Extent{
		Min: r2.Vec{X: math.Min(x0, x1), Y: math.Min(y0, y1)},
		Max: r2.Vec{X: math.Max(x0, x1), Y: math.Max(y0, y1)},
	}
}

// PointExtent returns the degenerate extent of a single coordinate.
func PointExtent(c r2.Vec) Extent {
	return Extent{Min: c, Max: c}
}

// ExtentAround returns center ± half on each axis.
func ExtentAround(center, half r2.Vec) Extent {
	return Extent{Min: r2.Sub(center, half), Max: r2.Add(center, half)}
}

// ExtentOf returns the bounding extent of the given coordinates.
func ExtentOf(pts ...r2.Vec) Extent {
	if len(pts) == 0 {
		return Extent{}
	}
	e := PointExtent(pts[0])
	for _, p := range pts[1:] {
		e.Min.X = math.Min(e.Min.X, p.X)
		e.Min.Y = math.Min(e.Min.Y, p.Y)
		e.Max.X = math.Max(e.Max.X, p.X)
		e.Max.Y = math.Max(e.Max.Y, p.Y)
	}
	return e
}

// Width returns the extent size along X.
func (e Extent) Width() float64 { return e.Max.X - e.Min.X }

// Height returns the extent size along Y.
func (e Extent) Height() float64 { return e.Max.Y - e.Min.Y }

// Center returns the extent midpoint.
func (e Extent) Center() r2.Vec {
	return r2.Scale(0.5, r2.Add(e.Min, e.Max))
}

// IsEmpty reports whether the extent has a negative size on either axis.
func (e Extent) IsEmpty() bool {
	return e.Max.X < e.Min.X || e.Max.Y < e.Min.Y
}

// ContainsCoordinate reports whether c lies inside e, boundary included.
func (e Extent) ContainsCoordinate(c r2.Vec) bool {
	return e.Min.X <= c.X && c.X <= e.Max.X && e.Min.Y <= c.Y && c.Y <= e.Max.Y
}

// ContainsExtent reports whether o lies fully inside e, boundary included.
// Partial overlap does not count.
func (e Extent) ContainsExtent(o Extent) bool {
	return e.Min.X <= o.Min.X && o.Max.X <= e.Max.X && e.Min.Y <= o.Min.Y && o.Max.Y <= e.Max.Y
}
