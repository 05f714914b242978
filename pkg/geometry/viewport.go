package geometry

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport is the host map's view state for one frame.
type Viewport struct {
	Size       r2.Vec  // visible size in CSS pixels
	PixelRatio float64 // device pixels per CSS pixel
	Resolution float64 // map units per CSS pixel
	Rotation   float64 // radians, counter-clockwise
	Center     r2.Vec  // view centre in map units
}

// PixelFromCoordinate projects a map coordinate to a CSS pixel. The pixel
// origin is top-left with Y growing downwards; the view rotation is applied.
func (v Viewport) PixelFromCoordinate(c r2.Vec) r2.Vec {
	d := RotateAboutCenter(r2.Sub(c, v.Center), -v.Rotation, r2.Vec{})
	px := r2.Vec{X: d.X / v.Resolution, Y: -d.Y / v.Resolution}
	return r2.Add(px, r2.Scale(0.5, v.Size))
}

// CoordinateFromPixel is the inverse of PixelFromCoordinate.
func (v Viewport) CoordinateFromPixel(p r2.Vec) r2.Vec {
	d := r2.Sub(p, r2.Scale(0.5, v.Size))
	m := r2.Vec{X: d.X * v.Resolution, Y: -d.Y * v.Resolution}
	return r2.Add(RotateAboutCenter(m, v.Rotation, r2.Vec{}), v.Center)
}

// CenterPixel returns the pixel of the view centre.
func (v Viewport) CenterPixel() r2.Vec {
	return v.PixelFromCoordinate(v.Center)
}

// ExtentForSize returns the map extent covered by a view rectangle of size
// CSS pixels centred on the view centre. For rotated views this is the
// bounding box of the rotated rectangle.
func (v Viewport) ExtentForSize(size r2.Vec) Extent {
	half := r2.Scale(0.5*v.Resolution, size)
	corners := []r2.Vec{
		{X: -half.X, Y: -half.Y},
		{X: half.X, Y: -half.Y},
		{X: half.X, Y: half.Y},
		{X: -half.X, Y: half.Y},
	}
	for i, c := range corners {
		corners[i] = r2.Add(RotateAboutCenter(c, v.Rotation, r2.Vec{}), v.Center)
	}
	return ExtentOf(corners...)
}

// Extent returns the map extent of the visible viewport.
func (v Viewport) Extent() Extent {
	return v.ExtentForSize(v.Size)
}
