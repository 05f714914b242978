// Package geometry provides the coordinate transforms, extents and viewport
// model shared by the layer, the compositor and the host map.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Projector maps a projected map coordinate to a screen pixel.
type Projector interface {
	PixelFromCoordinate(c r2.Vec) r2.Vec
}

// Project returns the pixel for a map coordinate. Rotation and pixel ratio
// are not applied here.
func Project(c r2.Vec, p Projector) r2.Vec {
	return p.PixelFromCoordinate(c)
}

// ScaleAboutCenter scales p relative to center by ratio.
func ScaleAboutCenter(p, center r2.Vec, ratio float64) r2.Vec {
	return r2.Add(r2.Scale(ratio, r2.Sub(p, center)), center)
}

// RotateAboutCenter rotates p counter-clockwise by angle radians about center.
func RotateAboutCenter(p r2.Vec, angle float64, center r2.Vec) r2.Vec {
	if angle == 0 {
		return p
	}
	return r2.NewRotation(angle, center).Rotate(p)
}

// CanvasOffset returns the translation that puts the view centre on the
// centre of an oversized canvas. canvasSize is in device pixels,
// viewportSize in CSS pixels; the projected centre sits at viewportSize/2.
func CanvasOffset(canvasSize, viewportSize r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Sub(canvasSize, viewportSize))
}

// ToCanvas is the per-graphic paint transform: project, scale by the pixel
// ratio about the view centre, undo the view rotation, then apply the
// canvas offset.
func ToCanvas(c r2.Vec, vp Viewport, pixelRatio float64, offset r2.Vec) r2.Vec {
	center := vp.CenterPixel()
	p := Project(c, vp)
	p = ScaleAboutCenter(p, center, pixelRatio)
	p = RotateAboutCenter(p, -vp.Rotation, center)
	return r2.Add(p, offset)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
