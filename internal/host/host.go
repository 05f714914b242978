// Package host defines the boundary between marker layers and the map that
// displays them, and provides Stack, a minimal in-memory map used by the
// viewer, the command line tools and tests.
package host

import (
	"image"

	"pointlayer/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r2"
)

// FrameState is what a map hands a layer for one paint.
type FrameState struct {
	Extent     geometry.Extent // region to draw, map units
	Resolution float64         // map units per CSS pixel
	PixelRatio float64         // device pixels per CSS pixel
	Size       r2.Vec          // requested surface size, CSS pixels
	Viewport   geometry.Viewport
}

// Layer produces a raster surface for a frame. Revision changes whenever
// the layer needs to be repainted.
type Layer interface {
	Surface(fs FrameState) image.Image
	Revision() uint64
}

// Map is the part of the host map a layer talks to.
type Map interface {
	geometry.Projector
	Viewport() geometry.Viewport
	AddLayer(l Layer)
	RemoveLayer(l Layer)
}
