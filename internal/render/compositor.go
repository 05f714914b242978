// Package render paints point graphics onto off-screen raster canvases.
package render

import (
	"image"
	"math"

	"pointlayer/internal/graphic"
	"pointlayer/internal/host"
	"pointlayer/internal/style"
	"pointlayer/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r2"
)

// Source supplies the graphics to paint. *graphic.Store implements it.
type Source interface {
	Query(region *geometry.Extent) []*graphic.Graphic
}

// Compositor draws a graphic source onto a fresh canvas per frame.
type Compositor struct {
	source    Source
	highlight *style.Style
}

// NewCompositor creates a compositor over source. highlight is the custom
// highlight style for the selected graphic; nil derives one per shape.
func NewCompositor(source Source, highlight *style.Style) *Compositor {
	return &Compositor{source: source, highlight: highlight}
}

// Render paints every graphic inside fs.Extent in source order, so later
// graphics cover earlier ones. The canvas is fs.Size scaled by the pixel
// ratio. Identical inputs produce identical pixels.
func (c *Compositor) Render(fs host.FrameState, selected *graphic.Graphic) *image.RGBA {
	ratio := fs.PixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	canvasSize := r2.Scale(ratio, fs.Size)
	w := int(math.Ceil(canvasSize.X))
	h := int(math.Ceil(canvasSize.Y))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	offset := geometry.CanvasOffset(canvasSize, fs.Viewport.Size)
	extent := fs.Extent
	for _, g := range c.source.Query(&extent) {
		s := style.Resolve(g.Style(), g == selected, c.highlight)
		if s == nil {
			continue
		}
		at := geometry.ToCanvas(g.Coordinate(), fs.Viewport, ratio, offset)
		DrawMarker(canvas, at, s)
	}
	return canvas
}
