package render

import (
	"image"
	"image/draw"
	"math"

	"pointlayer/internal/style"

	"gonum.org/v1/gonum/spatial/r2"
	"golang.org/x/image/vector"
)

// Arc flattening limits.
const (
	minCircleSegments = 16
	maxCircleSegments = 256
	arcStepDegrees    = 5.0
)

// DrawMarker paints s centred at the canvas pixel at. Fill is drawn first,
// then stroke. Markers crossing the canvas edge are clipped.
func DrawMarker(dst *image.RGBA, at r2.Vec, s *style.Style) {
	paths := shapePaths(s)
	if len(paths) == 0 {
		return
	}

	reach := s.Radius() + s.StrokeWidth() + 1
	rect := image.Rect(
		int(math.Floor(at.X-reach)), int(math.Floor(at.Y-reach)),
		int(math.Ceil(at.X+reach)), int(math.Ceil(at.Y+reach)),
	)
	if !rect.Overlaps(dst.Bounds()) {
		return
	}
	origin := r2.Vec{X: float64(rect.Min.X), Y: float64(rect.Min.Y)}
	local := r2.Sub(at, origin)

	if f := s.Fill(); f != nil && f.Color.A > 0 {
		z := vector.NewRasterizer(rect.Dx(), rect.Dy())
		for _, p := range paths {
			addPolygon(z, p.translate(local), true)
		}
		rasterize(dst, rect, z, image.NewUniform(f.Color))
	}

	if st := s.Stroke(); st != nil && st.Width > 0 && st.Color.A > 0 {
		z := vector.NewRasterizer(rect.Dx(), rect.Dy())
		hw := st.Width / 2
		if s.Kind() == style.KindCircle {
			addRing(z, local, s.Radius()+hw, math.Max(s.Radius()-hw, 0))
		} else {
			for _, p := range paths {
				addOutline(z, p.translate(local), hw)
			}
		}
		rasterize(dst, rect, z, image.NewUniform(st.Color))
	}
}

// rasterize composites z over dst at rect, going through a scratch image
// when rect is not fully inside dst since the rasterizer does not clip.
func rasterize(dst *image.RGBA, rect image.Rectangle, z *vector.Rasterizer, src image.Image) {
	if rect.In(dst.Bounds()) {
		z.Draw(dst, rect, src, image.Point{})
		return
	}
	tmp := image.NewRGBA(rect)
	z.Draw(tmp, rect, src, image.Point{})
	clip := rect.Intersect(dst.Bounds())
	draw.Draw(dst, clip, tmp, clip.Min, draw.Over)
}
