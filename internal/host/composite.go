package host

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/spatial/r2"
)

// Render composites every layer into a viewport-sized image in device
// pixels. The previous frame is returned when nothing changed.
func (s *Stack) Render() *image.RGBA {
	s.mu.Lock()
	if !s.needsRenderLocked() {
		frame := s.frame
		s.mu.Unlock()
		return frame
	}
	fs := s.frameLocked()
	entries := make([]entry, len(s.layers))
	revisions := make([]uint64, len(s.layers))
	for i, e := range s.layers {
		entries[i] = *e
		revisions[i] = e.layer.Revision()
	}
	background := s.background
	s.dirty = false
	s.mu.Unlock()

	// Layers are painted without the lock; they may call back into the map.
	w := int(math.Ceil(fs.Viewport.Size.X * fs.PixelRatio))
	h := int(math.Ceil(fs.Viewport.Size.Y * fs.PixelRatio))
	result := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(result, result.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	for _, e := range entries {
		surface := e.layer.Surface(fs)
		if surface == nil || e.opacity <= 0 {
			continue
		}
		compositeLayer(result, surface, fs.Viewport.Rotation, e.opacity)
	}

	s.mu.Lock()
	s.frame = result
	s.revisions = revisions
	s.mu.Unlock()

	s.log.Trace().Int("layers", len(entries)).Int("width", w).Int("height", h).Msg("frame rendered")
	return result
}

// compositeLayer draws src centred on dst, rotated by rotation radians
// about the centre, blended over dst with the given opacity.
func compositeLayer(dst *image.RGBA, src image.Image, rotation, opacity float64) {
	sb := src.Bounds()
	db := dst.Bounds()
	sc := r2.Vec{X: float64(sb.Min.X+sb.Max.X) / 2, Y: float64(sb.Min.Y+sb.Max.Y) / 2}
	dc := r2.Vec{X: float64(db.Min.X+db.Max.X) / 2, Y: float64(db.Min.Y+db.Max.Y) / 2}

	sin, cos := math.Sincos(rotation)
	s2d := f64.Aff3{
		cos, -sin, dc.X - (cos*sc.X - sin*sc.Y),
		sin, cos, dc.Y - (sin*sc.X + cos*sc.Y),
	}

	if opacity >= 1 {
		transform(dst, s2d, src, rotation)
		return
	}

	tmp := image.NewRGBA(db)
	transform(tmp, s2d, src, rotation)
	mask := image.NewUniform(color.Alpha{A: uint8(clamp(opacity, 0, 1) * 255)})
	draw.DrawMask(dst, db, tmp, db.Min, mask, image.Point{}, draw.Over)
}

// transform uses nearest-neighbour for pure translations so unrotated
// frames stay pixel exact.
func transform(dst draw.Image, s2d f64.Aff3, src image.Image, rotation float64) {
	if rotation == 0 {
		xdraw.NearestNeighbor.Transform(dst, s2d, src, src.Bounds(), xdraw.Over, nil)
		return
	}
	xdraw.ApproxBiLinear.Transform(dst, s2d, src, src.Bounds(), xdraw.Over, nil)
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
