// Package style defines the immutable marker styles painted by the
// compositor: circles, regular polygons and stars, and the clover family
// of radial sector markers.
package style

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind discriminates the style variants.
type Kind int

const (
	KindCircle       Kind = iota
	KindRegularShape      // N-gon or star
	KindClover            // radial sectors separated by gaps
	KindHitClover         // one highlighted clover sector
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindRegularShape:
		return "regular"
	case KindClover:
		return "clover"
	case KindHitClover:
		return "hitclover"
	default:
		return "unknown"
	}
}

// IsClover reports whether k belongs to the clover family.
func (k Kind) IsClover() bool {
	return k == KindClover || k == KindHitClover
}

// Fill paints the interior of a shape.
type Fill struct {
	Color color.NRGBA
}

// Stroke paints the outline of a shape.
type Stroke struct {
	Color color.NRGBA
	Width float64
}

// Style is an immutable marker description. Styles may be shared by many
// graphics; highlighting always builds a new Style.
type Style struct {
	kind     Kind
	radius   float64
	radius2  float64 // 0 = unset
	points   int
	angle    float64 // radians for regular shapes, sector width in degrees for clovers
	rotation float64 // radians
	fill     *Fill
	stroke   *Stroke

	spaceAngle float64 // clover gap, degrees
	startAngle float64 // hit clover, degrees
	endAngle   float64 // hit clover, degrees
}

func (s *Style) Kind() Kind          { return s.kind }
func (s *Style) Radius() float64     { return s.radius }
func (s *Style) Radius2() float64    { return s.radius2 }
func (s *Style) Points() int         { return s.points }
func (s *Style) Angle() float64      { return s.angle }
func (s *Style) Rotation() float64   { return s.rotation }
func (s *Style) SpaceAngle() float64 { return s.spaceAngle }
func (s *Style) StartAngle() float64 { return s.startAngle }
func (s *Style) EndAngle() float64   { return s.endAngle }

// Fill returns a copy of the fill, or nil when the shape is not filled.
func (s *Style) Fill() *Fill {
	if s.fill == nil {
		return nil
	}
	f := *s.fill
	return &f
}

// Stroke returns a copy of the stroke, or nil when the shape has no outline.
func (s *Style) Stroke() *Stroke {
	if s.stroke == nil {
		return nil
	}
	st := *s.stroke
	return &st
}

// StrokeWidth returns the outline width, 0 without a stroke.
func (s *Style) StrokeWidth() float64 {
	if s.stroke == nil {
		return 0
	}
	return s.stroke.Width
}

// Size returns the edge length of the square marker image in pixels.
func (s *Style) Size() float64 {
	return 2*(s.radius+s.StrokeWidth()) + 1
}

// Anchor returns the marker's reference point inside its image, which is
// the image centre for every kind.
func (s *Style) Anchor() r2.Vec {
	h := s.Size() / 2
	return r2.Vec{X: h, Y: h}
}

// SectorCount returns the number of sectors drawn by a clover.
func (s *Style) SectorCount() int {
	step := s.angle + s.spaceAngle
	if s.kind != KindClover || step <= 0 {
		return 0
	}
	return int(math.Floor(360 / step))
}

func copyFill(f *Fill) *Fill {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func copyStroke(st *Stroke) *Stroke {
	if st == nil {
		return nil
	}
	c := *st
	return &c
}
