package style

import (
	"pointlayer/pkg/colorutil"
)

// Resolve picks the style to paint. Unselected graphics keep their own
// style. A selected circle or regular shape gets the custom highlight style
// when one is configured, otherwise a copy of itself filled with
// colorutil.Highlight. Clover markers keep their style; their highlight is
// the sector overlay.
func Resolve(s *Style, selected bool, custom *Style) *Style {
	if s == nil || !selected || s.kind.IsClover() {
		return s
	}
	if custom != nil {
		return custom
	}
	return Highlighted(s)
}

// Highlighted returns a new style with the shape and stroke of s and the
// highlight fill. Styles other than circles and regular shapes are
// returned unchanged.
func Highlighted(s *Style) *Style {
	fill := &Fill{Color: colorutil.Highlight}
	switch s.kind {
	case KindCircle:
		return NewCircle(CircleOptions{
			Radius: s.radius,
			Fill:   fill,
			Stroke: s.stroke,
		})
	case KindRegularShape:
		return NewRegularShape(RegularShapeOptions{
			Points:   s.points,
			Radius:   s.radius,
			Radius2:  s.radius2,
			Angle:    s.angle,
			Rotation: s.rotation,
			Fill:     fill,
			Stroke:   s.stroke,
		})
	default:
		return s
	}
}
