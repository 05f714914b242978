package style

// CircleOptions configures NewCircle.
type CircleOptions struct {
	Radius float64
	Fill   *Fill
	Stroke *Stroke
}

// NewCircle returns a circle marker.
func NewCircle(o CircleOptions) *Style {
	return &Style{
		kind:   KindCircle,
		radius: o.Radius,
		fill:   copyFill(o.Fill),
		stroke: copyStroke(o.Stroke),
	}
}

// RegularShapeOptions configures NewRegularShape. A star is drawn when
// Radius2 is set and differs from Radius.
type RegularShapeOptions struct {
	Points   int
	Radius   float64
	Radius2  float64
	Angle    float64 // radians; 0 points the first vertex up
	Rotation float64 // radians
	Fill     *Fill
	Stroke   *Stroke
}

// NewRegularShape returns a polygon or star marker. Fewer than three points
// are raised to three.
func NewRegularShape(o RegularShapeOptions) *Style {
	if o.Points < 3 {
		o.Points = 3
	}
	return &Style{
		kind:     KindRegularShape,
		radius:   o.Radius,
		radius2:  o.Radius2,
		points:   o.Points,
		angle:    o.Angle,
		rotation: o.Rotation,
		fill:     copyFill(o.Fill),
		stroke:   copyStroke(o.Stroke),
	}
}

// Clover defaults.
const (
	DefaultCloverRadius = 10
	DefaultCloverAngle  = 30
)

// CloverOptions configures NewClover. Angles are in degrees.
type CloverOptions struct {
	Radius     float64
	Angle      float64 // sector width
	SpaceAngle float64 // gap between sectors
	Fill       *Fill
	Stroke     *Stroke
}

// NewClover returns a clover marker.
func NewClover(o CloverOptions) *Style {
	if o.Radius <= 0 {
		o.Radius = DefaultCloverRadius
	}
	if o.Angle <= 0 {
		o.Angle = DefaultCloverAngle
	}
	if o.SpaceAngle < 0 {
		o.SpaceAngle = 0
	}
	return &Style{
		kind:       KindClover,
		radius:     o.Radius,
		angle:      o.Angle,
		spaceAngle: o.SpaceAngle,
		fill:       copyFill(o.Fill),
		stroke:     copyStroke(o.Stroke),
	}
}

// HitCloverOptions configures NewHitClover. Angles are in degrees.
type HitCloverOptions struct {
	Radius     float64
	Angle      float64
	StartAngle float64
	EndAngle   float64
	Fill       *Fill
	Stroke     *Stroke
}

// NewHitClover returns the single-sector highlight marker.
func NewHitClover(o HitCloverOptions) *Style {
	if o.Radius <= 0 {
		o.Radius = DefaultCloverRadius
	}
	if o.Angle <= 0 {
		o.Angle = DefaultCloverAngle
	}
	return &Style{
		kind:       KindHitClover,
		radius:     o.Radius,
		angle:      o.Angle,
		startAngle: o.StartAngle,
		endAngle:   o.EndAngle,
		fill:       copyFill(o.Fill),
		stroke:     copyStroke(o.Stroke),
	}
}
