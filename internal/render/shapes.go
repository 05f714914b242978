package render

import (
	"math"

	"pointlayer/internal/style"

	"gonum.org/v1/gonum/spatial/r2"
	"golang.org/x/image/vector"
)

// polygon is a closed ring of pixel coordinates relative to the marker
// centre.
type polygon []r2.Vec

func (p polygon) translate(by r2.Vec) polygon {
	out := make(polygon, len(p))
	for i, v := range p {
		out[i] = r2.Add(v, by)
	}
	return out
}

// signedArea is positive for rings that turn clockwise on screen.
func (p polygon) signedArea() float64 {
	var a float64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		a += v.X*w.Y - w.X*v.Y
	}
	return a / 2
}

// shapePaths returns the rings to fill for s.
func shapePaths(s *style.Style) []polygon {
	switch s.Kind() {
	case style.KindCircle:
		return []polygon{circle(r2.Vec{}, s.Radius())}
	case style.KindRegularShape:
		return []polygon{regularShape(s)}
	case style.KindClover:
		step := s.Angle() + s.SpaceAngle()
		paths := make([]polygon, 0, s.SectorCount())
		for k := 0; k < s.SectorCount(); k++ {
			start := float64(k) * step
			paths = append(paths, sector(s.Radius(), start, start+s.Angle()))
		}
		return paths
	case style.KindHitClover:
		return []polygon{sector(s.Radius(), s.StartAngle(), s.EndAngle())}
	}
	return nil
}

func circleSegments(r float64) int {
	n := int(math.Ceil(2 * r))
	return min(max(n, minCircleSegments), maxCircleSegments)
}

func circle(c r2.Vec, r float64) polygon {
	n := circleSegments(r)
	p := make(polygon, n)
	for i := range p {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		p[i] = r2.Vec{X: c.X + r*cos, Y: c.Y + r*sin}
	}
	return p
}

// regularShape places the first vertex straight up, then adds the shape
// angle and rotation. Stars alternate between radius and radius2.
func regularShape(s *style.Style) polygon {
	n := s.Points()
	star := s.Radius2() > 0 && s.Radius2() != s.Radius()
	if star {
		n *= 2
	}
	p := make(polygon, n)
	for i := range p {
		r := s.Radius()
		if star && i%2 == 1 {
			r = s.Radius2()
		}
		theta := float64(i)*2*math.Pi/float64(n) - math.Pi/2 + s.Angle() + s.Rotation()
		sin, cos := math.Sincos(theta)
		p[i] = r2.Vec{X: r * cos, Y: r * sin}
	}
	return p
}

// sector is the pie slice from start to end degrees, clockwise on screen
// from the positive X axis.
func sector(r, start, end float64) polygon {
	if end < start {
		start, end = end, start
	}
	steps := max(int(math.Ceil((end-start)/arcStepDegrees)), 2)
	p := make(polygon, 0, steps+2)
	p = append(p, r2.Vec{})
	for i := 0; i <= steps; i++ {
		a := (start + (end-start)*float64(i)/float64(steps)) * math.Pi / 180
		sin, cos := math.Sincos(a)
		p = append(p, r2.Vec{X: r * cos, Y: r * sin})
	}
	return p
}

// addPolygon adds a closed ring. The rasterizer accumulates signed
// coverage, so rings meant to overlap must share an orientation and holes
// must use the opposite one.
func addPolygon(z *vector.Rasterizer, p polygon, clockwise bool) {
	if len(p) < 3 {
		return
	}
	if (p.signedArea() > 0) != clockwise {
		rev := make(polygon, len(p))
		for i, v := range p {
			rev[len(p)-1-i] = v
		}
		p = rev
	}
	z.MoveTo(float32(p[0].X), float32(p[0].Y))
	for _, v := range p[1:] {
		z.LineTo(float32(v.X), float32(v.Y))
	}
	z.ClosePath()
}

// addRing adds the annulus between outer and inner radii.
func addRing(z *vector.Rasterizer, c r2.Vec, outer, inner float64) {
	addPolygon(z, circle(c, outer), true)
	if inner > 0 {
		addPolygon(z, circle(c, inner), false)
	}
}

// addOutline strokes the closed ring p with half width hw: one quad per
// edge plus a round join at every vertex.
func addOutline(z *vector.Rasterizer, p polygon, hw float64) {
	for i, a := range p {
		b := p[(i+1)%len(p)]
		d := r2.Sub(b, a)
		l := math.Hypot(d.X, d.Y)
		if l > 0 {
			n := r2.Vec{X: -d.Y / l * hw, Y: d.X / l * hw}
			addPolygon(z, polygon{r2.Add(a, n), r2.Add(b, n), r2.Sub(b, n), r2.Sub(a, n)}, true)
		}
		addPolygon(z, circle(a, hw), true)
	}
}
