// Package graphic holds point graphics and the ordered store a layer
// renders and hit-tests.
package graphic

import (
	"sync"

	"pointlayer/internal/style"
	"pointlayer/pkg/geometry"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
	"gonum.org/v1/gonum/spatial/r2"
)

// Graphic is a point marker: a projected coordinate plus a style. Its
// identity is the pointer.
type Graphic struct {
	mu    sync.RWMutex
	point geom.Point
	style *style.Style
}

// New returns a graphic at the projected coordinate (x, y). Non-finite
// coordinates give an empty graphic, which is never drawn or hit.
func New(x, y float64, s *style.Style) *Graphic {
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}})
	if err != nil {
		pt = geom.NewEmptyPoint(geom.DimXY)
	}
	return FromPoint(pt, s)
}

// FromPoint returns a graphic for an existing point geometry.
func FromPoint(p geom.Point, s *style.Style) *Graphic {
	return &Graphic{point: p, style: s}
}

// FromLonLat returns a graphic for a WGS84 longitude/latitude, projected
// to web mercator (EPSG:3857).
func FromLonLat(lon, lat float64, s *style.Style) *Graphic {
	x, y := LonLatToMercator(lon, lat)
	return New(x, y, s)
}

// LonLatToMercator projects EPSG:4326 degrees to EPSG:3857 metres.
func LonLatToMercator(lon, lat float64) (x, y float64) {
	x, y, _ = wgs84.EPSG().Transform(4326, 3857)(lon, lat, 0)
	return x, y
}

// Geometry returns the point geometry.
func (g *Graphic) Geometry() geom.Point {
	return g.point
}

// IsEmpty reports whether the graphic has no position.
func (g *Graphic) IsEmpty() bool {
	return g.point.IsEmpty()
}

// Coordinate returns the projected coordinate. An empty point yields the
// origin.
func (g *Graphic) Coordinate() r2.Vec {
	c, ok := g.point.Coordinates()
	if !ok {
		return r2.Vec{}
	}
	return r2.Vec{X: c.XY.X, Y: c.XY.Y}
}

// Extent returns the geometry's bounding extent, which for a point is the
// point itself.
func (g *Graphic) Extent() geometry.Extent {
	return geometry.PointExtent(g.Coordinate())
}

// Style returns the attached style, or nil.
func (g *Graphic) Style() *style.Style {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.style
}

// SetStyle attaches a different style. The previous style is not modified.
func (g *Graphic) SetStyle(s *style.Style) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.style = s
}
