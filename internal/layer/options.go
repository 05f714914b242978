package layer

import (
	"pointlayer/internal/graphic"
	"pointlayer/internal/host"
	"pointlayer/internal/style"
	"pointlayer/pkg/geometry"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// Options configures a Layer. Start from DefaultOptions; the zero value
// disables highlighting.
type Options struct {
	// Map receives overlay layers and projects clover centres to pixels.
	// Without a map, coordinates are used as pixels and overlays stay
	// detached.
	Map host.Map

	// Graphics is the initial content.
	Graphics []*graphic.Graphic

	// HighlightEnabled makes hit tests select graphics.
	HighlightEnabled bool

	// HighlightStyle replaces the derived highlight of circles and regular
	// shapes. A hit clover style also sets the stroke, fill, radius and
	// angle of clover sector overlays.
	HighlightStyle *style.Style

	// Passed through to the host unchanged.
	Attributions []string
	Projection   string
	Resolutions  []float64
	Ratio        float64
	State        string

	Logger *zerolog.Logger
}

// DefaultOptions returns options with highlighting enabled.
func DefaultOptions() Options {
	return Options{
		HighlightEnabled: true,
		Ratio:            host.DefaultRatio,
	}
}

// detachedMap stands in when a layer is built without a host map.
type detachedMap struct{}

func (detachedMap) PixelFromCoordinate(c r2.Vec) r2.Vec { return c }
func (detachedMap) Viewport() geometry.Viewport         { return geometry.Viewport{PixelRatio: 1, Resolution: 1} }
func (detachedMap) AddLayer(host.Layer)                 {}
func (detachedMap) RemoveLayer(host.Layer)              {}
