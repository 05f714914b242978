package layer

import (
	"sync"

	"pointlayer/internal/graphic"
	"pointlayer/internal/host"
	"pointlayer/internal/style"
	"pointlayer/pkg/colorutil"
	"pointlayer/pkg/geometry"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// State is the highlight state of a layer.
type State int

const (
	StateIdle State = iota
	StateSelected
	StateSelectedWithOverlay
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelected:
		return "selected"
	case StateSelectedWithOverlay:
		return "selected-with-overlay"
	}
	return "unknown"
}

// Sector overlay defaults.
var (
	OverlayStroke = style.Stroke{Color: colorutil.Red, Width: 1}
	OverlayFill   = style.Fill{Color: colorutil.Highlight}
)

// Controller owns a layer's selection. At most one graphic is selected
// and an overlay exists only while the selection is a clover.
type Controller struct {
	owner  *Layer
	m      host.Map
	custom *style.Style
	log    zerolog.Logger

	mu       sync.Mutex
	state    State
	selected *graphic.Graphic
	overlay  *Layer
}

func newController(owner *Layer, m host.Map, custom *style.Style, log zerolog.Logger) *Controller {
	return &Controller{owner: owner, m: m, custom: custom, log: log}
}

// Select tears down the current highlight and selects g. For a clover the
// sector under pixel gets an overlay layer on the map; a nil pixel counts
// as the origin.
func (c *Controller) Select(g *graphic.Graphic, pixel *r2.Vec) {
	if g == nil {
		c.Close()
		return
	}
	c.removeOverlay()

	var overlay *Layer
	if s := g.Style(); s != nil && s.Kind() == style.KindClover {
		var p r2.Vec
		if pixel != nil {
			p = *pixel
		}
		center := c.m.PixelFromCoordinate(g.Coordinate())
		// The overlay is drawn unrotated and turned with the view, so the
		// pointer is measured in that frame.
		p = geometry.RotateAboutCenter(p, -c.m.Viewport().Rotation, center)
		if sec, ok := s.SectorAt(center, p); ok {
			overlay = c.newOverlay(g, s, sec)
			c.m.AddLayer(overlay)
		}
	}

	c.mu.Lock()
	c.selected = g
	c.overlay = overlay
	c.state = StateSelected
	if overlay != nil {
		c.state = StateSelectedWithOverlay
	}
	state := c.state
	c.mu.Unlock()

	c.log.Debug().Stringer("state", state).Msg("highlight selected")
	c.owner.changed()
}

// Close clears the selection and removes any overlay.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == StateIdle {
		c.mu.Unlock()
		return
	}
	c.selected = nil
	c.state = StateIdle
	c.mu.Unlock()

	c.removeOverlay()
	c.log.Debug().Msg("highlight closed")
	c.owner.changed()
}

// removeOverlay takes the overlay off the map. The selection is left alone.
func (c *Controller) removeOverlay() {
	c.mu.Lock()
	old := c.overlay
	c.overlay = nil
	if c.state == StateSelectedWithOverlay {
		c.state = StateSelected
	}
	c.mu.Unlock()

	if old != nil {
		c.m.RemoveLayer(old)
	}
}

// Selected returns the selected graphic, or nil.
func (c *Controller) Selected() *graphic.Graphic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Overlay returns the sector overlay layer, or nil.
func (c *Controller) Overlay() *Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay
}

// newOverlay builds a single-graphic layer marking sec. The sector keeps
// the clover's own width; a hit clover highlight style overrides the
// drawn radius, angle and paint.
func (c *Controller) newOverlay(g *graphic.Graphic, clover *style.Style, sec style.Sector) *Layer {
	stroke, fill := OverlayStroke, OverlayFill
	opts := style.HitCloverOptions{
		Radius:     clover.Radius(),
		Angle:      clover.Angle(),
		StartAngle: sec.Start,
		EndAngle:   sec.Start + clover.Angle(),
		Stroke:     &stroke,
		Fill:       &fill,
	}
	if cs := c.custom; cs != nil && cs.Kind() == style.KindHitClover {
		opts.Radius = cs.Radius()
		opts.Angle = cs.Angle()
		opts.Stroke = cs.Stroke()
		opts.Fill = cs.Fill()
	}

	marker := graphic.New(g.Coordinate().X, g.Coordinate().Y, style.NewHitClover(opts))
	c.log.Debug().Int("sector", sec.Index).Float64("start", sec.Start).Msg("clover sector")
	return New(Options{
		Map:      c.m,
		Graphics: []*graphic.Graphic{marker},
		Logger:   &c.log,
	})
}
