// Package layer implements the point graphic layer: an ordered graphic
// store painted onto an off-screen canvas, with pointer hit testing and a
// single-selection highlight.
package layer

import (
	"image"
	"slices"
	"sync"
	"sync/atomic"

	"pointlayer/internal/graphic"
	"pointlayer/internal/host"
	"pointlayer/internal/render"
	"pointlayer/internal/style"
	"pointlayer/pkg/geometry"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// Layer is a host.Layer drawing many point graphics.
type Layer struct {
	opts       Options
	store      *graphic.Store
	compositor *render.Compositor
	highlight  *Controller
	log        zerolog.Logger

	revision atomic.Uint64

	mu        sync.Mutex
	listeners []func()
}

var _ host.Layer = (*Layer)(nil)

// New creates a layer holding opts.Graphics.
func New(opts Options) *Layer {
	if opts.Map == nil {
		opts.Map = detachedMap{}
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	l := &Layer{opts: opts, log: log}
	l.store = graphic.NewStore(l.changed)
	l.compositor = render.NewCompositor(l.store, opts.HighlightStyle)
	l.highlight = newController(l, opts.Map, opts.HighlightStyle, log)
	l.store.Replace(opts.Graphics...)
	return l
}

// Options returns the options the layer was built with, including the
// pass-through host settings.
func (l *Layer) Options() Options {
	return l.opts
}

// SetGraphics replaces every graphic. A selection that is not part of the
// new set is closed.
func (l *Layer) SetGraphics(gs ...*graphic.Graphic) {
	if sel := l.highlight.Selected(); sel != nil && !slices.Contains(gs, sel) {
		l.highlight.Close()
	}
	l.store.Replace(gs...)
	l.log.Debug().Int("graphics", l.store.Len()).Msg("graphics set")
}

// AddGraphics appends graphics above the existing ones.
func (l *Layer) AddGraphics(gs ...*graphic.Graphic) {
	l.store.Append(gs...)
	l.log.Debug().Int("graphics", l.store.Len()).Msg("graphics added")
}

// Clear releases the layer's graphics.
func (l *Layer) Clear() {
	l.RemoveGraphics()
}

// RemoveGraphics removes every graphic and closes the highlight.
func (l *Layer) RemoveGraphics() {
	l.highlight.Close()
	l.store.Clear()
}

// Graphics returns all graphics in paint order.
func (l *Layer) Graphics() []*graphic.Graphic {
	return l.store.Query(nil)
}

// GraphicsInExtent returns the graphics inside extent, or all of them
// when extent is nil.
func (l *Layer) GraphicsInExtent(extent *geometry.Extent) []*graphic.Graphic {
	return l.store.Query(extent)
}

// Update marks the layer for repaint.
func (l *Layer) Update() {
	l.changed()
}

// Revision increases on every change that needs a repaint.
func (l *Layer) Revision() uint64 {
	return l.revision.Load()
}

// OnChange registers fn to run after every change. fn may be called from
// any goroutine that mutates the layer.
func (l *Layer) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func (l *Layer) changed() {
	l.revision.Add(1)
	l.mu.Lock()
	listeners := slices.Clone(l.listeners)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Surface paints the layer for a frame.
func (l *Layer) Surface(fs host.FrameState) image.Image {
	return l.compositor.Render(fs, l.highlight.Selected())
}

// Selected returns the selected graphic, or nil.
func (l *Layer) Selected() *graphic.Graphic {
	return l.highlight.Selected()
}

// State returns the highlight state.
func (l *Layer) State() State {
	return l.highlight.State()
}

// Overlay returns the active sector overlay, or nil.
func (l *Layer) Overlay() *Layer {
	return l.highlight.Overlay()
}

// HitTest returns the topmost graphic whose marker box contains coord.
// pixel is the pointer's screen position, used to pick a clover sector.
// With highlighting enabled a match selects the graphic and a miss closes
// the current highlight.
func (l *Layer) HitTest(coord r2.Vec, resolution float64, pixel *r2.Vec) *graphic.Graphic {
	g := l.find(coord, resolution)
	if !l.opts.HighlightEnabled {
		return g
	}
	if g == nil {
		l.highlight.Close()
		return nil
	}
	l.highlight.Select(g, pixel)
	return g
}

// ForEachFeatureAtCoordinate hit-tests like HitTest and passes a match to
// fn.
//
// Deprecated: call HitTest and handle the result directly.
func (l *Layer) ForEachFeatureAtCoordinate(coord r2.Vec, resolution float64, pixel *r2.Vec, fn func(*graphic.Graphic)) *graphic.Graphic {
	g := l.HitTest(coord, resolution, pixel)
	if g != nil && fn != nil {
		fn(g)
	}
	return g
}

// find scans topmost first. Empty or unstyled graphics never match, and
// neither does anything currently painted as a sector overlay marker. The
// box is sized from the graphic's own style.
func (l *Layer) find(coord r2.Vec, resolution float64) *graphic.Graphic {
	selected := l.highlight.Selected()
	for _, g := range l.store.Reversed() {
		s := g.Style()
		if s == nil || g.IsEmpty() {
			continue
		}
		if style.Resolve(s, g == selected, l.opts.HighlightStyle).Kind() == style.KindHitClover {
			continue
		}
		box := geometry.ExtentAround(g.Coordinate(), r2.Scale(resolution, s.Anchor()))
		if box.ContainsCoordinate(coord) {
			return g
		}
	}
	return nil
}
