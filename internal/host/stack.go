package host

import (
	"image"
	"image/color"
	"math"
	"slices"
	"sync"

	"pointlayer/pkg/geometry"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultRatio is how much larger than the viewport a layer surface is
// requested, so small pans and rotations need no repaint.
const DefaultRatio = 1.5

// Zoom limits, in map units per CSS pixel.
const (
	minResolution = 1e-6
	maxResolution = 1e9
)

type entry struct {
	layer   Layer
	opacity float64
}

// Stack is an ordered set of layers over a single viewport. Layers added
// later are composited on top.
type Stack struct {
	mu sync.Mutex

	viewport   geometry.Viewport
	ratio      float64
	background color.Color
	layers     []*entry

	// Frame cache, valid while no layer revision or view state changed
	dirty     bool
	revisions []uint64
	frame     *image.RGBA

	log zerolog.Logger
}

// NewStack creates a stack showing the given viewport.
func NewStack(vp geometry.Viewport) *Stack {
	if vp.PixelRatio <= 0 {
		vp.PixelRatio = 1
	}
	return &Stack{
		viewport:   vp,
		ratio:      DefaultRatio,
		background: color.NRGBA{R: 240, G: 240, B: 240, A: 255},
		dirty:      true,
		log:        zerolog.Nop(),
	}
}

// SetLogger replaces the stack's logger.
func (s *Stack) SetLogger(l zerolog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = l
}

// SetRatio sets the surface request ratio. Values below 1 are raised to 1.
func (s *Stack) SetRatio(r float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ratio = math.Max(r, 1)
	s.dirty = true
}

// SetBackground sets the colour behind all layers.
func (s *Stack) SetBackground(c color.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
	s.dirty = true
}

// Viewport returns the current view state.
func (s *Stack) Viewport() geometry.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// SetViewport replaces the view state.
func (s *Stack) SetViewport(vp geometry.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vp.PixelRatio <= 0 {
		vp.PixelRatio = 1
	}
	s.viewport = vp
	s.dirty = true
}

// Pan moves the view by a pixel delta, as a drag would.
func (s *Stack) Pan(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp := s.viewport
	from := vp.CoordinateFromPixel(vp.CenterPixel())
	to := vp.CoordinateFromPixel(r2.Add(vp.CenterPixel(), r2.Vec{X: dx, Y: dy}))
	s.viewport.Center = r2.Add(vp.Center, r2.Sub(from, to))
	s.dirty = true
}

// Zoom multiplies the resolution by factor, keeping the coordinate under
// the anchor pixel fixed.
func (s *Stack) Zoom(factor float64, anchor r2.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vp := s.viewport
	fixed := vp.CoordinateFromPixel(anchor)
	vp.Resolution = math.Min(math.Max(vp.Resolution*factor, minResolution), maxResolution)
	moved := vp.CoordinateFromPixel(anchor)
	vp.Center = r2.Add(vp.Center, r2.Sub(fixed, moved))
	s.viewport = vp
	s.dirty = true
}

// PixelFromCoordinate projects a map coordinate with the current viewport.
func (s *Stack) PixelFromCoordinate(c r2.Vec) r2.Vec {
	return s.Viewport().PixelFromCoordinate(c)
}

// CoordinateFromPixel is the inverse of PixelFromCoordinate.
func (s *Stack) CoordinateFromPixel(p r2.Vec) r2.Vec {
	return s.Viewport().CoordinateFromPixel(p)
}

// AddLayer puts l on top of the stack at full opacity. Adding a layer twice
// has no effect.
func (s *Stack) AddLayer(l Layer) {
	s.AddLayerWithOpacity(l, 1)
}

// AddLayerWithOpacity puts l on top of the stack.
func (s *Stack) AddLayerWithOpacity(l Layer, opacity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(l) >= 0 {
		return
	}
	s.layers = append(s.layers, &entry{layer: l, opacity: clamp(opacity, 0, 1)})
	s.dirty = true
	s.log.Debug().Int("layers", len(s.layers)).Msg("layer added")
}

// RemoveLayer removes l. Unknown layers are ignored.
func (s *Stack) RemoveLayer(l Layer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(l)
	if i < 0 {
		return
	}
	s.layers = slices.Delete(s.layers, i, i+1)
	s.dirty = true
	s.log.Debug().Int("layers", len(s.layers)).Msg("layer removed")
}

// Layers returns the layers bottom to top.
func (s *Stack) Layers() []Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Layer, len(s.layers))
	for i, e := range s.layers {
		out[i] = e.layer
	}
	return out
}

func (s *Stack) indexOf(l Layer) int {
	for i, e := range s.layers {
		if e.layer == l {
			return i
		}
	}
	return -1
}

// Frame returns the frame state layers are asked to paint.
func (s *Stack) Frame() FrameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Stack) frameLocked() FrameState {
	vp := s.viewport
	size := r2.Scale(s.ratio, vp.Size)
	return FrameState{
		Extent:     vp.ExtentForSize(size),
		Resolution: vp.Resolution,
		PixelRatio: vp.PixelRatio,
		Size:       size,
		Viewport:   vp,
	}
}

// NeedsRender reports whether the next Render would paint a new frame.
func (s *Stack) NeedsRender() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.needsRenderLocked()
}

func (s *Stack) needsRenderLocked() bool {
	if s.dirty || s.frame == nil || len(s.revisions) != len(s.layers) {
		return true
	}
	for i, e := range s.layers {
		if e.layer.Revision() != s.revisions[i] {
			return true
		}
	}
	return false
}
