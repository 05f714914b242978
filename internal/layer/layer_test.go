package layer

import (
	"math"
	"testing"

	"pointlayer/internal/graphic"
	"pointlayer/internal/host"
	"pointlayer/internal/style"
	"pointlayer/pkg/colorutil"
	"pointlayer/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func newStack() *host.Stack {
	return host.NewStack(geometry.Viewport{
		Size:       r2.Vec{X: 100, Y: 100},
		PixelRatio: 1,
		Resolution: 1,
	})
}

func circleAt(x, y, radius float64) *graphic.Graphic {
	return graphic.New(x, y, style.NewCircle(style.CircleOptions{
		Radius: radius,
		Fill:   &style.Fill{Color: colorutil.Red},
	}))
}

func cloverAt(x, y float64) *graphic.Graphic {
	return graphic.New(x, y, style.NewClover(style.CloverOptions{
		Radius: 10,
		Angle:  60,
		Fill:   &style.Fill{Color: colorutil.Red},
	}))
}

func newLayer(m host.Map, gs ...*graphic.Graphic) *Layer {
	opts := DefaultOptions()
	opts.Map = m
	opts.Graphics = gs
	return New(opts)
}

func TestHitTestUsesAnchorBox(t *testing.T) {
	g := circleAt(10, 10, 4.5) // anchor 5
	l := newLayer(nil, g)

	assert.Same(t, g, l.HitTest(r2.Vec{X: 19, Y: 19}, 2, nil))
	assert.Same(t, g, l.HitTest(r2.Vec{X: 20, Y: 0}, 2, nil), "box edge is inclusive")
	assert.Nil(t, l.HitTest(r2.Vec{X: 21, Y: 10}, 2, nil))
	assert.Nil(t, l.HitTest(r2.Vec{X: 10, Y: -0.5}, 2, nil))
}

func TestHitTestPrefersTopmost(t *testing.T) {
	below := circleAt(0, 0, 5)
	above := circleAt(2, 0, 5)
	l := newLayer(nil, below, above)

	assert.Same(t, above, l.HitTest(r2.Vec{X: 1, Y: 0}, 1, nil))
	assert.Same(t, below, l.HitTest(r2.Vec{X: -5, Y: 0}, 1, nil))
}

func TestHitTestSkipsUnstyled(t *testing.T) {
	bare := graphic.New(0, 0, nil)
	styled := circleAt(0, 0, 5)
	l := newLayer(nil, styled, bare)

	assert.Same(t, styled, l.HitTest(r2.Vec{}, 1, nil))
}

func TestSelectionIsExclusive(t *testing.T) {
	a := circleAt(0, 0, 5)
	b := circleAt(100, 0, 5)
	l := newLayer(nil, a, b)

	l.HitTest(r2.Vec{}, 1, nil)
	assert.Same(t, a, l.Selected())
	assert.Equal(t, StateSelected, l.State())

	l.HitTest(r2.Vec{X: 100}, 1, nil)
	assert.Same(t, b, l.Selected())
	assert.Equal(t, StateSelected, l.State())
	assert.Nil(t, l.Overlay())
}

func TestMissClearsSelection(t *testing.T) {
	l := newLayer(nil, circleAt(0, 0, 5))
	l.HitTest(r2.Vec{}, 1, nil)
	before := l.Revision()

	assert.Nil(t, l.HitTest(r2.Vec{X: 50}, 1, nil))
	assert.Nil(t, l.Selected())
	assert.Equal(t, StateIdle, l.State())
	assert.Greater(t, l.Revision(), before)

	idle := l.Revision()
	l.HitTest(r2.Vec{X: 50}, 1, nil)
	assert.Equal(t, idle, l.Revision(), "miss while idle changes nothing")
}

func TestHighlightDisabled(t *testing.T) {
	g := circleAt(0, 0, 5)
	l := New(Options{Graphics: []*graphic.Graphic{g}})

	assert.Same(t, g, l.HitTest(r2.Vec{}, 1, nil))
	assert.Nil(t, l.Selected())
	assert.Equal(t, StateIdle, l.State())
}

func TestCloverHitAddsSectorOverlay(t *testing.T) {
	m := newStack()
	g := cloverAt(0, 0)
	l := newLayer(m, g)
	m.AddLayer(l)

	// Clover centre projects to pixel (50, 50); straight below is 90 degrees.
	pixel := r2.Vec{X: 50, Y: 60}
	require.Same(t, g, l.HitTest(r2.Vec{}, 1, &pixel))
	assert.Equal(t, StateSelectedWithOverlay, l.State())

	ov := l.Overlay()
	require.NotNil(t, ov)
	assert.Len(t, m.Layers(), 2)
	assert.Same(t, ov, m.Layers()[1])

	gs := ov.Graphics()
	require.Len(t, gs, 1)
	s := gs[0].Style()
	assert.Equal(t, style.KindHitClover, s.Kind())
	assert.Equal(t, 60.0, s.StartAngle())
	assert.Equal(t, 120.0, s.EndAngle())
	assert.Equal(t, OverlayStroke, *s.Stroke())
	assert.Equal(t, OverlayFill, *s.Fill())
	assert.Equal(t, r2.Vec{}, gs[0].Coordinate())
}

func TestOverlayNeverAccumulates(t *testing.T) {
	m := newStack()
	l := newLayer(m, cloverAt(0, 0), circleAt(40, 0, 5))
	m.AddLayer(l)

	for i := 0; i < 5; i++ {
		pixel := r2.Vec{X: 50 + float64(i), Y: 40}
		l.HitTest(r2.Vec{}, 1, &pixel)
		assert.Len(t, m.Layers(), 2)
	}

	l.HitTest(r2.Vec{X: 40}, 1, nil)
	assert.Equal(t, StateSelected, l.State())
	assert.Nil(t, l.Overlay())
	assert.Len(t, m.Layers(), 1)

	pixel := r2.Vec{X: 60, Y: 50}
	l.HitTest(r2.Vec{}, 1, &pixel)
	require.Len(t, m.Layers(), 2)

	l.HitTest(r2.Vec{X: -500}, 1, nil)
	assert.Len(t, m.Layers(), 1)
	assert.Equal(t, StateIdle, l.State())
}

func TestPointerOnAxisPicksLastSector(t *testing.T) {
	m := newStack()
	l := newLayer(m, cloverAt(0, 0))

	pixel := r2.Vec{X: 60, Y: 50}
	l.HitTest(r2.Vec{}, 1, &pixel)
	s := l.Overlay().Graphics()[0].Style()
	assert.Equal(t, 300.0, s.StartAngle())
	assert.Equal(t, 360.0, s.EndAngle())
}

func TestCustomHitCloverStyleDrivesOverlay(t *testing.T) {
	m := newStack()
	opts := DefaultOptions()
	opts.Map = m
	opts.Graphics = []*graphic.Graphic{cloverAt(0, 0)}
	opts.HighlightStyle = style.NewHitClover(style.HitCloverOptions{
		Radius: 14,
		Angle:  20,
		Fill:   &style.Fill{Color: colorutil.Black},
	})
	l := New(opts)

	pixel := r2.Vec{X: 50, Y: 60}
	l.HitTest(r2.Vec{}, 1, &pixel)
	s := l.Overlay().Graphics()[0].Style()
	assert.Equal(t, 14.0, s.Radius())
	assert.Equal(t, 60.0, s.StartAngle())
	assert.Equal(t, 120.0, s.EndAngle(), "sector end follows the clover")
	assert.Equal(t, colorutil.Black, s.Fill().Color)
	assert.Nil(t, s.Stroke())
}

func TestOverlayIgnoredByOwnHitTest(t *testing.T) {
	m := newStack()
	l := newLayer(m, cloverAt(0, 0))
	pixel := r2.Vec{X: 50, Y: 60}
	l.HitTest(r2.Vec{}, 1, &pixel)

	ov := l.Overlay()
	require.NotNil(t, ov)
	assert.Nil(t, ov.HitTest(r2.Vec{}, 1, &pixel))
}

func TestSetGraphicsDropsStaleSelection(t *testing.T) {
	a := circleAt(0, 0, 5)
	l := newLayer(nil, a)
	l.HitTest(r2.Vec{}, 1, nil)
	require.Same(t, a, l.Selected())

	l.SetGraphics(a, circleAt(9, 9, 1))
	assert.Same(t, a, l.Selected())

	l.SetGraphics(circleAt(9, 9, 1))
	assert.Nil(t, l.Selected())
}

func TestRemoveGraphicsClosesHighlight(t *testing.T) {
	m := newStack()
	l := newLayer(m, cloverAt(0, 0))
	m.AddLayer(l)
	pixel := r2.Vec{X: 50, Y: 60}
	l.HitTest(r2.Vec{}, 1, &pixel)
	require.Len(t, m.Layers(), 2)

	l.Clear()
	assert.Empty(t, l.Graphics())
	assert.Equal(t, StateIdle, l.State())
	assert.Len(t, m.Layers(), 1)
}

func TestChangesNotifyListeners(t *testing.T) {
	l := newLayer(nil)
	start := l.Revision()
	var calls int
	l.OnChange(func() { calls++ })

	l.AddGraphics(circleAt(0, 0, 1))
	l.Update()
	l.HitTest(r2.Vec{}, 1, nil)
	assert.Equal(t, 3, calls)
	assert.Equal(t, start+3, l.Revision())
}

func TestSurfacePaintsSelectionHighlight(t *testing.T) {
	m := newStack()
	l := newLayer(m, circleAt(0, 0, 5))
	m.AddLayer(l)

	fs := m.Frame()
	img := l.Surface(fs)
	c := img.At(img.Bounds().Dx()/2, img.Bounds().Dy()/2)
	assert.Equal(t, colorutil.Red, toNRGBA(c))

	l.HitTest(r2.Vec{}, 1, nil)
	img = l.Surface(fs)
	c = img.At(img.Bounds().Dx()/2, img.Bounds().Dy()/2)
	assert.Equal(t, colorutil.Highlight, toNRGBA(c))
}

func TestForEachFeatureAtCoordinate(t *testing.T) {
	g := circleAt(0, 0, 5)
	l := newLayer(nil, g)

	var got []*graphic.Graphic
	fn := func(g *graphic.Graphic) { got = append(got, g) }
	l.ForEachFeatureAtCoordinate(r2.Vec{}, 1, nil, fn)
	l.ForEachFeatureAtCoordinate(r2.Vec{X: 90}, 1, nil, fn)
	assert.Equal(t, []*graphic.Graphic{g}, got)
}

func TestGraphicsInExtent(t *testing.T) {
	in := circleAt(1, 1, 1)
	l := newLayer(nil, in, circleAt(50, 50, 1))
	ext := geometry.NewExtent(0, 0, 10, 10)
	assert.Equal(t, []*graphic.Graphic{in}, l.GraphicsInExtent(&ext))
	assert.Len(t, l.GraphicsInExtent(nil), 2)
}

// recordingMap logs overlay traffic in call order.
type recordingMap struct {
	ops []string
}

func (m *recordingMap) PixelFromCoordinate(c r2.Vec) r2.Vec { return c }
func (m *recordingMap) Viewport() geometry.Viewport         { return geometry.Viewport{Resolution: 1} }
func (m *recordingMap) AddLayer(host.Layer)                 { m.ops = append(m.ops, "add") }
func (m *recordingMap) RemoveLayer(host.Layer)              { m.ops = append(m.ops, "remove") }

func TestOverlayRemovedBeforeReplacement(t *testing.T) {
	m := &recordingMap{}
	l := newLayer(m, cloverAt(0, 0))

	pixel := r2.Vec{X: 0, Y: 5}
	l.HitTest(r2.Vec{}, 1, &pixel)
	l.HitTest(r2.Vec{}, 1, &pixel)
	l.HitTest(r2.Vec{X: 99}, 1, nil)
	assert.Equal(t, []string{"add", "remove", "add", "remove"}, m.ops)
}

func TestRotatedViewPicksSectorUnderPointer(t *testing.T) {
	for _, rotation := range []float64{0, math.Pi / 2} {
		m := host.NewStack(geometry.Viewport{
			Size:       r2.Vec{X: 100, Y: 100},
			PixelRatio: 1,
			Resolution: 1,
			Rotation:   rotation,
		})
		quarters := graphic.New(0, 0, style.NewClover(style.CloverOptions{
			Radius: 10,
			Angle:  90,
			Fill:   &style.Fill{Color: colorutil.Red},
		}))
		l := newLayer(m, quarters)
		m.AddLayer(l)

		// Midway through a quarter in both the screen and clover frames.
		pixel := r2.Vec{X: 54, Y: 54}
		require.NotNil(t, l.HitTest(r2.Vec{}, 1, &pixel))

		c := toNRGBA(m.Render().At(54, 54))
		assert.Less(t, c.R, uint8(60), "rotation %g: %v", rotation, c)
		assert.Greater(t, c.B, uint8(200), "rotation %g: %v", rotation, c)
	}
}

func TestRotatedViewSectorAngles(t *testing.T) {
	m := host.NewStack(geometry.Viewport{
		Size:       r2.Vec{X: 100, Y: 100},
		PixelRatio: 1,
		Resolution: 1,
		Rotation:   math.Pi / 2,
	})
	l := newLayer(m, cloverAt(0, 0))

	// On screen the pointer is 54.5 degrees past the X axis; the unrotated
	// clover sees it at -35.5.
	pixel := r2.Vec{X: 55, Y: 57}
	l.HitTest(r2.Vec{}, 1, &pixel)
	s := l.Overlay().Graphics()[0].Style()
	assert.Equal(t, 300.0, s.StartAngle())
	assert.Equal(t, 360.0, s.EndAngle())
}

func TestSelectedCircleWithHitCloverHighlightIsNotHit(t *testing.T) {
	g := circleAt(0, 0, 5)
	opts := DefaultOptions()
	opts.Graphics = []*graphic.Graphic{g}
	opts.HighlightStyle = style.NewHitClover(style.HitCloverOptions{Radius: 8})
	l := New(opts)

	require.Same(t, g, l.HitTest(r2.Vec{}, 1, nil))
	assert.Equal(t, StateSelected, l.State())

	// Painted as an overlay marker now, so the next tap falls through.
	assert.Nil(t, l.HitTest(r2.Vec{}, 1, nil))
	assert.Equal(t, StateIdle, l.State())
	assert.Same(t, g, l.HitTest(r2.Vec{}, 1, nil))
}

func TestEmptyGraphicIsNeverHit(t *testing.T) {
	l := newLayer(nil, graphic.New(math.NaN(), 0, style.NewCircle(style.CircleOptions{Radius: 5})))
	assert.Nil(t, l.HitTest(r2.Vec{}, 1, nil))
}
