package style

import (
	"math"
	"testing"

	"pointlayer/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestAnchor(t *testing.T) {
	c := NewCircle(CircleOptions{Radius: 4.5})
	assert.Equal(t, 10.0, c.Size())
	assert.Equal(t, r2.Vec{X: 5, Y: 5}, c.Anchor())

	c = NewCircle(CircleOptions{Radius: 4, Stroke: &Stroke{Color: colorutil.Black, Width: 2}})
	assert.Equal(t, 13.0, c.Size())
	assert.Equal(t, r2.Vec{X: 6.5, Y: 6.5}, c.Anchor())
}

func TestStylesAreCopies(t *testing.T) {
	fill := &Fill{Color: colorutil.Red}
	s := NewCircle(CircleOptions{Radius: 3, Fill: fill})
	fill.Color = colorutil.White

	assert.Equal(t, colorutil.Red, s.Fill().Color)

	got := s.Fill()
	got.Color = colorutil.Black
	assert.Equal(t, colorutil.Red, s.Fill().Color)
}

func TestRegularShapeMinimumPoints(t *testing.T) {
	s := NewRegularShape(RegularShapeOptions{Points: 1, Radius: 5})
	assert.Equal(t, 3, s.Points())
	assert.Equal(t, KindRegularShape, s.Kind())
}

func TestCloverDefaults(t *testing.T) {
	s := NewClover(CloverOptions{})
	assert.Equal(t, float64(DefaultCloverRadius), s.Radius())
	assert.Equal(t, float64(DefaultCloverAngle), s.Angle())
	assert.Equal(t, 12, s.SectorCount())

	s = NewClover(CloverOptions{Radius: 8, Angle: 60, SpaceAngle: 10})
	assert.Equal(t, 5, s.SectorCount())
	assert.Equal(t, 0, NewCircle(CircleOptions{Radius: 1}).SectorCount())
}

func TestResolveUnselected(t *testing.T) {
	s := NewCircle(CircleOptions{Radius: 3})
	assert.Same(t, s, Resolve(s, false, nil))
	assert.Nil(t, Resolve(nil, true, nil))
}

func TestResolveCircleHighlight(t *testing.T) {
	stroke := &Stroke{Color: colorutil.Black, Width: 1.5}
	s := NewCircle(CircleOptions{Radius: 4.5, Fill: &Fill{Color: colorutil.Red}, Stroke: stroke})

	h := Resolve(s, true, nil)
	require.NotSame(t, s, h)
	assert.Equal(t, KindCircle, h.Kind())
	assert.Equal(t, 4.5, h.Radius())
	assert.Equal(t, *stroke, *h.Stroke())
	assert.Equal(t, colorutil.Highlight, h.Fill().Color)

	// the original is untouched
	assert.Equal(t, colorutil.Red, s.Fill().Color)
}

func TestResolveRegularShapeHighlight(t *testing.T) {
	s := NewRegularShape(RegularShapeOptions{
		Points: 5, Radius: 10, Radius2: 4, Angle: 0.3, Rotation: 1.2,
		Fill:   &Fill{Color: colorutil.White},
		Stroke: &Stroke{Color: colorutil.Red, Width: 2},
	})
	h := Resolve(s, true, nil)
	assert.Equal(t, KindRegularShape, h.Kind())
	assert.Equal(t, 5, h.Points())
	assert.Equal(t, 10.0, h.Radius())
	assert.Equal(t, 4.0, h.Radius2())
	assert.Equal(t, 0.3, h.Angle())
	assert.Equal(t, 1.2, h.Rotation())
	assert.Equal(t, colorutil.Red, h.Stroke().Color)
	assert.Equal(t, colorutil.Highlight, h.Fill().Color)
}

func TestResolveCustom(t *testing.T) {
	custom := NewCircle(CircleOptions{Radius: 9})
	s := NewRegularShape(RegularShapeOptions{Points: 4, Radius: 3})
	assert.Same(t, custom, Resolve(s, true, custom))
}

func TestResolveCloverKeepsStyle(t *testing.T) {
	s := NewClover(CloverOptions{})
	custom := NewHitClover(HitCloverOptions{})
	assert.Same(t, s, Resolve(s, true, custom))
	assert.Same(t, s, Resolve(s, true, nil))
}

func TestSectorAt(t *testing.T) {
	center := r2.Vec{X: 100, Y: 100}
	rad := 95 * math.Pi / 180
	pointer := r2.Add(center, r2.Vec{X: 50 * math.Cos(rad), Y: 50 * math.Sin(rad)})

	got := SectorAt(center, pointer, 60, 0)
	assert.Equal(t, 2, got.Index)
	assert.InDelta(t, 60, got.Start, 1e-9)
	assert.InDelta(t, 120, got.End, 1e-9)
}

func TestSectorAtNegativeAngle(t *testing.T) {
	// straight up on screen is -90°, normalised to 270°
	got := SectorAt(r2.Vec{}, r2.Vec{X: 0, Y: -10}, 30, 10)
	assert.Equal(t, 7, got.Index)
	assert.Equal(t, 240.0, got.Start)
	assert.Equal(t, 270.0, got.End)
}

func TestSectorAtPositiveXAxis(t *testing.T) {
	got := SectorAt(r2.Vec{}, r2.Vec{X: 10}, 60, 0)
	assert.Equal(t, 6, got.Index)
	assert.Equal(t, 300.0, got.Start)
	assert.Equal(t, 360.0, got.End)
}

func TestStyleSectorAt(t *testing.T) {
	_, ok := NewCircle(CircleOptions{Radius: 2}).SectorAt(r2.Vec{}, r2.Vec{X: 1})
	assert.False(t, ok)

	sec, ok := NewClover(CloverOptions{Angle: 90}).SectorAt(r2.Vec{}, r2.Vec{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, Sector{Index: 1, Start: 0, End: 90}, sec)
}
