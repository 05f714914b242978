// Package mapview provides a fyne widget showing a host map with tap, pan
// and wheel zoom.
package mapview

import (
	"image"

	"pointlayer/internal/host"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"gonum.org/v1/gonum/spatial/r2"
)

const zoomStep = 1.25

// MapView draws a host.Stack into a raster.
type MapView struct {
	widget.BaseWidget

	stack  *host.Stack
	raster *fynecanvas.Raster
	size   fyne.Size

	// Callbacks
	onTap func(pixel r2.Vec) // view pixel, CSS units
}

var (
	_ fyne.Tappable   = (*MapView)(nil)
	_ fyne.Draggable  = (*MapView)(nil)
	_ fyne.Scrollable = (*MapView)(nil)
)

// New creates a view over stack.
func New(stack *host.Stack) *MapView {
	mv := &MapView{stack: stack}
	mv.raster = fynecanvas.NewRaster(mv.draw)
	mv.raster.ScaleMode = fynecanvas.ImageScalePixels
	mv.ExtendBaseWidget(mv)
	return mv
}

// OnTap sets the callback for left clicks.
func (mv *MapView) OnTap(fn func(pixel r2.Vec)) {
	mv.onTap = fn
}

// draw is the raster generator. w and h are device pixels.
func (mv *MapView) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	vp := mv.stack.Viewport()
	size := r2.Vec{X: float64(mv.size.Width), Y: float64(mv.size.Height)}
	if size.X > 0 && size.Y > 0 && (vp.Size != size || vp.PixelRatio != float64(w)/size.X) {
		vp.Size = size
		vp.PixelRatio = float64(w) / size.X
		mv.stack.SetViewport(vp)
	}
	return mv.stack.Render()
}

// Tapped hit-tests at the tap position.
func (mv *MapView) Tapped(ev *fyne.PointEvent) {
	size := mv.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	if mv.onTap != nil {
		mv.onTap(r2.Vec{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
	}
	mv.Refresh()
}

// Dragged pans the map with the pointer.
func (mv *MapView) Dragged(ev *fyne.DragEvent) {
	mv.stack.Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	mv.Refresh()
}

func (mv *MapView) DragEnd() {}

// Scrolled zooms about the pointer; wheel up zooms in.
func (mv *MapView) Scrolled(ev *fyne.ScrollEvent) {
	anchor := r2.Vec{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	switch {
	case ev.Scrolled.DY > 0:
		mv.stack.Zoom(1/zoomStep, anchor)
	case ev.Scrolled.DY < 0:
		mv.stack.Zoom(zoomStep, anchor)
	default:
		return
	}
	mv.Refresh()
}

// Resize tracks the widget size so the viewport follows the window.
func (mv *MapView) Resize(size fyne.Size) {
	mv.size = size
	mv.BaseWidget.Resize(size)
}

// CreateRenderer implements fyne.Widget.
func (mv *MapView) CreateRenderer() fyne.WidgetRenderer {
	return &mapViewRenderer{view: mv}
}

type mapViewRenderer struct {
	view *MapView
}

func (r *mapViewRenderer) Layout(size fyne.Size) {
	r.view.raster.Resize(size)
}

func (r *mapViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *mapViewRenderer) Refresh() {
	r.view.raster.Refresh()
}

func (r *mapViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.view.raster}
}

func (r *mapViewRenderer) Destroy() {}
