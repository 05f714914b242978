// Package app ties a project file, a point layer and a map together for the
// viewer and the command line tool.
package app

import (
	"fmt"
	"sync"

	"pointlayer/internal/config"
	"pointlayer/internal/graphic"
	"pointlayer/internal/host"
	"pointlayer/internal/layer"
	"pointlayer/internal/project"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r2"
)

// Session holds the open project and the layer showing it.
type Session struct {
	cfg   *config.Config
	stack *host.Stack
	log   zerolog.Logger

	mu        sync.Mutex
	path      string
	layer     *layer.Layer
	listeners []func()
}

// NewSession creates an empty session sized by cfg.
func NewSession(cfg *config.Config, log zerolog.Logger) *Session {
	size := r2.Vec{X: float64(cfg.View.Width), Y: float64(cfg.View.Height)}
	scene := &project.Scene{Resolution: 1, HighlightEnabled: cfg.Highlight.Enabled}

	stack := host.NewStack(scene.Viewport(size, cfg.View.PixelRatio))
	stack.SetRatio(cfg.View.Ratio)
	stack.SetLogger(log)

	s := &Session{cfg: cfg, stack: stack, log: log}
	s.install(scene)
	return s
}

// Stack returns the map hosting the layer.
func (s *Session) Stack() *host.Stack {
	return s.stack
}

// Layer returns the current point layer.
func (s *Session) Layer() *layer.Layer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layer
}

// Path returns the open project file, or "".
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// OnChange registers fn with the current layer and every layer installed
// by later opens.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	l := s.layer
	s.mu.Unlock()
	l.OnChange(fn)
}

// Open loads a project, replaces the layer and moves the view to the
// project's initial view.
func (s *Session) Open(path string) error {
	scene, err := loadScene(path)
	if err != nil {
		return err
	}

	vp := s.stack.Viewport()
	s.stack.SetViewport(scene.Viewport(vp.Size, vp.PixelRatio))
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
	s.install(scene)

	s.log.Info().Str("path", path).Int("graphics", len(scene.Graphics)).Msg("project opened")
	return nil
}

// Reload re-reads the open project and swaps in its graphics, keeping the
// view and highlight settings.
func (s *Session) Reload() error {
	path := s.Path()
	if path == "" {
		return fmt.Errorf("reload: no project open")
	}
	scene, err := loadScene(path)
	if err != nil {
		return err
	}
	s.Layer().SetGraphics(scene.Graphics...)
	s.log.Info().Str("path", path).Int("graphics", len(scene.Graphics)).Msg("project reloaded")
	return nil
}

// Tap hit-tests the layer at a view pixel.
func (s *Session) Tap(pixel r2.Vec) *graphic.Graphic {
	vp := s.stack.Viewport()
	coord := vp.CoordinateFromPixel(pixel)
	g := s.Layer().HitTest(coord, vp.Resolution, &pixel)
	if g != nil {
		s.log.Debug().Float64("x", g.Coordinate().X).Float64("y", g.Coordinate().Y).Msg("hit")
	}
	return g
}

func loadScene(path string) (*project.Scene, error) {
	p, err := project.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	scene, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("build project %s: %w", path, err)
	}
	return scene, nil
}

func (s *Session) install(scene *project.Scene) {
	opts := layer.DefaultOptions()
	opts.Map = s.stack
	opts.Graphics = scene.Graphics
	opts.HighlightEnabled = s.cfg.Highlight.Enabled && scene.HighlightEnabled
	opts.HighlightStyle = scene.Highlight
	opts.Ratio = s.cfg.View.Ratio
	opts.Logger = &s.log
	next := layer.New(opts)

	s.mu.Lock()
	prev := s.layer
	s.layer = next
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	if prev != nil {
		prev.Clear()
		s.stack.RemoveLayer(prev)
	}
	for _, fn := range listeners {
		next.OnChange(fn)
	}
	s.stack.AddLayer(next)
}
