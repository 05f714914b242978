// Package prefs remembers the viewer's last project and view between runs.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"pointlayer/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r2"
)

const prefsFile = "preferences.json"

// View is a saved map view.
type View struct {
	CenterX    float64 `json:"center_x"`
	CenterY    float64 `json:"center_y"`
	Resolution float64 `json:"resolution"`
	Rotation   float64 `json:"rotation"`
}

// Prefs stores viewer preferences.
type Prefs struct {
	mu   sync.RWMutex
	path string

	LastProject string `json:"last_project,omitempty"`
	View        *View  `json:"view,omitempty"`
}

// DefaultPath returns ~/.config/pointlayer/preferences.json.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "pointlayer", prefsFile)
}

// Load reads preferences from path. Returns empty preferences if the file
// doesn't exist or cannot be parsed.
func Load(path string) *Prefs {
	p := &Prefs{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	if err := json.Unmarshal(data, p); err != nil {
		return &Prefs{path: path}
	}
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Project returns the last opened project, or "".
func (p *Prefs) Project() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.LastProject
}

// SetProject records the open project.
func (p *Prefs) SetProject(path string) {
	p.mu.Lock()
	p.LastProject = path
	p.mu.Unlock()
}

// RememberView stores the view state of vp.
func (p *Prefs) RememberView(vp geometry.Viewport) {
	p.mu.Lock()
	p.View = &View{
		CenterX:    vp.Center.X,
		CenterY:    vp.Center.Y,
		Resolution: vp.Resolution,
		Rotation:   vp.Rotation,
	}
	p.mu.Unlock()
}

// RestoreView applies the saved view to vp. Size and pixel ratio are kept.
func (p *Prefs) RestoreView(vp geometry.Viewport) geometry.Viewport {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.View == nil || p.View.Resolution <= 0 {
		return vp
	}
	vp.Center = r2.Vec{X: p.View.CenterX, Y: p.View.CenterY}
	vp.Resolution = p.View.Resolution
	vp.Rotation = p.View.Rotation
	return vp
}
