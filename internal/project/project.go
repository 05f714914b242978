// Package project provides project file handling and persistence. A project
// file names the marker styles, the graphics that use them and the initial
// view.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"pointlayer/internal/graphic"
	"pointlayer/internal/style"
	"pointlayer/pkg/colorutil"
	"pointlayer/pkg/geometry"

	"gonum.org/v1/gonum/spatial/r2"
)

// CurrentVersion is the file format version written by Save.
const CurrentVersion = 1

// Supported coordinate reference systems.
const (
	CRSMercator = "EPSG:3857"
	CRSLonLat   = "EPSG:4326"
)

// Style kinds as written in project files.
const (
	KindCircle    = "circle"
	KindRegular   = "regular"
	KindClover    = "clover"
	KindHitClover = "hitclover"
)

var (
	ErrVersion      = errors.New("unsupported project version")
	ErrCRS          = errors.New("unsupported crs")
	ErrUnknownKind  = errors.New("unknown style kind")
	ErrUnknownStyle = errors.New("unknown style")
)

// File represents a point layer project file.
type File struct {
	Version     int       `json:"version"`
	Name        string    `json:"name"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
	Description string    `json:"description,omitempty"`
	CRS         string    `json:"crs,omitempty"`

	View View `json:"view"`

	Styles           map[string]StyleDef `json:"styles"`
	HighlightStyle   string              `json:"highlightStyle,omitempty"`
	HighlightEnabled *bool               `json:"highlightEnabled,omitempty"`

	Graphics []GraphicDef `json:"graphics"`
}

// View is the initial map view. Center is in the project CRS.
type View struct {
	Center     [2]float64 `json:"center"`
	Resolution float64    `json:"resolution,omitempty"`
	Rotation   float64    `json:"rotation,omitempty"` // radians
}

// StyleDef is a serialised marker style. Angles of clover kinds are in
// degrees, those of regular shapes in radians.
type StyleDef struct {
	Kind       string     `json:"kind"`
	Radius     float64    `json:"radius,omitempty"`
	Radius2    float64    `json:"radius2,omitempty"`
	Points     int        `json:"points,omitempty"`
	Angle      float64    `json:"angle,omitempty"`
	Rotation   float64    `json:"rotation,omitempty"`
	SpaceAngle float64    `json:"spaceAngle,omitempty"`
	StartAngle float64    `json:"startAngle,omitempty"`
	EndAngle   float64    `json:"endAngle,omitempty"`
	Fill       string     `json:"fill,omitempty"`
	Stroke     *StrokeDef `json:"stroke,omitempty"`
}

// StrokeDef is a serialised outline.
type StrokeDef struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// GraphicDef places one marker. An empty Style leaves the graphic
// unstyled, so it is neither drawn nor hit.
type GraphicDef struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Style string  `json:"style,omitempty"`
}

// Scene is a built project, ready to hand to a layer and a map.
type Scene struct {
	Graphics         []*graphic.Graphic
	Highlight        *style.Style
	HighlightEnabled bool
	Center           r2.Vec // EPSG:3857
	Resolution       float64
	Rotation         float64
}

// New creates an empty project in web mercator.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  CurrentVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		CRS:      CRSMercator,
		View:     View{Resolution: 1},
		Styles:   map[string]StyleDef{},
	}
}

// Load loads a project file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if proj.Version > CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersion, proj.Version)
	}
	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()
	if p.Version == 0 {
		p.Version = CurrentVersion
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AddStyle registers a named style definition.
func (p *File) AddStyle(name string, def StyleDef) {
	if p.Styles == nil {
		p.Styles = map[string]StyleDef{}
	}
	p.Styles[name] = def
	p.Modified = time.Now()
}

// AddGraphic places a marker using a named style.
func (p *File) AddGraphic(x, y float64, styleName string) {
	p.Graphics = append(p.Graphics, GraphicDef{X: x, Y: y, Style: styleName})
	p.Modified = time.Now()
}

// Build resolves styles and converts coordinates to web mercator. Each
// graphic gets its own style instance.
func (p *File) Build() (*Scene, error) {
	toMap, err := p.projection()
	if err != nil {
		return nil, err
	}

	styles := make(map[string]*style.Style, len(p.Styles))
	for name, def := range p.Styles {
		s, err := def.Build()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		styles[name] = s
	}

	scene := &Scene{
		HighlightEnabled: p.HighlightEnabled == nil || *p.HighlightEnabled,
		Resolution:       p.View.Resolution,
		Rotation:         p.View.Rotation,
	}
	if scene.Resolution <= 0 {
		scene.Resolution = 1
	}
	cx, cy := toMap(p.View.Center[0], p.View.Center[1])
	scene.Center = r2.Vec{X: cx, Y: cy}

	if p.HighlightStyle != "" {
		s, ok := styles[p.HighlightStyle]
		if !ok {
			return nil, fmt.Errorf("highlight: %w %q", ErrUnknownStyle, p.HighlightStyle)
		}
		scene.Highlight = s
	}

	scene.Graphics = make([]*graphic.Graphic, 0, len(p.Graphics))
	for i, gd := range p.Graphics {
		var s *style.Style
		if gd.Style != "" {
			if _, ok := styles[gd.Style]; !ok {
				return nil, fmt.Errorf("graphic %d: %w %q", i, ErrUnknownStyle, gd.Style)
			}
			if s, err = p.Styles[gd.Style].Build(); err != nil {
				return nil, fmt.Errorf("graphic %d: %w", i, err)
			}
		}
		x, y := toMap(gd.X, gd.Y)
		scene.Graphics = append(scene.Graphics, graphic.New(x, y, s))
	}
	return scene, nil
}

func (p *File) projection() (func(x, y float64) (float64, float64), error) {
	switch p.CRS {
	case "", CRSMercator:
		return func(x, y float64) (float64, float64) { return x, y }, nil
	case CRSLonLat:
		return graphic.LonLatToMercator, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrCRS, p.CRS)
}

// Build converts the definition into a style.
func (d StyleDef) Build() (*style.Style, error) {
	fill, err := d.fill()
	if err != nil {
		return nil, err
	}
	stroke, err := d.stroke()
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case KindCircle:
		return style.NewCircle(style.CircleOptions{Radius: d.Radius, Fill: fill, Stroke: stroke}), nil
	case KindRegular:
		return style.NewRegularShape(style.RegularShapeOptions{
			Points:   d.Points,
			Radius:   d.Radius,
			Radius2:  d.Radius2,
			Angle:    d.Angle,
			Rotation: d.Rotation,
			Fill:     fill,
			Stroke:   stroke,
		}), nil
	case KindClover:
		return style.NewClover(style.CloverOptions{
			Radius:     d.Radius,
			Angle:      d.Angle,
			SpaceAngle: d.SpaceAngle,
			Fill:       fill,
			Stroke:     stroke,
		}), nil
	case KindHitClover:
		return style.NewHitClover(style.HitCloverOptions{
			Radius:     d.Radius,
			Angle:      d.Angle,
			StartAngle: d.StartAngle,
			EndAngle:   d.EndAngle,
			Fill:       fill,
			Stroke:     stroke,
		}), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, d.Kind)
}

func (d StyleDef) fill() (*style.Fill, error) {
	if d.Fill == "" {
		return nil, nil
	}
	c, err := colorutil.Parse(d.Fill)
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	return &style.Fill{Color: c}, nil
}

func (d StyleDef) stroke() (*style.Stroke, error) {
	if d.Stroke == nil {
		return nil, nil
	}
	c, err := colorutil.Parse(d.Stroke.Color)
	if err != nil {
		return nil, fmt.Errorf("stroke: %w", err)
	}
	return &style.Stroke{Color: c, Width: d.Stroke.Width}, nil
}

// Viewport returns the scene's view sized for a map of size CSS pixels.
func (s *Scene) Viewport(size r2.Vec, pixelRatio float64) geometry.Viewport {
	return geometry.Viewport{
		Size:       size,
		PixelRatio: pixelRatio,
		Resolution: s.Resolution,
		Rotation:   s.Rotation,
		Center:     s.Center,
	}
}
