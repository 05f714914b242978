// Package colorutil provides colour constants and parsing shared by styles,
// the project file and the renderers.
package colorutil

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned when a colour string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Common marker colours.
var (
	Black       = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	White       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Red         = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	Transparent = color.NRGBA{}

	// Highlight is the fill of a selected circle or regular shape.
	Highlight = color.NRGBA{R: 0, G: 153, B: 255, A: 255}
)

// Parse accepts "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)" and
// "rgba(r, g, b, a)" with a in [0, 1].
func Parse(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// MustParse is Parse for package-level constants; it panics on bad input.
func MustParse(s string) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (color.NRGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: #%s", ErrInvalidColor, h)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func parseFunc(args string, n int) (color.NRGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return color.NRGBA{}, fmt.Errorf("%w: expected %d components, got %d", ErrInvalidColor, n, len(parts))
	}
	var c [4]uint8
	c[3] = 255
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w: component %q", ErrInvalidColor, p)
		}
		if i == 3 {
			f *= 255
		}
		c[i] = uint8(clamp(f+0.5, 0, 255))
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// WithAlpha returns c with its alpha scaled by factor (0.0 - 1.0).
func WithAlpha(c color.NRGBA, factor float64) color.NRGBA {
	c.A = uint8(clamp(float64(c.A)*factor, 0, 255))
	return c
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
