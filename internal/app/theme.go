package app

import (
	"image/color"

	"pointlayer/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ViewerTheme tints the viewer chrome with the selection colours.
type ViewerTheme struct{}

var _ fyne.Theme = (*ViewerTheme)(nil)

func (t *ViewerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorutil.Highlight
	case theme.ColorNameSelection:
		return colorutil.WithAlpha(colorutil.Highlight, 0.4)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *ViewerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *ViewerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *ViewerTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
