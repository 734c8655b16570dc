// Package theme defines the colours used to draw the stage and editor.
package theme

import (
	"image/color"
)

// Theme is a named colour palette.
type Theme struct {
	Name string

	// Window
	Background color.RGBA // behind the stage and palette
	Foreground color.RGBA // status line text

	// Stage
	StageBackground color.RGBA
	Grid            color.RGBA

	// Items
	ItemFill   color.RGBA
	ItemBorder color.RGBA
	ItemText   color.RGBA
	LabelFill  color.RGBA
	LabelText  color.RGBA
	Shadow     color.RGBA

	// Selection feedback
	Selection    color.RGBA
	Handle       color.RGBA
	HandleBorder color.RGBA
	LassoFill    color.RGBA
	LassoBorder  color.RGBA

	// Palette column
	PaletteBackground color.RGBA
	PaletteText       color.RGBA
	PaletteHover      color.RGBA
	PaletteHeading    color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		StageBackground:   color.RGBA{255, 255, 255, 255},
		Grid:              color.RGBA{232, 232, 232, 255},
		ItemFill:          color.RGBA{205, 220, 240, 255},
		ItemBorder:        color.RGBA{60, 80, 110, 255},
		ItemText:          color.RGBA{20, 30, 45, 255},
		LabelFill:         color.RGBA{255, 248, 200, 255},
		LabelText:         color.RGBA{60, 50, 0, 255},
		Shadow:            color.RGBA{0, 0, 0, 70},
		Selection:         color.RGBA{30, 120, 255, 255},
		Handle:            color.RGBA{255, 255, 255, 255},
		HandleBorder:      color.RGBA{30, 120, 255, 255},
		LassoFill:         color.RGBA{30, 120, 255, 40},
		LassoBorder:       color.RGBA{30, 120, 255, 200},
		PaletteBackground: color.RGBA{235, 235, 235, 255},
		PaletteText:       color.RGBA{0, 0, 0, 255},
		PaletteHover:      color.RGBA{200, 215, 235, 255},
		PaletteHeading:    color.RGBA{90, 90, 90, 255},
	}
}
