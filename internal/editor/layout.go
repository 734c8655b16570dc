package editor

import (
	"image"
	"math"

	"github.com/example/stageplot/internal/stage"
)

const (
	paletteWidth = 168
	rowHeight    = 20
	statusHeight = 24
	stageMargin  = 12
	maxZoom      = 2
	minZoom      = 0.1
)

// layout places the palette column, the stage and the status bar inside the
// window. The stage is scaled to fit and anchored below the top margin so it
// stays put while the window is resized vertically.
type layout struct {
	width, height int
	zoom          float64
	origin        image.Point
	size          stage.Size
}

func newLayout(width, height int, size stage.Size) layout {
	l := layout{width: width, height: height, size: size, zoom: 1}
	availW := float64(width - paletteWidth - 2*stageMargin)
	availH := float64(height - statusHeight - 2*stageMargin)
	if size.Width > 0 && size.Height > 0 && availW > 0 && availH > 0 {
		l.zoom = math.Min(availW/size.Width, availH/size.Height)
	}
	l.zoom = math.Max(minZoom, math.Min(l.zoom, maxZoom))
	l.origin = image.Pt(paletteWidth+stageMargin, stageMargin)
	return l
}

// windowSize is the window needed to show size at zoom 1.
func windowSize(size stage.Size) image.Point {
	return image.Pt(
		paletteWidth+2*stageMargin+int(math.Ceil(size.Width)),
		statusHeight+2*stageMargin+int(math.Ceil(size.Height)),
	)
}

func (l layout) stageRect() image.Rectangle {
	w := int(math.Round(l.size.Width * l.zoom))
	h := int(math.Round(l.size.Height * l.zoom))
	return image.Rect(l.origin.X, l.origin.Y, l.origin.X+w, l.origin.Y+h)
}

func (l layout) paletteRect() image.Rectangle {
	return image.Rect(0, 0, paletteWidth, l.height-statusHeight)
}

func (l layout) statusRect() image.Rectangle {
	return image.Rect(0, l.height-statusHeight, l.width, l.height)
}

// toStage converts window pixels to stage coordinates.
func (l layout) toStage(x, y float32) stage.Point {
	return stage.Pt(
		(float64(x)-float64(l.origin.X))/l.zoom,
		(float64(y)-float64(l.origin.Y))/l.zoom,
	)
}

func (l layout) inPalette(x, y float32) bool {
	return image.Pt(int(x), int(y)).In(l.paletteRect())
}

func (l layout) inStage(x, y float32) bool {
	return image.Pt(int(x), int(y)).In(l.stageRect())
}
