package gesture

import (
	"math"

	"github.com/example/stageplot/internal/stage"
)

// Handle identifies a corner resize handle.
type Handle int

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTopRight
	HandleBottomLeft
	HandleBottomRight
)

var corners = []Handle{HandleTopLeft, HandleTopRight, HandleBottomLeft, HandleBottomRight}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTopRight:
		return "top-right"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleBottomRight:
		return "bottom-right"
	}
	return "none"
}

// Corner returns the point of r the handle sits on.
func (h Handle) Corner(r stage.Rect) stage.Point {
	switch h {
	case HandleTopLeft:
		return r.Min()
	case HandleTopRight:
		return stage.Pt(r.Right(), r.Top())
	case HandleBottomLeft:
		return stage.Pt(r.Left(), r.Bottom())
	default:
		return r.Max()
	}
}

// HandleRects returns the hit boxes of the four handles of r, each size
// pixels square and centred on its corner.
func HandleRects(r stage.Rect, size float64) map[Handle]stage.Rect {
	out := make(map[Handle]stage.Rect, len(corners))
	half := size / 2
	for _, h := range corners {
		c := h.Corner(r)
		out[h] = stage.Rect{X: c.X - half, Y: c.Y - half, Width: size, Height: size}
	}
	return out
}

// SquareSide derives the new side length for a square resize. The larger
// of the width- and height-affecting pointer deltas wins, signed so that
// dragging a handle away from the item grows it.
func SquareSide(h Handle, origin stage.Size, delta stage.Point, minSide float64) float64 {
	var dw, dh float64
	switch h {
	case HandleTopLeft:
		dw, dh = -delta.X, -delta.Y
	case HandleTopRight:
		dw, dh = delta.X, -delta.Y
	case HandleBottomLeft:
		dw, dh = -delta.X, delta.Y
	default:
		dw, dh = delta.X, delta.Y
	}
	change := dw
	if math.Abs(dh) > math.Abs(dw) {
		change = dh
	}
	side := math.Max(origin.Width, origin.Height) + change
	return math.Max(side, minSide)
}

// anchored returns the top-left corner that keeps the corner opposite h
// fixed when the item becomes side pixels square.
func anchored(h Handle, pos stage.Point, origin stage.Size, side float64) stage.Point {
	switch h {
	case HandleTopLeft:
		return stage.Pt(pos.X+origin.Width-side, pos.Y+origin.Height-side)
	case HandleTopRight:
		return stage.Pt(pos.X, pos.Y+origin.Height-side)
	case HandleBottomLeft:
		return stage.Pt(pos.X+origin.Width-side, pos.Y)
	default:
		return pos
	}
}

func (r Resizing) result(minSide float64) (stage.Size, stage.Point) {
	side := SquareSide(r.Handle, r.OriginSize, r.Pointer.Sub(r.Press), minSide)
	return stage.Square(side), anchored(r.Handle, r.OriginPos, r.OriginSize, side)
}
