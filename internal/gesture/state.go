package gesture

import "github.com/example/stageplot/internal/stage"

// State is the gesture in progress. Values are never modified once handed
// out; the controller replaces its state with a new value on every step.
type State interface {
	isState()
}

// Idle means no gesture is active.
type Idle struct{}

// Anchor is where an item sat when a drag began.
type Anchor struct {
	ID       string
	Position stage.Point
}

// Dragging moves one item, or every selected item when Multi is set.
type Dragging struct {
	ItemID     string
	GrabOffset stage.Point
	Multi      bool
	// Origin holds the starting position of every item that moves with
	// the drag, dragged item included.
	Origin  []Anchor
	Press   stage.Point
	Pointer stage.Point
	// Started is set once the pointer leaves the dead zone. A release
	// before that is treated as a click.
	Started bool
	// Duplicate latches once the duplicate modifier is seen.
	Duplicate bool
	// Toggle records that Shift was held on press.
	Toggle bool
}

// Resizing drags one corner handle of an item.
type Resizing struct {
	ItemID     string
	Handle     Handle
	OriginPos  stage.Point
	OriginSize stage.Size
	Press      stage.Point
	Pointer    stage.Point
}

// LassoSelecting draws a selection rectangle over the background.
type LassoSelecting struct {
	Origin   stage.Point
	Current  stage.Point
	Baseline []string
	Additive bool
	// Active is set once the pointer leaves the dead zone.
	Active bool
}

func (Idle) isState()           {}
func (Dragging) isState()       {}
func (Resizing) isState()       {}
func (LassoSelecting) isState() {}

func (d Dragging) origin(id string) (stage.Point, bool) {
	for _, a := range d.Origin {
		if a.ID == id {
			return a.Position, true
		}
	}
	return stage.Point{}, false
}

// delta is the offset every moving item receives, clamped so that none of
// them ends up left of or above the stage origin.
func (d Dragging) delta() stage.Point {
	start, _ := d.origin(d.ItemID)
	drop := d.Pointer.Sub(d.GrabOffset)
	delta := drop.Sub(start)
	for _, a := range d.Origin {
		if lx := minZero(-a.Position.X); delta.X < lx {
			delta.X = lx
		}
		if ly := minZero(-a.Position.Y); delta.Y < ly {
			delta.Y = ly
		}
	}
	return delta
}

func (d Dragging) ids() []string {
	out := make([]string, len(d.Origin))
	for i, a := range d.Origin {
		out[i] = a.ID
	}
	return out
}

func minZero(v float64) float64 {
	if v > 0 {
		return 0
	}
	return v
}
