package gesture

import "github.com/example/stageplot/internal/stage"

// Preview returns the items as they would look if the current gesture were
// released now. Duplicate drags keep the originals in place and append the
// moved copies, which carry no id.
func (c *Controller) Preview() []stage.Item {
	items := c.target.Items()
	switch s := c.state.(type) {
	case Dragging:
		if !s.Started {
			return items
		}
		delta := s.delta()
		var ghosts []stage.Item
		for _, a := range s.Origin {
			i := stage.Index(items, a.ID)
			if i < 0 {
				continue
			}
			moved := stage.Move(items[i], a.Position.Add(delta))
			if s.Duplicate {
				moved.ID = ""
				ghosts = append(ghosts, moved)
				continue
			}
			items[i] = moved
		}
		return append(items, ghosts...)
	case Resizing:
		size, pos := s.result(c.opts.MinSide)
		items, _ = stage.Update(items, s.ItemID, func(it stage.Item) stage.Item {
			return stage.Move(stage.Resize(it, size, nil), pos)
		})
		return items
	}
	return items
}

// Lasso returns the rectangle of an active lasso.
func (c *Controller) Lasso() (stage.Rect, bool) {
	s, ok := c.state.(LassoSelecting)
	if !ok || !s.Active {
		return stage.Rect{}, false
	}
	return stage.RectFromPoints(s.Origin, s.Current), true
}
