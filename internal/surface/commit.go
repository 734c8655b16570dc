package surface

import (
	"math"

	"github.com/example/stageplot/internal/stage"
)

// Place creates an item from t at pos and makes it the sole selection.
// Negative coordinates are clamped to zero.
func (s *Surface) Place(t stage.Template, pos stage.Point) stage.Item {
	pos = stage.Pt(math.Max(pos.X, 0), math.Max(pos.Y, 0))
	it := stage.Create(s.ids, t, pos)
	next := append(stage.Clone(s.items), it)
	s.sel.SelectOnly(it.ID)
	s.commit(next, it.ID, true)
	return it.Clone()
}

// PlaceAtCenter places t so that it is centred on the stage.
func (s *Surface) PlaceAtCenter(t stage.Template) stage.Item {
	w, h := t.Width, t.Height
	if w <= 0 || h <= 0 {
		w, h = stage.FallbackSide, stage.FallbackSide
	}
	pos := stage.Pt((s.stageSize.Width-w)/2, (s.stageSize.Height-h)/2)
	return s.Place(t, pos)
}

// MoveItems moves each listed item to its new position in one commit.
// Unknown ids are skipped; nothing is committed when none is known.
func (s *Surface) MoveItems(moves map[string]stage.Point) bool {
	next := stage.Clone(s.items)
	changed := false
	for i, it := range next {
		pos, ok := moves[it.ID]
		if !ok || pos == it.Position {
			continue
		}
		next[i] = stage.Move(it, pos)
		changed = true
	}
	if !changed {
		return false
	}
	s.commit(next, s.latest, true)
	return true
}

// ResizeItem sets the size and position of one item in a single commit.
func (s *Surface) ResizeItem(id string, size stage.Size, pos stage.Point, flip *bool) bool {
	next, ok := stage.Update(s.items, id, func(it stage.Item) stage.Item {
		return stage.Move(stage.Resize(it, size, flip), pos)
	})
	if !ok {
		return false
	}
	s.commit(next, s.latest, true)
	return true
}

// Flip toggles the mirrored state of the listed items.
func (s *Surface) Flip(ids ...string) bool {
	next := stage.Clone(s.items)
	changed := false
	for _, id := range ids {
		if i := stage.Index(next, id); i >= 0 {
			next[i] = stage.Flip(next[i])
			changed = true
		}
	}
	if !changed {
		return false
	}
	s.commit(next, s.latest, true)
	return true
}

// SetText replaces the free text of a label item.
func (s *Surface) SetText(id, text string) bool {
	it, ok := stage.Find(s.items, id)
	if !ok || !it.IsLabel() || it.Text() == text {
		return false
	}
	next, _ := stage.Update(s.items, id, func(it stage.Item) stage.Item { return stage.SetText(it, text) })
	s.commit(next, s.latest, true)
	return true
}

// Duplicate copies every listed item offset by delta. The copies become the
// selection and the ids of the copies are returned.
func (s *Surface) Duplicate(ids []string, delta stage.Point) []string {
	next := stage.Clone(s.items)
	var created []string
	for _, id := range ids {
		it, ok := stage.Find(s.items, id)
		if !ok {
			continue
		}
		dup := stage.Duplicate(s.ids, it, it.Position.Add(delta))
		next = append(next, dup)
		created = append(created, dup.ID)
	}
	if len(created) == 0 {
		return nil
	}
	s.sel.Replace(created)
	s.commit(next, created[len(created)-1], true)
	return created
}

// Insert adds copies of foreign items, such as a preset or an imported
// document, under fresh ids in one commit. Positions are offset by delta
// and clamped to the stage origin. The copies become the selection.
func (s *Surface) Insert(items []stage.Item, delta stage.Point) []string {
	if len(items) == 0 {
		return nil
	}
	next := stage.Clone(s.items)
	created := make([]string, 0, len(items))
	for _, it := range items {
		pos := it.Position.Add(delta)
		pos = stage.Pt(math.Max(pos.X, 0), math.Max(pos.Y, 0))
		dup := stage.Duplicate(s.ids, it, pos)
		next = append(next, dup)
		created = append(created, dup.ID)
	}
	s.sel.Replace(created)
	s.commit(next, created[len(created)-1], true)
	return created
}

// Delete removes one item.
func (s *Surface) Delete(id string) bool {
	if !s.exists(id) {
		return false
	}
	s.commit(stage.Delete(s.items, id), s.latest, true)
	return true
}

// DeleteSelected removes every selected item in one commit and clears the
// selection. It returns how many items went away.
func (s *Surface) DeleteSelected() int {
	ids := s.sel.IDs()
	if len(ids) == 0 {
		return 0
	}
	next := stage.DeleteMany(s.items, ids...)
	removed := len(s.items) - len(next)
	s.sel.Clear()
	s.commit(next, s.latest, true)
	return removed
}

// Undo restores the previous history entry. It does not record history.
func (s *Surface) Undo() bool {
	e, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.commit(e.Items, e.LatestSelectedID, false)
	return true
}

// Redo re-applies the next history entry. It does not record history.
func (s *Surface) Redo() bool {
	e, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.commit(e.Items, e.LatestSelectedID, false)
	return true
}
