package surface

// Selection returns the selected ids in sorted order.
func (s *Surface) Selection() []string { return s.sel.IDs() }

// IsSelected reports whether id is selected.
func (s *Surface) IsSelected(id string) bool { return s.sel.Has(id) }

// LatestSelectedID returns the most recently selected item or "".
func (s *Surface) LatestSelectedID() string { return s.latest }

// SelectOnly makes id the sole selection. Unknown ids are ignored.
func (s *Surface) SelectOnly(id string) {
	if !s.exists(id) {
		return
	}
	s.sel.SelectOnly(id)
	s.latest = id
}

// Toggle adds or removes id from the selection.
func (s *Surface) Toggle(id string) {
	if !s.exists(id) {
		return
	}
	if s.sel.Toggle(id) {
		s.latest = id
	} else if s.latest == id {
		s.latest = ""
	}
}

// SetSelection replaces the selection with the known ids among ids.
func (s *Surface) SetSelection(ids []string) {
	var known []string
	for _, id := range ids {
		if s.exists(id) {
			known = append(known, id)
		}
	}
	s.sel.Replace(known)
	if s.latest != "" && !s.sel.Has(s.latest) {
		s.latest = ""
	}
}

// ClearSelection deselects everything.
func (s *Surface) ClearSelection() {
	s.sel.Clear()
	s.latest = ""
}
