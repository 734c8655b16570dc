package stage

// Find returns the item with the given id.
func Find(items []Item, id string) (Item, bool) {
	if i := Index(items, id); i >= 0 {
		return items[i], true
	}
	return Item{}, false
}

// Index returns the position of id in items or -1.
func Index(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone deep copies items. A nil slice stays nil.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// IDsOf lists the ids of items in order.
func IDsOf(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// Update applies fn to the item with the given id and returns the new list.
// When id is unknown the original slice is returned with ok == false.
func Update(items []Item, id string, fn func(Item) Item) ([]Item, bool) {
	i := Index(items, id)
	if i < 0 {
		return items, false
	}
	out := Clone(items)
	out[i] = fn(out[i])
	return out, true
}

// Delete removes the item with the given id.
func Delete(items []Item, id string) []Item {
	return DeleteMany(items, id)
}

// DeleteMany removes every item whose id is listed.
func DeleteMany(items []Item, ids ...string) []Item {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if _, ok := drop[it.ID]; ok {
			continue
		}
		out = append(out, it.Clone())
	}
	return out
}

// Dedupe drops every item whose id was already seen earlier in the list and
// returns the ids it dropped.
func Dedupe(items []Item) ([]Item, []string) {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	var dropped []string
	for _, it := range items {
		if _, ok := seen[it.ID]; ok {
			dropped = append(dropped, it.ID)
			continue
		}
		seen[it.ID] = struct{}{}
		out = append(out, it)
	}
	return out, dropped
}

// Metadata is the non-item part of a configuration. The stage core stores it
// but never interprets it.
type Metadata struct {
	Name     string            `json:"name"`
	IOTable  []Channel         `json:"ioTable,omitempty"`
	TechInfo map[string]string `json:"techInfo,omitempty"`
}

// Channel is one row of the input/output list.
type Channel struct {
	Number    int    `json:"number"`
	Direction string `json:"direction"`
	Name      string `json:"name"`
	Source    string `json:"source,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Clone deep copies m.
func (m Metadata) Clone() Metadata {
	out := Metadata{Name: m.Name}
	if m.IOTable != nil {
		out.IOTable = append([]Channel(nil), m.IOTable...)
	}
	if m.TechInfo != nil {
		out.TechInfo = make(map[string]string, len(m.TechInfo))
		for k, v := range m.TechInfo {
			out.TechInfo[k] = v
		}
	}
	return out
}
