// Package stage holds the placed-item model of a stage plot and the pure
// transformations applied to it. Nothing here has side effects; every
// function returns new values and leaves its inputs untouched.
package stage

const (
	// FallbackSide is used when a template carries no default size.
	FallbackSide = 100
	// MinSide is the smallest width or height an item may be resized to.
	MinSide = 30
	// KindLabel marks templates whose items carry free text.
	KindLabel = "label"
	// LabelPlaceholder is the initial text of a freshly placed label.
	LabelPlaceholder = "Double-click to edit"
)

// Template is a palette entry used to spawn items.
type Template struct {
	Key       string  `json:"key" yaml:"key"`
	Name      string  `json:"name" yaml:"name"`
	Icon      string  `json:"icon" yaml:"icon"`
	Category  string  `json:"category" yaml:"category"`
	Kind      string  `json:"kind,omitempty" yaml:"kind"`
	Width     float64 `json:"width,omitempty" yaml:"width"`
	Height    float64 `json:"height,omitempty" yaml:"height"`
	Resizable bool    `json:"resizable" yaml:"resizable"`
}

// TemplateRef is the part of a template an item remembers. It never changes
// after the item is created.
type TemplateRef struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Kind     string `json:"kind,omitempty"`
}

// Item is an object placed on the stage.
type Item struct {
	ID        string      `json:"id"`
	Template  TemplateRef `json:"template"`
	Position  Point       `json:"position"`
	Size      Size        `json:"size"`
	Resizable bool        `json:"resizable"`
	IsFlipped bool        `json:"isFlipped,omitempty"`
	FreeText  *string     `json:"freeText,omitempty"`
}

// Rect returns the area covered by the item.
func (it Item) Rect() Rect {
	return Rect{X: it.Position.X, Y: it.Position.Y, Width: it.Size.Width, Height: it.Size.Height}
}

// IsLabel reports whether the item carries free text.
func (it Item) IsLabel() bool { return it.Template.Kind == KindLabel }

// Text returns the free text or "" when the item has none.
func (it Item) Text() string {
	if it.FreeText == nil {
		return ""
	}
	return *it.FreeText
}

// Clone returns a copy that shares no memory with it.
func (it Item) Clone() Item {
	if it.FreeText != nil {
		s := *it.FreeText
		it.FreeText = &s
	}
	return it
}

// Create builds a new item from t at pos with an id drawn from ids.
func Create(ids *IDs, t Template, pos Point) Item {
	w, h := t.Width, t.Height
	if w <= 0 || h <= 0 {
		w, h = FallbackSide, FallbackSide
	}
	it := Item{
		ID: ids.Next(),
		Template: TemplateRef{
			Key:      t.Key,
			Name:     t.Name,
			Icon:     t.Icon,
			Category: t.Category,
			Kind:     t.Kind,
		},
		Position:  pos,
		Size:      Size{Width: w, Height: h},
		Resizable: t.Resizable,
	}
	if t.Kind == KindLabel {
		text := LabelPlaceholder
		it.FreeText = &text
	}
	return it
}

// Move replaces the position. No clamping happens here.
func Move(it Item, pos Point) Item {
	it = it.Clone()
	it.Position = pos
	return it
}

// Resize replaces the size, and the flip state when flip is non-nil. Sides
// below MinSide are raised to it.
func Resize(it Item, size Size, flip *bool) Item {
	it = it.Clone()
	it.Size = Size{Width: clampSide(size.Width), Height: clampSide(size.Height)}
	if flip != nil {
		it.IsFlipped = *flip
	}
	return it
}

// Flip toggles the mirrored state.
func Flip(it Item) Item {
	it = it.Clone()
	it.IsFlipped = !it.IsFlipped
	return it
}

// SetText replaces the free text of a label. Other items are returned as is.
func SetText(it Item, text string) Item {
	if !it.IsLabel() {
		return it
	}
	it = it.Clone()
	it.FreeText = &text
	return it
}

// Duplicate copies it to pos under a fresh id.
func Duplicate(ids *IDs, it Item, pos Point) Item {
	dup := it.Clone()
	dup.ID = ids.Next()
	dup.Position = pos
	return dup
}

func clampSide(v float64) float64 {
	if v < MinSide {
		return MinSide
	}
	return v
}
