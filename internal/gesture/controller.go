// Package gesture turns pointer, keyboard and focus events into edits on a
// stage. It holds no items of its own and only writes through a Target.
package gesture

import (
	"log"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/stageplot/internal/selection"
	"github.com/example/stageplot/internal/stage"
)

// DefaultHandleSize is the edge length of a corner resize handle.
const DefaultHandleSize = 8

// Target is the editing surface a Controller drives.
type Target interface {
	Items() []stage.Item
	Item(id string) (stage.Item, bool)
	Selection() []string
	IsSelected(id string) bool
	SelectOnly(id string)
	Toggle(id string)
	SetSelection(ids []string)
	ClearSelection()
	MoveItems(moves map[string]stage.Point) bool
	ResizeItem(id string, size stage.Size, pos stage.Point, flip *bool) bool
	Duplicate(ids []string, delta stage.Point) []string
	DeleteSelected() int
	Flip(ids ...string) bool
	Undo() bool
	Redo() bool
}

// Capturer keeps pointer events flowing to the controller while a gesture
// is active, even when the pointer leaves the stage.
type Capturer interface {
	CapturePointer()
	ReleasePointer()
}

// Options tunes gesture recognition.
type Options struct {
	DeadZone   float64
	HandleSize float64
	MinSide    float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithOptions overrides the recognition thresholds. Zero fields keep
// their defaults.
func WithOptions(o Options) Option {
	return func(c *Controller) {
		if o.DeadZone > 0 {
			c.opts.DeadZone = o.DeadZone
		}
		if o.HandleSize > 0 {
			c.opts.HandleSize = o.HandleSize
		}
		if o.MinSide > 0 {
			c.opts.MinSide = o.MinSide
		}
	}
}

// WithCapturer installs a pointer capturer.
func WithCapturer(cp Capturer) Option { return func(c *Controller) { c.capturer = cp } }

// WithLogger sets the logger used for aborted gestures.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// Controller is the gesture state machine.
type Controller struct {
	target   Target
	capturer Capturer
	logger   *log.Logger
	opts     Options

	state     State
	input     Input
	captured  bool
	textFocus bool
	// lassoDone suppresses the background click that some hosts deliver
	// right after a lasso release. It is cleared by the next press.
	lassoDone bool
}

// New returns a controller driving t.
func New(t Target, opts ...Option) *Controller {
	c := &Controller{
		target: t,
		state:  Idle{},
		opts: Options{
			DeadZone:   selection.DefaultDeadZone,
			HandleSize: DefaultHandleSize,
			MinSide:    stage.MinSide,
		},
	}
	for _, o := range opts {
		o(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// State returns the gesture in progress.
func (c *Controller) State() State { return c.state }

// Input returns the tracked modifier state.
func (c *Controller) Input() Input { return c.input }

// Options returns the active thresholds.
func (c *Controller) Options() Options { return c.opts }

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool {
	_, idle := c.state.(Idle)
	return !idle
}

// SetTextFocus tells the controller an inline text editor has the
// keyboard. Shortcuts are ignored while it is set.
func (c *Controller) SetTextFocus(focused bool) { c.textFocus = focused }

// TextFocus reports whether a text field has the keyboard.
func (c *Controller) TextFocus() bool { return c.textFocus }

// HandleMouse feeds one pointer event, in stage coordinates.
func (c *Controller) HandleMouse(e mouse.Event) {
	c.input = inputFrom(e.Modifiers)
	p := stage.Pt(float64(e.X), float64(e.Y))
	switch e.Direction {
	case mouse.DirPress:
		if e.Button == mouse.ButtonLeft {
			c.press(p)
		}
	case mouse.DirRelease:
		if e.Button == mouse.ButtonLeft {
			c.release(p)
		}
	case mouse.DirNone:
		c.move(p)
	}
}

// HandleKey feeds one key event and returns the action it triggered.
func (c *Controller) HandleKey(e key.Event) Action {
	c.input = c.input.withKey(e)
	if d, ok := c.state.(Dragging); ok && c.input.Duplicate && !d.Duplicate {
		d.Duplicate = true
		c.state = d
	}
	if e.Direction != key.DirPress || c.textFocus {
		return ActionNone
	}
	a := Lookup(e)
	switch a {
	case ActionCancel:
		if !c.Active() {
			return ActionNone
		}
		c.abort("cancelled")
	case ActionUndo:
		if !c.target.Undo() {
			return ActionNone
		}
	case ActionRedo:
		if !c.target.Redo() {
			return ActionNone
		}
	case ActionDelete:
		if c.target.DeleteSelected() == 0 {
			return ActionNone
		}
	case ActionFlip:
		if !c.target.Flip(c.target.Selection()...) {
			return ActionNone
		}
	}
	return a
}

// HandleLifecycle resets modifier and gesture state when the window loses
// focus or goes away, since the matching release events never arrive.
func (c *Controller) HandleLifecycle(e lifecycle.Event) {
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff || e.To == lifecycle.StageDead {
		c.Blur()
	}
}

// Blur forgets held modifiers and aborts any gesture.
func (c *Controller) Blur() {
	c.input = Input{}
	if c.Active() {
		c.abort("focus lost")
	}
}

// Click handles a click synthesised by the host after a press and release
// at p. Clicks on items are already handled by the release; a background
// click clears the selection unless a lasso just finished.
func (c *Controller) Click(p stage.Point) {
	if c.Active() {
		return
	}
	if _, ok := hitItem(c.target.Items(), p); ok {
		return
	}
	c.backgroundClick()
}

func (c *Controller) press(p stage.Point) {
	c.lassoDone = false
	if c.Active() {
		return
	}
	items := c.target.Items()
	if it, h, ok := c.hitHandle(items, p); ok {
		c.state = Resizing{
			ItemID:     it.ID,
			Handle:     h,
			OriginPos:  it.Position,
			OriginSize: it.Size,
			Press:      p,
			Pointer:    p,
		}
		c.capture()
		return
	}
	if it, ok := hitItem(items, p); ok {
		c.startDrag(items, it, p)
		c.capture()
		return
	}
	c.state = LassoSelecting{
		Origin:   p,
		Current:  p,
		Baseline: c.target.Selection(),
		Additive: c.input.Shift,
	}
	c.capture()
}

func (c *Controller) startDrag(items []stage.Item, it stage.Item, p stage.Point) {
	toggle := c.input.Shift
	if !toggle && !c.target.IsSelected(it.ID) {
		c.target.SelectOnly(it.ID)
	}
	sel := c.target.Selection()
	multi := c.target.IsSelected(it.ID) && len(sel) > 1
	var origin []Anchor
	if multi {
		for _, other := range items {
			if c.target.IsSelected(other.ID) {
				origin = append(origin, Anchor{ID: other.ID, Position: other.Position})
			}
		}
	} else {
		origin = []Anchor{{ID: it.ID, Position: it.Position}}
	}
	c.state = Dragging{
		ItemID:     it.ID,
		GrabOffset: p.Sub(it.Position),
		Multi:      multi,
		Origin:     origin,
		Press:      p,
		Pointer:    p,
		Duplicate:  c.input.Duplicate,
		Toggle:     toggle,
	}
}

func (c *Controller) move(p stage.Point) {
	switch s := c.state.(type) {
	case Dragging:
		if !c.alive(s.ItemID) {
			return
		}
		s.Pointer = p
		if !s.Started && selection.PastDeadZone(s.Press, p, c.opts.DeadZone) {
			s.Started = true
		}
		s.Duplicate = s.Duplicate || c.input.Duplicate
		c.state = s
	case Resizing:
		if !c.alive(s.ItemID) {
			return
		}
		s.Pointer = p
		c.state = s
	case LassoSelecting:
		s.Current = p
		if !s.Active && selection.PastDeadZone(s.Origin, p, c.opts.DeadZone) {
			s.Active = true
		}
		c.state = s
		if s.Active {
			c.applyLasso(s)
		}
	}
}

func (c *Controller) release(p stage.Point) {
	c.move(p)
	switch s := c.state.(type) {
	case Dragging:
		c.finish()
		c.drop(s)
	case Resizing:
		c.finish()
		size, pos := s.result(c.opts.MinSide)
		if it, ok := c.target.Item(s.ItemID); ok && (it.Size != size || it.Position != pos) {
			c.target.ResizeItem(s.ItemID, size, pos, nil)
		}
	case LassoSelecting:
		c.finish()
		if s.Active {
			c.applyLasso(s)
			c.lassoDone = true
			return
		}
		c.backgroundClick()
	}
}

// drop commits a finished drag. Anchored items deleted mid-drag are skipped
// by the target, so only the survivors move or get copied.
func (c *Controller) drop(s Dragging) {
	if !s.Started {
		if s.Toggle {
			c.target.Toggle(s.ItemID)
		} else {
			c.target.SelectOnly(s.ItemID)
		}
		return
	}
	delta := s.delta()
	if s.Duplicate {
		c.target.Duplicate(s.ids(), delta)
		return
	}
	if delta == (stage.Point{}) {
		return
	}
	moves := make(map[string]stage.Point, len(s.Origin))
	for _, a := range s.Origin {
		moves[a.ID] = a.Position.Add(delta)
	}
	c.target.MoveItems(moves)
}

func (c *Controller) applyLasso(s LassoSelecting) {
	var set selection.Set
	set.ApplyLassoResult(selection.Candidates(c.target.Items(), s.Origin, s.Current), s.Baseline, s.Additive)
	c.target.SetSelection(set.IDs())
}

func (c *Controller) backgroundClick() {
	if c.lassoDone {
		c.lassoDone = false
		return
	}
	c.target.ClearSelection()
}

// alive aborts the gesture when its item has disappeared.
func (c *Controller) alive(id string) bool {
	if _, ok := c.target.Item(id); ok {
		return true
	}
	c.abort("item " + id + " no longer exists")
	return false
}

func (c *Controller) abort(reason string) {
	c.logger.Printf("gesture: abort: %s", reason)
	c.finish()
}

func (c *Controller) finish() {
	c.state = Idle{}
	if c.captured {
		c.captured = false
		c.capturer.ReleasePointer()
	}
}

func (c *Controller) capture() {
	if c.capturer != nil && !c.captured {
		c.captured = true
		c.capturer.CapturePointer()
	}
}

// hitItem returns the topmost item under p.
func hitItem(items []stage.Item, p stage.Point) (stage.Item, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Rect().Contains(p) {
			return items[i], true
		}
	}
	return stage.Item{}, false
}

// hitHandle returns the selected resizable item whose handle is under p.
func (c *Controller) hitHandle(items []stage.Item, p stage.Point) (stage.Item, Handle, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if !it.Resizable || !c.target.IsSelected(it.ID) {
			continue
		}
		for _, h := range corners {
			if HandleRects(it.Rect(), c.opts.HandleSize)[h].Contains(p) {
				return it, h, true
			}
		}
	}
	return stage.Item{}, HandleNone, false
}
