// Package editor hosts a workspace in a shiny window: a template palette on
// the left, the stage on the right and a status line underneath.
package editor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/stageplot/internal/gesture"
	"github.com/example/stageplot/internal/palette"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/theme"
	"github.com/example/stageplot/internal/workspace"
)

const (
	doubleClick     = 400 * time.Millisecond
	messageDuration = 3 * time.Second
)

// now is replaced in tests.
var now = time.Now

// Option configures an Editor.
type Option func(*Editor)

// WithCatalog sets the templates offered in the palette.
func WithCatalog(c *palette.Catalog) Option { return func(e *Editor) { e.catalog = c } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(e *Editor) { e.theme = t } }

// WithExportDir sets where Ctrl+E writes PNG files.
func WithExportDir(dir string) Option { return func(e *Editor) { e.exportDir = dir } }

// WithGestureOptions tunes the dead zone, handle size and minimum side.
func WithGestureOptions(o gesture.Options) Option { return func(e *Editor) { e.gestureOpts = &o } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(e *Editor) { e.logger = l } }

// WithOnClose registers fn to run once when the window closes.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// labelEdit is an in-progress edit of a label's text.
type labelEdit struct {
	id   string
	text []rune
}

// paletteDrag is a template being dragged out of the palette.
type paletteDrag struct {
	template stage.Template
	row      int
	pointer  stage.Point
	over     bool
}

// Editor routes window events to the palette, the gesture controller and
// the workspace commands. It is not safe for concurrent use; the window
// loop owns it.
type Editor struct {
	ws          *workspace.Workspace
	ctl         *gesture.Controller
	catalog     *palette.Catalog
	theme       *theme.Theme
	exportDir   string
	gestureOpts *gesture.Options
	logger      *log.Logger
	onClose     func()

	lay      layout
	palette  paletteView
	captured bool
	drag     *paletteDrag
	edit     *labelEdit

	lastPress   time.Time
	lastPressID string

	message      string
	messageUntil time.Time
	quit         bool

	updateCh chan struct{}
}

// New builds an editor around ws.
func New(ws *workspace.Workspace, opts ...Option) *Editor {
	e := &Editor{ws: ws, updateCh: make(chan struct{}, 1)}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	if e.theme == nil {
		e.theme = ws.Theme()
	}
	if e.catalog == nil {
		cat, err := palette.Default()
		if err != nil {
			e.logger.Printf("editor: load catalog: %v", err)
		}
		e.catalog = cat
	}
	gopts := []gesture.Option{gesture.WithCapturer(e), gesture.WithLogger(e.logger)}
	if e.gestureOpts != nil {
		gopts = append(gopts, gesture.WithOptions(*e.gestureOpts))
	}
	e.ctl = gesture.New(ws.Surface(), gopts...)
	e.palette = newPaletteView(e.catalog)
	win := windowSize(ws.Surface().StageSize())
	e.Resize(win.X, win.Y)
	return e
}

// Controller exposes the gesture controller.
func (e *Editor) Controller() *gesture.Controller { return e.ctl }

// Workspace returns the hosted workspace.
func (e *Editor) Workspace() *workspace.Workspace { return e.ws }

// Quit reports whether the user asked to close the window.
func (e *Editor) Quit() bool { return e.quit }

// Message returns the status message while it is still showing.
func (e *Editor) Message() string {
	if e.message == "" || now().After(e.messageUntil) {
		return ""
	}
	return e.message
}

// Invalidate requests a repaint from any goroutine.
func (e *Editor) Invalidate() {
	select {
	case e.updateCh <- struct{}{}:
	default:
	}
}

// CapturePointer implements gesture.Capturer.
func (e *Editor) CapturePointer() { e.captured = true }

// ReleasePointer implements gesture.Capturer.
func (e *Editor) ReleasePointer() { e.captured = false }

// Resize recomputes the layout for a window of the given pixel size.
func (e *Editor) Resize(width, height int) {
	e.lay = newLayout(width, height, e.ws.Surface().StageSize())
}

func (e *Editor) say(format string, args ...any) {
	e.message = fmt.Sprintf(format, args...)
	e.messageUntil = now().Add(messageDuration)
}

func (e *Editor) fail(what string, err error) {
	e.logger.Printf("editor: %s: %v", what, err)
	e.say("%s failed: %v", what, err)
}

// HandleMouse feeds one pointer event in window pixels.
func (e *Editor) HandleMouse(ev mouse.Event) {
	if e.drag != nil {
		e.dragPalette(ev)
		return
	}
	if e.edit != nil && ev.Direction == mouse.DirPress {
		e.commitEdit()
	}
	if e.captured || e.lay.inStage(ev.X, ev.Y) {
		e.palette.hover = -1
		e.stageMouse(ev)
		return
	}
	if e.lay.inPalette(ev.X, ev.Y) {
		e.paletteMouse(ev)
		return
	}
	e.palette.hover = -1
	if ev.Direction == mouse.DirPress && ev.Button == mouse.ButtonLeft {
		// Presses on the margin around the stage count as background.
		e.stageMouse(ev)
	}
}

func (e *Editor) stageMouse(ev mouse.Event) {
	p := e.lay.toStage(ev.X, ev.Y)
	if ev.Direction == mouse.DirPress && ev.Button == mouse.ButtonLeft && e.doubleClicked(p) {
		return
	}
	se := ev
	se.X, se.Y = float32(p.X), float32(p.Y)
	e.ctl.HandleMouse(se)
	if ev.Direction == mouse.DirRelease && ev.Button == mouse.ButtonLeft {
		e.ctl.Click(p)
	}
}

// doubleClicked starts a label edit when p is the second press on the same
// label within the double-click interval.
func (e *Editor) doubleClicked(p stage.Point) bool {
	it, ok := topmost(e.ws.Surface().Items(), p)
	t := now()
	if !ok {
		e.lastPressID = ""
		return false
	}
	if it.ID == e.lastPressID && t.Sub(e.lastPress) <= doubleClick && it.IsLabel() {
		e.lastPressID = ""
		e.startEdit(it)
		return true
	}
	e.lastPressID = it.ID
	e.lastPress = t
	return false
}

func topmost(items []stage.Item, p stage.Point) (stage.Item, bool) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].Rect().Contains(p) {
			return items[i], true
		}
	}
	return stage.Item{}, false
}

func (e *Editor) paletteMouse(ev mouse.Event) {
	switch {
	case ev.Button == mouse.ButtonWheelUp && ev.Direction == mouse.DirPress:
		e.palette.scrollBy(-1, e.lay.paletteRect().Dy()/rowHeight)
	case ev.Button == mouse.ButtonWheelDown && ev.Direction == mouse.DirPress:
		e.palette.scrollBy(1, e.lay.paletteRect().Dy()/rowHeight)
	case ev.Direction == mouse.DirNone:
		if i, ok := e.palette.rowAt(ev.Y); ok && !e.palette.rows[i].isHeading() {
			e.palette.hover = i
		} else {
			e.palette.hover = -1
		}
	case ev.Direction == mouse.DirPress && ev.Button == mouse.ButtonLeft:
		t, ok := e.palette.templateAt(ev.Y)
		if !ok {
			return
		}
		i, _ := e.palette.rowAt(ev.Y)
		e.drag = &paletteDrag{template: t, row: i}
	}
}

// dragPalette tracks a template dragged out of the palette. Releasing over
// the stage places it under the pointer; releasing on the row it came from
// places it at the stage centre.
func (e *Editor) dragPalette(ev mouse.Event) {
	d := e.drag
	d.pointer = e.lay.toStage(ev.X, ev.Y)
	d.over = e.lay.inStage(ev.X, ev.Y)
	if ev.Direction != mouse.DirRelease || ev.Button != mouse.ButtonLeft {
		return
	}
	e.drag = nil
	switch {
	case d.over:
		e.ws.Surface().Place(d.template, dropPosition(d.template, d.pointer))
	case e.lay.inPalette(ev.X, ev.Y):
		if i, ok := e.palette.rowAt(ev.Y); ok && i == d.row {
			e.ws.Surface().PlaceAtCenter(d.template)
		}
	}
}

// dropPosition centres t on p.
func dropPosition(t stage.Template, p stage.Point) stage.Point {
	w, h := t.Width, t.Height
	if w <= 0 || h <= 0 {
		w, h = stage.FallbackSide, stage.FallbackSide
	}
	return stage.Pt(p.X-w/2, p.Y-h/2)
}

// HandleKey feeds one key event.
func (e *Editor) HandleKey(ev key.Event) {
	if e.edit != nil {
		e.editKey(ev)
		return
	}
	if ev.Direction == key.DirPress && ev.Modifiers&key.ModControl != 0 && e.command(ev) {
		return
	}
	if ev.Direction == key.DirPress && ev.Modifiers == 0 && !e.ctl.Active() {
		switch ev.Code {
		case key.CodeQ:
			e.quit = true
			return
		case key.CodeEscape:
			if e.drag != nil {
				e.drag = nil
				return
			}
			e.quit = true
			return
		}
	}
	if a := e.ctl.HandleKey(ev); a != gesture.ActionNone {
		e.say("%s", a)
	}
}

// command runs the Ctrl shortcuts that act on the whole workspace.
func (e *Editor) command(ev key.Event) bool {
	shift := ev.Modifiers&key.ModShift != 0
	switch ev.Code {
	case key.CodeS:
		e.Save()
	case key.CodeE:
		e.ExportPNG()
	case key.CodeC:
		if shift {
			e.CopyJSON()
		} else {
			e.CopyPNG()
		}
	case key.CodeN:
		e.NewConfiguration()
	default:
		return false
	}
	return true
}

// Save stores the workspace.
func (e *Editor) Save() {
	if err := e.ws.Save(context.Background()); err != nil {
		e.fail("save", err)
		return
	}
	e.say("saved %s", displayName(e.ws.Name()))
}

// ExportPNG writes the stage to the export directory.
func (e *Editor) ExportPNG() {
	dir := e.exportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		e.fail("export", err)
		return
	}
	path, err := e.ws.ExportPNG(filepath.Join(dir, e.ws.ExportName(".png")))
	if err != nil {
		e.fail("export", err)
		return
	}
	e.say("exported %s", path)
}

// CopyPNG copies the rendered stage to the clipboard.
func (e *Editor) CopyPNG() {
	if err := e.ws.CopyPNG(); err != nil {
		e.fail("copy", err)
		return
	}
	e.say("copied image")
}

// CopyJSON copies the configuration document to the clipboard.
func (e *Editor) CopyJSON() {
	if err := e.ws.CopyJSON(); err != nil {
		e.fail("copy", err)
		return
	}
	e.say("copied document")
}

// NewConfiguration starts a blank configuration after saving the current
// one if it has changes.
func (e *Editor) NewConfiguration() {
	ctx := context.Background()
	if e.ws.Surface().Unsaved() {
		if err := e.ws.Save(ctx); err != nil {
			e.fail("save", err)
			return
		}
	}
	e.ctl.Blur()
	if err := e.ws.New(ctx, ""); err != nil {
		e.fail("new", err)
		return
	}
	e.say("new configuration")
}

func displayName(name string) string {
	if name == "" {
		return "untitled"
	}
	return name
}

func (e *Editor) startEdit(it stage.Item) {
	text := ""
	if it.FreeText != nil && *it.FreeText != stage.LabelPlaceholder {
		text = *it.FreeText
	}
	e.edit = &labelEdit{id: it.ID, text: []rune(text)}
	e.ctl.SetTextFocus(true)
}

func (e *Editor) endEdit() {
	e.edit = nil
	e.ctl.SetTextFocus(false)
}

func (e *Editor) commitEdit() {
	ed := e.edit
	e.endEdit()
	text := string(ed.text)
	if text == "" {
		text = stage.LabelPlaceholder
	}
	e.ws.Surface().SetText(ed.id, text)
}

func (e *Editor) editKey(ev key.Event) {
	if ev.Direction == key.DirRelease {
		return
	}
	switch ev.Code {
	case key.CodeEscape:
		e.endEdit()
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		e.commitEdit()
	case key.CodeDeleteBackspace:
		if n := len(e.edit.text); n > 0 {
			e.edit.text = e.edit.text[:n-1]
		}
	default:
		if ev.Rune >= 0 && unicode.IsPrint(ev.Rune) && ev.Modifiers&(key.ModControl|key.ModMeta) == 0 {
			e.edit.text = append(e.edit.text, ev.Rune)
		}
	}
}

// Editing reports the label being edited and its current text.
func (e *Editor) Editing() (string, string, bool) {
	if e.edit == nil {
		return "", "", false
	}
	return e.edit.id, string(e.edit.text), true
}

// HandleLifecycle forwards focus changes to the controller.
func (e *Editor) HandleLifecycle(ev lifecycle.Event) {
	e.ctl.HandleLifecycle(ev)
	if ev.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
		e.drag = nil
	}
	if ev.To == lifecycle.StageDead {
		e.quit = true
	}
}
