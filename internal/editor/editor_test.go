package editor

import (
	"context"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/stageplot/internal/palette"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/store"
	"github.com/example/stageplot/internal/surface"
	"github.com/example/stageplot/internal/theme"
	"github.com/example/stageplot/internal/workspace"
)

const testCatalog = `
templates:
  - {key: amp, name: Amp, category: Backline, width: 60, height: 40}
  - {key: label, name: Label, category: Text, kind: label, width: 120, height: 30}
`

type memClipboard struct{ images, texts int }

func (m *memClipboard) WriteImage(image.Image) error { m.images++; return nil }
func (m *memClipboard) WriteText(string) error { m.texts++; return nil }

func fixedClock(t *testing.T) {
	t.Helper()
	orig := now
	base := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	now = func() time.Time { return base }
	t.Cleanup(func() { now = orig })
}

func newEditor(t *testing.T, opts ...Option) (*Editor, *store.Store) {
	t.Helper()
	fixedClock(t)
	st, err := store.Open(filepath.Join(t.TempDir(), "plots.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	quiet := log.New(io.Discard, "", 0)
	ws, err := workspace.Open(context.Background(), st, "ana",
		workspace.WithLogger(quiet),
		workspace.WithClipboard(&memClipboard{}),
		workspace.WithSurfaceOptions(surface.WithIDSource(stage.Counter("it"))),
	)
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	cat, err := palette.Parse(strings.NewReader(testCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	opts = append([]Option{WithCatalog(cat), WithLogger(quiet)}, opts...)
	return New(ws, opts...), st
}

// win converts stage coordinates to window pixels for the default layout.
func win(e *Editor, x, y float64) (float32, float32) {
	return float32(x*e.lay.zoom) + float32(e.lay.origin.X), float32(y*e.lay.zoom) + float32(e.lay.origin.Y)
}

func press(e *Editor, x, y float32) {
	e.HandleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
}

func moveTo(e *Editor, x, y float32) {
	e.HandleMouse(mouse.Event{X: x, Y: y, Direction: mouse.DirNone})
}

func release(e *Editor, x, y float32) {
	e.HandleMouse(mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})
}

func typeKey(e *Editor, code key.Code, r rune, mods key.Modifiers) {
	e.HandleKey(key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirPress})
	e.HandleKey(key.Event{Code: code, Rune: r, Modifiers: mods, Direction: key.DirRelease})
}

// rowY is the window y of the centre of palette row i.
func rowY(i int) float32 { return float32(i*rowHeight + rowHeight/2) }

func TestLayoutRoundTrip(t *testing.T) {
	size := stage.Size{Width: 1200, Height: 800}
	w := windowSize(size)
	l := newLayout(w.X, w.Y, size)
	if l.zoom != 1 {
		t.Fatalf("zoom = %v; want 1 for the natural window size", l.zoom)
	}
	p := l.toStage(float32(l.origin.X+30), float32(l.origin.Y+40))
	if p != stage.Pt(30, 40) {
		t.Fatalf("toStage = %v", p)
	}
	half := newLayout(paletteWidth+2*stageMargin+600, statusHeight+2*stageMargin+400, size)
	if half.zoom != 0.5 {
		t.Fatalf("zoom = %v; want 0.5", half.zoom)
	}
	if got := half.stageRect().Size(); got != image.Pt(600, 400) {
		t.Fatalf("stage rect = %v", got)
	}
}

func TestPaletteRows(t *testing.T) {
	e, _ := newEditor(t)
	rows := e.palette.rows
	if len(rows) != 4 || rows[0].heading != "Backline" || rows[2].heading != "Text" {
		t.Fatalf("rows = %+v", rows)
	}
	if _, ok := e.palette.templateAt(rowY(0)); ok {
		t.Fatal("heading rows are not templates")
	}
	if tpl, ok := e.palette.templateAt(rowY(3)); !ok || tpl.Key != "label" {
		t.Fatalf("row 3 = %+v %v", tpl, ok)
	}
	e.palette.scrollBy(10, 2)
	if e.palette.scroll != 2 {
		t.Fatalf("scroll = %d; want clamp to 2", e.palette.scroll)
	}
	e.palette.scrollBy(-10, 2)
	if e.palette.scroll != 0 {
		t.Fatalf("scroll = %d; want 0", e.palette.scroll)
	}
}

func TestPaletteClickPlacesAtCenter(t *testing.T) {
	e, _ := newEditor(t)
	press(e, 40, rowY(1))
	release(e, 40, rowY(1))
	items := e.ws.Surface().Items()
	if len(items) != 1 || items[0].Position != stage.Pt(570, 380) {
		t.Fatalf("items = %+v", items)
	}
}

func TestPaletteDragPlacesUnderPointer(t *testing.T) {
	e, _ := newEditor(t)
	press(e, 40, rowY(3))
	x, y := win(e, 300, 300)
	moveTo(e, x, y)
	if st := e.frameState(); len(st.snap.Items) != 1 || st.snap.Items[0].ID != "" {
		t.Fatalf("expected a ghost while dragging, got %+v", st.snap.Items)
	}
	if e.ws.Surface().Len() != 0 {
		t.Fatal("dragging must not commit")
	}
	release(e, x, y)
	items := e.ws.Surface().Items()
	if len(items) != 1 || items[0].Position != stage.Pt(240, 285) || !items[0].IsLabel() {
		t.Fatalf("items = %+v", items)
	}
}

func TestPaletteDragCancelledOutsideStage(t *testing.T) {
	e, _ := newEditor(t)
	press(e, 40, rowY(1))
	moveTo(e, 40, rowY(3))
	release(e, 40, rowY(3))
	if e.ws.Surface().Len() != 0 {
		t.Fatal("release on another palette row should place nothing")
	}
}

func TestStageDragTranslatesCoordinates(t *testing.T) {
	e, _ := newEditor(t)
	it := e.ws.Surface().Place(stage.Template{Key: "amp", Width: 60, Height: 40}, stage.Pt(100, 100))
	x, y := win(e, 120, 120)
	press(e, x, y)
	x2, y2 := win(e, 170, 140)
	moveTo(e, x2, y2)
	if !e.captured {
		t.Fatal("expected pointer capture during drag")
	}
	release(e, x2, y2)
	if e.captured {
		t.Fatal("capture not released")
	}
	got, _ := e.ws.Surface().Item(it.ID)
	if got.Position != stage.Pt(150, 120) {
		t.Fatalf("position = %v; want (150,120)", got.Position)
	}
}

func TestDoubleClickEditsLabel(t *testing.T) {
	e, _ := newEditor(t)
	lbl := e.ws.Surface().Place(stage.Template{Key: "label", Kind: stage.KindLabel, Width: 120, Height: 30}, stage.Pt(10, 10))
	x, y := win(e, 20, 20)
	press(e, x, y)
	release(e, x, y)
	press(e, x, y)
	release(e, x, y)
	id, _, ok := e.Editing()
	if !ok || id != lbl.ID {
		t.Fatalf("editing = %q %v", id, ok)
	}
	if !e.ctl.TextFocus() {
		t.Fatal("controller should have text focus while editing")
	}
	typeKey(e, key.CodeH, 'H', key.ModShift)
	typeKey(e, key.CodeI, 'i', 0)
	typeKey(e, key.CodeDeleteForward, -1, 0)
	if e.ws.Surface().Len() != 1 {
		t.Fatal("delete while editing must not remove the label")
	}
	if _, text, _ := e.Editing(); text != "Hi" {
		t.Fatalf("text = %q", text)
	}
	typeKey(e, key.CodeReturnEnter, '\n', 0)
	got, _ := e.ws.Surface().Item(lbl.ID)
	if got.Text() != "Hi" || e.ctl.TextFocus() {
		t.Fatalf("text = %q focus = %v", got.Text(), e.ctl.TextFocus())
	}
}

func TestEscapeCancelsLabelEdit(t *testing.T) {
	e, _ := newEditor(t)
	lbl := e.ws.Surface().Place(stage.Template{Key: "label", Kind: stage.KindLabel, Width: 120, Height: 30}, stage.Pt(10, 10))
	e.startEdit(lbl)
	typeKey(e, key.CodeX, 'x', 0)
	typeKey(e, key.CodeEscape, -1, 0)
	got, _ := e.ws.Surface().Item(lbl.ID)
	if got.Text() != stage.LabelPlaceholder || e.Quit() {
		t.Fatalf("text = %q quit = %v", got.Text(), e.Quit())
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	e, st := newEditor(t, WithExportDir(dir))
	e.ws.Surface().Place(stage.Template{Key: "amp", Width: 60, Height: 40}, stage.Pt(0, 0))

	typeKey(e, key.CodeS, 's', key.ModControl)
	if e.ws.Surface().Unsaved() || !strings.HasPrefix(e.Message(), "saved") {
		t.Fatalf("save: unsaved=%v message=%q", e.ws.Surface().Unsaved(), e.Message())
	}

	typeKey(e, key.CodeE, 'e', key.ModControl)
	if _, err := os.Stat(filepath.Join(dir, "stageplot.png")); err != nil {
		t.Fatalf("export: %v (message %q)", err, e.Message())
	}

	typeKey(e, key.CodeC, 'c', key.ModControl)
	if e.Message() != "copied image" {
		t.Fatalf("copy message = %q", e.Message())
	}

	e.ws.Surface().Place(stage.Template{Key: "amp", Width: 60, Height: 40}, stage.Pt(100, 0))
	typeKey(e, key.CodeN, 'n', key.ModControl)
	if e.ws.Surface().Len() != 0 {
		t.Fatal("new configuration should be blank")
	}
	list, err := st.List(context.Background(), "ana", false)
	if err != nil || len(list) != 2 {
		t.Fatalf("configs = %d, %v", len(list), err)
	}
	for _, c := range list {
		if len(c.Items) == 2 {
			return
		}
	}
	t.Fatal("unsaved changes were not saved before starting a new configuration")
}

func TestUndoShortcutReachesController(t *testing.T) {
	e, _ := newEditor(t)
	e.ws.Surface().Place(stage.Template{Key: "amp", Width: 60, Height: 40}, stage.Pt(0, 0))
	typeKey(e, key.CodeZ, 'z', key.ModControl)
	if e.ws.Surface().Len() != 0 || e.Message() != "undo" {
		t.Fatalf("len = %d message = %q", e.ws.Surface().Len(), e.Message())
	}
}

func TestQuitKeys(t *testing.T) {
	e, _ := newEditor(t)
	typeKey(e, key.CodeQ, 'q', 0)
	if !e.Quit() {
		t.Fatal("q should quit")
	}

	e, _ = newEditor(t)
	typeKey(e, key.CodeEscape, -1, 0)
	if !e.Quit() {
		t.Fatal("escape when idle should quit")
	}
}

func TestFocusLossDropsPaletteDrag(t *testing.T) {
	e, _ := newEditor(t)
	press(e, 40, rowY(1))
	e.HandleLifecycle(lifecycle.Event{From: lifecycle.StageFocused, To: lifecycle.StageVisible})
	if e.drag != nil {
		t.Fatal("palette drag should be dropped on focus loss")
	}
}

func TestFrame(t *testing.T) {
	e, _ := newEditor(t)
	e.ws.Surface().Place(stage.Template{Key: "amp", Width: 60, Height: 40}, stage.Pt(0, 0))
	img := e.Frame()
	if img.Bounds().Size() != image.Pt(e.lay.width, e.lay.height) {
		t.Fatalf("frame size = %v", img.Bounds().Size())
	}
	th := theme.Default()
	if got := img.RGBAAt(4, e.lay.paletteRect().Max.Y-4); got != th.PaletteBackground {
		t.Fatalf("palette pixel = %v; want %v", got, th.PaletteBackground)
	}
	st := e.frameState()
	if !strings.Contains(st.status, "untitled*") || !strings.Contains(st.status, "1 items, 1 selected") {
		t.Fatalf("status = %q", st.status)
	}
}
