package workspace

import (
	"bytes"
	"context"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/store"
	"github.com/example/stageplot/internal/surface"
)

type memClipboard struct {
	img  image.Image
	text string
}

func (m *memClipboard) WriteImage(img image.Image) error { m.img = img; return nil }
func (m *memClipboard) WriteText(text string) error { m.text = text; return nil }

var amp = stage.Template{Key: "amp", Name: "Amp", Category: "Backline", Width: 60, Height: 40}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "plots.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func openWorkspace(t *testing.T, st *store.Store, opts ...Option) *Workspace {
	t.Helper()
	opts = append([]Option{
		WithLogger(log.New(io.Discard, "", 0)),
		WithSurfaceOptions(surface.WithIDSource(stage.Counter("it"))),
	}, opts...)
	w, err := Open(context.Background(), st, "ana", opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return w
}

func TestOpenCreatesBlankConfiguration(t *testing.T) {
	st := openStore(t)
	w := openWorkspace(t, st)
	if w.ID() == "" {
		t.Fatal("expected an id for the new configuration")
	}
	if w.Surface().Len() != 0 || w.Surface().Unsaved() {
		t.Fatalf("blank workspace should be empty and saved")
	}
	cfg, err := st.LoadLatestConfig(context.Background(), "ana")
	if err != nil || cfg == nil || cfg.ID != w.ID() {
		t.Fatalf("latest = %+v, %v; want %s", cfg, err, w.ID())
	}
}

func TestSaveAndReopen(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	changes := 0
	w := openWorkspace(t, st, WithChangeHook(func() { changes++ }))
	w.Surface().Place(amp, stage.Pt(10, 20))
	w.Rename("Friday gig")
	if !w.Surface().Unsaved() {
		t.Fatal("expected unsaved after place")
	}
	if w.Commits() != 1 || changes == 0 {
		t.Fatalf("commits = %d changes = %d", w.Commits(), changes)
	}
	if err := w.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if w.Surface().Unsaved() || w.SavedAt().IsZero() {
		t.Fatal("save should clear the unsaved flag")
	}

	again := openWorkspace(t, st)
	if again.ID() != w.ID() || again.Name() != "Friday gig" {
		t.Fatalf("reopened %s %q", again.ID(), again.Name())
	}
	items := again.Surface().Items()
	if len(items) != 1 || items[0].Position != stage.Pt(10, 20) {
		t.Fatalf("items = %+v", items)
	}
	if again.Surface().Unsaved() || again.Surface().CanUndo() || again.Commits() != 0 {
		t.Fatal("loading must not count as an edit")
	}
}

func TestNewAndSwitch(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	w := openWorkspace(t, st)
	first := w.ID()
	w.Surface().Place(amp, stage.Pt(0, 0))
	if err := w.Save(ctx); err != nil {
		t.Fatal(err)
	}
	if err := w.New(ctx, "second"); err != nil {
		t.Fatal(err)
	}
	if w.ID() == first || w.Surface().Len() != 0 || w.Name() != "second" {
		t.Fatalf("new configuration not blank: %s %d", w.ID(), w.Surface().Len())
	}
	if err := w.Switch(ctx, first); err != nil {
		t.Fatal(err)
	}
	if w.Surface().Len() != 1 {
		t.Fatalf("switch back lost items")
	}
	if err := w.Switch(ctx, "missing"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestPresetRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	w := openWorkspace(t, st)
	a := w.Surface().Place(amp, stage.Pt(0, 0))
	w.Surface().Place(amp, stage.Pt(100, 0))
	w.Surface().SelectOnly(a.ID)
	if _, err := w.SavePreset(ctx, "  "); err == nil {
		t.Fatal("expected error for empty preset name")
	}
	if _, err := w.SavePreset(ctx, "amp line"); err != nil {
		t.Fatalf("SavePreset: %v", err)
	}
	before := w.Surface().Len()
	ids, err := w.ApplyPreset(ctx, "amp line")
	if err != nil {
		t.Fatalf("ApplyPreset: %v", err)
	}
	if len(ids) != 1 || ids[0] == a.ID || w.Surface().Len() != before+1 {
		t.Fatalf("applied %v, len %d", ids, w.Surface().Len())
	}
	if got := w.Surface().Selection(); len(got) != 1 || got[0] != ids[0] {
		t.Fatalf("selection = %v; want inserted item", got)
	}
	if !w.Surface().Undo() || w.Surface().Len() != before {
		t.Fatal("preset should undo in one step")
	}
	if _, err := w.ApplyPreset(ctx, "nope"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestExportFiles(t *testing.T) {
	dir := t.TempDir()
	w := openWorkspace(t, openStore(t))
	w.Rename("Main Stage!")
	w.Surface().Place(amp, stage.Pt(5, 5))

	png, err := w.ExportPNG(dir)
	if err != nil {
		t.Fatalf("ExportPNG: %v", err)
	}
	if filepath.Base(png) != "main-stage.png" {
		t.Fatalf("png path = %s", png)
	}
	data, err := os.ReadFile(png)
	if err != nil || !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("png not written: %v", err)
	}

	js, err := w.ExportJSON(filepath.Join(dir, "out", "plot.json"))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	f, err := os.Open(js)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	items, meta, err := store.DecodeDocument(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || meta.Name != "Main Stage!" {
		t.Fatalf("document = %+v %+v", items, meta)
	}
}

func TestImportReissuesIDs(t *testing.T) {
	w := openWorkspace(t, openStore(t))
	a := w.Surface().Place(amp, stage.Pt(0, 0))
	var buf bytes.Buffer
	if err := w.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}
	ids, err := w.Import(&buf)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(ids) != 1 || ids[0] == a.ID || w.Surface().Len() != 2 {
		t.Fatalf("import ids %v", ids)
	}
	if _, err := w.Import(strings.NewReader("{")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestCopyToClipboard(t *testing.T) {
	clip := &memClipboard{}
	w := openWorkspace(t, openStore(t), WithClipboard(clip))
	w.Surface().Place(amp, stage.Pt(0, 0))
	if err := w.CopyPNG(); err != nil {
		t.Fatal(err)
	}
	size := w.Surface().StageSize()
	if clip.img == nil || clip.img.Bounds().Dx() != int(size.Width) {
		t.Fatalf("clipboard image = %v", clip.img)
	}
	if err := w.CopyJSON(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(clip.text, `"amp"`) {
		t.Fatalf("clipboard text = %q", clip.text)
	}
}
