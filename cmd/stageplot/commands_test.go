package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/stageplot/internal/config"
	"github.com/example/stageplot/internal/editor"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/store"
	"github.com/example/stageplot/internal/theme"
)

func testRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return &root{
		program:     "stageplot",
		config:      config.New(),
		dbPath:      filepath.Join(t.TempDir(), "plots.db"),
		user:        "ana",
		activeTheme: theme.Default(),
		out:         &out,
	}, &out
}

type parser func([]string, *root) (runnable, error)

func run(t *testing.T, r *root, parse parser, args ...string) {
	t.Helper()
	cmd, err := parse(args, r)
	if err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
}

func place(args []string, r *root) (runnable, error) { return parsePlaceCmd(args, r) }
func export(args []string, r *root) (runnable, error) { return parseExportCmd(args, r) }
func preset(args []string, r *root) (runnable, error) { return parsePresetCmd(args, r) }
func list(args []string, r *root) (runnable, error) { return parseListCmd(args, r) }

func latest(t *testing.T, r *root) *store.Config {
	t.Helper()
	st, err := store.Open(r.dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	cfg, err := st.LoadLatestConfig(context.Background(), r.user)
	if err != nil || cfg == nil {
		t.Fatalf("latest = %v, %v", cfg, err)
	}
	return cfg
}

func TestPlaceAndList(t *testing.T) {
	r, out := testRoot(t)
	run(t, r, place, "-x", "10", "-y", "20", "guitar-amp", "monitor")
	cfg := latest(t, r)
	if len(cfg.Items) != 2 {
		t.Fatalf("items = %+v", cfg.Items)
	}
	if p := cfg.Items[1].Position; p.X != 30 || p.Y != 40 {
		t.Fatalf("second item at %v; want offset to 30,40", p)
	}
	if !strings.Contains(out.String(), "guitar-amp at 10,20") {
		t.Fatalf("place output = %q", out.String())
	}

	out.Reset()
	run(t, r, list)
	if !strings.Contains(out.String(), cfg.ID) || !strings.Contains(out.String(), "ITEMS") {
		t.Fatalf("list output = %q", out.String())
	}
}

func TestPlaceUnknownTemplate(t *testing.T) {
	r, _ := testRoot(t)
	cmd, err := parsePlaceCmd([]string{"theremin"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), `unknown template "theremin"`) {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestExportAndImport(t *testing.T) {
	r, out := testRoot(t)
	dir := t.TempDir()
	run(t, r, place, "drum-kit")

	out.Reset()
	run(t, r, export, "-o", dir)
	png := strings.TrimSpace(out.String())
	if filepath.Base(png) != "stageplot.png" {
		t.Fatalf("export path = %q", png)
	}
	if _, err := os.Stat(png); err != nil {
		t.Fatal(err)
	}

	doc := filepath.Join(dir, "plot.json")
	run(t, r, export, "-o", doc)
	run(t, r, func(args []string, r *root) (runnable, error) { return parseImportCmd(args, r) }, doc)
	cfg := latest(t, r)
	if len(cfg.Items) != 2 || cfg.Items[0].ID == cfg.Items[1].ID {
		t.Fatalf("items after import = %+v", cfg.Items)
	}
}

func TestPresetLifecycle(t *testing.T) {
	r, out := testRoot(t)
	run(t, r, place, "vocal-mic", "monitor")
	run(t, r, preset, "save", "front line")
	run(t, r, preset, "apply", "front line")
	if n := len(latest(t, r).Items); n != 4 {
		t.Fatalf("items after apply = %d; want 4", n)
	}

	out.Reset()
	run(t, r, preset, "list")
	if !strings.Contains(out.String(), "front line") {
		t.Fatalf("preset list = %q", out.String())
	}
	run(t, r, preset, "delete", "front line")

	out.Reset()
	run(t, r, preset, "list")
	if !strings.Contains(out.String(), "no presets") {
		t.Fatalf("preset list after delete = %q", out.String())
	}
}

func TestNewPrintsID(t *testing.T) {
	r, out := testRoot(t)
	run(t, r, func(args []string, r *root) (runnable, error) { return parseNewCmd(args, r) }, "-name", "Festival")
	id := strings.TrimSpace(out.String())
	if cfg := latest(t, r); cfg.ID != id || cfg.Name != "Festival" {
		t.Fatalf("latest = %s %q; want %s", cfg.ID, cfg.Name, id)
	}
}

func TestEditSavesOnClose(t *testing.T) {
	orig := runEditor
	runEditor = func(e *editor.Editor) {
		e.Workspace().Surface().PlaceAtCenter(stage.Template{Key: "monitor", Width: 80, Height: 60})
	}
	t.Cleanup(func() { runEditor = orig })

	r, _ := testRoot(t)
	run(t, r, place, "riser")
	run(t, r, func(args []string, r *root) (runnable, error) { return parseEditCmd(args, r) })
	if n := len(latest(t, r).Items); n != 2 {
		t.Fatalf("items after edit = %d; want 2", n)
	}
}

func TestTemplatesTable(t *testing.T) {
	r, out := testRoot(t)
	run(t, r, func(args []string, r *root) (runnable, error) { return parseTemplatesCmd(args, r) })
	for _, want := range []string{"drum-kit", "Drums", "160x160", "yes"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("templates output missing %q:\n%s", want, out.String())
		}
	}
}

func TestVersion(t *testing.T) {
	r, out := testRoot(t)
	if err := (&versionCmd{r: r}).Run(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "stageplot version dev\n" {
		t.Fatalf("version = %q", got)
	}
}
