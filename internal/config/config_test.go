package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
db_path = /tmp/plots.db
user: "sam"
stage_width = 1600

[history]
max_entries = 25

[gesture]
dead_zone = 3.5

[notify]
save = true
export = false
copy = true

[theme.my_custom_theme]
StageBackground = #111111
Selection = orange
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "my_custom_theme" || cfg.DBPath != "/tmp/plots.db" || cfg.User != "sam" {
		t.Errorf("root section = %+v", cfg)
	}
	if cfg.StageWidth != 1600 || cfg.StageHeight != 800 {
		t.Errorf("stage = %vx%v", cfg.StageWidth, cfg.StageHeight)
	}
	if cfg.HistoryMax != 25 {
		t.Errorf("history max = %d", cfg.HistoryMax)
	}
	if cfg.Gesture.DeadZone != 3.5 || cfg.Gesture.HandleSize != 8 || cfg.Gesture.MinSize != 30 {
		t.Errorf("gesture = %+v", cfg.Gesture)
	}
	if !cfg.Notify.Save || cfg.Notify.Export || !cfg.Notify.Copy {
		t.Errorf("notify = %+v", cfg.Notify)
	}
	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.StageBackground.R != 0x11 || th.Selection.R != 255 || th.Selection.G != 165 {
		t.Errorf("theme = %+v", th)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"stage_width = -3\n",
		"[history]\nmax_entries = 1\n",
		"[notify]\nsave = maybe\n",
		"[gesture]\nhandle_size = big\n",
		"[theme.x]\nGrid = #12\n",
	} {
		if _, err := Parse(strings.NewReader(in)); err == nil {
			t.Errorf("Parse(%q) accepted bad input", in)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
user = sam
export_dir = /home/sam/plots

[gesture]
handle_size = 10

[notify]
save = true
export = true
copy = false

[theme.custom]
Name = custom
StageBackground = #000000
ItemText = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, cfg.String())
	}
	if cfg.Theme != cfg2.Theme || cfg.User != cfg2.User || cfg.ExportDir != cfg2.ExportDir {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify || cfg.Gesture != cfg2.Gesture || cfg.HistoryMax != cfg2.HistoryMax {
		t.Errorf("section mismatch: %+v vs %+v", cfg, cfg2)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderPrefersOverrideThenXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	l := NewLoader("v1.0.0", "")
	if got := l.GetConfigPath(); got != "" {
		t.Fatalf("config path without files = %q", got)
	}
	cfg, err := l.Load()
	if err != nil || cfg.StageWidth != 1200 {
		t.Fatalf("defaults = %+v, %v", cfg, err)
	}

	cfg.User = "robin"
	path, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(xdg, "stageplot", "config.rc") {
		t.Fatalf("saved to %s", path)
	}
	loaded, err := l.Load()
	if err != nil || loaded.User != "robin" {
		t.Fatalf("reload = %+v, %v", loaded, err)
	}

	override := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(override, []byte("user = kim\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l.OverridePath = override
	if got := l.GetConfigPath(); got != override {
		t.Fatalf("config path = %q, want override", got)
	}
}
