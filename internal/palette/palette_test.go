package palette

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Len() == 0 {
		t.Fatalf("embedded catalog is empty")
	}
	label, ok := c.Lookup("label")
	if !ok {
		t.Fatalf("label template missing")
	}
	if label.Kind != "label" {
		t.Fatalf("label kind = %q", label.Kind)
	}
	kit, ok := c.Lookup("drum-kit")
	if !ok || !kit.Resizable || kit.Width != kit.Height {
		t.Fatalf("drum kit = %+v", kit)
	}
}

func TestParseDefaults(t *testing.T) {
	c, err := Parse(strings.NewReader("templates:\n  - key: amp\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	amp, _ := c.Lookup("amp")
	if amp.Name != "amp" || amp.Category != "Other" {
		t.Fatalf("amp = %+v", amp)
	}
	if got := c.Categories(); len(got) != 1 || got[0] != "Other" {
		t.Fatalf("categories = %v", got)
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	if _, err := Parse(strings.NewReader("templates:\n  - key: a\n  - key: a\n")); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("duplicate keys: err = %v", err)
	}
	if _, err := Parse(strings.NewReader("templates:\n  - name: nameless\n")); err == nil {
		t.Fatalf("missing key accepted")
	}
	if _, err := Parse(strings.NewReader("templates:\n  - key: a\n    colour: red\n")); err == nil {
		t.Fatalf("unknown field accepted")
	}
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d", c.Len())
	}
}

func TestLoadFileAndCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "templates:\n  - key: b\n    category: Mics\n  - key: a\n    category: Amps\n  - key: c\n    category: Mics\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := strings.Join(c.Categories(), ","); got != "Amps,Mics" {
		t.Fatalf("categories = %s", got)
	}
	mics := c.InCategory("Mics")
	if len(mics) != 2 || mics[0].Key != "b" || mics[1].Key != "c" {
		t.Fatalf("mics = %+v", mics)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
