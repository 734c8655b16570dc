package main

import (
	"errors"
	"strings"
	"testing"
)

func TestRootWithoutCommandIsUsageError(t *testing.T) {
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if want := "Usage: stageplot"; !strings.Contains(uerr.Error(), want) {
		t.Fatalf("expected help to contain %q, got %q", want, uerr.Error())
	}
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	r := newRoot()
	var uerr *UsageError
	if err := r.Run([]string{"dance"}); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestUsageErrorLeadsWithReason(t *testing.T) {
	r := newRoot()
	err := r.Run([]string{"dance"})
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	if want := `stageplot: unknown command "dance"`; !strings.HasPrefix(msg, want) {
		t.Fatalf("expected %q first, got %q", want, msg)
	}
	if !strings.Contains(msg, "Usage: stageplot") {
		t.Fatalf("expected help after the reason, got %q", msg)
	}

	_, err = parsePresetCmd([]string{"apply"}, &root{program: "stageplot"})
	if err == nil || !strings.Contains(err.Error(), "preset apply needs exactly one preset name") {
		t.Fatalf("expected preset reason, got %v", err)
	}
}

func TestParsePlaceNeedsBothCoordinates(t *testing.T) {
	_, err := parsePlaceCmd([]string{"-x", "10", "drum-kit"}, &root{program: "stageplot"})
	if err == nil || !strings.Contains(err.Error(), "-x and -y must be given together") {
		t.Fatalf("expected coordinate error, got %v", err)
	}
}

func TestParsePlaceNeedsTemplate(t *testing.T) {
	_, err := parsePlaceCmd(nil, &root{program: "stageplot"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestParseExportFlags(t *testing.T) {
	r := &root{program: "stageplot"}
	if _, err := parseExportCmd([]string{"-format", "gif"}, r); err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected format error, got %v", err)
	}
	if _, err := parseExportCmd([]string{"-to-clipboard", "-o", "x.png"}, r); err == nil || !strings.Contains(err.Error(), "-o cannot be used") {
		t.Fatalf("expected clipboard error, got %v", err)
	}
	c, err := parseExportCmd([]string{"-o", "plot.JSON"}, r)
	if err != nil || c.format != "json" {
		t.Fatalf("format = %q, %v; want json from extension", c.format, err)
	}
}

func TestParsePresetSubcommands(t *testing.T) {
	r := &root{program: "stageplot"}
	if _, err := parsePresetCmd([]string{"rename", "a"}, r); err == nil || !strings.Contains(err.Error(), "unknown preset command") {
		t.Fatalf("expected unknown command error, got %v", err)
	}
	var uerr *UsageError
	if _, err := parsePresetCmd([]string{"save"}, r); !errors.As(err, &uerr) {
		t.Fatalf("expected usage error for missing name, got %v", err)
	}
}

func TestHelpTemplatesRender(t *testing.T) {
	r := &root{program: "stageplot"}
	edit, _ := parseEditCmd(nil, r)
	newc, _ := parseNewCmd(nil, r)
	list, _ := parseListCmd(nil, r)
	export, _ := parseExportCmd(nil, r)
	tmpl, _ := parseTemplatesCmd(nil, r)
	cfg, _ := parseConfigCmd(nil, r)
	pc := &placeCmd{root: r}
	ic := &importCmd{root: r}
	prc := &presetCmd{root: r}
	for name, h := range map[string]HelpData{
		"edit": edit, "new": newc, "list": list, "export": export, "templates": tmpl,
		"config": cfg, "place": pc, "import": ic, "preset": prc,
	} {
		help := (&UsageError{of: h}).Error()
		if want := "Usage: stageplot " + name; !strings.Contains(help, want) {
			t.Errorf("%s help = %q; want it to contain %q", name, help, want)
		}
	}
}
