package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/fogleman/gg"

	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/theme"
)

func testTheme() *theme.Theme {
	th := theme.Default()
	th.StageBackground = color.RGBA{10, 10, 10, 255}
	th.ItemFill = color.RGBA{0, 200, 0, 255}
	th.Handle = color.RGBA{200, 0, 200, 255}
	return th
}

func boxItem() stage.Item {
	return stage.Item{
		ID:        "a",
		Template:  stage.TemplateRef{Key: "box", Name: "Box"},
		Position:  stage.Pt(10, 10),
		Size:      stage.Square(100),
		Resizable: true,
	}
}

func TestStageDrawsItemsOnBackground(t *testing.T) {
	th := testTheme()
	snap := Snapshot{Items: []stage.Item{boxItem()}, StageSize: stage.Size{Width: 400, Height: 300}}
	img := Stage(snap, th, Options{})

	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.RGBAAt(20, 60); got != th.ItemFill {
		t.Fatalf("item interior = %v, want %v", got, th.ItemFill)
	}
	if got := img.RGBAAt(300, 250); got != th.StageBackground {
		t.Fatalf("background = %v, want %v", got, th.StageBackground)
	}
}

func TestStageSelectionAndHandles(t *testing.T) {
	th := testTheme()
	snap := Snapshot{
		Items:     []stage.Item{boxItem()},
		Selected:  []string{"a"},
		Handles:   true,
		StageSize: stage.Size{Width: 200, Height: 200},
	}
	opts := Options{HandleSize: 8}
	img := Stage(snap, th, opts)
	if got := img.RGBAAt(110, 110); got != th.Handle {
		t.Fatalf("handle = %v, want %v", got, th.Handle)
	}
	if got := img.RGBAAt(8, 60); got == th.StageBackground {
		t.Fatalf("no selection outline drawn")
	}

	snap.Handles = false
	if got := Stage(snap, th, opts).RGBAAt(110, 110); got == th.Handle {
		t.Fatalf("handles drawn while disabled")
	}
}

func TestStageLassoAndShadow(t *testing.T) {
	th := testTheme()
	lasso := stage.RectFromPoints(stage.Pt(150, 150), stage.Pt(190, 190))
	snap := Snapshot{Items: []stage.Item{boxItem()}, Lasso: &lasso, StageSize: stage.Size{Width: 200, Height: 200}}
	shadow := ShadowOptions{Radius: 0, Offset: image.Pt(6, 0), Opacity: 1}
	img := Stage(snap, th, Options{Shadow: &shadow})

	if got := img.RGBAAt(170, 170); got == th.StageBackground {
		t.Fatalf("lasso not drawn")
	}
	// Just right of the item the shadow darkens the background.
	if got := img.RGBAAt(113, 60); got == th.StageBackground {
		t.Fatalf("no shadow beside item")
	}
}

func TestEncodePNG(t *testing.T) {
	img := Stage(Snapshot{StageSize: stage.Size{Width: 30, Height: 20}}, nil, ExportOptions())
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 30 || cfg.Height != 20 {
		t.Fatalf("decoded %dx%d", cfg.Width, cfg.Height)
	}
}

func TestFitShortensLongText(t *testing.T) {
	dc := gg.NewContext(10, 10)
	dc.SetFontFace(Face(13))
	long := "Extremely long stage item name"
	got := fit(dc, long, 40)
	if len([]rune(got)) >= len([]rune(long)) {
		t.Fatalf("fit returned %q", got)
	}
	if w, _ := dc.MeasureString(got); w > 40 {
		t.Fatalf("fit result %q is %v wide", got, w)
	}
	if fit(dc, "Box", 100) != "Box" {
		t.Fatalf("short text changed")
	}
}
