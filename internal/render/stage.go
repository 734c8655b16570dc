// Package render rasterises stage plots.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/example/stageplot/internal/gesture"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/theme"
)

// Snapshot is everything needed to draw one frame. It is never modified.
type Snapshot struct {
	Items     []stage.Item
	Selected  []string
	Lasso     *stage.Rect
	Handles   bool
	StageSize stage.Size
}

// Options controls optional decoration.
type Options struct {
	GridSpacing float64 // zero disables the grid
	HandleSize  float64
	FontSize    float64
	Shadow      *ShadowOptions
}

// DefaultOptions is used by the editor.
func DefaultOptions() Options {
	shadow := DefaultShadowOptions()
	return Options{
		GridSpacing: 50,
		HandleSize:  gesture.DefaultHandleSize,
		FontSize:    13,
		Shadow:      &shadow,
	}
}

// ExportOptions draws no grid so printed plots stay clean.
func ExportOptions() Options {
	o := DefaultOptions()
	o.GridSpacing = 0
	return o
}

const cornerRadius = 6

// Stage draws snap into a new image the size of the stage.
func Stage(snap Snapshot, th *theme.Theme, opts Options) *image.RGBA {
	if th == nil {
		th = theme.Default()
	}
	w := int(math.Ceil(math.Max(snap.StageSize.Width, 1)))
	h := int(math.Ceil(math.Max(snap.StageSize.Height, 1)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	dc := gg.NewContextForRGBA(img)
	dc.SetColor(th.StageBackground)
	dc.Clear()
	if opts.GridSpacing > 0 {
		drawGrid(dc, w, h, opts.GridSpacing, th.Grid)
	}
	if opts.Shadow != nil && len(snap.Items) > 0 {
		CastShadow(img, silhouettes(w, h, snap.Items), th.Shadow, *opts.Shadow)
	}

	selected := make(map[string]bool, len(snap.Selected))
	for _, id := range snap.Selected {
		selected[id] = true
	}
	size := opts.FontSize
	if size <= 0 {
		size = 13
	}
	dc.SetFontFace(Face(size))
	for _, it := range snap.Items {
		drawItem(dc, it, th)
	}
	for _, it := range snap.Items {
		if !selected[it.ID] {
			continue
		}
		drawSelection(dc, it, th)
		if snap.Handles && it.Resizable && opts.HandleSize > 0 {
			drawHandles(dc, it, th, opts.HandleSize)
		}
	}
	if snap.Lasso != nil {
		drawLasso(dc, *snap.Lasso, th)
	}
	return img
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

func drawGrid(dc *gg.Context, w, h int, spacing float64, col color.RGBA) {
	dc.SetColor(col)
	dc.SetLineWidth(1)
	for x := spacing; x < float64(w); x += spacing {
		dc.DrawLine(x+0.5, 0, x+0.5, float64(h))
	}
	for y := spacing; y < float64(h); y += spacing {
		dc.DrawLine(0, y+0.5, float64(w), y+0.5)
	}
	dc.Stroke()
}

func silhouettes(w, h int, items []stage.Item) *image.RGBA {
	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(layer)
	dc.SetColor(color.Black)
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		r := it.Rect()
		dc.DrawRoundedRectangle(r.X, r.Y, r.Width, r.Height, cornerRadius)
	}
	dc.Fill()
	return layer
}

func drawItem(dc *gg.Context, it stage.Item, th *theme.Theme) {
	r := it.Rect()
	fill, text, label := th.ItemFill, th.ItemText, it.Template.Name
	if it.IsLabel() {
		fill, text, label = th.LabelFill, th.LabelText, it.Text()
	}
	ghost := it.ID == ""

	dc.Push()
	defer dc.Pop()
	if ghost {
		fill.A /= 2
	}
	dc.DrawRoundedRectangle(r.X, r.Y, r.Width, r.Height, cornerRadius)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(th.ItemBorder)
	dc.SetLineWidth(1.5)
	if ghost {
		dc.SetDash(4, 3)
	}
	dc.Stroke()
	dc.SetDash()

	if !it.IsLabel() {
		drawFacing(dc, r, it.IsFlipped, th.ItemBorder)
	}
	dc.SetColor(text)
	dc.DrawStringAnchored(fit(dc, label, r.Width-8), r.X+r.Width/2, r.Y+r.Height/2, 0.5, 0.35)
}

// drawFacing marks which way an item points along its bottom edge; flipped
// items face left.
func drawFacing(dc *gg.Context, r stage.Rect, flipped bool, col color.RGBA) {
	const s = 5
	y := r.Bottom() - s - 3
	x := r.Right() - s - 4
	dir := 1.0
	if flipped {
		x = r.X + s + 4
		dir = -1
	}
	dc.MoveTo(x+dir*s, y)
	dc.LineTo(x-dir*s, y-s)
	dc.LineTo(x-dir*s, y+s)
	dc.ClosePath()
	dc.SetColor(col)
	dc.Fill()
}

func drawSelection(dc *gg.Context, it stage.Item, th *theme.Theme) {
	r := it.Rect()
	dc.DrawRoundedRectangle(r.X-2, r.Y-2, r.Width+4, r.Height+4, cornerRadius+2)
	dc.SetColor(th.Selection)
	dc.SetLineWidth(2)
	dc.Stroke()
}

func drawHandles(dc *gg.Context, it stage.Item, th *theme.Theme, size float64) {
	for _, hr := range gesture.HandleRects(it.Rect(), size) {
		dc.DrawRectangle(hr.X, hr.Y, hr.Width, hr.Height)
		dc.SetColor(th.Handle)
		dc.FillPreserve()
		dc.SetColor(th.HandleBorder)
		dc.SetLineWidth(1)
		dc.Stroke()
	}
}

func drawLasso(dc *gg.Context, r stage.Rect, th *theme.Theme) {
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.SetColor(th.LassoFill)
	dc.FillPreserve()
	dc.SetColor(th.LassoBorder)
	dc.SetLineWidth(1)
	dc.SetDash(5, 3)
	dc.Stroke()
	dc.SetDash()
}

// fit shortens s with an ellipsis until it is at most width wide.
func fit(dc *gg.Context, s string, width float64) string {
	if w, _ := dc.MeasureString(s); w <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		cand := string(runes) + "…"
		if w, _ := dc.MeasureString(cand); w <= width {
			return cand
		}
	}
	return ""
}
