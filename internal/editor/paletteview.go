package editor

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/stageplot/internal/palette"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/theme"
)

// paletteRow is either a category heading or a template.
type paletteRow struct {
	heading  string
	template stage.Template
}

func (r paletteRow) isHeading() bool { return r.heading != "" }

func buildRows(cat *palette.Catalog) []paletteRow {
	if cat == nil {
		return nil
	}
	var rows []paletteRow
	for _, c := range cat.Categories() {
		rows = append(rows, paletteRow{heading: c})
		for _, t := range cat.InCategory(c) {
			rows = append(rows, paletteRow{template: t})
		}
	}
	return rows
}

// paletteView is the scrollable template column.
type paletteView struct {
	rows   []paletteRow
	scroll int
	hover  int
}

func newPaletteView(cat *palette.Catalog) paletteView {
	return paletteView{rows: buildRows(cat), hover: -1}
}

// rowAt returns the index of the row under window y.
func (p paletteView) rowAt(y float32) (int, bool) {
	if y < 0 {
		return -1, false
	}
	i := int(y)/rowHeight + p.scroll
	if i >= len(p.rows) {
		return -1, false
	}
	return i, true
}

// templateAt returns the template under window y, ignoring headings.
func (p paletteView) templateAt(y float32) (stage.Template, bool) {
	i, ok := p.rowAt(y)
	if !ok || p.rows[i].isHeading() {
		return stage.Template{}, false
	}
	return p.rows[i].template, true
}

func (p *paletteView) scrollBy(n, visible int) {
	p.scroll += n
	if limit := len(p.rows) - visible; p.scroll > limit {
		p.scroll = limit
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func drawPalette(dst *image.RGBA, r image.Rectangle, p paletteView, th *theme.Theme) {
	draw.Draw(dst, r, image.NewUniform(th.PaletteBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Face: basicfont.Face7x13}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	y := r.Min.Y
	for i := p.scroll; i < len(p.rows) && y+rowHeight <= r.Max.Y; i++ {
		row := p.rows[i]
		cell := image.Rect(r.Min.X, y, r.Max.X, y+rowHeight)
		x := r.Min.X + 8
		if row.isHeading() {
			d.Src = image.NewUniform(th.PaletteHeading)
			x = r.Min.X + 4
		} else {
			if i == p.hover {
				draw.Draw(dst, cell, image.NewUniform(th.PaletteHover), image.Point{}, draw.Src)
			}
			d.Src = image.NewUniform(th.PaletteText)
		}
		label := row.heading
		if !row.isHeading() {
			label = row.template.Name
		}
		d.Dot = fixed.P(x, y+(rowHeight+ascent)/2-1)
		d.DrawString(clip(d, label, r.Max.X-x-4))
		y += rowHeight
	}
}

// clip shortens s to fit in width pixels.
func clip(d *font.Drawer, s string, width int) string {
	if d.MeasureString(s).Ceil() <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && d.MeasureString(string(runes)+"...").Ceil() > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
