package editor

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/stageplot/internal/gesture"
	"github.com/example/stageplot/internal/render"
	"github.com/example/stageplot/internal/stage"
	"github.com/example/stageplot/internal/theme"
)

// frameState is everything a paint needs, copied out of the editor so the
// paint goroutine never touches live state.
type frameState struct {
	lay     layout
	palette paletteView
	snap    render.Snapshot
	status  string
	message string
}

func (e *Editor) frameState() frameState {
	sf := e.ws.Surface()
	items := e.ctl.Preview()
	if e.edit != nil {
		text := string(e.edit.text) + "|"
		for i := range items {
			if items[i].ID == e.edit.id {
				items[i].FreeText = &text
			}
		}
	}
	if d := e.drag; d != nil && d.over {
		ghost := stage.Create(stage.NewIDs(stage.Counter("ghost")), d.template, dropPosition(d.template, d.pointer))
		ghost.ID = ""
		items = append(items, ghost)
	}
	snap := render.Snapshot{
		Items:     items,
		Selected:  sf.Selection(),
		Handles:   true,
		StageSize: sf.StageSize(),
	}
	if r, ok := e.ctl.Lasso(); ok {
		snap.Lasso = &r
	}
	unsaved := ""
	if sf.Unsaved() {
		unsaved = "*"
	}
	status := fmt.Sprintf("%s%s  |  %d items, %d selected  |  %s",
		displayName(e.ws.Name()), unsaved, sf.Len(), len(snap.Selected), stateName(e.ctl.State()))
	return frameState{
		lay:     e.lay,
		palette: e.palette,
		snap:    snap,
		status:  status,
		message: e.Message(),
	}
}

func stateName(s gesture.State) string {
	switch s := s.(type) {
	case gesture.Dragging:
		if s.Duplicate {
			return "duplicating"
		}
		return "dragging"
	case gesture.Resizing:
		return "resizing " + s.Handle.String()
	case gesture.LassoSelecting:
		return "selecting"
	}
	return "idle"
}

// Frame renders the whole window as it would be painted now.
func (e *Editor) Frame() *image.RGBA {
	st := e.frameState()
	img := image.NewRGBA(image.Rect(0, 0, st.lay.width, st.lay.height))
	drawFrameInto(context.Background(), img, st, e.theme)
	return img
}

// drawFrameInto paints st onto dst, giving up early once ctx is cancelled.
func drawFrameInto(ctx context.Context, dst *image.RGBA, st frameState, th *theme.Theme) {
	if th == nil {
		th = theme.Default()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)
	drawPalette(dst, st.lay.paletteRect(), st.palette, th)
	if ctx.Err() != nil {
		return
	}

	img := render.Stage(st.snap, th, render.DefaultOptions())
	if ctx.Err() != nil {
		return
	}
	r := st.lay.stageRect()
	if r.Size() == img.Bounds().Size() {
		draw.Draw(dst, r, img, image.Point{}, draw.Over)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, r, img, img.Bounds(), draw.Over, nil)
	}
	if ctx.Err() != nil {
		return
	}

	sr := st.lay.statusRect()
	draw.Draw(dst, sr, image.NewUniform(th.PaletteBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PaletteText), Face: basicfont.Face7x13}
	ascent := basicfont.Face7x13.Metrics().Ascent.Ceil()
	d.Dot = fixed.P(sr.Min.X+8, sr.Min.Y+(statusHeight+ascent)/2-1)
	d.DrawString(st.status)

	if st.message != "" {
		drawMessage(dst, st.message, sr.Min.Y, th)
	}
}

// drawMessage shows msg in a box centred just above the status line.
func drawMessage(dst *image.RGBA, msg string, bottom int, th *theme.Theme) {
	face := render.Face(18)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: face}
	w := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	px := (dst.Bounds().Dx() - w) / 2
	py := bottom - 12 - descent
	box := image.Rect(px-8, py-ascent-6, px+w+8, py+descent+6)
	draw.Draw(dst, box, image.NewUniform(th.Background), image.Point{}, draw.Over)
	outline(dst, box, th.Foreground)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

func outline(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, u, image.Point{}, draw.Src)
	}
}
