package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures item drop shadows.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a soft shadow sized for stage items.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  6,
		Offset:  image.Pt(4, 4),
		Opacity: 1,
	}
}

// CastShadow darkens dst beneath every opaque pixel of silhouettes, blurred
// by opts.Radius and shifted by opts.Offset. The shadow colour's alpha is
// scaled by opts.Opacity. Both images share one coordinate space.
func CastShadow(dst, silhouettes *image.RGBA, col color.RGBA, opts ShadowOptions) {
	if dst == nil || silhouettes == nil || opts.Opacity <= 0 || col.A == 0 {
		return
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	src := silhouettes.Bounds()
	if src.Empty() {
		return
	}
	padded := src.Inset(-radius)
	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := silhouettes.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := blurGray(mask, radius)

	alpha := uint8(float64(col.A)*opacity + 0.5)
	if alpha == 0 {
		return
	}
	shade := image.NewUniform(color.RGBA{R: col.R, G: col.G, B: col.B, A: alpha})
	at := blurred.Bounds().Add(padded.Min).Add(opts.Offset)
	draw.DrawMask(dst, at, shade, image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
}

// blurGray is a separable box blur built on running sums.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewGray(b)
	dst := image.NewGray(b)

	sums := make([]int, max(w, h)+1)
	window := func(i, n int) (int, int) {
		return max(i-radius, 0), min(i+radius, n-1)
	}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			sums[x+1] = sums[x] + int(row[x])
		}
		for x := 0; x < w; x++ {
			lo, hi := window(x, w)
			tmp.Pix[y*tmp.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sums[y+1] = sums[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			lo, hi := window(y, h)
			dst.Pix[y*dst.Stride+x] = uint8((sums[hi+1] - sums[lo]) / (hi - lo + 1))
		}
	}
	return dst
}
