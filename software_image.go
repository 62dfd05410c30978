package paintd

import (
	"image"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DrawImage implements Backend. The source region is resampled through
// the full placement transform into a scratch layer covering the
// destination, which is then composited like any other source.
func (b *SoftwareBackend) DrawImage(dst *Pixmap, src *Pixmap, dstRect, srcRect Rect, smoothing bool, state *DrawState) {
	if src == nil || dstRect.IsEmpty() || srcRect.IsEmpty() {
		return
	}

	// Maps source pixel space onto the device: shift the source rect to
	// the origin, scale it into the destination rect, place it, then
	// apply the canvas transform.
	m := state.Transform.
		Multiply(Translate(dstRect.X, dstRect.Y)).
		Multiply(Scale(dstRect.W/srcRect.W, dstRect.H/srcRect.H)).
		Multiply(Translate(-srcRect.X, -srcRect.Y))

	sr := srcRect.ToImageRect().Intersect(src.Bounds())
	if sr.Empty() {
		return
	}

	scratch := image.NewNRGBA(dst.Bounds())
	var scaler xdraw.Transformer = xdraw.NearestNeighbor
	if smoothing {
		scaler = xdraw.BiLinear
	}
	scaler.Transform(scratch, f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}, src.ToImage(), sr, xdraw.Src, nil)

	srcAt := func(x, y int) RGBA {
		if !image.Pt(x, y).In(scratch.Rect) {
			return Transparent
		}
		i := scratch.PixOffset(x, y)
		return RGBA{
			R: float64(scratch.Pix[i]) / 255,
			G: float64(scratch.Pix[i+1]) / 255,
			B: float64(scratch.Pix[i+2]) / 255,
			A: float64(scratch.Pix[i+3]) / 255,
		}
	}

	bounds := m.TransformRect(NewRect(float64(sr.Min.X), float64(sr.Min.Y), float64(sr.Dx()), float64(sr.Dy()))).
		Outset(1).
		ToImageRect().
		Intersect(dst.Bounds())
	b.compose(dst, srcAt, bounds, state)
}
