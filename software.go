package paintd

import (
	"image"

	"github.com/gogpu/paintd/internal/raster"
)

// SoftwareBackend is the CPU scanline rasterizer. It is the one conforming
// Backend implementation shipped with the package.
//
// All work happens on the caller's goroutine against caller-owned pixmaps;
// the backend itself is stateless.
type SoftwareBackend struct{}

// NewSoftwareBackend creates a software backend.
func NewSoftwareBackend() *SoftwareBackend {
	return &SoftwareBackend{}
}

// FillPath implements Backend.
func (b *SoftwareBackend) FillPath(dst *Pixmap, path *Path, style FillOrStrokeStyle, state *DrawState) {
	if path.IsEmpty() || style == nil {
		return
	}
	device := path.Transform(state.Transform)
	polys := raster.FillPolygons(toRasterElements(device.Elements()))
	b.paintPolygons(dst, polys, style, state)
}

// StrokePath implements Backend.
func (b *SoftwareBackend) StrokePath(dst *Pixmap, path *Path, style FillOrStrokeStyle, state *DrawState) {
	if path.IsEmpty() || style == nil || state.Line.Width <= 0 {
		return
	}

	// Stroke geometry is built in user space so the line width scales
	// with the transform, then mapped to device space.
	lines := raster.Flatten(toRasterElements(path.Elements()))
	if state.Line.IsDashed() {
		lines = raster.ApplyDash(lines, state.Line.Dash, state.Line.DashOffset)
	}
	polys := raster.Stroke(lines, strokeStyle(state.Line))
	for _, poly := range polys {
		for i, pt := range poly {
			mapped := state.Transform.TransformPoint(Pt(pt.X, pt.Y))
			poly[i] = raster.Point{X: mapped.X, Y: mapped.Y}
		}
	}
	b.paintPolygons(dst, polys, style, state)
}

// ClearRect implements Backend.
func (b *SoftwareBackend) ClearRect(dst *Pixmap, rect Rect, state *DrawState) {
	if rect.IsEmpty() {
		return
	}
	device := rect.Path().Transform(state.Transform)
	polys := raster.FillPolygons(toRasterElements(device.Elements()))
	cov := b.coverage(dst.Width(), dst.Height(), polys)

	bounds := device.Bounds().ToImageRect().Intersect(dst.Bounds())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := cov[y*dst.Width()+x]
			if c == 0 {
				continue
			}
			frac := float64(c) / 255 * float64(state.Clip.Coverage(x, y)) / 255
			if frac == 0 {
				continue
			}
			p := dst.GetPixel(x, y).Premultiply()
			keep := 1 - frac
			dst.SetPixel(x, y, RGBA{
				R: p.R * keep,
				G: p.G * keep,
				B: p.B * keep,
				A: p.A * keep,
			}.Unpremultiply())
		}
	}
}

// RasterizeClip implements Backend.
func (b *SoftwareBackend) RasterizeClip(size Size, path *Path, transform Matrix, prev *ClipMask) *ClipMask {
	device := path.Transform(transform)
	polys := raster.FillPolygons(toRasterElements(device.Elements()))
	cov := b.coverage(size.Width, size.Height, polys)

	mask := NewClipMask(size.Width, size.Height)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := uint32(cov[y*size.Width+x])
			if prev != nil {
				c = c * uint32(prev.Coverage(x, y)) / 255
			}
			mask.Set(x, y, uint8(c))
		}
	}
	return mask
}

// paintPolygons rasterizes polygons and composites them with the style
// sampled in user space, honoring clip, shadow, and composition state.
func (b *SoftwareBackend) paintPolygons(dst *Pixmap, polys [][]raster.Point, style FillOrStrokeStyle, state *DrawState) {
	if len(polys) == 0 {
		return
	}
	width, height := dst.Width(), dst.Height()
	cov := b.coverage(width, height, polys)

	inv, ok := state.Transform.Invert()
	if !ok {
		return
	}

	srcAt := func(x, y int) RGBA {
		if x < 0 || x >= width || y < 0 || y >= height {
			return Transparent
		}
		c := cov[y*width+x]
		if c == 0 {
			return Transparent
		}
		user := inv.TransformPoint(Pt(float64(x)+0.5, float64(y)+0.5))
		col := style.ColorAt(user.X, user.Y)
		col.A *= float64(c) / 255
		return col
	}

	bounds := polygonBounds(polys).Intersect(dst.Bounds())
	b.compose(dst, srcAt, bounds, state)
}

// compose runs the shadow pass (when enabled) and then the main composite
// pass for a source layer.
func (b *SoftwareBackend) compose(dst *Pixmap, srcAt func(x, y int) RGBA, bounds image.Rectangle, state *DrawState) {
	if state.Shadow.Enabled() {
		b.composeShadow(dst, srcAt, bounds, state)
	}
	b.blendLayer(dst, srcAt, bounds, state)
}

// composeShadow extracts the source alpha, blurs and offsets it, and
// composites it in the shadow color underneath the upcoming main pass.
func (b *SoftwareBackend) composeShadow(dst *Pixmap, srcAt func(x, y int) RGBA, bounds image.Rectangle, state *DrawState) {
	radius := blurRadius(state.Shadow.Blur)
	sb := bounds.Inset(-radius)

	alpha := make([]float64, sb.Dx()*sb.Dy())
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			alpha[(y-sb.Min.Y)*sb.Dx()+(x-sb.Min.X)] = srcAt(x, y).A
		}
	}
	if radius > 0 {
		boxBlur(alpha, sb.Dx(), sb.Dy(), radius)
	}

	offX := int(state.Shadow.OffsetX)
	offY := int(state.Shadow.OffsetY)
	shadowBounds := sb.Add(image.Pt(offX, offY)).Intersect(dst.Bounds())

	color := state.Shadow.Color
	shadowAt := func(x, y int) RGBA {
		sx := x - offX - sb.Min.X
		sy := y - offY - sb.Min.Y
		if sx < 0 || sx >= sb.Dx() || sy < 0 || sy >= sb.Dy() {
			return Transparent
		}
		a := alpha[sy*sb.Dx()+sx]
		if a == 0 {
			return Transparent
		}
		c := color
		c.A *= a
		return c
	}
	b.blendLayer(dst, shadowAt, shadowBounds, state)
}

// blendLayer composites one source layer onto dst with the composition
// operator, global alpha, and clip mask. Non-local operators touch the
// whole surface; fully clipped-out pixels always stay untouched.
func (b *SoftwareBackend) blendLayer(dst *Pixmap, srcAt func(x, y int) RGBA, bounds image.Rectangle, state *DrawState) {
	op := state.Composition.Op
	if !opIsLocal(op) {
		bounds = dst.Bounds()
	} else {
		bounds = bounds.Intersect(dst.Bounds())
	}
	alpha := clamp01(state.Composition.Alpha)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			clip := state.Clip.Coverage(x, y)
			if clip == 0 {
				continue
			}
			src := srcAt(x, y)
			src.A *= alpha
			if src.A == 0 && opIsLocal(op) {
				continue
			}
			d := dst.GetPixel(x, y)
			out := composePixel(src, d, op)
			if clip < 255 {
				out = d.Premultiply().Lerp(out.Premultiply(), float64(clip)/255).Unpremultiply()
			}
			dst.SetPixel(x, y, out)
		}
	}
}

// coverage rasterizes polygons into a full-surface coverage buffer.
func (b *SoftwareBackend) coverage(width, height int, polys [][]raster.Point) []uint8 {
	cov := make([]uint8, width*height)
	raster.Fill(polys, width, height, raster.FillRuleNonZero, func(y, x0 int, row []uint8) {
		copy(cov[y*width+x0:], row)
	})
	return cov
}

// polygonBounds returns the outward-rounded device bounds of the polygons.
func polygonBounds(polys [][]raster.Point) image.Rectangle {
	first := true
	var r Rect
	for _, poly := range polys {
		for _, pt := range poly {
			if first {
				r = Rect{X: pt.X, Y: pt.Y}
				first = false
				continue
			}
			if pt.X < r.X {
				r.W += r.X - pt.X
				r.X = pt.X
			} else if pt.X > r.MaxX() {
				r.W = pt.X - r.X
			}
			if pt.Y < r.Y {
				r.H += r.Y - pt.Y
				r.Y = pt.Y
			} else if pt.Y > r.MaxY() {
				r.H = pt.Y - r.Y
			}
		}
	}
	if first {
		return image.Rectangle{}
	}
	return r.ToImageRect()
}

// strokeStyle maps line options to the rasterizer's stroke settings.
func strokeStyle(o LineOptions) raster.StrokeStyle {
	s := raster.StrokeStyle{
		Width:      o.Width,
		MiterLimit: o.MiterLimit,
	}
	switch o.Cap {
	case LineCapRound:
		s.Cap = raster.CapRound
	case LineCapSquare:
		s.Cap = raster.CapSquare
	default:
		s.Cap = raster.CapButt
	}
	switch o.Join {
	case LineJoinRound:
		s.Join = raster.JoinRound
	case LineJoinBevel:
		s.Join = raster.JoinBevel
	default:
		s.Join = raster.JoinMiter
	}
	return s
}

// toRasterElements converts path elements to the rasterizer's element set.
func toRasterElements(elements []PathElement) []raster.PathElement {
	out := make([]raster.PathElement, 0, len(elements))
	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			out = append(out, raster.MoveTo{Point: raster.Point{X: e.Point.X, Y: e.Point.Y}})
		case LineTo:
			out = append(out, raster.LineTo{Point: raster.Point{X: e.Point.X, Y: e.Point.Y}})
		case QuadTo:
			out = append(out, raster.QuadTo{
				Control: raster.Point{X: e.Control.X, Y: e.Control.Y},
				Point:   raster.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case CubicTo:
			out = append(out, raster.CubicTo{
				Control1: raster.Point{X: e.Control1.X, Y: e.Control1.Y},
				Control2: raster.Point{X: e.Control2.X, Y: e.Control2.Y},
				Point:    raster.Point{X: e.Point.X, Y: e.Point.Y},
			})
		case Close:
			out = append(out, raster.Close{})
		}
	}
	return out
}

// blurRadius approximates a Gaussian with sigma = blur/2 by three box
// passes of this radius.
func blurRadius(blur float64) int {
	if blur <= 0 {
		return 0
	}
	r := int(blur/2 + 0.5)
	if r < 1 {
		r = 1
	}
	return r
}

// boxBlur blurs the alpha buffer in place with three separable box passes,
// a standard close approximation of a Gaussian.
func boxBlur(alpha []float64, width, height, radius int) {
	tmp := make([]float64, len(alpha))
	for pass := 0; pass < 3; pass++ {
		boxBlurH(alpha, tmp, width, height, radius)
		boxBlurV(tmp, alpha, width, height, radius)
	}
}

func boxBlurH(src, dst []float64, width, height, radius int) {
	norm := 1 / float64(2*radius+1)
	for y := 0; y < height; y++ {
		row := src[y*width : (y+1)*width]
		sum := 0.0
		for x := -radius; x <= radius; x++ {
			sum += sampleRow(row, x)
		}
		for x := 0; x < width; x++ {
			dst[y*width+x] = sum * norm
			sum += sampleRow(row, x+radius+1) - sampleRow(row, x-radius)
		}
	}
}

func boxBlurV(src, dst []float64, width, height, radius int) {
	norm := 1 / float64(2*radius+1)
	for x := 0; x < width; x++ {
		sum := 0.0
		for y := -radius; y <= radius; y++ {
			sum += sampleCol(src, width, height, x, y)
		}
		for y := 0; y < height; y++ {
			dst[y*width+x] = sum * norm
			sum += sampleCol(src, width, height, x, y+radius+1) - sampleCol(src, width, height, x, y-radius)
		}
	}
}

func sampleRow(row []float64, x int) float64 {
	if x < 0 || x >= len(row) {
		return 0
	}
	return row[x]
}

func sampleCol(buf []float64, width, height, x, y int) float64 {
	if y < 0 || y >= height {
		return 0
	}
	return buf[y*width+x]
}
