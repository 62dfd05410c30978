package paintd

import (
	"image"

	"github.com/gogpu/paintd/text"
)

// CanvasContext owns one canvas: its raster surface, draw state, and save
// stack. All methods run on the actor goroutine.
type CanvasContext struct {
	backend    Backend
	fonts      *text.FontContext
	compositor Compositor

	surface  *Pixmap
	state    DrawState
	saved    []DrawState
	imageKey ImageKey
}

func newCanvasContext(backend Backend, fonts *text.FontContext, compositor Compositor, size Size) *CanvasContext {
	c := &CanvasContext{
		backend:    backend,
		fonts:      fonts,
		compositor: compositor,
		surface:    NewPixmap(size.Width, size.Height),
		state:      defaultDrawState(),
	}
	c.imageKey = compositor.AddImage(c.surface)
	return c
}

// ImageKey returns the compositor key issued at creation. It stays stable
// across surface recreations.
func (c *CanvasContext) ImageKey() ImageKey {
	return c.imageKey
}

// Size returns the current surface dimensions.
func (c *CanvasContext) Size() Size {
	return c.surface.Size()
}

// apply executes one drawing operation. Each operation overwrites the
// option groups it carries before running, so callers never depend on
// state left behind by a previous operation.
func (c *CanvasContext) apply(op Operation) {
	switch m := op.(type) {
	case FillRect:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.state.FillStyle = m.Style
		c.fillRect(m.Rect)
	case StrokeRect:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.state.StrokeStyle = m.Style
		c.state.Line = m.Line
		c.strokeRect(m.Rect)
	case FillPath:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.state.FillStyle = m.Style
		c.backend.FillPath(c.surface, m.Path, m.Style, &c.state)
	case StrokePath:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.state.StrokeStyle = m.Style
		c.state.Line = m.Line
		c.backend.StrokePath(c.surface, m.Path, m.Style, &c.state)
	case ClearRect:
		c.state.Transform = m.Transform
		c.backend.ClearRect(c.surface, m.Rect, &c.state)
	case ClipPath:
		c.state.Transform = m.Transform
		c.clipPath(m.Path)
	case FillText:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.state.FillStyle = m.Style
		c.state.Text = m.Options
		c.fillText(m)
	case MeasureText:
		replyTo(m.Reply, c.measureText(m.Text, m.Options), "measure text")
	case DrawImage:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.DrawImagePixels(m.Pixels, m.DstRect, m.SrcRect, m.Smoothing)
	case DrawEmptyImage:
		c.setPaint(m.Transform, m.Shadow, m.Composition)
		c.DrawImagePixels(NewPixmap(m.Size.Width, m.Size.Height), m.DstRect, m.SrcRect, false)
	case Save:
		c.saveState()
	case Restore:
		c.restoreState()
	case GetImageData:
		replyTo(m.Reply, c.readPixels(m.Region), "get image data")
	case PutImageData:
		c.putImageData(m.Pixels, m.Rect)
	case UpdateImage:
		c.updateRendering()
		replyTo(m.Reply, struct{}{}, "update image")
	default:
		Logger().Warn("unhandled canvas operation", "op", op)
	}
}

// setPaint installs the option groups shared by every painting operation.
func (c *CanvasContext) setPaint(transform Matrix, shadow ShadowOptions, comp CompositionOptions) {
	c.state.Transform = transform
	c.state.Shadow = shadow
	c.state.Composition = comp
}

func (c *CanvasContext) fillRect(rect Rect) {
	if rect.IsEmpty() {
		return
	}
	c.backend.FillPath(c.surface, rect.Path(), c.state.FillStyle, &c.state)
}

func (c *CanvasContext) strokeRect(rect Rect) {
	if rect.W == 0 && rect.H == 0 {
		return
	}
	path := NewPath()
	if rect.W == 0 || rect.H == 0 {
		// A degenerate rectangle strokes as a line between its corners.
		path.MoveTo(rect.X, rect.Y)
		path.LineTo(rect.MaxX(), rect.MaxY())
	} else {
		path.Rectangle(rect.X, rect.Y, rect.W, rect.H)
	}
	c.backend.StrokePath(c.surface, path, c.state.StrokeStyle, &c.state)
}

func (c *CanvasContext) clipPath(path *Path) {
	c.state.Clip = c.backend.RasterizeClip(c.surface.Size(), path, c.state.Transform, c.state.Clip)
}

func (c *CanvasContext) fillText(op FillText) {
	source := c.fonts.Resolve(op.Options.Family)
	if source == nil {
		Logger().Warn("fill text without any registered font", "family", op.Options.Family)
		return
	}
	glyphs, metrics := c.fonts.Shaper.Shape(source, op.Text, op.Options.Size, op.RTL)
	if len(glyphs) == 0 {
		return
	}

	// max-width compresses the advances, never clips.
	scale := 1.0
	if op.MaxWidth != nil && metrics.Width > *op.MaxWidth && metrics.Width > 0 {
		scale = *op.MaxWidth / metrics.Width
	}
	width := metrics.Width * scale

	originX := op.X + anchorOffset(op.Options.Align, width, op.RTL)
	originY := op.Y + baselineOffset(op.Options.Baseline, metrics)

	path := NewPath()
	for _, g := range glyphs {
		segments, err := c.fonts.Outline.Outline(source, g.GID, op.Options.Size)
		if err != nil {
			Logger().Debug("skipping glyph without outline", "gid", uint16(g.GID), "err", err)
			continue
		}
		appendGlyphOutline(path, segments, originX+g.X*scale, originY+g.Y)
	}
	if path.IsEmpty() {
		return
	}
	c.backend.FillPath(c.surface, path, op.Style, &c.state)
}

func (c *CanvasContext) measureText(str string, opts TextOptions) text.Metrics {
	source := c.fonts.Resolve(opts.Family)
	if source == nil {
		return text.Metrics{}
	}
	return c.fonts.Shaper.Measure(source, str, opts.Size)
}

// DrawImagePixels composites a source buffer into the surface using the
// current draw state. The source region is sampled in source pixel space.
func (c *CanvasContext) DrawImagePixels(pixels *Pixmap, dstRect, srcRect Rect, smoothing bool) {
	if pixels == nil || dstRect.IsEmpty() || srcRect.IsEmpty() {
		return
	}
	c.backend.DrawImage(c.surface, pixels, dstRect, srcRect, smoothing, &c.state)
}

// ReadRegionSnapshot copies the given source-space region to an owned
// buffer. It backs canvas-to-canvas draws, where the source pixels must be
// captured before the destination (possibly the same canvas) is mutated.
func (c *CanvasContext) ReadRegionSnapshot(r Rect) *Pixmap {
	return c.surface.ReadRegion(r.ToImageRect())
}

func (c *CanvasContext) saveState() {
	c.saved = append(c.saved, c.state.clone())
}

// restoreState pops the save stack; with nothing saved it leaves the
// state untouched.
func (c *CanvasContext) restoreState() {
	if len(c.saved) == 0 {
		return
	}
	c.state = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
}

// readPixels returns a copy of the surface region. A nil region reads the
// whole surface; otherwise the read is clamped to the surface bounds and
// pixels outside come back transparent.
func (c *CanvasContext) readPixels(region *image.Rectangle) *Pixmap {
	if region == nil {
		return c.surface.Clone()
	}
	return c.surface.ReadRegion(*region)
}

// putImageData writes raw pixels, bypassing transform, clip, and
// composition entirely.
func (c *CanvasContext) putImageData(pixels *Pixmap, rect image.Rectangle) {
	if pixels == nil {
		return
	}
	c.surface.WriteRegion(pixels, rect)
}

// updateRendering pushes the current pixels to the compositor.
func (c *CanvasContext) updateRendering() {
	c.compositor.UpdateImage(c.imageKey, c.surface)
}

// recreate swaps in a fresh transparent surface. A nil size keeps the
// current dimensions. Draw state, clip, and the save stack survive; the
// compositor key stays the same and is republished with the blank pixels.
func (c *CanvasContext) recreate(size *Size) {
	next := c.surface.Size()
	if size != nil {
		next = *size
	}
	c.surface = NewPixmap(next.Width, next.Height)
	c.compositor.UpdateImage(c.imageKey, c.surface)
}

// destroy releases the canvas's compositor entry.
func (c *CanvasContext) destroy() {
	c.compositor.DeleteImage(c.imageKey)
}

// replyTo delivers exactly one reply without blocking the actor. The
// channel must be buffered; an unreceivable reply is logged and dropped.
func replyTo[T any](ch chan<- T, v T, what string) {
	select {
	case ch <- v:
	default:
		Logger().Warn("dropping reply, channel not ready", "reply", what)
	}
}

// anchorOffset converts a horizontal alignment to an offset of the text
// origin relative to the anchor point.
func anchorOffset(align TextAlign, width float64, rtl bool) float64 {
	switch align {
	case TextAlignCenter:
		return -width / 2
	case TextAlignRight:
		return -width
	case TextAlignLeft:
		return 0
	case TextAlignEnd:
		if rtl {
			return 0
		}
		return -width
	default: // TextAlignStart
		if rtl {
			return -width
		}
		return 0
	}
}

// baselineOffset converts a vertical baseline to an offset from the
// alphabetic baseline.
func baselineOffset(baseline TextBaseline, m text.Metrics) float64 {
	switch baseline {
	case TextBaselineTop:
		return m.Ascent
	case TextBaselineHanging:
		return m.Ascent * 0.8
	case TextBaselineMiddle:
		return (m.Ascent - m.Descent) / 2
	case TextBaselineBottom, TextBaselineIdeographic:
		return -m.Descent
	default: // TextBaselineAlphabetic
		return 0
	}
}

// appendGlyphOutline appends one glyph's outline segments to the path,
// translated to the pen position.
func appendGlyphOutline(path *Path, segments []text.Segment, dx, dy float64) {
	for _, seg := range segments {
		switch seg.Op {
		case text.SegmentMoveTo:
			path.MoveTo(seg.Args[0].X+dx, seg.Args[0].Y+dy)
		case text.SegmentLineTo:
			path.LineTo(seg.Args[0].X+dx, seg.Args[0].Y+dy)
		case text.SegmentQuadTo:
			path.QuadraticTo(seg.Args[0].X+dx, seg.Args[0].Y+dy, seg.Args[1].X+dx, seg.Args[1].Y+dy)
		case text.SegmentCubicTo:
			path.CubicTo(seg.Args[0].X+dx, seg.Args[0].Y+dy, seg.Args[1].X+dx, seg.Args[1].Y+dy, seg.Args[2].X+dx, seg.Args[2].Y+dy)
		}
	}
	path.Close()
}
