package paintd

// DrawState is the graphics state a backend consumes when executing one
// drawing operation: the current transform, option groups, and clip. It is
// owned by the canvas context and mutated only on the actor goroutine.
type DrawState struct {
	Transform   Matrix
	FillStyle   FillOrStrokeStyle
	StrokeStyle FillOrStrokeStyle
	Line        LineOptions
	Shadow      ShadowOptions
	Composition CompositionOptions
	Text        TextOptions
	Clip        *ClipMask
}

// defaultDrawState returns the state of a freshly created canvas.
func defaultDrawState() DrawState {
	return DrawState{
		Transform:   Identity(),
		FillStyle:   Solid(Black),
		StrokeStyle: Solid(Black),
		Line:        DefaultLineOptions(),
		Shadow:      DefaultShadowOptions(),
		Composition: DefaultCompositionOptions(),
		Text:        DefaultTextOptions(),
	}
}

// clone snapshots the state for the save stack. Styles and clip masks are
// immutable once set, so they are shared; the dash slice is copied.
func (s *DrawState) clone() DrawState {
	out := *s
	out.Line = s.Line.clone()
	return out
}

// ClipMask is a per-pixel coverage mask in device space. 0 means fully
// clipped out, 255 fully inside. A nil *ClipMask means no clipping.
// Masks are immutable once built; intersecting produces a new mask.
type ClipMask struct {
	width  int
	height int
	data   []uint8
}

// NewClipMask creates a mask with no coverage.
func NewClipMask(width, height int) *ClipMask {
	return &ClipMask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Coverage returns the coverage at a device pixel. Out-of-bounds pixels
// have zero coverage.
func (m *ClipMask) Coverage(x, y int) uint8 {
	if m == nil {
		return 255
	}
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set stores coverage at a device pixel.
func (m *ClipMask) Set(x, y int, coverage uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = coverage
}

// Backend is the rasterization capability the canvas context draws
// through. A backend performs pixel operations against a caller-owned
// pixmap; it holds no per-canvas state of its own.
//
// Paths are given in user space; the backend applies state.Transform,
// honors state.Clip, and composites with state.Shadow and
// state.Composition. Implementations are only ever called from the actor
// goroutine and need no internal locking.
type Backend interface {
	// FillPath fills the path using the given style.
	FillPath(dst *Pixmap, path *Path, style FillOrStrokeStyle, state *DrawState)

	// StrokePath strokes the path using the given style and state.Line.
	StrokePath(dst *Pixmap, path *Path, style FillOrStrokeStyle, state *DrawState)

	// ClearRect resets the transformed rectangle's pixels to transparent,
	// honoring state.Clip but no style state.
	ClearRect(dst *Pixmap, rect Rect, state *DrawState)

	// DrawImage composites src's srcRect into dst's dstRect, resampling
	// with nearest-neighbor or interpolated sampling per smoothing.
	DrawImage(dst *Pixmap, src *Pixmap, dstRect, srcRect Rect, smoothing bool, state *DrawState)

	// RasterizeClip rasterizes the transformed path into a coverage mask
	// of the given size, intersected with prev (nil means unclipped).
	RasterizeClip(size Size, path *Path, transform Matrix, prev *ClipMask) *ClipMask
}
