package paintd

import (
	"image"

	"github.com/gogpu/paintd/text"
)

// CanvasID identifies one canvas owned by the paint actor. IDs are opaque,
// strictly increasing, and never reused, even after the canvas is closed.
type CanvasID uint64

// Command is a message on the draw channel. The closed set of
// implementations is DrawOp, CloseCanvas, and RecreateCanvas.
type Command interface {
	isCommand()
}

// DrawOp applies one drawing operation to the identified canvas.
type DrawOp struct {
	CanvasID CanvasID
	Op       Operation
}

func (DrawOp) isCommand() {}

// CloseCanvas destroys the identified canvas. Any later command naming the
// same id is a caller bug and aborts the actor.
type CloseCanvas struct {
	CanvasID CanvasID
}

func (CloseCanvas) isCommand() {}

// RecreateCanvas replaces the canvas's raster surface in place. A nil Size
// keeps the current dimensions. Style, clip, and save-stack state survive;
// only the pixels are reset.
type RecreateCanvas struct {
	CanvasID CanvasID
	Size     *Size
}

func (RecreateCanvas) isCommand() {}

// Operation is one drawing operation inside a DrawOp. Each operation
// carries the style option groups it consumes; the actor applies them to
// the canvas state before executing the geometry.
type Operation interface {
	isOperation()
}

// FillRect fills a rectangle with the current fill style.
type FillRect struct {
	Rect        Rect
	Style       FillOrStrokeStyle
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (FillRect) isOperation() {}

// StrokeRect strokes a rectangle outline.
type StrokeRect struct {
	Rect        Rect
	Style       FillOrStrokeStyle
	Line        LineOptions
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (StrokeRect) isOperation() {}

// FillPath fills an arbitrary path.
type FillPath struct {
	Path        *Path
	Style       FillOrStrokeStyle
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (FillPath) isOperation() {}

// StrokePath strokes an arbitrary path.
type StrokePath struct {
	Path        *Path
	Style       FillOrStrokeStyle
	Line        LineOptions
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (StrokePath) isOperation() {}

// ClearRect resets a rectangle's pixels to fully transparent, honoring the
// current transform and clip but no style state.
type ClearRect struct {
	Rect      Rect
	Transform Matrix
}

func (ClearRect) isOperation() {}

// ClipPath intersects the current clip region with the given path.
type ClipPath struct {
	Path      *Path
	Transform Matrix
}

func (ClipPath) isOperation() {}

// FillText renders text at (X, Y) with the current fill style.
//
// MaxWidth, when non-nil, horizontally compresses the rendered glyphs so
// the total advance fits; glyphs are never clipped. RTL reverses the
// glyph-advance direction for right-to-left layout.
type FillText struct {
	Text        string
	X, Y        float64
	MaxWidth    *float64
	RTL         bool
	Style       FillOrStrokeStyle
	Options     TextOptions
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (FillText) isOperation() {}

// MeasureText computes metrics for the string under the given text options
// without drawing. Exactly one reply is delivered.
type MeasureText struct {
	Text    string
	Options TextOptions
	Reply   chan<- text.Metrics
}

func (MeasureText) isOperation() {}

// DrawImage composites a source pixel buffer into the canvas.
// SrcRect selects the source region; DstRect places and scales it.
// Smoothing selects interpolated sampling instead of nearest-neighbor.
type DrawImage struct {
	Pixels      *Pixmap
	DstRect     Rect
	SrcRect     Rect
	Smoothing   bool
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (DrawImage) isOperation() {}

// DrawEmptyImage draws a fully transparent source of the given size, used
// when an image's data is not available yet.
type DrawEmptyImage struct {
	Size        Size
	DstRect     Rect
	SrcRect     Rect
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (DrawEmptyImage) isOperation() {}

// DrawImageFromCanvas reads SrcRect from another registered canvas and
// draws it into this canvas like an ordinary DrawImage. Source may equal
// the destination; the source region is copied to an owned buffer before
// any mutation begins.
type DrawImageFromCanvas struct {
	Source      CanvasID
	DstRect     Rect
	SrcRect     Rect
	Smoothing   bool
	Shadow      ShadowOptions
	Composition CompositionOptions
	Transform   Matrix
}

func (DrawImageFromCanvas) isOperation() {}

// Save pushes a snapshot of the canvas's non-raster state.
type Save struct{}

func (Save) isOperation() {}

// Restore pops the most recent snapshot. On an empty stack it is a no-op.
type Restore struct{}

func (Restore) isOperation() {}

// GetImageData reads back pixels. A nil Region returns the whole surface;
// otherwise the region is clamped to the surface bounds. Exactly one reply
// is delivered.
type GetImageData struct {
	Region *image.Rectangle
	Reply  chan<- *Pixmap
}

func (GetImageData) isOperation() {}

// PutImageData overwrites the destination rectangle's raw pixel content,
// bypassing transform, clip, and composition state entirely.
type PutImageData struct {
	Pixels *Pixmap
	Rect   image.Rectangle
}

func (PutImageData) isOperation() {}

// UpdateImage republishes the canvas's pixels to the compositor and
// acknowledges. Exactly one reply is delivered.
type UpdateImage struct {
	Reply chan<- struct{}
}

func (UpdateImage) isOperation() {}

// ControlMessage is a message on the control channel. The closed set of
// implementations is CreateCanvas and Exit.
type ControlMessage interface {
	isControlMessage()
}

// CreateReply is the synchronous answer to CreateCanvas.
type CreateReply struct {
	ID       CanvasID
	ImageKey ImageKey
}

// CreateCanvas allocates a new canvas of the requested size and replies
// with its id and external image key. The reply channel must be buffered.
type CreateCanvas struct {
	Size  Size
	Reply chan<- CreateReply
}

func (CreateCanvas) isControlMessage() {}

// Exit acknowledges and stops the actor. Messages still queued on either
// channel are dropped.
type Exit struct {
	Reply chan<- struct{}
}

func (Exit) isControlMessage() {}
