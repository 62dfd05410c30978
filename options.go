package paintd

// LineCap specifies the shape of line endpoints.
type LineCap int

const (
	// LineCapButt specifies a flat line cap.
	LineCapButt LineCap = iota
	// LineCapRound specifies a rounded line cap.
	LineCapRound
	// LineCapSquare specifies a square line cap.
	LineCapSquare
)

// LineJoin specifies the shape of line joins.
type LineJoin int

const (
	// LineJoinMiter specifies a sharp (mitered) join.
	LineJoinMiter LineJoin = iota
	// LineJoinRound specifies a rounded join.
	LineJoinRound
	// LineJoinBevel specifies a beveled join.
	LineJoinBevel
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// CompositionOp selects how source pixels combine with destination pixels.
// The first twelve are the Porter-Duff operators; the rest are separable
// blend modes applied with source-over alpha compositing.
type CompositionOp int

const (
	OpSourceOver CompositionOp = iota
	OpSourceIn
	OpSourceOut
	OpSourceAtop
	OpDestinationOver
	OpDestinationIn
	OpDestinationOut
	OpDestinationAtop
	OpCopy
	OpClear
	OpXor
	OpLighter
	OpMultiply
	OpScreen
	OpOverlay
)

// TextAlign specifies the horizontal anchoring of drawn text.
type TextAlign int

const (
	// TextAlignStart anchors at the logical start (left for LTR, right for RTL).
	TextAlignStart TextAlign = iota
	TextAlignEnd
	TextAlignLeft
	TextAlignRight
	TextAlignCenter
)

// TextBaseline specifies the vertical anchoring of drawn text.
type TextBaseline int

const (
	TextBaselineAlphabetic TextBaseline = iota
	TextBaselineTop
	TextBaselineHanging
	TextBaselineMiddle
	TextBaselineIdeographic
	TextBaselineBottom
)

// LineOptions carries the stroke settings applied before a stroking
// operation.
type LineOptions struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// DefaultLineOptions returns the stroke settings of a fresh canvas.
func DefaultLineOptions() LineOptions {
	return LineOptions{
		Width:      1.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10.0,
	}
}

// IsDashed reports whether the options describe a dashed stroke.
func (o LineOptions) IsDashed() bool {
	for _, d := range o.Dash {
		if d > 0 {
			return true
		}
	}
	return false
}

// clone deep-copies the dash slice so snapshots do not alias live state.
func (o LineOptions) clone() LineOptions {
	out := o
	if o.Dash != nil {
		out.Dash = make([]float64, len(o.Dash))
		copy(out.Dash, o.Dash)
	}
	return out
}

// ShadowOptions carries the shadow settings applied before a drawing
// operation. A shadow is drawn when the color is visible and either the
// offset or the blur is non-zero.
type ShadowOptions struct {
	OffsetX float64
	OffsetY float64
	Blur    float64
	Color   RGBA
}

// DefaultShadowOptions returns the shadow settings of a fresh canvas
// (no shadow).
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{Color: Transparent}
}

// Enabled reports whether drawing should produce a shadow pass.
func (o ShadowOptions) Enabled() bool {
	if o.Color.A <= 0 {
		return false
	}
	return o.OffsetX != 0 || o.OffsetY != 0 || o.Blur > 0
}

// CompositionOptions carries global alpha and the composite operator.
type CompositionOptions struct {
	Alpha float64
	Op    CompositionOp
}

// DefaultCompositionOptions returns the composition settings of a fresh
// canvas: fully opaque source-over.
func DefaultCompositionOptions() CompositionOptions {
	return CompositionOptions{Alpha: 1.0, Op: OpSourceOver}
}

// TextOptions carries the text settings applied before a text operation.
// An empty Family selects the actor's default font.
type TextOptions struct {
	Family   string
	Size     float64
	Align    TextAlign
	Baseline TextBaseline
}

// DefaultTextOptions returns the text settings of a fresh canvas.
func DefaultTextOptions() TextOptions {
	return TextOptions{Size: 10}
}
