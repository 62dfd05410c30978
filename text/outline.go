package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SegmentOp is the operation of one outline segment.
type SegmentOp int

const (
	SegmentMoveTo SegmentOp = iota
	SegmentLineTo
	SegmentQuadTo
	SegmentCubicTo
)

// Point is a 2D outline coordinate in pixels, y growing downward.
type Point struct {
	X, Y float64
}

// Segment is one element of a glyph outline. MoveTo and LineTo use
// Args[0]; QuadTo uses Args[0] (control) and Args[1]; CubicTo uses all
// three, targets last.
type Segment struct {
	Op   SegmentOp
	Args [3]Point
}

// OutlineExtractor extracts glyph outlines from fonts, reusing one sfnt
// buffer across calls.
type OutlineExtractor struct {
	buf sfnt.Buffer
}

// NewOutlineExtractor creates an outline extractor.
func NewOutlineExtractor() *OutlineExtractor {
	return &OutlineExtractor{}
}

// Outline returns the glyph's outline at the given pixel size. Glyphs
// without an outline (such as space) yield an empty slice.
func (e *OutlineExtractor) Outline(source *FontSource, gid GlyphID, size float64) ([]Segment, error) {
	ppem := fixed.Int26_6(size * 64)
	segments, err := source.outline.LoadGlyph(&e.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return nil, err
	}

	out := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		var s Segment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			s.Op = SegmentMoveTo
			s.Args[0] = fixedPoint(seg.Args[0])
		case sfnt.SegmentOpLineTo:
			s.Op = SegmentLineTo
			s.Args[0] = fixedPoint(seg.Args[0])
		case sfnt.SegmentOpQuadTo:
			s.Op = SegmentQuadTo
			s.Args[0] = fixedPoint(seg.Args[0])
			s.Args[1] = fixedPoint(seg.Args[1])
		case sfnt.SegmentOpCubeTo:
			s.Op = SegmentCubicTo
			s.Args[0] = fixedPoint(seg.Args[0])
			s.Args[1] = fixedPoint(seg.Args[1])
			s.Args[2] = fixedPoint(seg.Args[2])
		}
		out = append(out, s)
	}
	return out, nil
}

// FontMetrics returns the font-wide ascent and descent at the given pixel
// size, both as positive distances from the baseline.
func (e *OutlineExtractor) FontMetrics(source *FontSource, size float64) (ascent, descent float64) {
	m, err := source.outline.Metrics(&e.buf, fixed.Int26_6(size*64), font.HintingNone)
	if err != nil {
		return 0, 0
	}
	return fixedToFloat(m.Ascent), fixedToFloat(m.Descent)
}

// fixedPoint converts a fixed.Point26_6 to a Point.
func fixedPoint(p fixed.Point26_6) Point {
	return Point{
		X: float64(p.X) / 64.0,
		Y: float64(p.Y) / 64.0,
	}
}
