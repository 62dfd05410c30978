package text

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// GlyphID identifies a glyph within its font.
type GlyphID uint16

// Glyph is one positioned glyph produced by shaping. X and Y are pen
// positions relative to the text origin, advances not yet applied to the
// next glyph.
type Glyph struct {
	GID      GlyphID
	X, Y     float64
	XAdvance float64
}

// Shaper turns strings into positioned glyphs. It owns one HarfBuzz
// shaper; the paint actor is its only caller, so no pooling or locking is
// needed.
type Shaper struct {
	hb shaping.HarfbuzzShaper
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{}
}

// Shape converts the string into positioned glyphs at the given pixel
// size. rtl selects a right-to-left default paragraph direction, which
// reverses the glyph-advance direction; mixed-direction strings are first
// segmented with the Unicode bidi algorithm and each run is shaped with
// its resolved direction.
func (s *Shaper) Shape(source *FontSource, str string, size float64, rtl bool) ([]Glyph, Metrics) {
	if source == nil || str == "" {
		return nil, Metrics{}
	}

	var glyphs []Glyph
	var metrics Metrics
	var penX float64

	for _, run := range bidiRuns(str, rtl) {
		out := s.shapeRun(source, run.text, size, run.rtl)

		var x, y float64
		for _, g := range out.Glyphs {
			glyphs = append(glyphs, Glyph{
				GID:      GlyphID(g.GlyphID),
				X:        penX + x + fixedToFloat(g.XOffset),
				Y:        y - fixedToFloat(g.YOffset),
				XAdvance: fixedToFloat(g.XAdvance),
			})
			x += fixedToFloat(g.XAdvance)
			y -= fixedToFloat(g.YAdvance)
		}
		penX += x

		ascent := fixedToFloat(out.LineBounds.Ascent)
		descent := -fixedToFloat(out.LineBounds.Descent)
		if ascent > metrics.Ascent {
			metrics.Ascent = ascent
		}
		if descent > metrics.Descent {
			metrics.Descent = descent
		}
	}

	metrics.Width = penX
	return glyphs, metrics
}

// Measure computes metrics without keeping the glyphs.
func (s *Shaper) Measure(source *FontSource, str string, size float64) Metrics {
	_, m := s.Shape(source, str, size, false)
	return m
}

// shapeRun shapes one uniformly-directed run.
func (s *Shaper) shapeRun(source *FontSource, str string, size float64, rtl bool) shaping.Output {
	runes := []rune(str)
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      source.face,
		Size:      floatToFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	return s.hb.Shape(input)
}

// bidiRun is one directionally-uniform slice of the input in visual order.
type bidiRun struct {
	text string
	rtl  bool
}

// bidiRuns splits the string into visual-order runs. rtl sets the default
// paragraph direction used for direction-neutral text.
func bidiRuns(str string, rtl bool) []bidiRun {
	def := bidi.DefaultDirection(bidi.LeftToRight)
	if rtl {
		def = bidi.DefaultDirection(bidi.RightToLeft)
	}

	var p bidi.Paragraph
	p.SetString(str, def)
	ordering, err := p.Order()
	if err != nil {
		return []bidiRun{{text: str, rtl: rtl}}
	}

	runs := make([]bidiRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		runs = append(runs, bidiRun{
			text: r.String(),
			rtl:  r.Direction() == bidi.RightToLeft,
		})
	}
	return runs
}

// detectScript inspects the runes and returns the script of the first
// non-space character. Mixed-script runs shape with the first script; the
// bidi segmentation above already splits the common cases.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(size float64) fixed.Int26_6 {
	return fixed.Int26_6(size * 64)
}

// fixedToFloat converts a fixed.Int26_6 value to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
