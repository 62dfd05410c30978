package text

import "strings"

// FontContext resolves font families to sources and owns the shaping and
// outline machinery shared by every canvas of one paint actor.
type FontContext struct {
	sources  map[string]*FontSource
	fallback *FontSource

	Shaper  *Shaper
	Outline *OutlineExtractor
}

// NewFontContext creates a context with the given fallback source, used
// whenever a requested family is unknown or empty.
func NewFontContext(fallback *FontSource) *FontContext {
	fc := &FontContext{
		sources:  make(map[string]*FontSource),
		fallback: fallback,
		Shaper:   NewShaper(),
		Outline:  NewOutlineExtractor(),
	}
	if fallback != nil && fallback.Name() != "" {
		fc.Register(fallback.Name(), fallback)
	}
	return fc
}

// Register makes a source resolvable under the given family name.
// Matching is case-insensitive.
func (fc *FontContext) Register(family string, source *FontSource) {
	fc.sources[strings.ToLower(family)] = source
}

// Resolve returns the source for the family, falling back to the default
// source when the family is unknown or empty.
func (fc *FontContext) Resolve(family string) *FontSource {
	if s, ok := fc.sources[strings.ToLower(family)]; ok {
		return s
	}
	return fc.fallback
}
