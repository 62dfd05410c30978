package text

import (
	"bytes"
	"errors"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
)

// ErrEmptyFontData is returned when a font source is created from no data.
var ErrEmptyFontData = errors.New("text: empty font data")

// FontSource is a loaded font file (TTF or OTF). It is parsed twice up
// front: once for shaping (go-text/typesetting) and once for outline and
// metric access (x/image sfnt). One FontSource serves any number of sizes.
type FontSource struct {
	data    []byte
	face    *font.Face
	outline *sfnt.Font
	name    string
}

// NewFontSource creates a FontSource from font data. The data slice is
// copied internally and can be reused after this call.
func NewFontSource(data []byte) (*FontSource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := font.ParseTTF(bytes.NewReader(dataCopy))
	if err != nil {
		return nil, err
	}
	outline, err := sfnt.Parse(dataCopy)
	if err != nil {
		return nil, err
	}

	s := &FontSource{
		data:    dataCopy,
		face:    face,
		outline: outline,
	}

	var buf sfnt.Buffer
	if name, err := outline.Name(&buf, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// Name returns the font family name recorded in the font file, or "" when
// the font carries none.
func (s *FontSource) Name() string {
	return s.name
}
