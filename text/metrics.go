package text

// Metrics holds the measurements of one shaped string at a specific size.
type Metrics struct {
	// Width is the total advance of the shaped glyphs.
	Width float64

	// Ascent is the distance from the baseline to the top of the font
	// (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font
	// (positive, below baseline).
	Descent float64
}

// Height returns the total line extent (ascent + descent).
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}
