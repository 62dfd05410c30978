package raster

import "math"

// ApplyDash splits the polylines into the "on" pieces of the dash pattern.
// The pattern lists alternating on/off lengths; an odd-length pattern is
// repeated doubled, per canvas semantics. A pattern with no positive entry
// returns the input unchanged.
func ApplyDash(lines []Polyline, pattern []float64, offset float64) []Polyline {
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return lines
		}
		total += d
	}
	if total <= 0 {
		return lines
	}
	if len(pattern)%2 != 0 {
		pattern = append(append([]float64{}, pattern...), pattern...)
		total *= 2
	}

	var out []Polyline
	for _, line := range lines {
		pts := line.Points
		if line.Closed && len(pts) >= 2 {
			pts = append(append([]Point{}, pts...), pts[0])
		}
		out = append(out, dashPolyline(pts, pattern, total, offset)...)
	}
	return out
}

// dashPolyline walks one open polyline against the pattern.
func dashPolyline(pts []Point, pattern []float64, total, offset float64) []Polyline {
	if len(pts) < 2 {
		return nil
	}

	// Position inside the repeating pattern.
	pos := math.Mod(offset, total)
	if pos < 0 {
		pos += total
	}
	idx := 0
	for pos >= pattern[idx] {
		pos -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	remaining := pattern[idx] - pos
	on := idx%2 == 0

	var out []Polyline
	var cur []Point
	if on {
		cur = append(cur, pts[0])
	}

	flush := func() {
		if len(cur) >= 2 {
			out = append(out, Polyline{Points: cur})
		}
		cur = nil
	}

	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		if segLen == 0 {
			continue
		}
		traveled := 0.0
		for segLen-traveled > remaining {
			traveled += remaining
			t := traveled / segLen
			p := Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
			if on {
				// Dash ends here.
				cur = append(cur, p)
				flush()
			} else {
				// Gap ends, a new dash starts here.
				cur = []Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - traveled
		if on {
			cur = append(cur, b)
		}
	}
	flush()
	return out
}
