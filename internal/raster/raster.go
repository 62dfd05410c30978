// Package raster provides scanline polygon rasterization with
// anti-aliasing for the software backend.
package raster

import (
	"math"
	"sort"
)

// Point is a 2D device-space coordinate.
type Point struct {
	X, Y float64
}

// FillRule selects how winding numbers map to coverage.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

// subsamples is the number of vertical samples per pixel row. Horizontal
// coverage is computed exactly from span intersections.
const subsamples = 4

// edge is one polygon edge, stored with y ascending.
type edge struct {
	x0, y0  float64
	x1, y1  float64
	winding int // +1 if the original edge pointed downward
}

// buildEdges collects non-horizontal edges from closed polygons.
func buildEdges(polygons [][]Point) []edge {
	var edges []edge
	for _, poly := range polygons {
		n := len(poly)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a := poly[i]
			b := poly[(i+1)%n]
			if a.Y == b.Y {
				continue
			}
			w := 1
			if a.Y > b.Y {
				a, b = b, a
				w = -1
			}
			edges = append(edges, edge{x0: a.X, y0: a.Y, x1: b.X, y1: b.Y, winding: w})
		}
	}
	return edges
}

// crossing is one edge intersection with a sample line.
type crossing struct {
	x       float64
	winding int
}

// SpanFunc receives one scanline's coverage. cov has one entry per pixel
// starting at x0; values are 0..255.
type SpanFunc func(y, x0 int, cov []uint8)

// Fill rasterizes the polygons into per-pixel coverage within the
// width x height device grid and reports each non-empty scanline through
// fn. Geometry outside the grid is clipped away.
func Fill(polygons [][]Point, width, height int, rule FillRule, fn SpanFunc) {
	edges := buildEdges(polygons)
	if len(edges) == 0 || width <= 0 || height <= 0 {
		return
	}

	minY, maxY := height, 0
	for _, e := range edges {
		y0 := int(math.Floor(e.y0))
		y1 := int(math.Ceil(e.y1))
		if y0 < minY {
			minY = y0
		}
		if y1 > maxY {
			maxY = y1
		}
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > height {
		maxY = height
	}

	accum := make([]float64, width)
	cov := make([]uint8, width)
	var crossings []crossing

	for y := minY; y < maxY; y++ {
		for i := range accum {
			accum[i] = 0
		}
		rowTouched := false

		for s := 0; s < subsamples; s++ {
			sy := float64(y) + (float64(s)+0.5)/subsamples

			crossings = crossings[:0]
			for _, e := range edges {
				if sy < e.y0 || sy >= e.y1 {
					continue
				}
				t := (sy - e.y0) / (e.y1 - e.y0)
				crossings = append(crossings, crossing{
					x:       e.x0 + t*(e.x1-e.x0),
					winding: e.winding,
				})
			}
			if len(crossings) < 2 {
				continue
			}
			sort.Slice(crossings, func(i, j int) bool {
				return crossings[i].x < crossings[j].x
			})

			winding := 0
			for i := 0; i < len(crossings)-1; i++ {
				winding += crossings[i].winding
				inside := winding != 0
				if rule == FillRuleEvenOdd {
					inside = winding%2 != 0
				}
				if !inside {
					continue
				}
				if addSpan(accum, crossings[i].x, crossings[i+1].x, width) {
					rowTouched = true
				}
			}
		}

		if !rowTouched {
			continue
		}

		x0, x1 := -1, 0
		for x := 0; x < width; x++ {
			if accum[x] > 0 {
				if x0 < 0 {
					x0 = x
				}
				x1 = x + 1
			}
		}
		if x0 < 0 {
			continue
		}
		for x := x0; x < x1; x++ {
			c := accum[x] * (255.0 / subsamples)
			if c > 255 {
				c = 255
			}
			cov[x] = uint8(c)
		}
		fn(y, x0, cov[x0:x1])
	}
}

// addSpan accumulates the horizontal span [xa, xb) into the row with exact
// fractional coverage per pixel. Reports whether anything was added.
func addSpan(accum []float64, xa, xb float64, width int) bool {
	if xb <= 0 || xa >= float64(width) || xb <= xa {
		return false
	}
	if xa < 0 {
		xa = 0
	}
	if xb > float64(width) {
		xb = float64(width)
	}

	ixa := int(xa)
	ixb := int(xb)
	if ixa == ixb {
		accum[ixa] += xb - xa
		return true
	}
	accum[ixa] += float64(ixa+1) - xa
	for x := ixa + 1; x < ixb; x++ {
		accum[x] += 1
	}
	if ixb < width {
		accum[ixb] += xb - float64(ixb)
	}
	return true
}
