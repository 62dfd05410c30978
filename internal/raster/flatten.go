package raster

import "math"

// Tolerance is the maximum distance from a curve for flattening.
const Tolerance = 0.1

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// PathElement mirrors the path element variants of the parent package
// (internal copy to avoid an import cycle).
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point.
type MoveTo struct{ Point Point }

func (MoveTo) isPathElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Flatten converts a path with curves into straight-line subpaths.
func Flatten(elements []PathElement) []Polyline {
	var out []Polyline
	var cur []Point
	var start Point
	var current Point

	flush := func(closed bool) {
		if len(cur) >= 2 {
			out = append(out, Polyline{Points: cur, Closed: closed})
		}
		cur = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			start = e.Point
			current = e.Point
			cur = append(cur, current)

		case LineTo:
			if len(cur) == 0 {
				cur = append(cur, current)
			}
			current = e.Point
			cur = append(cur, current)

		case QuadTo:
			if len(cur) == 0 {
				cur = append(cur, current)
			}
			flattenQuadratic(current, e.Control, e.Point, Tolerance, &cur)
			current = e.Point

		case CubicTo:
			if len(cur) == 0 {
				cur = append(cur, current)
			}
			flattenCubic(current, e.Control1, e.Control2, e.Point, Tolerance, &cur)
			current = e.Point

		case Close:
			flush(true)
			current = start
		}
	}
	flush(false)
	return out
}

// FillPolygons returns the subpaths as closed polygons for filling.
// Open subpaths are implicitly closed, matching fill semantics.
func FillPolygons(elements []PathElement) [][]Point {
	lines := Flatten(elements)
	polys := make([][]Point, 0, len(lines))
	for _, l := range lines {
		if len(l.Points) >= 3 {
			polys = append(polys, l.Points)
		}
	}
	return polys
}

// flattenQuadratic recursively subdivides a quadratic Bezier curve,
// appending interior and end points.
func flattenQuadratic(p0, p1, p2 Point, tolerance float64, points *[]Point) {
	if distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(q0, q1, 0.5)
	flattenQuadratic(p0, q0, q2, tolerance, points)
	flattenQuadratic(q2, q1, p2, tolerance, points)
}

// flattenCubic recursively subdivides a cubic Bezier curve using de
// Casteljau's algorithm.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, points *[]Point) {
	d := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if d < tolerance {
		*points = append(*points, p3)
		return
	}
	q0 := lerp(p0, p1, 0.5)
	q1 := lerp(p1, p2, 0.5)
	q2 := lerp(p2, p3, 0.5)
	r0 := lerp(q0, q1, 0.5)
	r1 := lerp(q1, q2, 0.5)
	s := lerp(r0, r1, 0.5)
	flattenCubic(p0, q0, r0, s, tolerance, points)
	flattenCubic(s, r1, q2, p3, tolerance, points)
}

func lerp(p, q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// distanceToLine calculates the perpendicular distance from point p to the
// line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	abx := b.X - a.X
	aby := b.Y - a.Y
	lenSq := abx*abx + aby*aby
	if lenSq < 1e-20 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := a.X + t*abx
	cy := a.Y + t*aby
	return math.Hypot(p.X-cx, p.Y-cy)
}
