package raster

import "math"

// Cap specifies the shape of stroked line endpoints.
type Cap int

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join specifies the shape of stroked line joins.
type Join int

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// StrokeStyle carries the geometry settings of one stroking operation.
type StrokeStyle struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// roundSegments is the number of fan segments per half circle used for
// round caps and joins.
const roundSegments = 16

// Stroke expands the polylines into closed polygons covering the stroked
// area. Segments, joins, and caps are emitted as separate consistently
// wound polygons, so the result must be filled with the non-zero rule.
func Stroke(lines []Polyline, style StrokeStyle) [][]Point {
	hw := style.Width / 2
	if hw <= 0 {
		return nil
	}

	var polys [][]Point
	for _, line := range lines {
		pts := dedupe(line.Points)
		if len(pts) < 2 {
			if len(pts) == 1 && style.Cap == CapRound {
				polys = append(polys, circlePolygon(pts[0], hw))
			}
			continue
		}

		// Segment bodies.
		for i := 0; i+1 < len(pts); i++ {
			polys = append(polys, segmentQuad(pts[i], pts[i+1], hw))
		}
		if line.Closed {
			polys = append(polys, segmentQuad(pts[len(pts)-1], pts[0], hw))
		}

		// Joins at interior vertices.
		for i := 1; i+1 < len(pts); i++ {
			polys = appendJoin(polys, pts[i-1], pts[i], pts[i+1], hw, style)
		}
		if line.Closed {
			last := len(pts) - 1
			polys = appendJoin(polys, pts[last-1], pts[last], pts[0], hw, style)
			polys = appendJoin(polys, pts[last], pts[0], pts[1], hw, style)
		} else {
			polys = appendCap(polys, pts[1], pts[0], hw, style.Cap)
			polys = appendCap(polys, pts[len(pts)-2], pts[len(pts)-1], hw, style.Cap)
		}
	}
	return polys
}

// dedupe drops consecutive duplicate points.
func dedupe(pts []Point) []Point {
	out := pts[:0:0]
	for _, p := range pts {
		if len(out) == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// segmentQuad returns the rectangle covering one stroked segment.
func segmentQuad(a, b Point, hw float64) []Point {
	nx, ny := normal(a, b)
	return []Point{
		{X: a.X + nx*hw, Y: a.Y + ny*hw},
		{X: b.X + nx*hw, Y: b.Y + ny*hw},
		{X: b.X - nx*hw, Y: b.Y - ny*hw},
		{X: a.X - nx*hw, Y: a.Y - ny*hw},
	}
}

// appendJoin adds the join geometry at vertex v between segments u->v and
// v->w.
func appendJoin(polys [][]Point, u, v, w Point, hw float64, style StrokeStyle) [][]Point {
	n1x, n1y := normal(u, v)
	n2x, n2y := normal(v, w)

	// Outer side of the turn.
	cross := (v.X-u.X)*(w.Y-v.Y) - (v.Y-u.Y)*(w.X-v.X)
	if cross == 0 {
		return polys // collinear, segment quads already cover it
	}
	sign := 1.0
	if cross > 0 {
		sign = -1
	}

	p1 := Point{X: v.X + sign*n1x*hw, Y: v.Y + sign*n1y*hw}
	p2 := Point{X: v.X + sign*n2x*hw, Y: v.Y + sign*n2y*hw}

	switch style.Join {
	case JoinRound:
		polys = append(polys, fanPolygon(v, p1, p2))
	case JoinMiter:
		if m, ok := miterPoint(v, p1, p2, hw, style.MiterLimit); ok {
			polys = append(polys, []Point{v, p1, m, p2})
			return polys
		}
		fallthrough
	default: // JoinBevel
		polys = append(polys, []Point{v, p1, p2})
	}
	return polys
}

// miterPoint computes the miter tip for the outer join corner, rejecting
// it when the miter length exceeds the limit.
func miterPoint(v, p1, p2 Point, hw, limit float64) (Point, bool) {
	// Direction bisecting the two outer offsets.
	mx := (p1.X - v.X) + (p2.X - v.X)
	my := (p1.Y - v.Y) + (p2.Y - v.Y)
	length := math.Hypot(mx, my)
	if length < 1e-12 {
		return Point{}, false
	}
	mx /= length
	my /= length

	// Angle between the offsets determines how far the tip extends.
	cosHalf := (mx*(p1.X-v.X) + my*(p1.Y-v.Y)) / hw
	if cosHalf < 1e-6 {
		return Point{}, false
	}
	miterLen := hw / cosHalf
	if limit > 0 && miterLen > limit*hw {
		return Point{}, false
	}
	return Point{X: v.X + mx*miterLen, Y: v.Y + my*miterLen}, true
}

// appendCap adds cap geometry at endpoint e of the segment from prev.
func appendCap(polys [][]Point, prev, e Point, hw float64, cap Cap) [][]Point {
	switch cap {
	case CapButt:
		return polys
	case CapSquare:
		dx, dy := direction(prev, e)
		nx, ny := -dy, dx
		return append(polys, []Point{
			{X: e.X + nx*hw, Y: e.Y + ny*hw},
			{X: e.X + nx*hw + dx*hw, Y: e.Y + ny*hw + dy*hw},
			{X: e.X - nx*hw + dx*hw, Y: e.Y - ny*hw + dy*hw},
			{X: e.X - nx*hw, Y: e.Y - ny*hw},
		})
	default: // CapRound
		return append(polys, circlePolygon(e, hw))
	}
}

// fanPolygon returns a pie wedge around center c from point a to point b.
func fanPolygon(c, a, b Point) []Point {
	a0 := math.Atan2(a.Y-c.Y, a.X-c.X)
	a1 := math.Atan2(b.Y-c.Y, b.X-c.X)
	r := math.Hypot(a.X-c.X, a.Y-c.Y)

	// Take the short way around.
	delta := a1 - a0
	for delta > math.Pi {
		delta -= 2 * math.Pi
	}
	for delta < -math.Pi {
		delta += 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(delta) / math.Pi * roundSegments))
	if n < 1 {
		n = 1
	}
	poly := make([]Point, 0, n+2)
	poly = append(poly, c)
	for i := 0; i <= n; i++ {
		ang := a0 + delta*float64(i)/float64(n)
		poly = append(poly, Point{X: c.X + r*math.Cos(ang), Y: c.Y + r*math.Sin(ang)})
	}
	return poly
}

// circlePolygon approximates a full circle around c.
func circlePolygon(c Point, r float64) []Point {
	n := 2 * roundSegments
	poly := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		ang := 2 * math.Pi * float64(i) / float64(n)
		poly = append(poly, Point{X: c.X + r*math.Cos(ang), Y: c.Y + r*math.Sin(ang)})
	}
	return poly
}

// direction returns the unit vector from a to b.
func direction(a, b Point) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 1, 0
	}
	return dx / length, dy / length
}

// normal returns the unit normal of the segment a->b.
func normal(a, b Point) (float64, float64) {
	dx, dy := direction(a, b)
	return -dy, dx
}
