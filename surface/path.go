// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// Verb identifies a path command.
type Verb uint8

const (
	// VerbMoveTo starts a new subpath. Consumes one point.
	VerbMoveTo Verb = iota
	// VerbLineTo adds a line segment. Consumes one point.
	VerbLineTo
	// VerbCubicTo adds a cubic Bezier curve. Consumes three points.
	VerbCubicTo
	// VerbClose closes the current subpath. Consumes no points.
	VerbClose
)

// kappa is the control point distance for a quarter circle approximated
// by a single cubic Bezier curve.
const kappa = 0.5522847498307936

// Path represents a vector path for drawing operations.
//
// Example:
//
//	p := surface.NewPath()
//	p.RoundedRectangle(10, 10, 200, 100, 12)
//	s.Fill(p, surface.Solid(surface.White))
type Path struct {
	verbs  []Verb
	points []Point
	start  Point
	cur    Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]Point, 0, 32),
	}
}

// MoveTo starts a new subpath at the given point.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.verbs = append(p.verbs, VerbMoveTo)
	p.points = append(p.points, pt)
	p.start, p.cur = pt, pt
}

// LineTo adds a line from the current point to (x, y).
func (p *Path) LineTo(x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.verbs = append(p.verbs, VerbLineTo)
	p.points = append(p.points, pt)
	p.cur = pt
}

// CubicTo adds a cubic Bezier curve from the current point.
// (c1x, c1y) and (c2x, c2y) are control points, (x, y) is the endpoint.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(c1x, c1y)
	}
	pt := Pt(x, y)
	p.verbs = append(p.verbs, VerbCubicTo)
	p.points = append(p.points, Pt(c1x, c1y), Pt(c2x, c2y), pt)
	p.cur = pt
}

// QuadTo adds a quadratic Bezier curve from the current point, stored as
// the equivalent cubic.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if len(p.verbs) == 0 {
		p.MoveTo(cx, cy)
	}
	p0, c, end := p.cur, Pt(cx, cy), Pt(x, y)
	c1 := p0.Add(c.Sub(p0).Mul(2.0 / 3))
	c2 := end.Add(c.Sub(end).Mul(2.0 / 3))
	p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, x, y)
}

// Close closes the current subpath by connecting to the start point.
func (p *Path) Close() {
	if len(p.verbs) == 0 {
		return
	}
	p.verbs = append(p.verbs, VerbClose)
	p.cur = p.start
}

// IsEmpty returns true if the path has no elements.
func (p *Path) IsEmpty() bool {
	return len(p.verbs) == 0
}

// Verbs returns the path commands.
func (p *Path) Verbs() []Verb {
	return p.verbs
}

// Points returns the points consumed by the path commands.
func (p *Path) Points() []Point {
	return p.points
}

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point {
	return p.cur
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	if p == nil {
		return nil
	}
	clone := &Path{
		verbs:  make([]Verb, len(p.verbs)),
		points: make([]Point, len(p.points)),
		start:  p.start,
		cur:    p.cur,
	}
	copy(clone.verbs, p.verbs)
	copy(clone.points, p.points)
	return clone
}

// Rectangle adds a closed rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// RoundedRectangle adds a closed rectangle with circular corners of
// radius r. The radius is clamped to [0, min(w, h)/2]; a zero radius
// produces a plain rectangle.
func (p *Path) RoundedRectangle(x, y, w, h, r float64) {
	r = ClampRadius(w, h, r)
	if r == 0 {
		p.Rectangle(x, y, w, h)
		return
	}

	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.corner(Pt(x+w, y), Pt(x+w, y+r))
	p.LineTo(x+w, y+h-r)
	p.corner(Pt(x+w, y+h), Pt(x+w-r, y+h))
	p.LineTo(x+r, y+h)
	p.corner(Pt(x, y+h), Pt(x, y+h-r))
	p.LineTo(x, y+r)
	p.corner(Pt(x, y), Pt(x+r, y))
	p.Close()
}

// corner appends a quarter arc from the current point to end, tangent to
// the two edges meeting at c.
func (p *Path) corner(c, end Point) {
	start := p.cur
	c1 := start.Add(c.Sub(start).Mul(kappa))
	c2 := end.Add(c.Sub(end).Mul(kappa))
	p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
}

// ClampRadius limits a corner radius to half the smaller side of a
// w×h rectangle. Negative inputs yield zero.
func ClampRadius(w, h, r float64) float64 {
	limit := math.Min(w, h) / 2
	if r > limit {
		r = limit
	}
	if r < 0 || math.IsNaN(r) {
		r = 0
	}
	return r
}

// Polygon is a flattened subpath.
type Polygon struct {
	Points []Point
	Closed bool
}

// Flatten converts the path to polygons, approximating curves with line
// segments whose deviation stays within tolerance pixels.
func (p *Path) Flatten(tolerance float64) []Polygon {
	if tolerance <= 0 {
		tolerance = 0.1
	}

	var (
		polys []Polygon
		cur   []Point
		pi    int
	)
	flush := func(closed bool) {
		if len(cur) > 1 {
			polys = append(polys, Polygon{Points: cur, Closed: closed})
		}
		cur = nil
	}

	for _, v := range p.verbs {
		switch v {
		case VerbMoveTo:
			flush(false)
			cur = append(cur, p.points[pi])
			pi++
		case VerbLineTo:
			cur = append(cur, p.points[pi])
			pi++
		case VerbCubicTo:
			var from Point
			if len(cur) > 0 {
				from = cur[len(cur)-1]
			}
			cur = flattenCubic(cur, from, p.points[pi], p.points[pi+1], p.points[pi+2], tolerance)
			pi += 3
		case VerbClose:
			start := Point{}
			if len(cur) > 0 {
				start = cur[0]
			}
			flush(true)
			cur = []Point{start}
		}
	}
	flush(false)
	return polys
}

// flattenCubic appends points approximating the cubic p0..p3, excluding p0.
func flattenCubic(dst []Point, p0, p1, p2, p3 Point, tolerance float64) []Point {
	dd1 := p0.Sub(p1.Mul(2)).Add(p2).Len()
	dd2 := p1.Sub(p2.Mul(2)).Add(p3).Len()
	dd := math.Max(dd1, dd2)

	n := int(math.Ceil(math.Sqrt(0.75 * dd / tolerance)))
	if n < 1 {
		n = 1
	}
	if n > 128 {
		n = 128
	}

	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		dst = append(dst, Point{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
	return dst
}
