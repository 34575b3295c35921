// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "math"

// strokePolygon expands a flattened subpath into filled rings: one quad
// per segment plus one join wedge per interior vertex. Every ring is
// wound the same way so overlapping pieces union under the rasterizer's
// accumulation rule instead of cancelling.
func strokePolygon(poly Polygon, style StrokeStyle) [][]Point {
	pts := dedupe(poly.Points, poly.Closed)
	n := len(pts)
	if n < 2 {
		return nil
	}

	hw := style.Width / 2
	limit := style.MiterLimit
	if limit < 1 {
		limit = 1
	}

	segs := n - 1
	if poly.Closed && n > 2 {
		segs = n
	}

	var rings [][]Point
	for i := 0; i < segs; i++ {
		a, b := pts[i], pts[(i+1)%n]
		off := perp(b.Sub(a)).Mul(hw)
		rings = appendRing(rings, []Point{a.Add(off), b.Add(off), b.Sub(off), a.Sub(off)})
	}

	first, last := 1, n-2
	if poly.Closed && n > 2 {
		first, last = 0, n-1
	}
	for i := first; i <= last; i++ {
		v := pts[i]
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		rings = appendJoin(rings, prev, v, next, hw, style.Join, limit)
	}
	return rings
}

// appendJoin fills the wedge on the outer side of the corner prev→v→next.
func appendJoin(rings [][]Point, prev, v, next Point, hw float64, join LineJoin, limit float64) [][]Point {
	d1 := unit(v.Sub(prev))
	d2 := unit(next.Sub(v))
	cross := d1.Cross(d2)
	if math.Abs(cross) < 1e-12 && d1.Dot(d2) > 0 {
		return rings
	}

	s := 1.0
	if cross > 0 {
		s = -1
	}
	n1, n2 := perp(d1), perp(d2)
	p1 := v.Add(n1.Mul(s * hw))
	p2 := v.Add(n2.Mul(s * hw))

	cos := n1.Dot(n2)
	if join == LineJoinMiter && 1+cos > 1e-12 {
		if ratio := 1 / math.Sqrt((1+cos)/2); ratio <= limit {
			m := v.Add(n1.Add(n2).Mul(s * hw / (1 + cos)))
			return appendRing(rings, []Point{v, p1, m, p2})
		}
	}
	return appendRing(rings, []Point{v, p1, p2})
}

// appendRing appends ring wound with negative signed area. Degenerate
// rings are dropped.
func appendRing(rings [][]Point, ring []Point) [][]Point {
	area := signedArea(ring)
	if math.Abs(area) < 1e-12 {
		return rings
	}
	if area > 0 {
		for i, j := 0, len(ring)-1; i < j; i, j = i+1, j-1 {
			ring[i], ring[j] = ring[j], ring[i]
		}
	}
	return append(rings, ring)
}

func signedArea(ring []Point) float64 {
	var sum float64
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i].Cross(ring[j])
	}
	return sum / 2
}

// dedupe drops consecutive duplicate points and, for closed polygons, a
// trailing point equal to the first.
func dedupe(pts []Point, closed bool) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Len() < 1e-9 {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0].Sub(out[len(out)-1]).Len() < 1e-9 {
		out = out[:len(out)-1]
	}
	return out
}

func unit(p Point) Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return p.Mul(1 / l)
}

// perp returns the unit normal of d, rotated a quarter turn clockwise in
// y-down coordinates.
func perp(d Point) Point {
	u := unit(d)
	return Point{X: -u.Y, Y: u.X}
}
