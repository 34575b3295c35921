// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"math"
	"sort"
)

// Pattern is a color source that can vary across the surface.
// Used for solid paint and gradients.
type Pattern interface {
	// ColorAt returns the color at the given coordinates.
	ColorAt(x, y float64) RGBA
}

// SolidPattern is a pattern that returns a single color.
type SolidPattern struct {
	Color RGBA
}

// Solid returns a pattern painting c everywhere.
func Solid(c RGBA) SolidPattern {
	return SolidPattern{Color: c}
}

// ColorAt implements Pattern.
func (p SolidPattern) ColorAt(_, _ float64) RGBA {
	return p.Color
}

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// LinearGradient is a linear color transition between two points.
// Positions before the first stop or after the last stop take the
// nearest stop's color. Colors are interpolated in sRGB space.
//
// Example:
//
//	g := surface.NewLinearGradient(0, 0, 100, 100).
//	    AddColorStop(0, surface.Black).
//	    AddColorStop(1, surface.White)
//	s.FillRect(surface.Rect{W: 100, H: 100}, g)
type LinearGradient struct {
	Start Point
	End   Point
	Stops []ColorStop
}

// NewLinearGradient creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start: Pt(x0, y0),
		End:   Pt(x1, y1),
	}
}

// AddColorStop adds a color stop at the specified offset and keeps
// stops ordered. Returns the gradient for method chaining.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: clamp01(offset), Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Offset < g.Stops[j].Offset
	})
	return g
}

// ColorAt implements Pattern.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	d := g.End.Sub(g.Start)
	lengthSq := d.Dot(d)
	if lengthSq == 0 {
		return colorAtOffset(g.Stops, 0)
	}
	t := Pt(x, y).Sub(g.Start).Dot(d) / lengthSq
	return colorAtOffset(g.Stops, t)
}

// RadialGradient is a circular color transition around Center.
// Offset 0 maps to the center and offset 1 to Radius.
type RadialGradient struct {
	Center Point
	Radius float64
	Stops  []ColorStop
}

// NewRadialGradient creates a radial gradient centered at (cx, cy).
func NewRadialGradient(cx, cy, r float64) *RadialGradient {
	return &RadialGradient{Center: Pt(cx, cy), Radius: r}
}

// AddColorStop adds a color stop at the specified offset.
func (g *RadialGradient) AddColorStop(offset float64, c RGBA) *RadialGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: clamp01(offset), Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Offset < g.Stops[j].Offset
	})
	return g
}

// ColorAt implements Pattern.
func (g *RadialGradient) ColorAt(x, y float64) RGBA {
	if g.Radius <= 0 {
		return colorAtOffset(g.Stops, 1)
	}
	t := math.Hypot(x-g.Center.X, y-g.Center.Y) / g.Radius
	return colorAtOffset(g.Stops, t)
}

// colorAtOffset returns the interpolated color at t, padding beyond the
// first and last stops. Stops must be sorted.
func colorAtOffset(stops []ColorStop, t float64) RGBA {
	switch len(stops) {
	case 0:
		return Transparent
	case 1:
		return stops[0].Color
	}

	t = clamp01(t)
	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return s1.Color.Lerp(s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}
