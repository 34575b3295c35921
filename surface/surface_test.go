// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// TestSurfaceInterface verifies the Surface interface contract.
func TestSurfaceInterface(t *testing.T) {
	var _ Surface = (*ImageSurface)(nil)
	var _ Surface = (*Recorder)(nil)
	var _ Pattern = SolidPattern{}
	var _ Pattern = (*LinearGradient)(nil)
	var _ Pattern = (*RadialGradient)(nil)
}

// TestNewPath tests path creation and basic operations.
func TestNewPath(t *testing.T) {
	p := NewPath()
	if p == nil {
		t.Fatal("NewPath returned nil")
	}
	if !p.IsEmpty() {
		t.Error("new path should be empty")
	}

	p.MoveTo(10, 20)
	if p.IsEmpty() {
		t.Error("path with MoveTo should not be empty")
	}

	pt := p.CurrentPoint()
	if pt.X != 10 || pt.Y != 20 {
		t.Errorf("CurrentPoint() = (%v, %v), want (10, 20)", pt.X, pt.Y)
	}
}

func TestPathShapes(t *testing.T) {
	tests := []struct {
		name       string
		create     func(p *Path)
		wantVerbs  int
		wantPoints int
	}{
		{
			name:       "Rectangle",
			create:     func(p *Path) { p.Rectangle(0, 0, 100, 50) },
			wantVerbs:  5,
			wantPoints: 4,
		},
		{
			name:       "RoundedRectangle",
			create:     func(p *Path) { p.RoundedRectangle(0, 0, 100, 50, 10) },
			wantVerbs:  10,
			wantPoints: 17,
		},
		{
			name:       "RoundedRectangleZeroRadius",
			create:     func(p *Path) { p.RoundedRectangle(0, 0, 100, 50, 0) },
			wantVerbs:  5,
			wantPoints: 4,
		},
		{
			name:       "RoundedRectangleNegativeRadius",
			create:     func(p *Path) { p.RoundedRectangle(0, 0, 100, 50, -3) },
			wantVerbs:  5,
			wantPoints: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPath()
			tt.create(p)
			if got := len(p.Verbs()); got != tt.wantVerbs {
				t.Errorf("verbs = %d, want %d", got, tt.wantVerbs)
			}
			if got := len(p.Points()); got != tt.wantPoints {
				t.Errorf("points = %d, want %d", got, tt.wantPoints)
			}
		})
	}
}

func TestClampRadius(t *testing.T) {
	tests := []struct {
		name    string
		w, h, r float64
		want    float64
	}{
		{"within", 100, 50, 10, 10},
		{"half of smaller side", 100, 50, 40, 25},
		{"negative", 100, 50, -5, 0},
		{"NaN", 100, 50, math.NaN(), 0},
		{"zero size", 0, 0, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampRadius(tt.w, tt.h, tt.r); got != tt.want {
				t.Errorf("ClampRadius(%v, %v, %v) = %v, want %v", tt.w, tt.h, tt.r, got, tt.want)
			}
		})
	}
}

func TestPathQuadTo(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.QuadTo(30, 60, 90, 0)

	verbs := p.Verbs()
	if len(verbs) != 2 || verbs[1] != VerbCubicTo {
		t.Fatalf("verbs = %v, want [MoveTo CubicTo]", verbs)
	}
	want := []Point{{0, 0}, {20, 40}, {50, 40}, {90, 0}}
	for i, pt := range p.Points() {
		if math.Abs(pt.X-want[i].X) > 1e-9 || math.Abs(pt.Y-want[i].Y) > 1e-9 {
			t.Errorf("point %d = %v, want %v", i, pt, want[i])
		}
	}
	if cur := p.CurrentPoint(); cur != Pt(90, 0) {
		t.Errorf("CurrentPoint = %v, want (90, 0)", cur)
	}
}

func TestPathClone(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 10)

	clone := p.Clone()
	p.MoveTo(50, 50)

	if len(clone.Verbs()) != 5 {
		t.Errorf("clone verbs = %d, want 5", len(clone.Verbs()))
	}
	if (*Path)(nil).Clone() != nil {
		t.Error("nil Clone should be nil")
	}
}

func TestPathFlatten(t *testing.T) {
	t.Run("rectangle", func(t *testing.T) {
		p := NewPath()
		p.Rectangle(10, 10, 20, 30)
		polys := p.Flatten(0.1)
		if len(polys) != 1 {
			t.Fatalf("polygons = %d, want 1", len(polys))
		}
		if !polys[0].Closed {
			t.Error("rectangle polygon should be closed")
		}
		if len(polys[0].Points) != 4 {
			t.Errorf("points = %d, want 4", len(polys[0].Points))
		}
	})

	t.Run("cubic ends on endpoint", func(t *testing.T) {
		p := NewPath()
		p.MoveTo(0, 0)
		p.CubicTo(0, 50, 50, 100, 100, 100)
		polys := p.Flatten(0.1)
		if len(polys) != 1 {
			t.Fatalf("polygons = %d, want 1", len(polys))
		}
		pts := polys[0].Points
		if len(pts) < 3 {
			t.Errorf("curve flattened to %d points, want several", len(pts))
		}
		if last := pts[len(pts)-1]; last != Pt(100, 100) {
			t.Errorf("last point = %v, want (100, 100)", last)
		}
		if polys[0].Closed {
			t.Error("open subpath reported closed")
		}
	})

	t.Run("subpaths", func(t *testing.T) {
		p := NewPath()
		p.Rectangle(0, 0, 10, 10)
		p.Rectangle(20, 20, 10, 10)
		if got := len(p.Flatten(0.1)); got != 2 {
			t.Errorf("polygons = %d, want 2", got)
		}
	})
}

func TestRGBA(t *testing.T) {
	c := RGBA{R: 0.5, G: 1, B: 0, A: 0.5}
	got := c.NRGBA()
	want := color.NRGBA{R: 128, G: 255, B: 0, A: 128}
	if got != want {
		t.Errorf("NRGBA() = %v, want %v", got, want)
	}

	back := FromNRGBA(color.NRGBA{R: 255, G: 0, B: 51, A: 255})
	if back.R != 1 || back.G != 0 || back.B != 0.2 || back.A != 1 {
		t.Errorf("FromNRGBA = %+v", back)
	}

	mid := Black.Lerp(White, 0.5)
	if mid.R != 0.5 || mid.A != 1 {
		t.Errorf("Lerp = %+v, want gray", mid)
	}
}

func TestStrokeStyle(t *testing.T) {
	s := DefaultStrokeStyle()
	if s.Width != 1 || s.Join != LineJoinMiter || s.MiterLimit != 10 {
		t.Errorf("DefaultStrokeStyle() = %+v", s)
	}

	s2 := s.WithWidth(4).WithJoin(LineJoinBevel).WithPattern(Solid(White))
	if s2.Width != 4 || s2.Join != LineJoinBevel {
		t.Errorf("With* = %+v", s2)
	}
	if s.Width != 1 {
		t.Error("With* modified the receiver")
	}
}

func TestLinearGradient(t *testing.T) {
	g := NewLinearGradient(0, 0, 100, 0).
		AddColorStop(1, White).
		AddColorStop(0, Black)

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"before start", -10, 0},
		{"start", 0, 0},
		{"middle", 50, 0.5},
		{"end", 100, 1},
		{"after end", 200, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := g.ColorAt(tt.x, 37)
			if math.Abs(c.R-tt.want) > 1e-9 {
				t.Errorf("ColorAt(%v).R = %v, want %v", tt.x, c.R, tt.want)
			}
		})
	}

	if g.Stops[0].Offset != 0 {
		t.Error("stops not sorted")
	}
}

func TestLinearGradientDegenerate(t *testing.T) {
	g := NewLinearGradient(5, 5, 5, 5).AddColorStop(0, Black).AddColorStop(1, White)
	if c := g.ColorAt(100, 100); c != Black {
		t.Errorf("zero-length gradient = %+v, want first stop", c)
	}
	if c := NewLinearGradient(0, 0, 1, 1).ColorAt(0, 0); c != Transparent {
		t.Errorf("gradient without stops = %+v, want transparent", c)
	}
}

func TestRadialGradient(t *testing.T) {
	g := NewRadialGradient(50, 50, 10).
		AddColorStop(0, White).
		AddColorStop(1, Black)

	if c := g.ColorAt(50, 50); c != White {
		t.Errorf("center = %+v, want white", c)
	}
	if c := g.ColorAt(60, 50); c != Black {
		t.Errorf("edge = %+v, want black", c)
	}
	if c := g.ColorAt(55, 50); math.Abs(c.R-0.5) > 1e-9 {
		t.Errorf("half radius R = %v, want 0.5", c.R)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(200, 100)
	if r.Width() != 200 || r.Height() != 100 {
		t.Fatalf("size = %dx%d", r.Width(), r.Height())
	}

	p := NewPath()
	p.Rectangle(0, 0, 10, 10)
	r.FillRect(Rect{W: 200, H: 100}, Solid(Black))
	r.PushClip(p)
	r.DrawImage(image.NewRGBA(image.Rect(0, 0, 4, 4)), image.Rect(0, 0, 10, 10))
	r.PopClip()
	r.Stroke(p, DefaultStrokeStyle().WithWidth(3))

	// Mutating the path after recording must not change the log.
	p.MoveTo(99, 99)

	ops := r.Ops()
	kinds := []OpKind{OpFillRect, OpPushClip, OpDrawImage, OpPopClip, OpStroke}
	if len(ops) != len(kinds) {
		t.Fatalf("ops = %d, want %d", len(ops), len(kinds))
	}
	for i, k := range kinds {
		if ops[i].Kind != k {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i].Kind, k)
		}
	}
	if got := len(ops[1].Path.Verbs()); got != 5 {
		t.Errorf("recorded clip verbs = %d, want 5", got)
	}
	if strokes := r.Filter(OpStroke); len(strokes) != 1 || strokes[0].Stroke.Width != 3 {
		t.Errorf("Filter(OpStroke) = %+v", strokes)
	}

	r.Reset()
	if len(r.Ops()) != 0 {
		t.Error("Reset left operations")
	}
}
