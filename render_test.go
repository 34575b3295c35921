package presenter

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/presenter/surface"
)

func newTestSurface(w, h int) *surface.ImageSurface {
	return surface.NewImageSurface(w, h)
}

func renderPixels(w, h int, s StyleSettings, img image.Image, opts ...RenderOption) []byte {
	dst := newTestSurface(w, h)
	Render(dst, s, img, opts...)
	return dst.Image().Pix
}

func TestRenderDeterministic(t *testing.T) {
	img := splitImage(300, 200, color.NRGBA{200, 60, 20, 255}, color.NRGBA{30, 120, 220, 255})
	tests := []struct {
		name string
		img  image.Image
		opts []RenderOption
	}{
		{"image", img, nil},
		{"placeholder", nil, []RenderOption{WithPlaceholder(true)}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.GradientSeed = 0.42
			a := renderPixels(640, 420, s, tt.img, tt.opts...)
			b := renderPixels(640, 420, s, tt.img, tt.opts...)
			if !bytes.Equal(a, b) {
				t.Error("identical inputs produced different pixels")
			}
		})
	}
}

func TestRenderOperationOrder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 600))
	rec := surface.NewRecorder(1096, 696)
	Render(rec, referenceSettings(), img)

	want := []surface.OpKind{
		surface.OpFillRect,
		surface.OpPushClip,
		surface.OpDrawImage,
		surface.OpPopClip,
		surface.OpStroke,
	}
	ops := rec.Ops()
	if len(ops) != len(want) {
		t.Fatalf("ops = %d, want %d", len(ops), len(want))
	}
	for i, k := range want {
		if ops[i].Kind != k {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i].Kind, k)
		}
	}

	if ops[0].Rect != (surface.Rect{W: 1096, H: 696}) {
		t.Errorf("background rect = %+v", ops[0].Rect)
	}
	if want := image.Rect(40, 40, 1040, 640); ops[2].Dst != want {
		t.Errorf("image dst = %v, want %v", ops[2].Dst, want)
	}
}

// TestRenderBorder checks the reference composition: 1000×600 image,
// padding 40, radius 24, border 8, opacity 0.5.
func TestRenderBorder(t *testing.T) {
	rec := surface.NewRecorder(1096, 696)
	Render(rec, referenceSettings(), image.NewRGBA(image.Rect(0, 0, 1000, 600)))

	strokes := rec.Filter(surface.OpStroke)
	if len(strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(strokes))
	}
	st := strokes[0].Stroke
	if st.Width != 8 {
		t.Errorf("stroke width = %v, want 8", st.Width)
	}
	if st.Join != surface.LineJoinMiter || st.MiterLimit != 10 {
		t.Errorf("stroke join = %v, limit %v", st.Join, st.MiterLimit)
	}

	paint, ok := st.Pattern.(surface.SolidPattern)
	if !ok {
		t.Fatalf("stroke pattern = %T, want SolidPattern", st.Pattern)
	}
	if got := paint.Color.NRGBA(); got != (color.NRGBA{255, 255, 255, 128}) {
		t.Errorf("border color = %v, want white at 128", got)
	}
}

func TestRenderBorderColorOption(t *testing.T) {
	rec := surface.NewRecorder(400, 300)
	s := DefaultSettings()
	s.BorderOpacity = 1
	Render(rec, s, nil, WithBorderColor(Color{R: 10, G: 20, B: 30}))

	paint := rec.Filter(surface.OpStroke)[0].Stroke.Pattern.(surface.SolidPattern)
	if got := paint.Color.NRGBA(); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("border color = %v", got)
	}
}

func TestRenderPlaceholderMarks(t *testing.T) {
	rec := surface.NewRecorder(1200, 800)
	Render(rec, DefaultSettings(), nil, WithPlaceholder(true))

	l := ComputeLayout(1200, DefaultSettings(), 0, 0)
	fills := rec.Filter(surface.OpFillRect)
	// background, inner panel, 8 marks
	if len(fills) != 10 {
		t.Fatalf("FillRect calls = %d, want 10", len(fills))
	}

	panel := fills[1].Rect
	if panel != surface.RectFrom(l.Inset.Min.X, l.Inset.Min.Y, l.Inset.Dx(), l.Inset.Dy()) {
		t.Errorf("panel = %+v, want inset %v", panel, l.Inset)
	}

	marks := fills[2:]
	prev := -1.0
	for i, m := range marks {
		r := m.Rect
		if r.W != 1 || r.H != float64(l.Inset.Dy()) || r.Y != float64(l.Inset.Min.Y) {
			t.Errorf("mark %d = %+v, want 1px wide and full inset height", i, r)
		}
		wantX := float64(l.Inset.Min.X) + roundHalfUp(float64(i)*float64(l.Inset.Dx())/8)
		if r.X != wantX {
			t.Errorf("mark %d x = %v, want %v", i, r.X, wantX)
		}
		if r.X <= prev || r.X >= float64(l.Inset.Max.X) {
			t.Errorf("mark %d x = %v out of order or outside inset", i, r.X)
		}
		prev = r.X

		c := m.Pattern.(surface.SolidPattern).Color
		if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 0.08 {
			t.Errorf("mark %d color = %+v, want black at 0.08", i, c)
		}
	}

	// 1060 / 8 = 132.5, so spacing alternates between 133 and 132.
	if d := marks[1].Rect.X - marks[0].Rect.X; d != 133 {
		t.Errorf("first spacing = %v, want 133", d)
	}
}

func TestRenderPlaceholderPixels(t *testing.T) {
	dst := newTestSurface(1200, 800)
	Render(dst, DefaultSettings(), nil, WithPlaceholder(true))

	l := ComputeLayout(1200, DefaultSettings(), 0, 0)
	img := dst.Image()
	y := l.Inset.Min.Y + l.Inset.Dy()/2
	markX := l.Inset.Min.X + 133
	onMark := img.RGBAAt(markX, y)
	beside := img.RGBAAt(markX+1, y)
	if onMark.R >= beside.R {
		t.Errorf("mark pixel %v is not darker than neighbour %v", onMark, beside)
	}
}

func TestRenderWithoutPlaceholder(t *testing.T) {
	rec := surface.NewRecorder(1200, 800)
	Render(rec, DefaultSettings(), nil)

	if got := len(rec.Filter(surface.OpFillRect)); got != 1 {
		t.Errorf("FillRect calls = %d, want background only", got)
	}
	if got := len(rec.Filter(surface.OpPushClip)); got != 1 {
		t.Errorf("PushClip calls = %d, want 1", got)
	}
	if got := len(rec.Filter(surface.OpStroke)); got != 1 {
		t.Errorf("Stroke calls = %d, want 1", got)
	}
}

func TestRenderPlaceholderIgnoredWithImage(t *testing.T) {
	rec := surface.NewRecorder(600, 450)
	Render(rec, DefaultSettings(), image.NewRGBA(image.Rect(0, 0, 40, 30)), WithPlaceholder(true))

	if got := len(rec.Filter(surface.OpFillRect)); got != 1 {
		t.Errorf("FillRect calls = %d, want 1", got)
	}
	if got := len(rec.Filter(surface.OpDrawImage)); got != 1 {
		t.Errorf("DrawImage calls = %d, want 1", got)
	}
}

func TestRenderDegenerateInset(t *testing.T) {
	s := DefaultSettings()
	s.Padding = 1_000_000
	rec := surface.NewRecorder(10, 10)
	Render(rec, s, nil, WithPlaceholder(true))

	ops := rec.Ops()
	if len(ops) != 1 || ops[0].Kind != surface.OpFillRect {
		t.Errorf("ops = %v, want background fill only", ops)
	}
}

func TestRenderSquareCorners(t *testing.T) {
	s := referenceSettings()
	s.CornerRadius = 0
	rec := surface.NewRecorder(1096, 696)
	Render(rec, s, image.NewRGBA(image.Rect(0, 0, 1000, 600)))

	clip := rec.Filter(surface.OpPushClip)[0].Path
	for _, v := range clip.Verbs() {
		if v == surface.VerbCubicTo {
			t.Fatal("radius 0 frame contains curves")
		}
	}
	if got := len(clip.Verbs()); got != 5 {
		t.Errorf("frame verbs = %d, want 5", got)
	}
}

func TestRenderCustomGradient(t *testing.T) {
	s := DefaultSettings()
	s.GradientMode = GradientCustom
	s.GradientStart = "#000000"
	s.GradientEnd = "#ffffff"
	dst := newTestSurface(300, 200)
	Render(dst, s, nil)

	img := dst.Image()
	if c := img.RGBAAt(0, 0); c.R > 2 || c.A != 255 {
		t.Errorf("top-left = %v, want black", c)
	}
	if c := img.RGBAAt(299, 199); c.R < 253 {
		t.Errorf("bottom-right = %v, want white", c)
	}
}

func TestRenderEmptyImageIsNoImage(t *testing.T) {
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	a := renderPixels(300, 200, DefaultSettings(), empty)
	b := renderPixels(300, 200, DefaultSettings(), nil)
	if !bytes.Equal(a, b) {
		t.Error("zero-sized image rendered differently from no image")
	}
}

func TestRenderOutOfRangeSettings(t *testing.T) {
	s := StyleSettings{
		Padding:       -10,
		CornerRadius:  -5,
		BorderWidth:   -3,
		BorderOpacity: 7,
		GradientMode:  GradientMode(9),
		GradientSeed:  -0.5,
	}
	rec := surface.NewRecorder(300, 200)
	Render(rec, s, nil)

	paint := rec.Filter(surface.OpStroke)[0].Stroke.Pattern.(surface.SolidPattern)
	if paint.Color.A != 1 {
		t.Errorf("border alpha = %v, want clamped to 1", paint.Color.A)
	}
}

func TestRenderImageFillsInset(t *testing.T) {
	src := uniformImage(100, 60, color.NRGBA{0, 255, 0, 255})
	s := DefaultSettings()
	s.Padding = 20
	s.BorderWidth = 0
	s.BorderOpacity = 0
	w, h := CanvasSize(s, src, 1)
	dst := newTestSurface(w, h)
	Render(dst, s, src)

	l := ComputeLayout(w, s, 100, 60)
	c := l.Inset.Min.Add(l.Inset.Size().Div(2))
	if got := dst.Image().RGBAAt(c.X, c.Y); got.G < 253 || got.R > 2 {
		t.Errorf("inset center = %v, want green", got)
	}
}

func BenchmarkRender(b *testing.B) {
	src := uniformImage(1440, 900, color.NRGBA{40, 90, 200, 255})
	s := DefaultSettings()
	w, h := CanvasSize(s, src, 1)
	dst := newTestSurface(w, h)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render(dst, s, src)
	}
}
