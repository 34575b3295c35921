package presenter

import (
	"image"
	"image/color"
	"math"
	"testing"

	xdraw "golang.org/x/image/draw"
)

func uniformImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// splitImage returns an image whose left half is a and right half is b.
func splitImage(w, h int, a, b color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := a
			if x >= w/2 {
				c = b
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestGradientFromImageNoImage(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero width", image.NewRGBA(image.Rect(0, 0, 0, 10))},
		{"zero height", image.NewRGBA(image.Rect(0, 0, 10, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := GradientFromImage(tt.img, 0.7)
			if start != (Color{20, 26, 44}) || end != (Color{78, 94, 160}) {
				t.Errorf("GradientFromImage = %v, %v; want fallback pair", start, end)
			}
		})
	}
}

func TestAverageColor(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want Color
		tol  int
	}{
		{"uniform large", uniformImage(640, 480, color.NRGBA{10, 200, 30, 255}), Color{10, 200, 30}, 1},
		{"uniform small", uniformImage(4, 2, color.NRGBA{90, 40, 160, 255}), Color{90, 40, 160}, 1},
		{"single pixel", uniformImage(1, 1, color.NRGBA{1, 2, 3, 255}), Color{1, 2, 3}, 1},
		{"transparent", uniformImage(50, 50, color.NRGBA{255, 255, 255, 0}), Color{24, 28, 40}, 0},
		{"below threshold", uniformImage(50, 50, color.NRGBA{255, 255, 255, 7}), Color{24, 28, 40}, 0},
		{"nil", nil, Color{24, 28, 40}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageColor(tt.img)
			if absDiff(got.R, tt.want.R) > tt.tol || absDiff(got.G, tt.want.G) > tt.tol || absDiff(got.B, tt.want.B) > tt.tol {
				t.Errorf("AverageColor() = %v, want %v (±%d)", got, tt.want, tt.tol)
			}
		})
	}
}

func TestAverageColorIgnoresTransparentPixels(t *testing.T) {
	img := splitImage(64, 64, color.NRGBA{255, 0, 0, 0}, color.NRGBA{0, 0, 255, 255})
	got := AverageColor(img)
	if got.B < 250 || got.R > 2 {
		t.Errorf("AverageColor() = %v, want blue", got)
	}
}

func TestAverageColorInvariantToDownscale(t *testing.T) {
	a := color.NRGBA{200, 60, 20, 255}
	b := color.NRGBA{30, 120, 220, 255}
	full := splitImage(640, 320, a, b)

	half := image.NewRGBA(image.Rect(0, 0, 320, 160))
	xdraw.BiLinear.Scale(half, half.Bounds(), full, full.Bounds(), xdraw.Src, nil)

	c1 := AverageColor(full)
	c2 := AverageColor(half)
	if absDiff(c1.R, c2.R) > 2 || absDiff(c1.G, c2.G) > 2 || absDiff(c1.B, c2.B) > 2 {
		t.Errorf("AverageColor full = %v, downscaled = %v", c1, c2)
	}
}

func TestDeriveGradientSeedShiftsHue(t *testing.T) {
	base := HSL{H: 0.3, S: 0.5, L: 0.4}
	tests := []struct {
		seed  float64
		shift float64
	}{
		{0, 0.08},
		{0.5, 0.15},
		{0.999, 0.08 + 0.999*0.14},
	}
	for _, tt := range tests {
		_, end := DeriveGradient(base, tt.seed)
		got := end.ToHSL().H
		want := math.Mod(base.H+tt.shift, 1)
		if math.Abs(got-want) > 0.01 {
			t.Errorf("seed %v: end hue = %v, want %v", tt.seed, got, want)
		}
	}
}

func TestDeriveGradientHueWraps(t *testing.T) {
	base := HSL{H: 0.95, S: 0.6, L: 0.5}
	_, end := DeriveGradient(base, 0.5)
	got := end.ToHSL().H
	if math.Abs(got-0.10) > 0.01 {
		t.Errorf("end hue = %v, want 0.10", got)
	}
}

func TestDeriveGradientLightness(t *testing.T) {
	start, end := DeriveGradient(HSL{H: 0.6, S: 0.4, L: 0.8}, 0)
	if l := start.ToHSL().L; math.Abs(l-0.36) > 0.01 {
		t.Errorf("start lightness = %v, want 0.36", l)
	}
	if l := end.ToHSL().L; math.Abs(l-0.58) > 0.01 {
		t.Errorf("end lightness = %v, want 0.58", l)
	}
}

func TestGradientFromImageUsesAverage(t *testing.T) {
	img := uniformImage(100, 60, color.NRGBA{40, 90, 200, 255})
	start, end := GradientFromImage(img, 0.25)
	wantStart, wantEnd := DeriveGradient(Color{40, 90, 200}.ToHSL(), 0.25)
	if start != wantStart || end != wantEnd {
		t.Errorf("GradientFromImage = %v, %v; want %v, %v", start, end, wantStart, wantEnd)
	}
}

func TestGradientColorsCustom(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantStart  Color
		wantEnd    Color
	}{
		{"valid", "#000000", "#ffffff", Color{0, 0, 0}, Color{255, 255, 255}},
		{"no hash", "112233", "AABBCC", Color{0x11, 0x22, 0x33}, Color{0xaa, 0xbb, 0xcc}},
		{"bad start", "nope", "#ffffff", Color{108, 92, 231}, Color{255, 255, 255}},
		{"bad end", "#000000", "#abc", Color{0, 0, 0}, Color{0, 217, 255}},
		{"both bad", "", "", Color{108, 92, 231}, Color{0, 217, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.GradientMode = GradientCustom
			s.GradientStart, s.GradientEnd = tt.start, tt.end
			start, end := GradientColors(s, nil)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("GradientColors = %v, %v; want %v, %v", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestGradientColorsAutoIgnoresCustomColors(t *testing.T) {
	s := DefaultSettings()
	s.GradientStart = "#000000"
	start, end := GradientColors(s, nil)
	if start != NoImageStart || end != NoImageEnd {
		t.Errorf("GradientColors = %v, %v; want no-image pair", start, end)
	}
}

func BenchmarkAverageColor(b *testing.B) {
	img := uniformImage(2880, 1800, color.NRGBA{10, 200, 30, 255})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		AverageColor(img)
	}
}
