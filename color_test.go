package presenter

import (
	"image/color"
	"math"
	"testing"
)

// Verify at compile time that Color implements color.Color.
var _ color.Color = Color{}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in     string
		want   Color
		wantOK bool
	}{
		{"#6c5ce7", Color{108, 92, 231}, true},
		{"6C5CE7", Color{108, 92, 231}, true},
		{"#000000", Color{0, 0, 0}, true},
		{"#FFffFF", Color{255, 255, 255}, true},
		{"#fff", Color{}, false},
		{"##000000", Color{}, false},
		{"#1234567", Color{}, false},
		{"#zz0000", Color{}, false},
		{"", Color{}, false},
		{" #000000", Color{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHex(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseHex(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestColorHex(t *testing.T) {
	c := Color{R: 0, G: 217, B: 255}
	if got := c.Hex(); got != "#00d9ff" {
		t.Errorf("Hex() = %q, want #00d9ff", got)
	}
	back, ok := ParseHex(c.Hex())
	if !ok || back != c {
		t.Errorf("ParseHex(Hex()) = %v, %v", back, ok)
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{R: 255, G: 0, B: 0}.RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = (%d, %d, %d, %d)", r, g, b, a)
	}
}

func TestToHSL(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want HSL
	}{
		{"red", Color{255, 0, 0}, HSL{0, 1, 0.5}},
		{"green", Color{0, 255, 0}, HSL{1.0 / 3, 1, 0.5}},
		{"blue", Color{0, 0, 255}, HSL{2.0 / 3, 1, 0.5}},
		{"magenta", Color{255, 0, 255}, HSL{5.0 / 6, 1, 0.5}},
		{"black", Color{0, 0, 0}, HSL{0, 0, 0}},
		{"white", Color{255, 255, 255}, HSL{0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.ToHSL()
			if !hslNear(got, tt.want, 1e-9) {
				t.Errorf("ToHSL() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name string
		in   HSL
		want Color
	}{
		{"red", HSL{0, 1, 0.5}, Color{255, 0, 0}},
		{"gray", HSL{0.7, 0, 0.5}, Color{128, 128, 128}},
		{"cyan", HSL{0.5, 1, 0.5}, Color{0, 255, 255}},
		{"dark blue", HSL{2.0 / 3, 1, 0.25}, Color{0, 0, 128}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.RGB(); got != tt.want {
				t.Errorf("RGB() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestHSLRoundTrip checks RGB→HSL→RGB stays within one unit per channel
// for every 8-bit triple (a sparse grid under -short).
func TestHSLRoundTrip(t *testing.T) {
	step := 1
	if testing.Short() {
		step = 7
	}
	for r := 0; r < 256; r += step {
		for g := 0; g < 256; g += step {
			for b := 0; b < 256; b += step {
				c := Color{uint8(r), uint8(g), uint8(b)}
				back := c.ToHSL().RGB()
				if absDiff(c.R, back.R) > 1 || absDiff(c.G, back.G) > 1 || absDiff(c.B, back.B) > 1 {
					t.Fatalf("round trip %v -> %v", c, back)
				}
			}
		}
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{2.4999, 2},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundHalfUp(tt.in); got != tt.want {
			t.Errorf("roundHalfUp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func hslNear(a, b HSL, eps float64) bool {
	return math.Abs(a.H-b.H) < eps && math.Abs(a.S-b.S) < eps && math.Abs(a.L-b.L) < eps
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
