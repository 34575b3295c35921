package presenter

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Fixed gradient colors.
var (
	// NoImageStart and NoImageEnd are the auto gradient without an image.
	NoImageStart = Color{R: 20, G: 26, B: 44}
	NoImageEnd   = Color{R: 78, G: 94, B: 160}

	// EmptySampleColor is the average of an image with no opaque pixels.
	EmptySampleColor = Color{R: 24, G: 28, B: 40}

	// CustomStartFallback and CustomEndFallback replace unparsable custom
	// colors, each endpoint independently.
	CustomStartFallback = Color{R: 108, G: 92, B: 231}
	CustomEndFallback   = Color{R: 0, G: 217, B: 255}
)

const (
	// sampleSize bounds the downsampled image used for averaging.
	sampleSize = 32

	// minSampleAlpha is the lowest alpha a pixel needs to count.
	minSampleAlpha = 8
)

// AverageColor returns the mean color of img after downsampling it to fit
// a 32×32 box with one uniform factor. Pixels with alpha below 8 are
// ignored; when none remain the result is EmptySampleColor.
func AverageColor(img image.Image) Color {
	if img == nil || img.Bounds().Empty() {
		return EmptySampleColor
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	r := math.Min(sampleSize/w, sampleSize/h)
	tw := max(1, int(roundHalfUp(w*r)))
	th := max(1, int(roundHalfUp(h*r)))

	sample := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.BiLinear.Scale(sample, sample.Bounds(), img, b, xdraw.Src, nil)

	var sumR, sumG, sumB float64
	n := 0
	for i := 0; i < len(sample.Pix); i += 4 {
		a := uint32(sample.Pix[i+3])
		if a < minSampleAlpha {
			continue
		}
		sumR += float64(unpremultiply(sample.Pix[i], a))
		sumG += float64(unpremultiply(sample.Pix[i+1], a))
		sumB += float64(unpremultiply(sample.Pix[i+2], a))
		n++
	}
	if n == 0 {
		return EmptySampleColor
	}

	fn := float64(n)
	return Color{
		R: uint8(roundHalfUp(sumR / fn)),
		G: uint8(roundHalfUp(sumG / fn)),
		B: uint8(roundHalfUp(sumB / fn)),
	}
}

func unpremultiply(v uint8, a uint32) uint32 {
	if a == 255 {
		return uint32(v)
	}
	return min((uint32(v)*255+a/2)/a, 255)
}

// DeriveGradient turns a base color into the two auto-gradient endpoints.
// The first keeps the base hue and is darkened; the second is lighter and
// rotated by 0.08 turns plus seed·0.14.
func DeriveGradient(base HSL, seed float64) (start, end Color) {
	start = HSL{
		H: base.H,
		S: clamp01(base.S*0.7 + 0.12),
		L: clamp01(0.16 + base.L*0.25),
	}.RGB()
	end = HSL{
		H: math.Mod(base.H+0.08+seed*0.14, 1),
		S: clamp01(base.S*0.8 + 0.18),
		L: clamp01(0.42 + base.L*0.2),
	}.RGB()
	return start, end
}

// GradientFromImage returns the auto-gradient endpoints for img. A nil or
// zero-sized image yields the fixed NoImageStart/NoImageEnd pair.
func GradientFromImage(img image.Image, seed float64) (start, end Color) {
	if img == nil || img.Bounds().Empty() {
		return NoImageStart, NoImageEnd
	}
	return DeriveGradient(AverageColor(img).ToHSL(), seed)
}

// GradientColors resolves the background endpoints for a style.
func GradientColors(s StyleSettings, img image.Image) (start, end Color) {
	if s.GradientMode != GradientCustom {
		return GradientFromImage(img, s.GradientSeed)
	}

	start, ok := ParseHex(s.GradientStart)
	if !ok {
		start = CustomStartFallback
	}
	end, ok = ParseHex(s.GradientEnd)
	if !ok {
		end = CustomEndFallback
	}
	return start, end
}
