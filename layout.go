package presenter

import (
	"image"
	"math"

	"github.com/gogpu/presenter/surface"
)

// Reference image size used to lay out a composition without a screenshot.
const (
	PlaceholderWidth  = 1000
	PlaceholderHeight = 600
)

// Canvas size bounds.
const (
	MinCanvasWidth     = 900
	MaxCanvasWidth     = 1600
	EmptyCanvasWidth   = 1200
	EmptyCanvasHeight  = 800
	ThumbnailWidth     = 600
	ThumbnailHeight    = 450
	defaultPixelRatio  = 1.0
	minimumBorderWidth = 0.5
)

// Layout is the geometry of a composition on a surface of a given width.
type Layout struct {
	// Scale maps source image pixels to surface pixels.
	Scale float64

	// Inset is the rectangle the screenshot occupies.
	Inset image.Rectangle

	// Radius is the corner radius, already clamped to half the smaller
	// inset side.
	Radius float64

	// BorderWidth is the frame stroke width in surface pixels.
	BorderWidth int
}

// ComputeLayout lays out a composition of an imgW×imgH screenshot on a
// surface width pixels wide. A non-positive image size uses the
// placeholder reference size.
func ComputeLayout(width int, s StyleSettings, imgW, imgH int) Layout {
	s = s.Normalize()
	if imgW <= 0 || imgH <= 0 {
		imgW, imgH = PlaceholderWidth, PlaceholderHeight
	}

	scale := float64(width) / float64(imgW+2*s.Padding+2*s.BorderWidth)
	if width <= 0 {
		scale = 0
	}

	x := int(roundHalfUp(float64(s.Padding) * scale))
	w := max(0, int(roundHalfUp(float64(imgW)*scale)))
	h := max(0, int(roundHalfUp(float64(imgH)*scale)))
	border := int(roundHalfUp(math.Max(minimumBorderWidth, float64(s.BorderWidth)*scale)))
	radius := roundHalfUp(float64(s.CornerRadius) * scale)

	return Layout{
		Scale:       scale,
		Inset:       image.Rect(x, x, x+w, x+h),
		Radius:      surface.ClampRadius(float64(w), float64(h), radius),
		BorderWidth: border,
	}
}

// FramePath returns the rounded rectangle that clips and outlines the
// screenshot.
func (l Layout) FramePath() *surface.Path {
	r := l.Inset
	p := surface.NewPath()
	p.RoundedRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), l.Radius)
	return p
}

// CanvasSize returns the pixel size of the canvas used to preview or
// export a composition. With an image the logical width is the
// composition's natural width clamped to [900, 1600] and the height keeps
// its aspect ratio; without one the canvas is 1200×800. Both are
// multiplied by pixelRatio (at least 1) and rounded.
func CanvasSize(s StyleSettings, img image.Image, pixelRatio float64) (width, height int) {
	if !(pixelRatio >= 1) || math.IsInf(pixelRatio, 0) {
		pixelRatio = defaultPixelRatio
	}

	logicalW, logicalH := float64(EmptyCanvasWidth), float64(EmptyCanvasHeight)
	if img != nil && !img.Bounds().Empty() {
		s = s.Normalize()
		b := img.Bounds()
		frame := float64(2*s.Padding + 2*s.BorderWidth)
		naturalW := float64(b.Dx()) + frame
		naturalH := float64(b.Dy()) + frame

		targetW := math.Min(MaxCanvasWidth, math.Max(MinCanvasWidth, naturalW))
		scale := targetW / naturalW
		logicalW = roundHalfUp(naturalW * scale)
		logicalH = roundHalfUp(naturalH * scale)
	}

	return int(roundHalfUp(logicalW * pixelRatio)), int(roundHalfUp(logicalH * pixelRatio))
}
