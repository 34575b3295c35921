package presenter

import (
	"image"

	"github.com/gogpu/presenter/surface"
)

// Placeholder panel constants.
const (
	placeholderMarks      = 8
	placeholderMarkWidth  = 1
	placeholderStartAlpha = 0.25
	placeholderEndAlpha   = 0.05
	placeholderMarkAlpha  = 0.08
	borderMiterLimit      = 10
)

var (
	white = Color{R: 255, G: 255, B: 255}
	black = Color{}
)

// Render draws a composition of img styled by s onto dst.
//
// The whole surface is filled with the background gradient, the screenshot
// is drawn into the rounded inset and the frame is stroked on top. A nil
// or zero-sized img is a valid "no image" composition laid out with the
// 1000×600 reference size. Render never fails: unparsable colors fall back
// to fixed ones and a degenerate inset skips the frame.
func Render(dst surface.Surface, s StyleSettings, img image.Image, opts ...RenderOption) {
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s = s.Normalize()
	if img != nil && img.Bounds().Empty() {
		img = nil
	}

	width, height := dst.Width(), dst.Height()
	start, end := GradientColors(s, img)
	bg := surface.NewLinearGradient(0, 0, float64(width), float64(height)).
		AddColorStop(0, start.Paint(1)).
		AddColorStop(1, end.Paint(1))
	dst.FillRect(surface.RectFrom(0, 0, width, height), bg)

	var imgW, imgH int
	if img != nil {
		imgW, imgH = img.Bounds().Dx(), img.Bounds().Dy()
	}
	l := ComputeLayout(width, s, imgW, imgH)

	log := Logger()
	if l.Inset.Empty() {
		log.Debug("presenter: skipping degenerate inset",
			"width", width, "height", height, "inset", l.Inset)
		return
	}
	log.Debug("presenter: render",
		"width", width, "height", height,
		"scale", l.Scale, "inset", l.Inset,
		"radius", l.Radius, "border", l.BorderWidth,
		"start", start.Hex(), "end", end.Hex())

	frame := l.FramePath()
	dst.PushClip(frame)
	switch {
	case img != nil:
		dst.DrawImage(img, l.Inset)
	case o.placeholder:
		drawPlaceholder(dst, l.Inset)
	}
	dst.PopClip()

	stroke := surface.DefaultStrokeStyle().
		WithWidth(float64(l.BorderWidth)).
		WithJoin(surface.LineJoinMiter).
		WithPattern(surface.Solid(o.borderColor.Paint(borderAlpha(s.BorderOpacity))))
	stroke.MiterLimit = borderMiterLimit
	dst.Stroke(frame, stroke)
}

// borderAlpha quantizes the opacity to 8 bits.
func borderAlpha(opacity float64) float64 {
	return float64(round255(opacity)) / 255
}

// drawPlaceholder fills r with a faint white gradient crossed by evenly
// spaced 1px marks.
func drawPlaceholder(dst surface.Surface, r image.Rectangle) {
	panel := surface.NewLinearGradient(
		float64(r.Min.X), float64(r.Min.Y),
		float64(r.Max.X), float64(r.Max.Y),
	).
		AddColorStop(0, white.Paint(placeholderStartAlpha)).
		AddColorStop(1, white.Paint(placeholderEndAlpha))
	dst.FillRect(surface.RectFrom(r.Min.X, r.Min.Y, r.Dx(), r.Dy()), panel)

	mark := surface.Solid(black.Paint(placeholderMarkAlpha))
	for _, x := range placeholderMarkOffsets(r.Dx()) {
		dst.FillRect(surface.RectFrom(r.Min.X+x, r.Min.Y, placeholderMarkWidth, r.Dy()), mark)
	}
}

// placeholderMarkOffsets returns the x offsets of the placeholder marks
// within an inset w pixels wide.
func placeholderMarkOffsets(w int) []int {
	offsets := make([]int, placeholderMarks)
	for i := range offsets {
		offsets[i] = int(roundHalfUp(float64(i) * float64(w) / placeholderMarks))
	}
	return offsets
}
