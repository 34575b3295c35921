package presenter

import "github.com/gogpu/presenter/surface"

// IconSize is the edge length of the application icon.
const IconSize = 1024

// RenderIcon draws the application icon: a diagonal gradient with a soft
// light vignette, a translucent rounded plate and a white "SP" monogram.
// Geometry is defined on a 1024×1024 canvas and scaled to the surface
// width.
func RenderIcon(dst surface.Surface) {
	w, h := float64(dst.Width()), float64(dst.Height())
	k := w / IconSize

	from, _ := ParseHex("#1a1f35")
	to, _ := ParseHex("#7a6cff")
	bg := surface.NewLinearGradient(0, 0, w, h).
		AddColorStop(0, from.Paint(1)).
		AddColorStop(1, to.Paint(1))
	full := surface.Rect{W: w, H: h}
	dst.FillRect(full, bg)

	vignette := surface.NewRadialGradient(w*0.5, h*0.45, w*0.6).
		AddColorStop(0, white.Paint(0.08)).
		AddColorStop(1, white.Paint(0))
	dst.FillRect(full, vignette)

	side := 640 * k
	x, y := (w-side)/2, (h-side)/2
	plate := surface.NewPath()
	plate.RoundedRectangle(x, y, side, side, 220*k)

	fill := surface.NewLinearGradient(x, y, x+side, y+side).
		AddColorStop(0, white.Paint(0.12)).
		AddColorStop(1, white.Paint(0.04))
	dst.Fill(plate, fill)
	dst.Stroke(plate, surface.DefaultStrokeStyle().
		WithWidth(6*k).
		WithPattern(surface.Solid(black.Paint(0.25))))

	drawMonogram(dst, "SP", 300*k, w/2, h/2+32*k)
}

// drawMonogram fills text in white, centered horizontally on cx with the
// middle of its em box on cy.
func drawMonogram(dst surface.Surface, text string, size, cx, cy float64) {
	glyphs, err := centeredText(text, size, cx, cy+middleOffset(size))
	if err != nil {
		Logger().Warn("presenter: icon monogram skipped", "err", err)
		return
	}
	dst.Fill(glyphs, surface.Solid(white.Paint(1)))
}
