// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// flattenTolerance is the maximum curve deviation, in pixels, when paths
// are converted to polygons for rasterization.
const flattenTolerance = 0.1

// ImageSurface is a CPU-based surface that renders to an *image.RGBA.
//
// Coverage is computed with golang.org/x/image/vector, which produces
// bit-identical results on every GOARCH, so rendering the same
// operations twice yields the same bytes.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	p := surface.NewPath()
//	p.RoundedRectangle(100, 100, 600, 400, 24)
//	s.Fill(p, surface.Solid(surface.RGBA{R: 1, A: 1}))
//	img := s.Image()
type ImageSurface struct {
	width  int
	height int
	img    *image.RGBA

	ras *vector.Rasterizer

	// cov is scratch coverage for the path being filled.
	cov *image.Alpha

	// clips holds the intersected clip masks; the last entry is active.
	clips []*image.Alpha
}

// NewImageSurface creates a new CPU-based surface with the given dimensions.
// Dimensions below 1 are raised to 1.
func NewImageSurface(width, height int) *ImageSurface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return NewImageSurfaceFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface renders into the provided image directly; surface
// coordinate (0, 0) maps to img.Bounds().Min.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	return &ImageSurface{
		width:  b.Dx(),
		height: b.Dy(),
		img:    img,
		ras:    vector.NewRasterizer(b.Dx(), b.Dy()),
		cov:    image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy())),
	}
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Image returns the backing image. Drawing after the call is visible
// through the returned value.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	draw.Draw(out, out.Bounds(), s.img, s.img.Bounds().Min, draw.Src)
	return out
}

// Clear replaces every pixel with c, ignoring the clip.
func (s *ImageSurface) Clear(c RGBA) {
	n := c.NRGBA()
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(n), image.Point{}, draw.Src)
}

// FillRect fills an axis-aligned rectangle. Pixel-aligned rectangles are
// filled with full coverage without rasterization.
func (s *ImageSurface) FillRect(r Rect, p Pattern) {
	if r.Empty() || p == nil {
		return
	}
	if !r.aligned() {
		path := NewPath()
		path.Rectangle(r.X, r.Y, r.W, r.H)
		s.Fill(path, p)
		return
	}

	area := image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H)).
		Intersect(image.Rect(0, 0, s.width, s.height))
	clip := s.clip()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			coverage := 1.0
			if clip != nil {
				m := clip.Pix[y*clip.Stride+x]
				if m == 0 {
					continue
				}
				coverage = float64(m) / 255
			}
			s.blend(x, y, p.ColorAt(float64(x)+0.5, float64(y)+0.5), coverage)
		}
	}
}

// Fill fills the given path with the non-zero winding rule.
func (s *ImageSurface) Fill(path *Path, p Pattern) {
	if path == nil || path.IsEmpty() || p == nil {
		return
	}
	var rings [][]Point
	for _, poly := range path.Flatten(flattenTolerance) {
		rings = append(rings, poly.Points)
	}
	area := s.rasterize(rings)
	s.composite(area, p)
}

// Stroke strokes the given path using the specified style.
func (s *ImageSurface) Stroke(path *Path, style StrokeStyle) {
	if path == nil || path.IsEmpty() || style.Width <= 0 || style.Pattern == nil {
		return
	}
	var rings [][]Point
	for _, poly := range path.Flatten(flattenTolerance) {
		rings = append(rings, strokePolygon(poly, style)...)
	}
	area := s.rasterize(rings)
	s.composite(area, style.Pattern)
}

// PushClip intersects the active clip with path.
func (s *ImageSurface) PushClip(path *Path) {
	mask := image.NewAlpha(image.Rect(0, 0, s.width, s.height))
	if path != nil && !path.IsEmpty() {
		var rings [][]Point
		for _, poly := range path.Flatten(flattenTolerance) {
			rings = append(rings, poly.Points)
		}
		s.rasterize(rings)
		copy(mask.Pix, s.cov.Pix)
	}

	if prev := s.clip(); prev != nil {
		for i, m := range mask.Pix {
			mask.Pix[i] = uint8((uint32(m)*uint32(prev.Pix[i]) + 127) / 255)
		}
	}
	s.clips = append(s.clips, mask)
}

// PopClip restores the previous clip. Unbalanced calls are ignored.
func (s *ImageSurface) PopClip() {
	if len(s.clips) == 0 {
		return
	}
	s.clips[len(s.clips)-1] = nil
	s.clips = s.clips[:len(s.clips)-1]
}

// DrawImage draws img resampled with Catmull-Rom into dst, subject to the
// active clip.
func (s *ImageSurface) DrawImage(img image.Image, dst image.Rectangle) {
	if img == nil || dst.Empty() || img.Bounds().Empty() {
		return
	}
	area := dst.Intersect(image.Rect(0, 0, s.width, s.height))
	if area.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	clip := s.clip()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			coverage := uint32(255)
			if clip != nil {
				coverage = uint32(clip.Pix[y*clip.Stride+x])
				if coverage == 0 {
					continue
				}
			}
			si := scaled.PixOffset(x-dst.Min.X, y-dst.Min.Y)
			s.blendPremul(x, y, scaled.Pix[si:si+4:si+4], coverage)
		}
	}
}

func (s *ImageSurface) clip() *image.Alpha {
	if len(s.clips) == 0 {
		return nil
	}
	return s.clips[len(s.clips)-1]
}

// rasterize writes the coverage of rings into s.cov and returns the
// pixel area that may hold non-zero coverage.
func (s *ImageSurface) rasterize(rings [][]Point) image.Rectangle {
	s.ras.Reset(s.width, s.height)
	s.ras.DrawOp = draw.Src

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		s.ras.MoveTo(float32(ring[0].X), float32(ring[0].Y))
		for _, pt := range ring[1:] {
			s.ras.LineTo(float32(pt.X), float32(pt.Y))
		}
		s.ras.ClosePath()
		for _, pt := range ring {
			minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
			maxX, maxY = math.Max(maxX, pt.X), math.Max(maxY, pt.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return image.Rectangle{}
	}

	s.ras.Draw(s.cov, s.cov.Bounds(), image.Opaque, image.Point{})

	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(image.Rect(0, 0, s.width, s.height))
}

// composite blends p through s.cov and the active clip within area.
func (s *ImageSurface) composite(area image.Rectangle, p Pattern) {
	clip := s.clip()
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := s.cov.Pix[y*s.cov.Stride:]
		for x := area.Min.X; x < area.Max.X; x++ {
			a := row[x]
			if a == 0 {
				continue
			}
			coverage := float64(a) / 255
			if clip != nil {
				m := clip.Pix[y*clip.Stride+x]
				if m == 0 {
					continue
				}
				coverage *= float64(m) / 255
			}
			s.blend(x, y, p.ColorAt(float64(x)+0.5, float64(y)+0.5), coverage)
		}
	}
}

// blend composites a non-premultiplied color over the pixel at (x, y)
// using source-over with the given coverage.
func (s *ImageSurface) blend(x, y int, c RGBA, coverage float64) {
	sa := clamp01(c.A) * coverage
	if sa <= 0 {
		return
	}
	b := s.img.Bounds().Min
	i := s.img.PixOffset(b.X+x, b.Y+y)
	pix := s.img.Pix[i : i+4 : i+4]
	inv := 1 - sa
	pix[0] = round8(clamp01(c.R)*sa*255 + float64(pix[0])*inv)
	pix[1] = round8(clamp01(c.G)*sa*255 + float64(pix[1])*inv)
	pix[2] = round8(clamp01(c.B)*sa*255 + float64(pix[2])*inv)
	pix[3] = round8(sa*255 + float64(pix[3])*inv)
}

// blendPremul composites a premultiplied 8-bit source pixel scaled by
// coverage/255 over the pixel at (x, y).
func (s *ImageSurface) blendPremul(x, y int, src []uint8, coverage uint32) {
	sa := uint32(src[3]) * coverage / 255
	if sa == 0 && src[0] == 0 && src[1] == 0 && src[2] == 0 {
		return
	}
	b := s.img.Bounds().Min
	i := s.img.PixOffset(b.X+x, b.Y+y)
	pix := s.img.Pix[i : i+4 : i+4]
	inv := 255 - sa
	for c := 0; c < 3; c++ {
		v := (uint32(src[c])*coverage + uint32(pix[c])*inv + 127) / 255
		if v > 255 {
			v = 255
		}
		pix[c] = uint8(v)
	}
	pix[3] = uint8((sa*255 + uint32(pix[3])*inv + 127) / 255)
}

func round8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Floor(v + 0.5))
}
