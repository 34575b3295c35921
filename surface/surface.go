// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// Surface is the rendering target abstraction.
//
// A Surface represents a 2D canvas that can be drawn to. The same drawing
// code targets an on-screen buffer, an offscreen thumbnail, or a Recorder
// in tests.
//
// Surfaces are NOT thread-safe. Each surface should be used from a single
// goroutine, or external synchronization must be used.
//
// Example usage:
//
//	s := surface.NewImageSurface(800, 600)
//	s.FillRect(surface.Rect{W: 800, H: 600}, surface.Solid(surface.White))
//	p := surface.NewPath()
//	p.RoundedRectangle(40, 40, 720, 520, 24)
//	s.Stroke(p, surface.DefaultStrokeStyle().WithWidth(4))
//	img := s.Image()
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// FillRect fills an axis-aligned rectangle.
	FillRect(r Rect, p Pattern)

	// Fill fills the given path with the non-zero winding rule.
	// The path is not modified or consumed.
	Fill(path *Path, p Pattern)

	// Stroke strokes the given path using the specified style.
	// The path is not modified or consumed.
	Stroke(path *Path, style StrokeStyle)

	// PushClip intersects the current clip with path and saves the
	// previous clip so PopClip can restore it.
	PushClip(path *Path)

	// PopClip restores the clip saved by the matching PushClip.
	PopClip()

	// DrawImage draws img stretched to fill dst, subject to the clip.
	DrawImage(img image.Image, dst image.Rectangle)
}
