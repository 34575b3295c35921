// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides the 2D drawing target used by the presenter
// renderer.
//
// Surface decouples drawing operations from their implementation, so the
// same composition code works with:
//
//   - ImageSurface: CPU rendering to *image.RGBA
//   - Recorder: an operation log for tests
//
// # Drawing model
//
// Colors are non-premultiplied float RGBA in [0, 1]. Paint comes from a
// Pattern: SolidPattern, LinearGradient or RadialGradient. Geometry is a
// Path made of lines and cubic curves; RoundedRectangle builds the
// rounded frames the renderer needs.
//
// Clipping is a stack. PushClip intersects the active clip with a path and
// PopClip restores the previous one.
//
// # Rasterization
//
// ImageSurface flattens paths to polygons and computes anti-aliased
// coverage with golang.org/x/image/vector. Images are resampled with
// Catmull-Rom from golang.org/x/image/draw. Results are deterministic:
// the same operations on the same surface size produce the same bytes.
//
// # Usage
//
//	s := surface.NewImageSurface(1200, 800)
//	bg := surface.NewLinearGradient(0, 0, 1200, 800).
//	    AddColorStop(0, surface.RGBA{R: 0.08, G: 0.1, B: 0.17, A: 1}).
//	    AddColorStop(1, surface.RGBA{R: 0.3, G: 0.37, B: 0.63, A: 1})
//	s.FillRect(surface.Rect{W: 1200, H: 800}, bg)
//
//	frame := surface.NewPath()
//	frame.RoundedRectangle(64, 64, 1072, 672, 16)
//	s.PushClip(frame)
//	s.DrawImage(screenshot, image.Rect(64, 64, 1136, 736))
//	s.PopClip()
//
// # Thread Safety
//
// Surfaces are NOT thread-safe. Use one surface per goroutine.
package surface
