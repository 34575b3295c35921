// Package presenter composes screenshots onto decorative backgrounds.
//
// # Overview
//
// A composition is a screenshot placed on a linear gradient with padding,
// rounded corners and a translucent border, ready to export as PNG or
// JPEG. The renderer is a pure function of the source image (or none),
// the style settings and the target surface size: the same inputs always
// produce the same pixels.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/presenter"
//	    "github.com/gogpu/presenter/surface"
//	)
//
//	s := presenter.DefaultSettings()
//	w, h := presenter.CanvasSize(s, img, 1)
//	dst := surface.NewImageSurface(w, h)
//	presenter.Render(dst, s, img)
//	err := presenter.Encode(out, dst.Image(), presenter.FormatPNG)
//
// # Auto gradient
//
// In GradientAuto mode the background colors derive from the average
// color of the screenshot: the image is downsampled to fit 32×32, averaged,
// converted to HSL and turned into a dark and a lighter endpoint. The
// GradientSeed setting shifts the hue of the second endpoint, so
// re-rolling it gives a fresh variation of the same palette.
//
// # Architecture
//
// The library is organized into:
//   - presenter: settings, colors, layout, Render, export
//   - surface: the drawing target (ImageSurface, Recorder)
//   - session: live editing state with observers and async image loading
//   - template: named style presets persisted to a JSON file
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
package presenter

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"
)
