package presenter

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/presenter/surface"
)

// boldFace is the embedded Go Bold font, parsed once. Shaping goes through
// go-text; outlines come from sfnt. Both read the same file, so glyph ids
// agree.
type boldFace struct {
	shape   *font.Font
	outline *sfnt.Font
}

var loadBoldFace = sync.OnceValues(func() (*boldFace, error) {
	face, err := font.ParseTTF(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("presenter: parse bold font: %w", err)
	}
	outline, err := sfnt.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("presenter: parse bold outlines: %w", err)
	}
	return &boldFace{shape: face.Font, outline: outline}, nil
})

// centeredText returns the outline of s set in Go Bold at size pixels,
// centered horizontally on cx with its alphabetic baseline at y.
func centeredText(s string, size, cx, y float64) (*surface.Path, error) {
	bf, err := loadBoldFace()
	if err != nil {
		return nil, err
	}

	runes := []rune(s)
	ppem := fixed.Int26_6(size * 64)
	out := (&shaping.HarfbuzzShaper{}).Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(bf.shape),
		Size:      ppem,
		Script:    language.Latin,
		Language:  language.NewLanguage("en"),
	})

	var width float64
	for _, g := range out.Glyphs {
		width += fromFixed(g.Advance)
	}

	var buf sfnt.Buffer
	path := surface.NewPath()
	pen := cx - width/2
	for _, g := range out.Glyphs {
		ox := pen + fromFixed(g.XOffset)
		oy := y - fromFixed(g.YOffset)
		pen += fromFixed(g.Advance)

		segs, err := bf.outline.LoadGlyph(&buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("presenter: glyph %d: %w", g.GlyphID, err)
		}
		appendSegments(path, segs, ox, oy)
	}
	return path, nil
}

// appendSegments adds sfnt segments, whose y axis already points down,
// translated by (dx, dy). Every contour is closed.
func appendSegments(p *surface.Path, segs sfnt.Segments, dx, dy float64) {
	pt := func(v fixed.Point26_6) (float64, float64) {
		return fromFixed(v.X) + dx, fromFixed(v.Y) + dy
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Close()
			}
			p.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			p.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		p.Close()
	}
}

// middleOffset returns how far below the visual middle of the em box the
// alphabetic baseline sits at size pixels.
func middleOffset(size float64) float64 {
	bf, err := loadBoldFace()
	if err != nil {
		return 0
	}
	var buf sfnt.Buffer
	m, err := bf.outline.Metrics(&buf, fixed.Int26_6(size*64), 0)
	if err != nil {
		return 0
	}
	return (fromFixed(m.Ascent) - fromFixed(m.Descent)) / 2
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
