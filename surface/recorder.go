// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// OpKind identifies a recorded drawing operation.
type OpKind uint8

// Recorded operation kinds.
const (
	OpFillRect OpKind = iota
	OpFill
	OpStroke
	OpPushClip
	OpPopClip
	OpDrawImage
)

// String returns the operation name.
func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "FillRect"
	case OpFill:
		return "Fill"
	case OpStroke:
		return "Stroke"
	case OpPushClip:
		return "PushClip"
	case OpPopClip:
		return "PopClip"
	case OpDrawImage:
		return "DrawImage"
	default:
		return "Unknown"
	}
}

// Op is a single recorded drawing operation. Only the fields relevant to
// Kind are set.
type Op struct {
	Kind    OpKind
	Rect    Rect
	Path    *Path
	Pattern Pattern
	Stroke  StrokeStyle
	Image   image.Image
	Dst     image.Rectangle
}

// Recorder is a Surface that records operations without drawing. It is
// used to inspect what a renderer emits, for example the exact geometry
// and paint of a border.
type Recorder struct {
	width, height int
	ops           []Op
}

// NewRecorder creates a recorder reporting the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// Width implements Surface.
func (r *Recorder) Width() int { return r.width }

// Height implements Surface.
func (r *Recorder) Height() int { return r.height }

// FillRect implements Surface.
func (r *Recorder) FillRect(rect Rect, p Pattern) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Rect: rect, Pattern: p})
}

// Fill implements Surface.
func (r *Recorder) Fill(path *Path, p Pattern) {
	r.ops = append(r.ops, Op{Kind: OpFill, Path: path.Clone(), Pattern: p})
}

// Stroke implements Surface.
func (r *Recorder) Stroke(path *Path, style StrokeStyle) {
	r.ops = append(r.ops, Op{Kind: OpStroke, Path: path.Clone(), Stroke: style, Pattern: style.Pattern})
}

// PushClip implements Surface.
func (r *Recorder) PushClip(path *Path) {
	r.ops = append(r.ops, Op{Kind: OpPushClip, Path: path.Clone()})
}

// PopClip implements Surface.
func (r *Recorder) PopClip() {
	r.ops = append(r.ops, Op{Kind: OpPopClip})
}

// DrawImage implements Surface.
func (r *Recorder) DrawImage(img image.Image, dst image.Rectangle) {
	r.ops = append(r.ops, Op{Kind: OpDrawImage, Image: img, Dst: dst})
}

// Ops returns the recorded operations in call order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Filter returns the recorded operations of the given kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards all recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}
