// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import "cogentcore.org/core/math32"

// Visitor consumes the event stream of a traversal, in document
// order. A renderer implements all of it; special-purpose consumers
// (a bounds collector, say) can ignore events freely. Returning a
// non-nil error aborts the traversal and is propagated unchanged.
type Visitor interface {
	// Init delivers the canonical tables before any other event.
	Init(strings []string, floatLists [][]float32, images []ImageData) error

	// Vector opens the document.
	Vector(info *VectorInfo) error

	// Group opens a group. transform is nil when the group carries
	// none; hasAlpha distinguishes a group alpha of 1 from none.
	Group(transform *math32.Matrix2, alpha float32, hasAlpha bool, blend BlendMode) error
	EndGroup() error

	// Path draws a path with the given paint. The path geometry is
	// walked on demand through the handle.
	Path(path *PathData, paint *Paint) error

	// ClipPath intersects the current clip with the path.
	ClipPath(path *PathData) error

	// Image draws entry imageNumber of the image table.
	Image(imageNumber int, img *ImageData) error

	// Text opens a text block of one or more spans.
	Text() error
	TextSpan(span *TextSpan) error
	// TextMultiSpanChunk is delivered before every span after the
	// first of a multi-span block.
	TextMultiSpanChunk() error
	TextEnd() error

	// Masked opens a mask bracket: mask content follows, then
	// MaskedChild, the masked content, and EndMasked.
	Masked(bounds *math32.Box2, usesLuma bool) error
	MaskedChild() error
	EndMasked() error

	EndVector() error
}

// TextSpan is one decoded span of a text block.
type TextSpan struct {
	// X and Y are the per-glyph position lists; a single-element list
	// positions the whole span.
	X, Y []float32

	Text       string
	Attributes TextAttributes
	Paint      *Paint
}

// PathData is a handle onto encoded path geometry at a saved stream
// position. Walking it uses its own reader state, so it is valid both
// during the delivering Path/ClipPath call and after the traversal,
// and safe to walk any number of times.
type PathData struct {
	im       *ScalableImage
	childPos int
	argPos   int
}

// WalkPath replays the path geometry into the sink. It implements
// [PathSource], so a decoded path can be fed straight back into a
// [Builder].
func (pd *PathData) WalkPath(sink PathSink) error {
	cr := byteReader{data: pd.im.Children, pos: pd.childPos}
	ar := pd.im.argsReader()
	ar.setPos(pd.argPos)
	return walkEncodedPath(&cr, ar, sink)
}
