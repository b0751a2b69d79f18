// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// pathPos and paintPos are seek-table entries: the stream positions
// where an entity's inline body begins. Paints additionally save the
// transforms position because gradient transforms consume that array.
type pathPos struct {
	child, arg int
}

type paintPos struct {
	child, arg, transform int
}

// traverser decodes one pass over the opcode stream. The forward
// readers only ever move forward; back-references are resolved by
// fresh readers positioned from the seek tables, so the forward
// position is never disturbed.
type traverser struct {
	im       *ScalableImage
	v        Visitor
	children byteReader
	args     floatReader
	transforms floatReader

	pathSeek  []pathPos
	paintSeek []paintPos

	pathCount      int
	paintCount     int
	transformCount int

	groupDepth  int
	maskedDepth int
	inText      bool
	spanCount   int
}

// Traverse decodes the opcode stream and drives the visitor. The
// seek tables are rebuilt on each call; traversing the same image
// concurrently from several goroutines is safe.
func (im *ScalableImage) Traverse(v Visitor) error {
	t := &traverser{
		im:         im,
		v:          v,
		children:   byteReader{data: im.Children},
		args:       im.argsReader(),
		transforms: im.transformsReader(),
		pathSeek:   make([]pathPos, im.NumPaths),
		paintSeek:  make([]paintPos, im.NumPaints),
	}
	if err := v.Init(im.Strings, im.FloatLists, im.Images); err != nil {
		return err
	}
	info := VectorInfo{
		Width: im.Width, Height: im.Height,
		HasWidth: im.HasWidth, HasHeight: im.HasHeight,
		TintColor: im.TintColor, TintMode: im.TintMode, HasTint: im.HasTint,
	}
	if err := v.Vector(&info); err != nil {
		return err
	}
	for !t.children.eof() {
		op, err := t.children.u8()
		if err != nil {
			return err
		}
		if err := t.dispatch(op); err != nil {
			return err
		}
	}
	if err := t.checkEnd(); err != nil {
		return err
	}
	return v.EndVector()
}

func (t *traverser) dispatch(op byte) error {
	switch {
	case op < opTextBase:
		return t.path(op)
	case op < opGroupBase:
		return t.textSpan(op - opTextBase)
	case op < opClipBase:
		return t.group(op - opGroupBase)
	case op < opImage:
		return t.clipPath(op - opClipBase)
	case op == opImage:
		return t.image()
	case op == opEndGroup:
		if t.groupDepth == 0 {
			return fmt.Errorf("%w: unexpected end group", ErrUnbalancedGroups)
		}
		t.groupDepth--
		return t.v.EndGroup()
	case op == opTextBegin:
		if t.inText {
			return fmt.Errorf("%w: nested text block", ErrUnbalancedGroups)
		}
		t.inText = true
		t.spanCount = 0
		return t.v.Text()
	case op == opTextEnd:
		if !t.inText {
			return fmt.Errorf("%w: unexpected text end", ErrUnbalancedGroups)
		}
		t.inText = false
		return t.v.TextEnd()
	case op < opMaskedChild:
		return t.masked(op - opMaskedBase)
	case op == opMaskedChild:
		if t.maskedDepth == 0 {
			return fmt.Errorf("%w: masked child outside mask bracket", ErrUnbalancedGroups)
		}
		return t.v.MaskedChild()
	case op == opEndMasked:
		if t.maskedDepth == 0 {
			return fmt.Errorf("%w: unexpected end masked", ErrUnbalancedGroups)
		}
		t.maskedDepth--
		return t.v.EndMasked()
	default:
		return fmt.Errorf("%w: %#02x", ErrBadOpcode, op)
	}
}

// readPaintRef decodes the paint of a PATH or TEXT op: either a
// back-reference number into the paint seek table or an inline body
// that becomes the next table entry.
func (t *traverser) readPaintRef(hasNumber bool, fill, stroke ColorType) (*Paint, error) {
	if hasNumber {
		n, err := t.children.smallish()
		if err != nil {
			return nil, err
		}
		if int(n) >= t.paintCount {
			return nil, fmt.Errorf("%w: paint number %d of %d", ErrBadOpcode, n, t.paintCount)
		}
		pos := t.paintSeek[n]
		rw := wireReader{
			children:   &byteReader{data: t.im.Children, pos: pos.child},
			args:       t.im.argsReader(),
			transforms: t.im.transformsReader(),
		}
		rw.args.setPos(pos.arg)
		rw.transforms.setPos(pos.transform)
		return rw.readPaint(fill, stroke)
	}
	if t.paintCount >= len(t.paintSeek) {
		return nil, fmt.Errorf("%w: more paints than declared", ErrBadOpcode)
	}
	t.paintSeek[t.paintCount] = paintPos{t.children.pos, t.args.pos(), t.transforms.pos()}
	t.paintCount++
	rw := wireReader{children: &t.children, args: t.args, transforms: t.transforms}
	p, err := rw.readPaint(fill, stroke)
	if err != nil {
		return nil, err
	}
	// gradient transforms freshly read from the forward reader count
	// toward the transform numbering
	t.transformCount = t.transforms.pos() / 6
	return p, nil
}

// readPathRef resolves the path of a PATH or CLIPPATH op into a
// [PathData] handle, advancing the forward readers past an inline
// body.
func (t *traverser) readPathRef(hasNumber bool) (*PathData, error) {
	if hasNumber {
		n, err := t.children.smallish()
		if err != nil {
			return nil, err
		}
		if int(n) >= t.pathCount {
			return nil, fmt.Errorf("%w: path number %d of %d", ErrBadOpcode, n, t.pathCount)
		}
		pos := t.pathSeek[n]
		return &PathData{im: t.im, childPos: pos.child, argPos: pos.arg}, nil
	}
	if t.pathCount >= len(t.pathSeek) {
		return nil, fmt.Errorf("%w: more paths than declared", ErrBadOpcode)
	}
	pos := pathPos{t.children.pos, t.args.pos()}
	t.pathSeek[t.pathCount] = pos
	t.pathCount++
	if err := walkEncodedPath(&t.children, t.args, discardPathSink{}); err != nil {
		return nil, err
	}
	return &PathData{im: t.im, childPos: pos.child, argPos: pos.arg}, nil
}

func (t *traverser) path(flags byte) error {
	// stream order: path number, paint, inline path body
	var pathNum uint32
	hasPathNum := flags&pathFlagPathNumber != 0
	if hasPathNum {
		n, err := t.children.smallish()
		if err != nil {
			return err
		}
		if int(n) >= t.pathCount {
			return fmt.Errorf("%w: path number %d of %d", ErrBadOpcode, n, t.pathCount)
		}
		pathNum = n
	}
	paint, err := t.readPaintRef(flags&pathFlagPaintNumber != 0,
		fillColorType(flags), strokeColorType(flags))
	if err != nil {
		return err
	}
	var pd *PathData
	if hasPathNum {
		pos := t.pathSeek[pathNum]
		pd = &PathData{im: t.im, childPos: pos.child, argPos: pos.arg}
	} else {
		if t.pathCount >= len(t.pathSeek) {
			return fmt.Errorf("%w: more paths than declared", ErrBadOpcode)
		}
		pos := pathPos{t.children.pos, t.args.pos()}
		t.pathSeek[t.pathCount] = pos
		t.pathCount++
		if err := walkEncodedPath(&t.children, t.args, discardPathSink{}); err != nil {
			return err
		}
		pd = &PathData{im: t.im, childPos: pos.child, argPos: pos.arg}
	}
	return t.v.Path(pd, paint)
}

func (t *traverser) clipPath(flags byte) error {
	pd, err := t.readPathRef(flags&clipFlagPathNumber != 0)
	if err != nil {
		return err
	}
	return t.v.ClipPath(pd)
}

func (t *traverser) group(flags byte) error {
	var transform *math32.Matrix2
	switch {
	case flags&groupFlagTransform != 0:
		rw := wireReader{children: &t.children, args: t.args, transforms: t.transforms}
		m, err := rw.readAffine()
		if err != nil {
			return err
		}
		t.transformCount++
		transform = &m
	case flags&groupFlagTransformNumber != 0:
		n, err := t.children.smallish()
		if err != nil {
			return err
		}
		if int(n) >= t.transformCount {
			return fmt.Errorf("%w: transform number %d of %d", ErrBadOpcode, n, t.transformCount)
		}
		m, err := t.transforms.affineAt(int(n) * 6)
		if err != nil {
			return err
		}
		transform = &m
	}
	var alpha float32
	hasAlpha := flags&groupFlagAlpha != 0
	if hasAlpha {
		ab, err := t.children.u8()
		if err != nil {
			return err
		}
		alpha = float32(ab) / 255
	}
	bb, err := t.children.u8()
	if err != nil {
		return err
	}
	t.groupDepth++
	return t.v.Group(transform, alpha, hasAlpha, BlendMode(bb))
}

func (t *traverser) image() error {
	n, err := t.children.smallish()
	if err != nil {
		return err
	}
	if int(n) >= len(t.im.Images) {
		return fmt.Errorf("%w: image number %d of %d", ErrBadOpcode, n, len(t.im.Images))
	}
	return t.v.Image(int(n), &t.im.Images[n])
}

func (t *traverser) textSpan(flags byte) error {
	if !t.inText {
		return fmt.Errorf("%w: text span outside text block", ErrUnbalancedGroups)
	}
	xi, err := t.children.smallish()
	if err != nil {
		return err
	}
	yi, err := t.children.smallish()
	if err != nil {
		return err
	}
	ti, err := t.children.smallish()
	if err != nil {
		return err
	}
	ab, err := t.children.u8()
	if err != nil {
		return err
	}
	wb, err := t.children.u8()
	if err != nil {
		return err
	}
	attrs := TextAttributes{
		FontStyle:  FontStyle(ab & 3),
		Anchor:     TextAnchor(ab >> 2 & 3),
		Decoration: TextDecoration(ab >> 4 & 3),
		FontWeight: weightValue(wb),
	}
	if flags&textFlagFontFamily != 0 {
		fi, err := t.children.smallish()
		if err != nil {
			return err
		}
		if int(fi) >= len(t.im.Strings) {
			return fmt.Errorf("%w: string index %d of %d", ErrTruncated, fi, len(t.im.Strings))
		}
		attrs.FontFamily = t.im.Strings[fi]
	}
	attrs.FontSize, err = t.args.read()
	if err != nil {
		return err
	}
	paint, err := t.readPaintRef(flags&textFlagPaintNumber != 0,
		fillColorType(flags), strokeColorType(flags))
	if err != nil {
		return err
	}
	if int(xi) >= len(t.im.FloatLists) || int(yi) >= len(t.im.FloatLists) {
		return fmt.Errorf("%w: float list index out of range", ErrTruncated)
	}
	if int(ti) >= len(t.im.Strings) {
		return fmt.Errorf("%w: string index %d of %d", ErrTruncated, ti, len(t.im.Strings))
	}
	t.spanCount++
	if t.spanCount > 1 {
		if err := t.v.TextMultiSpanChunk(); err != nil {
			return err
		}
	}
	span := &TextSpan{
		X:          t.im.FloatLists[xi],
		Y:          t.im.FloatLists[yi],
		Text:       t.im.Strings[ti],
		Attributes: attrs,
		Paint:      paint,
	}
	return t.v.TextSpan(span)
}

func (t *traverser) masked(flags byte) error {
	var bounds *math32.Box2
	if flags&maskedFlagBounds != 0 {
		var vs [4]float32
		for i := range vs {
			v, err := t.args.read()
			if err != nil {
				return err
			}
			vs[i] = v
		}
		b := math32.B2(vs[0], vs[1], vs[2], vs[3])
		bounds = &b
	}
	t.maskedDepth++
	return t.v.Masked(bounds, flags&maskedFlagLuma != 0)
}

// checkEnd verifies the termination invariants: everything consumed,
// every seek slot filled, all brackets closed.
func (t *traverser) checkEnd() error {
	if t.groupDepth != 0 || t.maskedDepth != 0 || t.inText {
		return fmt.Errorf("%w: unclosed brackets at end of stream", ErrUnbalancedGroups)
	}
	if t.args.pos() != t.args.len() {
		return fmt.Errorf("%w: %d unconsumed args", ErrTruncated, t.args.len()-t.args.pos())
	}
	if t.transformCount*6 != t.transforms.len() {
		return fmt.Errorf("%w: %d unconsumed transforms", ErrTruncated,
			t.transforms.len()-t.transformCount*6)
	}
	if t.pathCount != len(t.pathSeek) {
		return fmt.Errorf("%w: %d of %d paths seen", ErrTruncated, t.pathCount, len(t.pathSeek))
	}
	if t.paintCount != len(t.paintSeek) {
		return fmt.Errorf("%w: %d of %d paints seen", ErrTruncated, t.paintCount, len(t.paintSeek))
	}
	return nil
}
