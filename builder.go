// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"
	"math"
	"strings"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
)

// builderState is the coarse lifecycle of a [Builder].
type builderState int

const (
	builderStart builderState = iota
	builderOpen
	builderClosed
)

// Builder writes the compact representation from a stream of scene
// events, in document order. Structurally equal paths, paints, and
// transforms are shared: the first occurrence is serialized inline
// and later ones refer back by number. Misordered events (an event
// before Vector, or any event after EndVector) are programming
// errors and panic.
type Builder struct {
	w      wireWriter
	big    bool
	state  builderState
	info   VectorInfo

	paths  *ordmap.Map[string, int]
	paints *ordmap.Map[string, int]

	strings    []string
	floatLists [][]float32
	images     []ImageData

	groupDepth  int
	maskedDepth int
	inText      bool
}

// NewBuilder returns a builder writing 32-bit float arrays, or 64-bit
// ones when bigFloats is set.
func NewBuilder(bigFloats bool) *Builder {
	b := &Builder{
		big:    bigFloats,
		paths:  ordmap.New[string, int](),
		paints: ordmap.New[string, int](),
	}
	b.w = wireWriter{
		children:       &byteWriter{},
		transformTable: ordmap.New[transformKey, int](),
	}
	if bigFloats {
		b.w.args = &bigFloatSink{}
		b.w.transforms = &bigFloatSink{}
	} else {
		b.w.args = &smallFloatSink{}
		b.w.transforms = &smallFloatSink{}
	}
	return b
}

// Init installs the canonical tables. It must be called before
// Vector; the indices passed to Image and TextSpan refer into these
// tables.
func (b *Builder) Init(strs []string, floatLists [][]float32, images []ImageData) {
	if b.state != builderStart {
		panic("si: Builder.Init after Vector")
	}
	b.strings = strs
	b.floatLists = floatLists
	b.images = images
}

// Vector opens the document. It must be the first event.
func (b *Builder) Vector(info *VectorInfo) {
	if b.state != builderStart {
		panic("si: Builder.Vector out of order")
	}
	b.state = builderOpen
	b.info = *info
}

func (b *Builder) open(ev string) {
	if b.state != builderOpen {
		panic("si: Builder." + ev + " outside open vector")
	}
}

// Group pushes a group. A nil transform means identity is inherited;
// a previously seen transform is written as a back-reference number.
func (b *Builder) Group(transform *math32.Matrix2, alpha float32, hasAlpha bool, blend BlendMode) {
	b.open("Group")
	var flags byte
	var tn int
	if transform != nil {
		n, hit := b.w.internTransform(*transform)
		if hit {
			flags |= groupFlagTransformNumber
			tn = n
		} else {
			flags |= groupFlagTransform
		}
	}
	if hasAlpha {
		flags |= groupFlagAlpha
	}
	b.w.children.u8(opGroupBase | flags)
	if flags&groupFlagTransformNumber != 0 {
		b.w.children.smallish(uint32(tn))
	}
	if hasAlpha {
		b.w.children.u8(quantizeAlpha(alpha))
	}
	b.w.children.u8(byte(blend))
	b.groupDepth++
}

// EndGroup pops the innermost group.
func (b *Builder) EndGroup() {
	b.open("EndGroup")
	if b.groupDepth == 0 {
		panic("si: Builder.EndGroup at depth 0")
	}
	b.w.children.u8(opEndGroup)
	b.groupDepth--
}

// Path writes a filled/stroked path event. Structurally equal
// (path, paint) pairs collapse to back-reference numbers.
func (b *Builder) Path(src PathSource, paint *Paint) error {
	b.open("Path")
	pe, key, err := encodePathKey(src)
	if err != nil {
		return err
	}
	pathIndex, pathHit := b.paths.IndexByKeyTry(key)
	paintKey := paint.dedupKey()
	paintIndex, paintHit := b.paints.IndexByKeyTry(paintKey)

	var flags byte
	if pathHit {
		flags |= pathFlagPathNumber
	}
	if paintHit {
		flags |= pathFlagPaintNumber
	}
	flags |= colorTypeFlags(paint.FillColor.Type, paint.StrokeColor.Type)
	b.w.children.u8(opPathBase | flags)

	if pathHit {
		b.w.children.smallish(uint32(pathIndex))
	}
	if paintHit {
		b.w.children.smallish(uint32(paintIndex))
	} else {
		if err := b.w.writePaint(paint); err != nil {
			return err
		}
		b.paints.Add(paintKey, b.paints.Len())
	}
	if !pathHit {
		b.appendPath(pe)
		b.paths.Add(key, b.paths.Len())
	}
	return nil
}

// ClipPath intersects the current clip with the given path.
func (b *Builder) ClipPath(src PathSource) error {
	b.open("ClipPath")
	pe, key, err := encodePathKey(src)
	if err != nil {
		return err
	}
	pathIndex, pathHit := b.paths.IndexByKeyTry(key)
	var flags byte
	if pathHit {
		flags |= clipFlagPathNumber
	}
	b.w.children.u8(opClipBase | flags)
	if pathHit {
		b.w.children.smallish(uint32(pathIndex))
	} else {
		b.appendPath(pe)
		b.paths.Add(key, b.paths.Len())
	}
	return nil
}

// Image draws entry imageNumber of the canonical image table.
func (b *Builder) Image(imageNumber int) {
	b.open("Image")
	if imageNumber < 0 || imageNumber >= len(b.images) {
		panic(fmt.Sprintf("si: Builder.Image number %d out of range", imageNumber))
	}
	b.w.children.u8(opImage)
	b.w.children.smallish(uint32(imageNumber))
}

// Text opens a text block; spans follow until TextEnd.
func (b *Builder) Text() {
	b.open("Text")
	if b.inText {
		panic("si: nested Builder.Text")
	}
	b.w.children.u8(opTextBegin)
	b.inText = true
}

// TextSpanIndices locates a span's canonicalized data: the x and y
// position lists in the float-list table and the text and optional
// font family in the string table.
type TextSpanIndices struct {
	X, Y, Text    int
	FontFamily    int
	HasFontFamily bool
}

// TextSpan writes one span of the open text block.
func (b *Builder) TextSpan(ix *TextSpanIndices, attrs *TextAttributes, paint *Paint) error {
	b.open("TextSpan")
	if !b.inText {
		panic("si: Builder.TextSpan outside Text block")
	}
	paintKey := paint.dedupKey()
	paintIndex, paintHit := b.paints.IndexByKeyTry(paintKey)
	var flags byte
	if paintHit {
		flags |= textFlagPaintNumber
	}
	if ix.HasFontFamily {
		flags |= textFlagFontFamily
	}
	flags |= colorTypeFlags(paint.FillColor.Type, paint.StrokeColor.Type)
	b.w.children.u8(opTextBase | flags)
	b.w.children.smallish(uint32(ix.X))
	b.w.children.smallish(uint32(ix.Y))
	b.w.children.smallish(uint32(ix.Text))
	b.w.children.u8(byte(attrs.FontStyle)&3 | (byte(attrs.Anchor)&3)<<2 | (byte(attrs.Decoration)&3)<<4)
	b.w.children.u8(weightIndex(attrs.FontWeight))
	if ix.HasFontFamily {
		b.w.children.smallish(uint32(ix.FontFamily))
	}
	b.w.args.append(attrs.FontSize)
	if paintHit {
		b.w.children.smallish(uint32(paintIndex))
	} else {
		if err := b.w.writePaint(paint); err != nil {
			return err
		}
		b.paints.Add(paintKey, b.paints.Len())
	}
	return nil
}

// TextEnd closes the open text block.
func (b *Builder) TextEnd() {
	b.open("TextEnd")
	if !b.inText {
		panic("si: Builder.TextEnd without Text")
	}
	b.w.children.u8(opTextEnd)
	b.inText = false
}

// Masked opens a mask bracket: the mask content follows, then
// MaskedChild separates it from the masked content, and EndMasked
// closes the bracket. usesLuma hints the renderer that the mask
// effect depends on luminance rather than alpha alone.
func (b *Builder) Masked(bounds *math32.Box2, usesLuma bool) {
	b.open("Masked")
	var flags byte
	if bounds != nil {
		flags |= maskedFlagBounds
	}
	if usesLuma {
		flags |= maskedFlagLuma
	}
	b.w.children.u8(opMaskedBase + flags)
	if bounds != nil {
		b.w.args.append(bounds.Min.X)
		b.w.args.append(bounds.Min.Y)
		b.w.args.append(bounds.Max.X)
		b.w.args.append(bounds.Max.Y)
	}
	b.maskedDepth++
}

// MaskedChild separates mask content from masked content.
func (b *Builder) MaskedChild() {
	b.open("MaskedChild")
	if b.maskedDepth == 0 {
		panic("si: Builder.MaskedChild outside Masked")
	}
	b.w.children.u8(opMaskedChild)
}

// EndMasked closes the innermost mask bracket.
func (b *Builder) EndMasked() {
	b.open("EndMasked")
	if b.maskedDepth == 0 {
		panic("si: Builder.EndMasked at depth 0")
	}
	b.w.children.u8(opEndMasked)
	b.maskedDepth--
}

// EndVector finalizes the build and returns the frozen image. All
// groups, text blocks, and mask brackets must be closed.
func (b *Builder) EndVector() *ScalableImage {
	b.open("EndVector")
	if b.groupDepth != 0 || b.maskedDepth != 0 || b.inText {
		panic("si: Builder.EndVector with open brackets")
	}
	b.state = builderClosed
	im := &ScalableImage{
		Width:     b.info.Width,
		Height:    b.info.Height,
		HasWidth:  b.info.HasWidth,
		HasHeight: b.info.HasHeight,
		BigFloats: b.big,
		TintColor: b.info.TintColor,
		TintMode:  b.info.TintMode,
		HasTint:   b.info.HasTint,
		Children:  b.w.children.buf,
		Strings:   b.strings,
		FloatLists: b.floatLists,
		Images:    b.images,
		NumPaths:  b.paths.Len(),
		NumPaints: b.paints.Len(),
	}
	if b.big {
		im.Args64 = b.w.args.(*bigFloatSink).data
		im.Transforms64 = b.w.transforms.(*bigFloatSink).data
	} else {
		im.Args32 = b.w.args.(*smallFloatSink).data
		im.Transforms32 = b.w.transforms.(*smallFloatSink).data
	}
	return im
}

// appendPath copies a temporary path encoding into the real streams.
func (b *Builder) appendPath(pe *pathEncoder) {
	b.w.children.bytes(pe.bytes)
	for _, v := range pe.args {
		b.w.args.append(v)
	}
}

// encodePathKey runs the path codec into temporary buffers and
// derives the path's structural sharing key from them.
func encodePathKey(src PathSource) (*pathEncoder, string, error) {
	pe := &pathEncoder{}
	if err := src.WalkPath(pe); err != nil {
		return nil, "", err
	}
	pe.end()
	var sb strings.Builder
	sb.Write(pe.bytes)
	sb.WriteByte('|')
	for _, v := range pe.args {
		fmt.Fprintf(&sb, "%08x", floatBits(v))
	}
	return pe, sb.String(), nil
}

// quantizeAlpha maps a 0..1 group alpha onto its stored byte.
func quantizeAlpha(a float32) byte {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return byte(math.Round(float64(a) * 255))
}
