// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathFunc adapts a function to PathSource.
type pathFunc func(sink PathSink) error

func (f pathFunc) WalkPath(sink PathSink) error { return f(sink) }

// unitRect is the 10x10 rectangle of the codec scenarios.
var unitRect = pathFunc(func(s PathSink) error {
	s.MoveTo(math32.Vec2(0, 0))
	s.LineTo(math32.Vec2(10, 0))
	s.LineTo(math32.Vec2(10, 10))
	s.LineTo(math32.Vec2(0, 10))
	s.Close()
	return nil
})

func redFill() *Paint {
	p := DefaultPaint()
	p.FillColor = Solid(0xffff0000)
	return &p
}

func TestBuilderEmptyDocument(t *testing.T) {
	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{Width: 100, Height: 50, HasWidth: true, HasHeight: true})
	im := b.EndVector()

	assert.Equal(t, float32(100), im.Width)
	assert.Equal(t, float32(50), im.Height)
	assert.True(t, im.HasWidth)
	assert.True(t, im.HasHeight)
	assert.False(t, im.BigFloats)
	assert.False(t, im.HasTint)
	assert.Empty(t, im.Children)
	assert.Empty(t, im.Args32)
	assert.Empty(t, im.Transforms32)
	assert.Zero(t, im.NumPaths)
	assert.Zero(t, im.NumPaints)
	assert.Empty(t, im.Strings)
	assert.Empty(t, im.FloatLists)
	assert.Empty(t, im.Images)
}

func TestBuilderOneRedRectangle(t *testing.T) {
	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{})
	require.NoError(t, b.Path(unitRect, redFill()))
	im := b.EndVector()

	// opcode: fill type argb (0), stroke type none (1), no numbers
	want := []byte{
		0x10,                   // PATH opcode
		0x00,                   // paint header
		0x00, 0x00, 0xff, 0xff, // fill argb 0xffff0000, little-endian
		0x12, 0x22, 0x70, // moveTo lineTo / lineTo lineTo / close end
	}
	assert.Equal(t, want, im.Children)
	assert.Equal(t, []float32{0, 0, 10, 0, 10, 10, 0, 10}, im.Args32)
	assert.Equal(t, 1, im.NumPaths)
	assert.Equal(t, 1, im.NumPaints)
}

func TestBuilderSharedPathAndPaint(t *testing.T) {
	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{})
	require.NoError(t, b.Path(unitRect, redFill()))
	n := len(b.w.children.buf)
	require.NoError(t, b.Path(unitRect, redFill()))
	im := b.EndVector()

	// the second emit is opcode + two smallish zeros: 3 bytes
	assert.Equal(t, 3, len(im.Children)-n)
	second := im.Children[n:]
	assert.Equal(t, byte(0x13), second[0], "hasPathNumber and hasPaintNumber flags")
	assert.Equal(t, []byte{0x00, 0x00}, second[1:])
	assert.Equal(t, 1, im.NumPaths)
	assert.Equal(t, 1, im.NumPaints)
	// no new floats for the shared emit
	assert.Equal(t, 8, len(im.Args32))
}

func TestBuilderLinearGradientEncoding(t *testing.T) {
	p := DefaultPaint()
	p.FillColor = GradientPaint(&LinearGradient{
		GradientBase: GradientBase{ObjectBounds: true, Stops: []GradientStop{
			{Offset: 0, Color: Solid(0xff000000)},
			{Offset: 1, Color: Solid(0xffffffff)},
		}},
		Start: math32.Vec2(0, 0),
		End:   math32.Vec2(1, 0),
	})

	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{})
	require.NoError(t, b.Path(unitRect, &p))
	im := b.EndVector()

	// opcode: fill type gradient (3), stroke none (1)
	assert.Equal(t, byte(3<<2|1<<4), im.Children[0])
	// paint header, then the gradient header byte: linear,
	// objectBoundingBox, pad spread, no transform
	assert.Equal(t, byte(0x00), im.Children[1])
	assert.Equal(t, byte(0b00000100), im.Children[2])
	assert.Equal(t, byte(0x02), im.Children[3])
	// stop colors: (0, argb) pairs
	assert.Equal(t, byte(0), im.Children[4])
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xff}, im.Children[5:9])
	assert.Equal(t, byte(0), im.Children[9])
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, im.Children[10:14])
	// args: stop offsets then geometry, before the path coordinates
	assert.Equal(t, []float32{0, 1, 0, 0, 1, 0}, im.Args32[:6])
}

func TestBuilderGroupBalance(t *testing.T) {
	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{})
	b.Group(nil, 0, false, BlendNormal)
	b.Group(nil, 0, false, BlendNormal)
	require.NoError(t, b.Path(unitRect, redFill()))
	b.EndGroup()
	require.NoError(t, b.Path(unitRect, redFill()))
	b.EndGroup()
	im := b.EndVector()

	// opcode sequence: GROUP GROUP PATH END PATH END, with group
	// payloads of a single blend byte
	assert.Equal(t, byte(opGroupBase), im.Children[0])
	assert.Equal(t, byte(BlendNormal), im.Children[1])
	assert.Equal(t, byte(opGroupBase), im.Children[2])
	assert.Equal(t, byte(BlendNormal), im.Children[3])
	assert.Equal(t, byte(opEndGroup), im.Children[len(im.Children)-1])
}

func TestBuilderTransformSharing(t *testing.T) {
	m := math32.Translate2D(5, 5)
	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{})
	b.Group(&m, 0.5, true, BlendMultiply)
	b.EndGroup()
	b.Group(&m, 0, false, BlendNormal)
	b.EndGroup()
	im := b.EndVector()

	// first group stores the transform inline in the transforms array
	assert.Equal(t, []float32{1, 0, 0, 1, 5, 5}, im.Transforms32)
	assert.Equal(t, byte(opGroupBase|groupFlagTransform|groupFlagAlpha), im.Children[0])
	assert.Equal(t, byte(128), im.Children[1], "0.5 alpha quantized")
	assert.Equal(t, byte(BlendMultiply), im.Children[2])
	// second group back-references transform number 0
	assert.Equal(t, byte(opEndGroup), im.Children[3])
	assert.Equal(t, byte(opGroupBase|groupFlagTransformNumber), im.Children[4])
	assert.Equal(t, byte(0x00), im.Children[5])
}

func TestBuilderStatePanics(t *testing.T) {
	b := NewBuilder(false)
	assert.Panics(t, func() { b.Group(nil, 0, false, BlendNormal) })
	assert.Panics(t, func() { b.EndVector() })

	b.Vector(&VectorInfo{})
	assert.Panics(t, func() { b.Vector(&VectorInfo{}) })
	assert.Panics(t, func() { b.EndGroup() })
	assert.Panics(t, func() { b.TextSpan(&TextSpanIndices{}, &TextAttributes{}, redFill()) })
	assert.Panics(t, func() { b.Image(0) })

	b.Group(nil, 0, false, BlendNormal)
	assert.Panics(t, func() { b.EndVector() }, "open group at end")
	b.EndGroup()
	im := b.EndVector()
	assert.NotNil(t, im)
	assert.Panics(t, func() { b.Group(nil, 0, false, BlendNormal) })
}

func TestBuilderMaskedBracket(t *testing.T) {
	bounds := math32.B2(0, 0, 10, 10)
	b := NewBuilder(false)
	b.Init(nil, nil, nil)
	b.Vector(&VectorInfo{})
	b.Masked(&bounds, true)
	require.NoError(t, b.Path(unitRect, redFill()))
	b.MaskedChild()
	require.NoError(t, b.Path(unitRect, redFill()))
	b.EndMasked()
	im := b.EndVector()

	assert.Equal(t, byte(opMaskedBase+maskedFlagBounds+maskedFlagLuma), im.Children[0])
	assert.Equal(t, []float32{0, 0, 10, 10}, im.Args32[:4])
}

func TestQuantizeAlpha(t *testing.T) {
	assert.Equal(t, byte(0), quantizeAlpha(-1))
	assert.Equal(t, byte(0), quantizeAlpha(0))
	assert.Equal(t, byte(255), quantizeAlpha(1))
	assert.Equal(t, byte(255), quantizeAlpha(2))
	assert.Equal(t, byte(128), quantizeAlpha(0.5))
}
