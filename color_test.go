// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"testing"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWireWriter() *wireWriter {
	return &wireWriter{
		children:       &byteWriter{},
		args:           &smallFloatSink{},
		transforms:     &smallFloatSink{},
		transformTable: ordmap.New[transformKey, int](),
	}
}

func (w *wireWriter) testReader() *wireReader {
	return &wireReader{
		children:   &byteReader{data: w.children.buf},
		args:       &smallFloatReader{data: w.args.(*smallFloatSink).data},
		transforms: &smallFloatReader{data: w.transforms.(*smallFloatSink).data},
	}
}

func colorRoundTrip(t *testing.T, c Color) Color {
	t.Helper()
	w := newTestWireWriter()
	require.NoError(t, w.writeColor(c))
	r := w.testReader()
	got, err := r.readColor(c.Type, false)
	require.NoError(t, err)
	return got
}

func TestColorCodecSolid(t *testing.T) {
	assert.Equal(t, Solid(0xffff0000), colorRoundTrip(t, Solid(0xffff0000)))
	assert.Equal(t, NoPaint(), colorRoundTrip(t, NoPaint()))
	assert.Equal(t, CurrentColor(), colorRoundTrip(t, CurrentColor()))
}

func testStops() []GradientStop {
	return []GradientStop{
		{Offset: 0, Color: Solid(0xff000000)},
		{Offset: 1, Color: Solid(0xffffffff)},
	}
}

func TestGradientCodecLinear(t *testing.T) {
	g := &LinearGradient{
		GradientBase: GradientBase{ObjectBounds: true, Stops: testStops()},
		Start:        math32.Vec2(0, 0),
		End:          math32.Vec2(1, 0),
	}
	c := colorRoundTrip(t, GradientPaint(g))
	assert.Equal(t, GradientPaint(g), c)
}

func TestGradientCodecHeaderByte(t *testing.T) {
	// linear, objectBoundingBox, pad spread, no transform
	g := &LinearGradient{
		GradientBase: GradientBase{ObjectBounds: true, Stops: testStops()},
		End:          math32.Vec2(1, 0),
	}
	w := newTestWireWriter()
	require.NoError(t, w.writeGradient(g))
	assert.Equal(t, byte(0b00000100), w.children.buf[0])
	// stop count follows the header
	assert.Equal(t, byte(0x02), w.children.buf[1])
	// stop colors are (type, payload) pairs
	assert.Equal(t, byte(0), w.children.buf[2])
	// stop offsets then geometry in the args array
	assert.Equal(t, []float32{0, 1, 0, 0, 1, 0}, w.args.(*smallFloatSink).data)
}

func TestGradientCodecRadialSweep(t *testing.T) {
	rg := &RadialGradient{
		GradientBase: GradientBase{Spread: SpreadReflect, Stops: testStops()},
		Center:       math32.Vec2(5, 6),
		Focal:        math32.Vec2(7, 8),
		Radius:       9,
	}
	assert.Equal(t, GradientPaint(rg), colorRoundTrip(t, GradientPaint(rg)))

	sg := &SweepGradient{
		GradientBase: GradientBase{Spread: SpreadRepeat, Stops: testStops()},
		Center:       math32.Vec2(1, 2),
		StartAngle:   0.5,
		EndAngle:     3,
	}
	assert.Equal(t, GradientPaint(sg), colorRoundTrip(t, GradientPaint(sg)))
}

func TestGradientCodecTransform(t *testing.T) {
	m := math32.Translate2D(3, 4)
	g := &LinearGradient{
		GradientBase: GradientBase{Stops: testStops(), Transform: &m},
		End:          math32.Vec2(1, 0),
	}
	w := newTestWireWriter()
	require.NoError(t, w.writeGradient(g))
	// fresh transform: flagged inline, 6 floats appended
	assert.Equal(t, gradFlagTransform, int(w.children.buf[0])&gradFlagTransform)
	assert.Equal(t, 6, w.transforms.len())

	// second write of the same transform becomes a number
	require.NoError(t, w.writeGradient(g))
	assert.Equal(t, 6, w.transforms.len())

	r := w.testReader()
	g1, err := r.readGradient()
	require.NoError(t, err)
	g2, err := r.readGradient()
	require.NoError(t, err)
	assert.Equal(t, Gradient(g), g1)
	assert.Equal(t, Gradient(g), g2)
}

func TestGradientStopMayNotBeGradient(t *testing.T) {
	inner := &LinearGradient{GradientBase: GradientBase{Stops: testStops()}}
	g := &LinearGradient{
		GradientBase: GradientBase{Stops: []GradientStop{
			{Offset: 0, Color: GradientPaint(inner)},
		}},
	}
	w := newTestWireWriter()
	err := w.writeGradient(g)
	assert.ErrorIs(t, err, ErrBadGradientStopColor)
}

func TestGradientStopTypeByteRejectedOnDecode(t *testing.T) {
	// hand-craft a gradient whose stop type byte claims a gradient
	w := newTestWireWriter()
	w.children.u8(0)          // linear, userSpace, pad, no transform
	w.children.smallish(1)    // one stop
	w.args.append(0)          // stop offset
	w.children.u8(byte(ColorGradient))
	r := w.testReader()
	_, err := r.readGradient()
	assert.ErrorIs(t, err, ErrBadGradientStopColor)
}
