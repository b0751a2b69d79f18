// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paintRoundTrip(t *testing.T, p Paint) *Paint {
	t.Helper()
	w := newTestWireWriter()
	require.NoError(t, w.writePaint(&p))
	r := w.testReader()
	got, err := r.readPaint(p.FillColor.Type, p.StrokeColor.Type)
	require.NoError(t, err)
	return got
}

func TestPaintCodecDefaults(t *testing.T) {
	p := DefaultPaint()
	p.FillColor = Solid(0xffff0000)

	w := newTestWireWriter()
	require.NoError(t, w.writePaint(&p))
	// all-default stroke scalars collapse to a zero header byte and
	// nothing in the args array
	assert.Equal(t, byte(0x00), w.children.buf[0])
	assert.Equal(t, 0, w.args.len())

	got := paintRoundTrip(t, p)
	assert.Equal(t, p, *got)
}

func TestPaintCodecScalars(t *testing.T) {
	p := DefaultPaint()
	p.StrokeColor = Solid(0xff00ff00)
	p.StrokeWidth = 2.5
	p.StrokeMiterLimit = 10
	p.StrokeJoin = JoinRound
	p.StrokeCap = CapSquare
	p.FillType = FillEvenOdd
	got := paintRoundTrip(t, p)
	assert.Equal(t, p, *got)
}

func TestPaintCodecDashArray(t *testing.T) {
	p := DefaultPaint()
	p.StrokeColor = Solid(0xff0000ff)
	p.StrokeDashArray = []float32{4, 2, 1, 2}
	p.StrokeDashOffset = 3
	got := paintRoundTrip(t, p)
	assert.Equal(t, p, *got)

	// dash without offset
	p.StrokeDashOffset = 0
	got = paintRoundTrip(t, p)
	assert.Equal(t, p, *got)
}

func TestPaintCodecGradientFill(t *testing.T) {
	p := DefaultPaint()
	p.FillColor = GradientPaint(&RadialGradient{
		GradientBase: GradientBase{ObjectBounds: true, Stops: testStops()},
		Radius:       1,
	})
	got := paintRoundTrip(t, p)
	assert.Equal(t, p, *got)
}

func TestPaintDedupKey(t *testing.T) {
	a := DefaultPaint()
	b := DefaultPaint()
	assert.Equal(t, a.dedupKey(), b.dedupKey())

	b.StrokeWidth = 2
	assert.NotEqual(t, a.dedupKey(), b.dedupKey())

	// dash nil vs explicit empty differ structurally
	c := DefaultPaint()
	c.StrokeDashArray = []float32{}
	assert.NotEqual(t, a.dedupKey(), c.dedupKey())

	// gradients key by content
	g1 := DefaultPaint()
	g1.FillColor = GradientPaint(&LinearGradient{GradientBase: GradientBase{Stops: testStops()}})
	g2 := DefaultPaint()
	g2.FillColor = GradientPaint(&LinearGradient{GradientBase: GradientBase{Stops: testStops()}})
	assert.Equal(t, g1.dedupKey(), g2.dedupKey())
	g2.FillColor.Gradient.AsGradientBase().Stops[0].Offset = 0.5
	assert.NotEqual(t, g1.dedupKey(), g2.dedupKey())
}
