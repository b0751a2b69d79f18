// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recSink records decoded path commands as strings.
type recSink struct {
	cmds []string
}

func (r *recSink) add(format string, args ...any) {
	r.cmds = append(r.cmds, fmt.Sprintf(format, args...))
}

func (r *recSink) MoveTo(p math32.Vector2) { r.add("M %g %g", p.X, p.Y) }
func (r *recSink) LineTo(p math32.Vector2) { r.add("L %g %g", p.X, p.Y) }

func (r *recSink) CubicTo(c1, c2, p math32.Vector2) {
	r.add("C %g %g %g %g %g %g", c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
}

func (r *recSink) CubicToShorthand(c2, p math32.Vector2) {
	r.add("S %g %g %g %g", c2.X, c2.Y, p.X, p.Y)
}

func (r *recSink) QuadTo(c, p math32.Vector2) {
	r.add("Q %g %g %g %g", c.X, c.Y, p.X, p.Y)
}

func (r *recSink) QuadToShorthand(p math32.Vector2) { r.add("T %g %g", p.X, p.Y) }
func (r *recSink) Close()                           { r.add("Z") }

func (r *recSink) Oval(b math32.Box2) {
	r.add("O %g %g %g %g", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

func (r *recSink) ArcToPoint(p, radius math32.Vector2, rot float32, large, cw bool) {
	r.add("A %g %g %g %g %g %v %v", p.X, p.Y, radius.X, radius.Y, rot, large, cw)
}

func decodePath(t *testing.T, pe *pathEncoder) *recSink {
	t.Helper()
	rec := &recSink{}
	cr := &byteReader{data: pe.bytes}
	ar := &smallFloatReader{data: pe.args}
	require.NoError(t, walkEncodedPath(cr, ar, rec))
	return rec
}

func TestPathCodecRoundTrip(t *testing.T) {
	pe := &pathEncoder{}
	pe.MoveTo(math32.Vec2(1, 2))
	pe.LineTo(math32.Vec2(3, 4))
	pe.CubicTo(math32.Vec2(1, 1), math32.Vec2(2, 2), math32.Vec2(3, 3))
	pe.CubicToShorthand(math32.Vec2(4, 4), math32.Vec2(5, 5))
	pe.QuadTo(math32.Vec2(6, 6), math32.Vec2(7, 7))
	pe.QuadToShorthand(math32.Vec2(8, 8))
	pe.Oval(math32.B2(0, 0, 10, 10))
	pe.Oval(math32.B2(0, 0, 10, 20))
	pe.ArcToPoint(math32.Vec2(9, 9), math32.Vec2(4, 4), 0, false, true)
	pe.ArcToPoint(math32.Vec2(9, 9), math32.Vec2(4, 5), 30, true, false)
	pe.Close()
	pe.end()

	rec := decodePath(t, pe)
	assert.Equal(t, []string{
		"M 1 2",
		"L 3 4",
		"C 1 1 2 2 3 3",
		"S 4 4 5 5",
		"Q 6 6 7 7",
		"T 8 8",
		"O 0 0 10 10",
		"O 0 0 10 20",
		"A 9 9 4 4 0 false true",
		"A 9 9 4 5 30 true false",
		"Z",
	}, rec.cmds)
}

func TestPathCodecNybblePacking(t *testing.T) {
	// moveTo, lineTo, lineTo, lineTo, close, end packs into 3 bytes
	pe := &pathEncoder{}
	pe.MoveTo(math32.Vec2(0, 0))
	pe.LineTo(math32.Vec2(10, 0))
	pe.LineTo(math32.Vec2(10, 10))
	pe.LineTo(math32.Vec2(0, 10))
	pe.Close()
	pe.end()
	assert.Equal(t, []byte{0x12, 0x22, 0x70}, pe.bytes)
	assert.Equal(t, []float32{0, 0, 10, 0, 10, 10, 0, 10}, pe.args)
}

func TestPathCodecEndOnByteBoundary(t *testing.T) {
	// an even nybble count forces end into its own 0x00 byte
	pe := &pathEncoder{}
	pe.MoveTo(math32.Vec2(0, 0))
	pe.LineTo(math32.Vec2(1, 1))
	pe.end()
	assert.Equal(t, []byte{0x12, 0x00}, pe.bytes)

	rec := decodePath(t, pe)
	assert.Equal(t, []string{"M 0 0", "L 1 1"}, rec.cmds)
}

func TestPathCodecEscape(t *testing.T) {
	// the three highest command indices need the escape nybble
	for _, c := range []struct {
		large, cw bool
		first     byte
	}{
		{false, true, 1},  // index 15
		{true, false, 2},  // index 16
		{true, true, 3},   // index 17
	} {
		pe := &pathEncoder{}
		pe.ArcToPoint(math32.Vec2(1, 2), math32.Vec2(3, 4), 10, c.large, c.cw)
		pe.end()
		// escape nybble and payload nybble in byte 1, then end as its own 0x00 byte
		require.Equal(t, 2, len(pe.bytes))
		assert.Equal(t, byte(0xf0)|c.first, pe.bytes[0])
		assert.Equal(t, byte(0x00), pe.bytes[1])

		rec := decodePath(t, pe)
		want := fmt.Sprintf("A 1 2 3 4 10 %v %v", c.large, c.cw)
		assert.Equal(t, []string{want}, rec.cmds)
	}
}

func TestPathCodecByteCount(t *testing.T) {
	// bytes emitted = ceil(total nybbles / 2), including the end nybble
	pe := &pathEncoder{}
	pe.MoveTo(math32.Vec2(0, 0))                                     // 1 nybble
	pe.ArcToPoint(math32.Vec2(1, 1), math32.Vec2(2, 3), 5, true, true) // 2 nybbles
	pe.Close()                                                       // 1 nybble
	pe.end()                                                         // 1 nybble
	assert.Equal(t, (1+2+1+1+1)/2, len(pe.bytes))
}

func TestPathCodecTruncated(t *testing.T) {
	pe := &pathEncoder{}
	pe.MoveTo(math32.Vec2(1, 2))
	pe.end()

	cr := &byteReader{data: pe.bytes}
	ar := &smallFloatReader{data: pe.args[:1]}
	err := walkEncodedPath(cr, ar, &recSink{})
	assert.ErrorIs(t, err, ErrTruncated)

	cr = &byteReader{data: nil}
	ar = &smallFloatReader{}
	err = walkEncodedPath(cr, ar, &recSink{})
	assert.ErrorIs(t, err, ErrTruncated)
}
