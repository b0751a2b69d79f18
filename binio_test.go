// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallishRoundTrip(t *testing.T) {
	cases := []struct {
		v    uint32
		size int
	}{
		{0, 1},
		{1, 1},
		{0xfd, 1},
		{0xfe, 3},
		{0xff, 3},
		{1000, 3},
		{0xfffe, 3},
		{0xffff, 5},
		{0x10000, 5},
		{0xffffffff, 5},
	}
	for _, c := range cases {
		w := &byteWriter{}
		w.smallish(c.v)
		assert.Equal(t, c.size, w.len(), "encoded size of %d", c.v)
		r := &byteReader{data: w.buf}
		got, err := r.smallish()
		require.NoError(t, err)
		assert.Equal(t, c.v, got)
		assert.True(t, r.eof())
	}
}

func TestSmallishTruncated(t *testing.T) {
	for _, data := range [][]byte{{}, {0xfe}, {0xfe, 1}, {0xff, 1, 2, 3}} {
		r := &byteReader{data: data}
		_, err := r.smallish()
		assert.ErrorIs(t, err, ErrTruncated)
	}
}

func TestByteReaderLittleEndian(t *testing.T) {
	w := &byteWriter{}
	w.u8(0x12)
	w.u16(0x3456)
	w.u32(0x789abcde)
	assert.Equal(t, []byte{0x12, 0x56, 0x34, 0xde, 0xbc, 0x9a, 0x78}, w.buf)

	r := &byteReader{data: w.buf}
	v8, err := r.u8()
	require.NoError(t, err)
	v16, err := r.u16()
	require.NoError(t, err)
	v32, err := r.u32()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x12), v8)
	assert.Equal(t, uint16(0x3456), v16)
	assert.Equal(t, uint32(0x789abcde), v32)
	assert.True(t, r.eof())

	_, err = r.u8()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestFloatSinks(t *testing.T) {
	small := &smallFloatSink{}
	big := &bigFloatSink{}
	for _, v := range []float32{0, 1.5, -2.25, 1e20} {
		small.append(v)
		big.append(v)
	}
	assert.Equal(t, 4, small.len())
	assert.Equal(t, 4, big.len())
	for i := 0; i < 4; i++ {
		assert.Equal(t, small.at(i), big.at(i))
	}
}

func TestFloatReaderAffine(t *testing.T) {
	s := &smallFloatReader{data: []float32{9, 9, 1, 0, 0, 1, 5, 6}}
	m, err := s.affineAt(2)
	require.NoError(t, err)
	assert.Equal(t, float32(1), m.XX)
	assert.Equal(t, float32(5), m.X0)
	assert.Equal(t, float32(6), m.Y0)
	assert.Equal(t, 0, s.pos(), "affineAt must not move the sequential position")

	_, err = s.affineAt(4)
	assert.ErrorIs(t, err, ErrTruncated)

	b := &bigFloatReader{data: []float64{1, 2}}
	v, err := b.read()
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)
	b.setPos(0)
	assert.Equal(t, 0, b.pos())
}
