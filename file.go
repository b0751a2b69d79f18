// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"
	"math"
)

// Magic is the big-endian magic number opening a .si file.
const Magic = 0xB0B01E07

// Version is the current file format version.
const Version = 1

// Envelope flag bits.
const (
	fileFlagWidth     = 1 << 0
	fileFlagHeight    = 1 << 1
	fileFlagBigFloats = 1 << 2
	fileFlagTint      = 1 << 3
)

// Encode serializes the image into the .si envelope. The magic and
// the header counts are big-endian; everything after the header is
// little-endian.
func (im *ScalableImage) Encode() []byte {
	w := &byteWriter{}
	w.u8(Magic >> 24)
	w.u8(Magic >> 16 & 0xff)
	w.u8(Magic >> 8 & 0xff)
	w.u8(Magic & 0xff)
	w.u8(0) // padding, word-aligns the version
	w.u8(Version >> 8)
	w.u8(Version & 0xff)
	var flags byte
	if im.HasWidth {
		flags |= fileFlagWidth
	}
	if im.HasHeight {
		flags |= fileFlagHeight
	}
	if im.BigFloats {
		flags |= fileFlagBigFloats
	}
	if im.HasTint {
		flags |= fileFlagTint
	}
	w.u8(flags)
	writeU32BE(w, uint32(im.NumPaths))
	writeU32BE(w, uint32(im.NumPaints))
	writeU32BE(w, uint32(im.argsLen()))
	writeU32BE(w, uint32(im.transformsLen()))
	im.writeFloatArray(w, im.Args32, im.Args64)
	im.writeFloatArray(w, im.Transforms32, im.Transforms64)
	if im.HasWidth {
		im.writeFloat(w, im.Width)
	}
	if im.HasHeight {
		im.writeFloat(w, im.Height)
	}
	if im.HasTint {
		w.u32(im.TintColor)
		w.u8(byte(im.TintMode))
	}
	w.smallish(uint32(len(im.Strings)))
	for _, s := range im.Strings {
		w.smallish(uint32(len(s)))
		w.bytes([]byte(s))
	}
	w.smallish(uint32(len(im.FloatLists)))
	for _, fl := range im.FloatLists {
		w.smallish(uint32(len(fl)))
		for _, v := range fl {
			im.writeFloat(w, v)
		}
	}
	w.smallish(uint32(len(im.Images)))
	for _, img := range im.Images {
		im.writeFloat(w, img.X)
		im.writeFloat(w, img.Y)
		im.writeFloat(w, img.Width)
		im.writeFloat(w, img.Height)
		w.smallish(uint32(len(img.Data)))
		w.bytes(img.Data)
	}
	w.bytes(im.Children)
	return w.buf
}

// Decode parses a .si envelope. It rejects a mismatched magic number
// or a version newer than [Version] without consuming the body.
func Decode(data []byte) (*ScalableImage, error) {
	r := &byteReader{data: data}
	if len(data) < 24 {
		return nil, fmt.Errorf("%w: %d byte file", ErrMalformedHeader, len(data))
	}
	magic := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if magic != Magic {
		return nil, fmt.Errorf("%w: magic %#08x", ErrMalformedHeader, magic)
	}
	if data[4] != 0 {
		return nil, fmt.Errorf("%w: nonzero padding", ErrMalformedHeader)
	}
	version := uint16(data[5])<<8 | uint16(data[6])
	if version > Version {
		return nil, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}
	flags := data[7]
	r.pos = 8
	im := &ScalableImage{
		HasWidth:  flags&fileFlagWidth != 0,
		HasHeight: flags&fileFlagHeight != 0,
		BigFloats: flags&fileFlagBigFloats != 0,
		HasTint:   flags&fileFlagTint != 0,
	}
	numPaths, err := readU32BE(r)
	if err != nil {
		return nil, err
	}
	numPaints, err := readU32BE(r)
	if err != nil {
		return nil, err
	}
	argsLen, err := readU32BE(r)
	if err != nil {
		return nil, err
	}
	transformsLen, err := readU32BE(r)
	if err != nil {
		return nil, err
	}
	im.NumPaths = int(numPaths)
	im.NumPaints = int(numPaints)
	if err := im.readFloatArray(r, int(argsLen), &im.Args32, &im.Args64); err != nil {
		return nil, err
	}
	if err := im.readFloatArray(r, int(transformsLen), &im.Transforms32, &im.Transforms64); err != nil {
		return nil, err
	}
	if im.HasWidth {
		if im.Width, err = im.readFloat(r); err != nil {
			return nil, err
		}
	}
	if im.HasHeight {
		if im.Height, err = im.readFloat(r); err != nil {
			return nil, err
		}
	}
	if im.HasTint {
		if im.TintColor, err = r.u32(); err != nil {
			return nil, err
		}
		mode, err := r.u8()
		if err != nil {
			return nil, err
		}
		im.TintMode = TintMode(mode)
	}
	nstr, err := r.smallish()
	if err != nil {
		return nil, err
	}
	if nstr > 0 {
		im.Strings = make([]string, nstr)
	}
	for i := range im.Strings {
		n, err := r.smallish()
		if err != nil {
			return nil, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return nil, err
		}
		im.Strings[i] = string(b)
	}
	nfl, err := r.smallish()
	if err != nil {
		return nil, err
	}
	if nfl > 0 {
		im.FloatLists = make([][]float32, nfl)
	}
	for i := range im.FloatLists {
		n, err := r.smallish()
		if err != nil {
			return nil, err
		}
		fl := make([]float32, n)
		for j := range fl {
			if fl[j], err = im.readFloat(r); err != nil {
				return nil, err
			}
		}
		im.FloatLists[i] = fl
	}
	nimg, err := r.smallish()
	if err != nil {
		return nil, err
	}
	if nimg > 0 {
		im.Images = make([]ImageData, nimg)
	}
	for i := range im.Images {
		img := &im.Images[i]
		if img.X, err = im.readFloat(r); err != nil {
			return nil, err
		}
		if img.Y, err = im.readFloat(r); err != nil {
			return nil, err
		}
		if img.Width, err = im.readFloat(r); err != nil {
			return nil, err
		}
		if img.Height, err = im.readFloat(r); err != nil {
			return nil, err
		}
		n, err := r.smallish()
		if err != nil {
			return nil, err
		}
		b, err := r.take(int(n))
		if err != nil {
			return nil, err
		}
		img.Data = b
	}
	if r.pos < len(data) {
		im.Children = data[r.pos:]
	}
	return im, nil
}

func (im *ScalableImage) argsLen() int {
	if im.BigFloats {
		return len(im.Args64)
	}
	return len(im.Args32)
}

func (im *ScalableImage) transformsLen() int {
	if im.BigFloats {
		return len(im.Transforms64)
	}
	return len(im.Transforms32)
}

// writeFloat writes one scalar at the document's float width.
func (im *ScalableImage) writeFloat(w *byteWriter, v float32) {
	if im.BigFloats {
		bits := math.Float64bits(float64(v))
		w.u32(uint32(bits))
		w.u32(uint32(bits >> 32))
	} else {
		w.u32(math.Float32bits(v))
	}
}

func (im *ScalableImage) readFloat(r *byteReader) (float32, error) {
	if im.BigFloats {
		lo, err := r.u32()
		if err != nil {
			return 0, err
		}
		hi, err := r.u32()
		if err != nil {
			return 0, err
		}
		return float32(math.Float64frombits(uint64(hi)<<32 | uint64(lo))), nil
	}
	bits, err := r.u32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// writeFloatArray serializes whichever backing array matches the
// document's float width, preserving 64-bit values exactly.
func (im *ScalableImage) writeFloatArray(w *byteWriter, small []float32, big []float64) {
	if im.BigFloats {
		for _, v := range big {
			bits := math.Float64bits(v)
			w.u32(uint32(bits))
			w.u32(uint32(bits >> 32))
		}
		return
	}
	for _, v := range small {
		w.u32(math.Float32bits(v))
	}
}

func (im *ScalableImage) readFloatArray(r *byteReader, n int, small *[]float32, big *[]float64) error {
	if n == 0 {
		return nil
	}
	if im.BigFloats {
		vs := make([]float64, n)
		for i := range vs {
			lo, err := r.u32()
			if err != nil {
				return err
			}
			hi, err := r.u32()
			if err != nil {
				return err
			}
			vs[i] = math.Float64frombits(uint64(hi)<<32 | uint64(lo))
		}
		*big = vs
		return nil
	}
	vs := make([]float32, n)
	for i := range vs {
		bits, err := r.u32()
		if err != nil {
			return err
		}
		vs[i] = math.Float32frombits(bits)
	}
	*small = vs
	return nil
}

func writeU32BE(w *byteWriter, v uint32) {
	w.u8(uint8(v >> 24))
	w.u8(uint8(v >> 16))
	w.u8(uint8(v >> 8))
	w.u8(uint8(v))
}

func readU32BE(r *byteReader) (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}
