// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"
	"strings"
)

// Default paint scalar values. A stroke width or miter limit equal to
// its default is not serialized.
const (
	DefaultStrokeWidth      = float32(1)
	DefaultStrokeMiterLimit = float32(4)
)

// Paint is the resolved fill and stroke styling of a path or text
// span. The zero value is not the default paint; use [DefaultPaint].
type Paint struct {
	FillColor   Color
	StrokeColor Color

	StrokeWidth      float32
	StrokeMiterLimit float32
	StrokeJoin       StrokeJoin
	StrokeCap        StrokeCap
	FillType         FillType

	// StrokeDashArray is nil when the stroke is not dashed.
	StrokeDashArray  []float32
	StrokeDashOffset float32
}

// DefaultPaint returns a paint with a black fill, no stroke, and
// default stroke scalars.
func DefaultPaint() Paint {
	return Paint{
		FillColor:        Solid(0xff000000),
		StrokeColor:      NoPaint(),
		StrokeWidth:      DefaultStrokeWidth,
		StrokeMiterLimit: DefaultStrokeMiterLimit,
	}
}

// Paint header byte layout. The second byte is present only when a
// dash array is.
const (
	paintFlagStrokeWidth = 1 << 0
	paintFlagMiterLimit  = 1 << 1
	paintJoinShift       = 2
	paintCapShift        = 4
	paintFlagEvenOdd     = 1 << 6
	paintFlagDashArray   = 1 << 7

	paintDashFlagOffset = 1 << 0
)

// writePaint encodes the paint body: header byte, optional dash byte,
// fill and stroke color payloads, then the optional scalars. The fill
// and stroke color types ride in the caller's opcode flag bits.
func (w *wireWriter) writePaint(p *Paint) error {
	hdr := byte(p.StrokeJoin)<<paintJoinShift | byte(p.StrokeCap)<<paintCapShift
	if p.StrokeWidth != DefaultStrokeWidth {
		hdr |= paintFlagStrokeWidth
	}
	if p.StrokeMiterLimit != DefaultStrokeMiterLimit {
		hdr |= paintFlagMiterLimit
	}
	if p.FillType == FillEvenOdd {
		hdr |= paintFlagEvenOdd
	}
	if p.StrokeDashArray != nil {
		hdr |= paintFlagDashArray
	}
	w.children.u8(hdr)
	if p.StrokeDashArray != nil {
		var db byte
		if p.StrokeDashOffset != 0 {
			db |= paintDashFlagOffset
		}
		w.children.u8(db)
	}
	if err := w.writeColor(p.FillColor); err != nil {
		return err
	}
	if err := w.writeColor(p.StrokeColor); err != nil {
		return err
	}
	if hdr&paintFlagStrokeWidth != 0 {
		w.args.append(p.StrokeWidth)
	}
	if hdr&paintFlagMiterLimit != 0 {
		w.args.append(p.StrokeMiterLimit)
	}
	if p.StrokeDashArray != nil {
		w.children.smallish(uint32(len(p.StrokeDashArray)))
		for _, d := range p.StrokeDashArray {
			w.args.append(d)
		}
		if p.StrokeDashOffset != 0 {
			w.args.append(p.StrokeDashOffset)
		}
	}
	return nil
}

// readPaint decodes a paint body written by [wireWriter.writePaint].
// The fill and stroke color types come from the opcode flag bits.
func (r *wireReader) readPaint(fill, stroke ColorType) (*Paint, error) {
	hdr, err := r.children.u8()
	if err != nil {
		return nil, err
	}
	var db byte
	if hdr&paintFlagDashArray != 0 {
		db, err = r.children.u8()
		if err != nil {
			return nil, err
		}
	}
	p := Paint{
		StrokeWidth:      DefaultStrokeWidth,
		StrokeMiterLimit: DefaultStrokeMiterLimit,
		StrokeJoin:       StrokeJoin(hdr >> paintJoinShift & 3),
		StrokeCap:        StrokeCap(hdr >> paintCapShift & 3),
	}
	if hdr&paintFlagEvenOdd != 0 {
		p.FillType = FillEvenOdd
	}
	p.FillColor, err = r.readColor(fill, false)
	if err != nil {
		return nil, err
	}
	p.StrokeColor, err = r.readColor(stroke, false)
	if err != nil {
		return nil, err
	}
	if hdr&paintFlagStrokeWidth != 0 {
		p.StrokeWidth, err = r.args.read()
		if err != nil {
			return nil, err
		}
	}
	if hdr&paintFlagMiterLimit != 0 {
		p.StrokeMiterLimit, err = r.args.read()
		if err != nil {
			return nil, err
		}
	}
	if hdr&paintFlagDashArray != 0 {
		n, err := r.children.smallish()
		if err != nil {
			return nil, err
		}
		p.StrokeDashArray = make([]float32, n)
		for i := range p.StrokeDashArray {
			p.StrokeDashArray[i], err = r.args.read()
			if err != nil {
				return nil, err
			}
		}
		if db&paintDashFlagOffset != 0 {
			p.StrokeDashOffset, err = r.args.read()
			if err != nil {
				return nil, err
			}
		}
	}
	return &p, nil
}

// dedupKey returns the structural identity of p used by the paint
// sharing table: equal keys mean every field, including gradient
// contents, is equal.
func (p *Paint) dedupKey() string {
	var sb strings.Builder
	colorKey(&sb, p.FillColor)
	colorKey(&sb, p.StrokeColor)
	fmt.Fprintf(&sb, "|%08x%08x%d%d%d", floatBits(p.StrokeWidth),
		floatBits(p.StrokeMiterLimit), p.StrokeJoin, p.StrokeCap, p.FillType)
	if p.StrokeDashArray != nil {
		sb.WriteByte('[')
		for _, d := range p.StrokeDashArray {
			fmt.Fprintf(&sb, "%08x", floatBits(d))
		}
		fmt.Fprintf(&sb, "]%08x", floatBits(p.StrokeDashOffset))
	}
	return sb.String()
}
