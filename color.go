// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
)

// Color is a resolved paint color: an explicit argb value, no paint,
// the current color, or a gradient. The 2-bit type is carried in the
// opcode flag bits for fills and strokes, and in a full type byte for
// gradient stops.
type Color struct {
	Type ColorType

	// ARGB is the color value when Type is [ColorARGB], most
	// significant byte alpha.
	ARGB uint32

	// Gradient is non-nil exactly when Type is [ColorGradient].
	Gradient Gradient
}

// Solid returns an explicit argb color.
func Solid(argb uint32) Color { return Color{Type: ColorARGB, ARGB: argb} }

// NoPaint returns the color that paints nothing.
func NoPaint() Color { return Color{Type: ColorNone} }

// CurrentColor returns the color that defers to the renderer's
// current color.
func CurrentColor() Color { return Color{Type: ColorCurrent} }

// GradientPaint returns a gradient color.
func GradientPaint(g Gradient) Color { return Color{Type: ColorGradient, Gradient: g} }

// GradientStop is one color stop of a gradient. Stop colors must not
// themselves be gradients.
type GradientStop struct {
	Offset float32
	Color  Color
}

// GradientBase contains the fields common to all gradient kinds.
type GradientBase struct {
	// ObjectBounds indicates objectBoundingBox units: geometry values
	// are fractions of the painted object's bounding box rather than
	// user-space coordinates.
	ObjectBounds bool

	Spread SpreadMethod

	// Transform is the gradient's own transform, or nil.
	Transform *math32.Matrix2

	Stops []GradientStop
}

// AsGradientBase returns the embedded [GradientBase].
func (gb *GradientBase) AsGradientBase() *GradientBase { return gb }

// Gradient is a linear, radial, or sweep gradient.
type Gradient interface {
	AsGradientBase() *GradientBase
	Kind() GradientKind
}

// LinearGradient interpolates along the line from Start to End.
type LinearGradient struct {
	GradientBase
	Start, End math32.Vector2
}

func (g *LinearGradient) Kind() GradientKind { return GradientLinear }

// RadialGradient interpolates outward from Focal within the circle at
// Center with the given Radius.
type RadialGradient struct {
	GradientBase
	Center, Focal math32.Vector2
	Radius        float32
}

func (g *RadialGradient) Kind() GradientKind { return GradientRadial }

// SweepGradient interpolates by angle around Center between the start
// and end angles, in radians.
type SweepGradient struct {
	GradientBase
	Center     math32.Vector2
	StartAngle float32
	EndAngle   float32
}

func (g *SweepGradient) Kind() GradientKind { return GradientSweep }

// Gradient header byte layout.
const (
	gradKindMask        = 3
	gradFlagObjectBounds = 1 << 2
	gradSpreadShift     = 3
	gradSpreadMask      = 3
	gradFlagTransform       = 1 << 5
	gradFlagTransformNumber = 1 << 6
)

// transformKey is the structural dedup key of an affine, built from
// float bit patterns.
type transformKey [6]uint32

func affineKey(m math32.Matrix2) transformKey {
	return transformKey{floatBits(m.XX), floatBits(m.YX), floatBits(m.XY),
		floatBits(m.YY), floatBits(m.X0), floatBits(m.Y0)}
}

// wireWriter bundles the sinks a build writes into. Transforms are
// deduplicated through the shared insertion-ordered table; a fresh
// transform appends its 6 floats to the transforms array and takes
// the next sequential transform number.
type wireWriter struct {
	children   *byteWriter
	args       floatSink
	transforms floatSink
	transformTable *ordmap.Map[transformKey, int]
}

// internTransform returns the transform number for m and whether it
// was already interned.
func (w *wireWriter) internTransform(m math32.Matrix2) (n int, hit bool) {
	key := affineKey(m)
	if i, ok := w.transformTable.IndexByKeyTry(key); ok {
		return i, true
	}
	n = w.transformTable.Len()
	w.transformTable.Add(key, n)
	w.transforms.append(m.XX)
	w.transforms.append(m.YX)
	w.transforms.append(m.XY)
	w.transforms.append(m.YY)
	w.transforms.append(m.X0)
	w.transforms.append(m.Y0)
	return n, false
}

// writeColor encodes the payload of c; the 2-bit type is carried by
// the caller (opcode flags or a stop type byte).
func (w *wireWriter) writeColor(c Color) error {
	switch c.Type {
	case ColorARGB:
		w.children.u32(c.ARGB)
	case ColorNone, ColorCurrent:
	case ColorGradient:
		return w.writeGradient(c.Gradient)
	default:
		return fmt.Errorf("%w: color type %d", ErrBadOpcode, c.Type)
	}
	return nil
}

func (w *wireWriter) writeGradient(g Gradient) error {
	gb := g.AsGradientBase()
	hdr := byte(g.Kind()) | byte(gb.Spread)<<gradSpreadShift
	if gb.ObjectBounds {
		hdr |= gradFlagObjectBounds
	}
	var tn int
	var thit bool
	if gb.Transform != nil {
		tn, thit = w.internTransform(*gb.Transform)
		if thit {
			hdr |= gradFlagTransformNumber
		} else {
			hdr |= gradFlagTransform
		}
	}
	w.children.u8(hdr)
	if thit {
		w.children.smallish(uint32(tn))
	}
	w.children.smallish(uint32(len(gb.Stops)))
	for _, st := range gb.Stops {
		w.args.append(st.Offset)
	}
	for _, st := range gb.Stops {
		if st.Color.Type == ColorGradient {
			return ErrBadGradientStopColor
		}
		w.children.u8(byte(st.Color.Type))
		if err := w.writeColor(st.Color); err != nil {
			return err
		}
	}
	switch g := g.(type) {
	case *LinearGradient:
		w.args.append(g.Start.X)
		w.args.append(g.Start.Y)
		w.args.append(g.End.X)
		w.args.append(g.End.Y)
	case *RadialGradient:
		w.args.append(g.Center.X)
		w.args.append(g.Center.Y)
		w.args.append(g.Focal.X)
		w.args.append(g.Focal.Y)
		w.args.append(g.Radius)
	case *SweepGradient:
		w.args.append(g.Center.X)
		w.args.append(g.Center.Y)
		w.args.append(g.StartAngle)
		w.args.append(g.EndAngle)
	}
	return nil
}

// wireReader bundles the readers a decode consumes from.
type wireReader struct {
	children   *byteReader
	args       floatReader
	transforms floatReader
}

func (r *wireReader) readAffine() (math32.Matrix2, error) {
	var vs [6]float32
	for i := range vs {
		v, err := r.transforms.read()
		if err != nil {
			return math32.Matrix2{}, err
		}
		vs[i] = v
	}
	return math32.Matrix2{XX: vs[0], YX: vs[1], XY: vs[2], YY: vs[3], X0: vs[4], Y0: vs[5]}, nil
}

// readColor decodes a color payload of the given type. Gradient stops
// inside a gradient may not themselves be gradients.
func (r *wireReader) readColor(t ColorType, inStop bool) (Color, error) {
	switch t {
	case ColorARGB:
		v, err := r.children.u32()
		if err != nil {
			return Color{}, err
		}
		return Solid(v), nil
	case ColorNone:
		return NoPaint(), nil
	case ColorCurrent:
		return CurrentColor(), nil
	case ColorGradient:
		if inStop {
			return Color{}, ErrBadGradientStopColor
		}
		g, err := r.readGradient()
		if err != nil {
			return Color{}, err
		}
		return GradientPaint(g), nil
	}
	return Color{}, fmt.Errorf("%w: color type %d", ErrBadOpcode, t)
}

func (r *wireReader) readGradient() (Gradient, error) {
	hdr, err := r.children.u8()
	if err != nil {
		return nil, err
	}
	var gb GradientBase
	gb.ObjectBounds = hdr&gradFlagObjectBounds != 0
	gb.Spread = SpreadMethod(hdr >> gradSpreadShift & gradSpreadMask)
	switch {
	case hdr&gradFlagTransform != 0:
		m, err := r.readAffine()
		if err != nil {
			return nil, err
		}
		gb.Transform = &m
	case hdr&gradFlagTransformNumber != 0:
		n, err := r.children.smallish()
		if err != nil {
			return nil, err
		}
		m, err := r.transforms.affineAt(int(n) * 6)
		if err != nil {
			return nil, err
		}
		gb.Transform = &m
	}
	nstops, err := r.children.smallish()
	if err != nil {
		return nil, err
	}
	gb.Stops = make([]GradientStop, nstops)
	for i := range gb.Stops {
		off, err := r.args.read()
		if err != nil {
			return nil, err
		}
		gb.Stops[i].Offset = off
	}
	for i := range gb.Stops {
		tb, err := r.children.u8()
		if err != nil {
			return nil, err
		}
		c, err := r.readColor(ColorType(tb), true)
		if err != nil {
			return nil, err
		}
		gb.Stops[i].Color = c
	}
	rd2 := func() (math32.Vector2, error) {
		x, err := r.args.read()
		if err != nil {
			return math32.Vector2{}, err
		}
		y, err := r.args.read()
		return math32.Vec2(x, y), err
	}
	switch GradientKind(hdr & gradKindMask) {
	case GradientLinear:
		start, err := rd2()
		if err != nil {
			return nil, err
		}
		end, err := rd2()
		if err != nil {
			return nil, err
		}
		return &LinearGradient{GradientBase: gb, Start: start, End: end}, nil
	case GradientRadial:
		center, err := rd2()
		if err != nil {
			return nil, err
		}
		focal, err := rd2()
		if err != nil {
			return nil, err
		}
		rad, err := r.args.read()
		if err != nil {
			return nil, err
		}
		return &RadialGradient{GradientBase: gb, Center: center, Focal: focal, Radius: rad}, nil
	default:
		center, err := rd2()
		if err != nil {
			return nil, err
		}
		sa, err := r.args.read()
		if err != nil {
			return nil, err
		}
		ea, err := r.args.read()
		if err != nil {
			return nil, err
		}
		return &SweepGradient{GradientBase: gb, Center: center, StartAngle: sa, EndAngle: ea}, nil
	}
}

// colorKey appends the structural key of c, used by the paint dedup
// table.
func colorKey(sb *strings.Builder, c Color) {
	fmt.Fprintf(sb, "c%d:%08x", c.Type, c.ARGB)
	if c.Gradient != nil {
		gradientKey(sb, c.Gradient)
	}
}

func gradientKey(sb *strings.Builder, g Gradient) {
	gb := g.AsGradientBase()
	fmt.Fprintf(sb, "g%d:%v:%d:", g.Kind(), gb.ObjectBounds, gb.Spread)
	if gb.Transform != nil {
		for _, b := range affineKey(*gb.Transform) {
			fmt.Fprintf(sb, "%08x", b)
		}
	}
	sb.WriteByte(';')
	for _, st := range gb.Stops {
		fmt.Fprintf(sb, "%08x", floatBits(st.Offset))
		colorKey(sb, st.Color)
	}
	switch g := g.(type) {
	case *LinearGradient:
		fmt.Fprintf(sb, "%08x%08x%08x%08x", floatBits(g.Start.X), floatBits(g.Start.Y),
			floatBits(g.End.X), floatBits(g.End.Y))
	case *RadialGradient:
		fmt.Fprintf(sb, "%08x%08x%08x%08x%08x", floatBits(g.Center.X), floatBits(g.Center.Y),
			floatBits(g.Focal.X), floatBits(g.Focal.Y), floatBits(g.Radius))
	case *SweepGradient:
		fmt.Fprintf(sb, "%08x%08x%08x%08x", floatBits(g.Center.X), floatBits(g.Center.Y),
			floatBits(g.StartAngle), floatBits(g.EndAngle))
	}
}
