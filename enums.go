// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

// ColorType is the 2-bit color kind carried in opcode flag bits and
// gradient stop type bytes.
type ColorType uint8

const (
	// ColorARGB is an explicit 32-bit argb color.
	ColorARGB ColorType = iota
	// ColorNone means no paint is applied.
	ColorNone
	// ColorCurrent defers to the current color at render time.
	ColorCurrent
	// ColorGradient is a gradient encoded inline.
	ColorGradient
)

func (ct ColorType) String() string {
	switch ct {
	case ColorARGB:
		return "argb"
	case ColorNone:
		return "none"
	case ColorCurrent:
		return "currentColor"
	case ColorGradient:
		return "gradient"
	}
	return "invalid"
}

// GradientKind is the 2-bit gradient type in a gradient header byte.
type GradientKind uint8

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientSweep
)

func (gk GradientKind) String() string {
	switch gk {
	case GradientLinear:
		return "linear"
	case GradientRadial:
		return "radial"
	case GradientSweep:
		return "sweep"
	}
	return "invalid"
}

// SpreadMethod says how a gradient fills space beyond its ends.
type SpreadMethod uint8

const (
	SpreadPad SpreadMethod = iota
	SpreadReflect
	SpreadRepeat
)

func (sm SpreadMethod) String() string {
	switch sm {
	case SpreadPad:
		return "pad"
	case SpreadReflect:
		return "reflect"
	case SpreadRepeat:
		return "repeat"
	}
	return "invalid"
}

// StrokeJoin is the line join style.
type StrokeJoin uint8

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

func (sj StrokeJoin) String() string {
	switch sj {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	}
	return "invalid"
}

// StrokeCap is the line cap style.
type StrokeCap uint8

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

func (sc StrokeCap) String() string {
	switch sc {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	}
	return "invalid"
}

// FillType is the path fill rule.
type FillType uint8

const (
	FillNonZero FillType = iota
	FillEvenOdd
)

func (ft FillType) String() string {
	if ft == FillEvenOdd {
		return "evenOdd"
	}
	return "nonZero"
}

// BlendMode is the compositing mode of a group.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

func (bm BlendMode) String() string {
	switch bm {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	case BlendDarken:
		return "darken"
	case BlendLighten:
		return "lighten"
	case BlendColorDodge:
		return "color-dodge"
	case BlendColorBurn:
		return "color-burn"
	case BlendHardLight:
		return "hard-light"
	case BlendSoftLight:
		return "soft-light"
	case BlendDifference:
		return "difference"
	case BlendExclusion:
		return "exclusion"
	case BlendHue:
		return "hue"
	case BlendSaturation:
		return "saturation"
	case BlendColor:
		return "color"
	case BlendLuminosity:
		return "luminosity"
	}
	return "invalid"
}

// TintMode is how an optional post-composite tint is applied.
type TintMode uint8

const (
	TintSrcIn TintMode = iota
	TintSrcOver
	TintSrcATop
	TintMultiply
	TintScreen
	TintPlus
	TintModulate
)

func (tm TintMode) String() string {
	switch tm {
	case TintSrcIn:
		return "srcIn"
	case TintSrcOver:
		return "srcOver"
	case TintSrcATop:
		return "srcATop"
	case TintMultiply:
		return "multiply"
	case TintScreen:
		return "screen"
	case TintPlus:
		return "plus"
	case TintModulate:
		return "modulate"
	}
	return "invalid"
}

// FontStyle is the slant of a text span's font.
type FontStyle uint8

const (
	FontNormal FontStyle = iota
	FontItalic
)

// TextAnchor is the horizontal anchoring of a text span.
type TextAnchor uint8

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// TextDecoration is the line decoration of a text span.
type TextDecoration uint8

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
	DecorationLineThrough
	DecorationOverline
)
