// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

// Opcode categories. The top bits of an opcode byte select the
// category and the low bits carry per-category flags:
//
//	0..63    PATH      b0 hasPathNumber, b1 hasPaintNumber,
//	                   b2-3 fill color type, b4-5 stroke color type
//	64..127  TEXT span b0 hasPaintNumber, b1 hasFontFamily,
//	                   b2-3 fill color type, b4-5 stroke color type
//	128..135 GROUP     b0 hasTransform, b1 hasTransformNumber, b2 hasGroupAlpha
//	136..137 CLIPPATH  b0 hasPathNumber
//	138      IMAGE
//	139      END_GROUP
//	140      TEXT_BEGIN
//	141      TEXT_END
//	142..145 MASKED    b0 hasBounds, b1 usesLuma
//	146      MASKED_CHILD
//	147      END_MASKED
const (
	opPathBase    = 0
	opTextBase    = 64
	opGroupBase   = 128
	opClipBase    = 136
	opImage       = 138
	opEndGroup    = 139
	opTextBegin   = 140
	opTextEnd     = 141
	opMaskedBase  = 142
	opMaskedChild = 146
	opEndMasked   = 147
	opLimit       = 148
)

// PATH and TEXT flag bits.
const (
	pathFlagPathNumber   = 1 << 0
	pathFlagPaintNumber  = 1 << 1
	textFlagPaintNumber  = 1 << 0
	textFlagFontFamily   = 1 << 1
	colorFlagFillShift   = 2
	colorFlagStrokeShift = 4
	colorFlagMask        = 3
)

// GROUP flag bits.
const (
	groupFlagTransform       = 1 << 0
	groupFlagTransformNumber = 1 << 1
	groupFlagAlpha           = 1 << 2
)

// CLIPPATH flag bits.
const clipFlagPathNumber = 1 << 0

// MASKED flag bits. They are added to opMaskedBase rather than OR-ed
// into it, since 142 already has bit 1 set.
const (
	maskedFlagBounds = 1 << 0
	maskedFlagLuma   = 1 << 1
)

// fillColorType and strokeColorType extract the 2-bit color type
// fields shared by the PATH and TEXT categories.
func fillColorType(flags byte) ColorType {
	return ColorType(flags >> colorFlagFillShift & colorFlagMask)
}

func strokeColorType(flags byte) ColorType {
	return ColorType(flags >> colorFlagStrokeShift & colorFlagMask)
}

func colorTypeFlags(fill, stroke ColorType) byte {
	return byte(fill)<<colorFlagFillShift | byte(stroke)<<colorFlagStrokeShift
}
