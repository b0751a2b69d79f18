// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/si"
	"golang.org/x/image/colornames"
)

// ColorKind is the scene-level color state, a superset of the
// resolved [si.ColorType] that adds the unset (inherit) state and
// gradient references.
type ColorKind int

const (
	// ColorInherit means the attribute was not set and inherits.
	ColorInherit ColorKind = iota
	// ColorValue is an explicit argb color.
	ColorValue
	// ColorNone paints nothing.
	ColorNone
	// ColorCurrent defers to the cascaded css color property.
	ColorCurrent
	// ColorRef references a gradient by id.
	ColorRef
)

// Color is a scene-level color reference.
type Color struct {
	Kind ColorKind
	ARGB uint32
	Ref  string
}

// Paint holds the inheritable paint attributes of a node. Nil
// pointer fields and inherit-kind colors cascade from the ancestor.
type Paint struct {
	Fill   Color
	Stroke Color

	// CSS css 'color' property, used to resolve currentColor.
	Color Color

	FillOpacity   *float32
	StrokeOpacity *float32

	StrokeWidth      *float32
	StrokeMiterLimit *float32
	StrokeDashOffset *float32

	// StrokeDashArray is nil when unset; an empty non-nil slice is an
	// explicit "none".
	StrokeDashArray []float32

	StrokeJoin *si.StrokeJoin
	StrokeCap  *si.StrokeCap
	FillType   *si.FillType
}

func (p *Paint) clone() Paint {
	c := *p
	c.FillOpacity = cloneOpt(p.FillOpacity)
	c.StrokeOpacity = cloneOpt(p.StrokeOpacity)
	c.StrokeWidth = cloneOpt(p.StrokeWidth)
	c.StrokeMiterLimit = cloneOpt(p.StrokeMiterLimit)
	c.StrokeDashOffset = cloneOpt(p.StrokeDashOffset)
	c.StrokeJoin = cloneOpt(p.StrokeJoin)
	c.StrokeCap = cloneOpt(p.StrokeCap)
	c.FillType = cloneOpt(p.FillType)
	if p.StrokeDashArray != nil {
		c.StrokeDashArray = append([]float32(nil), p.StrokeDashArray...)
	}
	return c
}

func cloneOpt[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Inherit fills every unset field from the parent cascade.
func (p *Paint) Inherit(parent *Paint) {
	if p.Fill.Kind == ColorInherit {
		p.Fill = parent.Fill
	}
	if p.Stroke.Kind == ColorInherit {
		p.Stroke = parent.Stroke
	}
	if p.Color.Kind == ColorInherit {
		p.Color = parent.Color
	}
	if p.FillOpacity == nil {
		p.FillOpacity = parent.FillOpacity
	}
	if p.StrokeOpacity == nil {
		p.StrokeOpacity = parent.StrokeOpacity
	}
	if p.StrokeWidth == nil {
		p.StrokeWidth = parent.StrokeWidth
	}
	if p.StrokeMiterLimit == nil {
		p.StrokeMiterLimit = parent.StrokeMiterLimit
	}
	if p.StrokeDashOffset == nil {
		p.StrokeDashOffset = parent.StrokeDashOffset
	}
	if p.StrokeDashArray == nil {
		p.StrokeDashArray = parent.StrokeDashArray
	}
	if p.StrokeJoin == nil {
		p.StrokeJoin = parent.StrokeJoin
	}
	if p.StrokeCap == nil {
		p.StrokeCap = parent.StrokeCap
	}
	if p.FillType == nil {
		p.FillType = parent.FillType
	}
}

// TextAttributes holds the inheritable text styling of a node.
type TextAttributes struct {
	FontFamily *string
	FontSize   *float32
	FontStyle  *si.FontStyle
	FontWeight *int
	Anchor     *si.TextAnchor
	Decoration *si.TextDecoration
}

// Inherit fills every unset field from the parent cascade.
func (ta *TextAttributes) Inherit(parent *TextAttributes) {
	if ta.FontFamily == nil {
		ta.FontFamily = parent.FontFamily
	}
	if ta.FontSize == nil {
		ta.FontSize = parent.FontSize
	}
	if ta.FontStyle == nil {
		ta.FontStyle = parent.FontStyle
	}
	if ta.FontWeight == nil {
		ta.FontWeight = parent.FontWeight
	}
	if ta.Anchor == nil {
		ta.Anchor = parent.Anchor
	}
	if ta.Decoration == nil {
		ta.Decoration = parent.Decoration
	}
}

// resolved flattens the cascaded attributes onto renderer defaults.
func (ta *TextAttributes) resolved() si.TextAttributes {
	out := si.TextAttributes{FontSize: 16, FontWeight: si.DefaultFontWeight}
	if ta.FontFamily != nil {
		out.FontFamily = *ta.FontFamily
	}
	if ta.FontSize != nil {
		out.FontSize = *ta.FontSize
	}
	if ta.FontStyle != nil {
		out.FontStyle = *ta.FontStyle
	}
	if ta.FontWeight != nil {
		out.FontWeight = *ta.FontWeight
	}
	if ta.Anchor != nil {
		out.Anchor = *ta.Anchor
	}
	if ta.Decoration != nil {
		out.Decoration = *ta.Decoration
	}
	return out
}

// ParseColor parses an SVG color value: none, currentColor, inherit,
// #rgb / #rrggbb / #rrggbbaa hex forms, rgb()/rgba() functional
// forms, url(#id) gradient references, and css named colors.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "inherit":
		return Color{}, nil
	case s == "none":
		return Color{Kind: ColorNone}, nil
	case s == "currentColor" || s == "currentcolor":
		return Color{Kind: ColorCurrent}, nil
	case strings.HasPrefix(s, "url("):
		id := parseURLRef(s)
		if id == "" {
			return Color{}, fmt.Errorf("svg: bad url reference %q", s)
		}
		return Color{Kind: ColorRef, Ref: id}, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba("):
		return parseRGBColor(s)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		argb := uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		return Color{Kind: ColorValue, ARGB: argb}, nil
	}
	return Color{}, fmt.Errorf("svg: unrecognized color %q", s)
}

// parseURLRef extracts the id from url(#id), tolerating quotes.
func parseURLRef(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "url(") || !strings.HasSuffix(s, ")") {
		return ""
	}
	s = strings.TrimSpace(s[4 : len(s)-1])
	s = strings.Trim(s, `'"`)
	if !strings.HasPrefix(s, "#") {
		return ""
	}
	return s[1:]
}

func parseHexColor(s string) (Color, error) {
	h := s[1:]
	var r, g, b, a uint32
	a = 0xff
	switch len(h) {
	case 3:
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("svg: bad hex color %q", s)
		}
		r = uint32(v >> 8 & 0xf) * 0x11
		g = uint32(v >> 4 & 0xf) * 0x11
		b = uint32(v & 0xf) * 0x11
	case 6, 8:
		v, err := strconv.ParseUint(h, 16, 64)
		if err != nil {
			return Color{}, fmt.Errorf("svg: bad hex color %q", s)
		}
		if len(h) == 8 {
			a = uint32(v & 0xff)
			v >>= 8
		}
		r = uint32(v >> 16 & 0xff)
		g = uint32(v >> 8 & 0xff)
		b = uint32(v & 0xff)
	default:
		return Color{}, fmt.Errorf("svg: bad hex color %q", s)
	}
	return Color{Kind: ColorValue, ARGB: a<<24 | r<<16 | g<<8 | b}, nil
}

func parseRGBColor(s string) (Color, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return Color{}, fmt.Errorf("svg: bad rgb color %q", s)
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("svg: bad rgb color %q", s)
	}
	var ch [3]uint32
	for i := 0; i < 3; i++ {
		p := strings.TrimSpace(parts[i])
		var v float64
		var err error
		if strings.HasSuffix(p, "%") {
			v, err = strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			v = v / 100 * 255
		} else {
			v, err = strconv.ParseFloat(p, 64)
		}
		if err != nil {
			return Color{}, fmt.Errorf("svg: bad rgb color %q", s)
		}
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		ch[i] = uint32(v + 0.5)
	}
	a := uint32(0xff)
	if len(parts) == 4 {
		av, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || av < 0 || av > 1 {
			return Color{}, fmt.Errorf("svg: bad rgb alpha %q", s)
		}
		a = uint32(av*255 + 0.5)
	}
	return Color{Kind: ColorValue, ARGB: a<<24 | ch[0]<<16 | ch[1]<<8 | ch[2]}, nil
}

// applyOpacity scales the alpha byte of an argb value.
func applyOpacity(argb uint32, opacity *float32) uint32 {
	if opacity == nil {
		return argb
	}
	op := *opacity
	if op < 0 {
		op = 0
	}
	if op > 1 {
		op = 1
	}
	a := float32(argb>>24) * op
	return uint32(a+0.5)<<24 | argb&0xffffff
}
