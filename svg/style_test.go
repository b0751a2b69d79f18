// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"testing"

	"cogentcore.org/si"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"none", Color{Kind: ColorNone}},
		{"currentColor", Color{Kind: ColorCurrent}},
		{"inherit", Color{}},
		{"#f00", Color{Kind: ColorValue, ARGB: 0xffff0000}},
		{"#ff0000", Color{Kind: ColorValue, ARGB: 0xffff0000}},
		{"#ff000080", Color{Kind: ColorValue, ARGB: 0x80ff0000}},
		{"rgb(255, 0, 0)", Color{Kind: ColorValue, ARGB: 0xffff0000}},
		{"rgb(100%, 0%, 0%)", Color{Kind: ColorValue, ARGB: 0xffff0000}},
		{"rgba(0, 0, 255, 0.5)", Color{Kind: ColorValue, ARGB: 0x800000ff}},
		{"red", Color{Kind: ColorValue, ARGB: 0xffff0000}},
		{"url(#grad1)", Color{Kind: ColorRef, Ref: "grad1"}},
		{"url('#grad1')", Color{Kind: ColorRef, Ref: "grad1"}},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}

	for _, bad := range []string{"#12", "notacolor", "rgb(1,2)", "url(grad)"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseStylesheetSelectors(t *testing.T) {
	css := `
		rect { fill: #ff0000; }
		.big { stroke-width: 4; }
		circle.dim { fill-opacity: 0.5; }
		g > rect { fill: #00ff00; }
	`
	var warns []string
	ss, err := ParseStylesheet(css, func(msg string, err error) { warns = append(warns, msg) })
	require.NoError(t, err)
	assert.Equal(t, 3, ss.Len(), "the descendant selector is skipped")
	assert.Len(t, warns, 1)

	assert.Equal(t, "rect", ss.styles[0].Tag)
	assert.Equal(t, "", ss.styles[0].Class)
	assert.Equal(t, "", ss.styles[1].Tag)
	assert.Equal(t, "big", ss.styles[1].Class)
	assert.Equal(t, "circle", ss.styles[2].Tag)
	assert.Equal(t, "dim", ss.styles[2].Class)
}

func TestStylesheetApplyClassMatch(t *testing.T) {
	sv := NewSVG()
	ss := &Stylesheet{}
	ss.Add(&Style{Class: "warn", Props: map[string]string{"fill": "#ff0000"}})
	ss.Add(&Style{Tag: "rect", Props: map[string]string{"stroke-width": "3"}})

	r := &Rect{NodeBase: NewNodeBase(), Size: mv2(10, 10)}
	r.Class = "warn other"
	ss.Apply(sv, r)
	assert.Equal(t, Color{Kind: ColorValue, ARGB: 0xffff0000}, r.Paint.Fill)
	require.NotNil(t, r.Paint.StrokeWidth)
	assert.Equal(t, float32(3), *r.Paint.StrokeWidth)

	// a node without the class only gets the tag rule
	r2 := &Rect{NodeBase: NewNodeBase(), Size: mv2(10, 10)}
	ss.Apply(sv, r2)
	assert.Equal(t, ColorInherit, r2.Paint.Fill.Kind)
	require.NotNil(t, r2.Paint.StrokeWidth)

	// other node types get neither
	c := &Circle{NodeBase: NewNodeBase(), Radius: 1}
	ss.Apply(sv, c)
	assert.Nil(t, c.Paint.StrokeWidth)
}

func TestStylesheetFillsOnlyUnsetFields(t *testing.T) {
	sv := NewSVG()
	ss := &Stylesheet{}
	ss.Add(&Style{Tag: "rect", Props: map[string]string{"fill": "#00ff00", "stroke": "#0000ff"}})

	r := &Rect{NodeBase: NewNodeBase(), Size: mv2(1, 1)}
	require.NoError(t, r.SetProperty("fill", "#ff0000"))
	ss.Apply(sv, r)
	// the element's own fill wins; the stroke comes from the sheet
	assert.Equal(t, uint32(0xffff0000), r.Paint.Fill.ARGB)
	assert.Equal(t, uint32(0xff0000ff), r.Paint.Stroke.ARGB)
}

func TestStylesheetLaterRulesWin(t *testing.T) {
	sv := NewSVG()
	ss := &Stylesheet{}
	ss.Add(&Style{Tag: "rect", Props: map[string]string{"fill": "#111111"}})
	ss.Add(&Style{Tag: "rect", Props: map[string]string{"fill": "#222222"}})

	r := &Rect{NodeBase: NewNodeBase(), Size: mv2(1, 1)}
	ss.Apply(sv, r)
	assert.Equal(t, uint32(0xff222222), r.Paint.Fill.ARGB)
}

func TestSetPropertyParsing(t *testing.T) {
	nb := NewNodeBase()
	require.NoError(t, nb.SetProperty("stroke-linejoin", "round"))
	require.NoError(t, nb.SetProperty("stroke-linecap", "square"))
	require.NoError(t, nb.SetProperty("fill-rule", "evenodd"))
	require.NoError(t, nb.SetProperty("stroke-dasharray", "4, 2 1"))
	require.NoError(t, nb.SetProperty("stroke-dashoffset", "2"))
	require.NoError(t, nb.SetProperty("font-weight", "bold"))
	require.NoError(t, nb.SetProperty("font-style", "italic"))
	require.NoError(t, nb.SetProperty("text-anchor", "middle"))
	require.NoError(t, nb.SetProperty("text-decoration", "underline"))
	require.NoError(t, nb.SetProperty("font-size", "12px"))
	require.NoError(t, nb.SetProperty("mask", "url(#m)"))
	require.NoError(t, nb.SetProperty("clip-path", "url(#c)"))
	require.NoError(t, nb.SetProperty("display", "none"))

	assert.Equal(t, si.JoinRound, *nb.Paint.StrokeJoin)
	assert.Equal(t, si.CapSquare, *nb.Paint.StrokeCap)
	assert.Equal(t, si.FillEvenOdd, *nb.Paint.FillType)
	assert.Equal(t, []float32{4, 2, 1}, nb.Paint.StrokeDashArray)
	assert.Equal(t, float32(2), *nb.Paint.StrokeDashOffset)
	assert.Equal(t, 700, *nb.TextAttrs.FontWeight)
	assert.Equal(t, si.FontItalic, *nb.TextAttrs.FontStyle)
	assert.Equal(t, si.AnchorMiddle, *nb.TextAttrs.Anchor)
	assert.Equal(t, si.DecorationUnderline, *nb.TextAttrs.Decoration)
	assert.Equal(t, float32(12), *nb.TextAttrs.FontSize)
	assert.Equal(t, "m", nb.MaskID)
	assert.Equal(t, "c", nb.ClipID)
	assert.False(t, nb.Display)

	assert.Error(t, nb.SetProperty("stroke-linejoin", "wavy"))
	assert.Error(t, nb.SetProperty("fill", "nonsense"))
}

func TestStyleElementCollected(t *testing.T) {
	sv := NewSVG()
	sv.Root.Children = []Node{
		&StyleNode{NodeBase: NewNodeBase(), Text: ".hot { fill: #ff0000; }"},
		withClass(rect10(), "hot"),
	}
	sv.Resolve()
	require.Len(t, sv.Root.Children, 1)
	r := sv.Root.Children[0].(*Rect)
	assert.Equal(t, uint32(0xffff0000), r.Paint.Fill.ARGB)
}
