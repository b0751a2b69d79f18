// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Text is a text block of one or more spans. A text element with
// direct character content is modeled as a single span.
type Text struct {
	NodeBase

	// X and Y are the per-glyph position lists of the block, used by
	// spans that carry none of their own.
	X, Y []float32

	Spans []*TSpan
}

// TSpan is one styled run of text within a [Text] block.
type TSpan struct {
	NodeBase

	// X and Y override the block position lists when non-nil.
	X, Y []float32

	// Text is the character content.
	Text string
}

func (t *Text) SVGName() string { return "text" }

func (t *TSpan) SVGName() string { return "tspan" }

func (t *Text) childNodes() []Node {
	kids := make([]Node, len(t.Spans))
	for i, s := range t.Spans {
		kids[i] = s
	}
	return kids
}

func (t *Text) CloneNode() Node {
	c := *t
	c.NodeBase = t.cloneBase()
	c.X = append([]float32(nil), t.X...)
	c.Y = append([]float32(nil), t.Y...)
	c.Spans = make([]*TSpan, len(t.Spans))
	for i, s := range t.Spans {
		c.Spans[i] = s.CloneNode().(*TSpan)
	}
	return &c
}

func (t *TSpan) CloneNode() Node {
	c := *t
	c.NodeBase = t.cloneBase()
	c.X = append([]float32(nil), t.X...)
	c.Y = append([]float32(nil), t.Y...)
	return &c
}

func (t *TSpan) Resolve(rs *resolveState) Node {
	if !t.Display || strings.TrimSpace(t.Text) == "" {
		return nil
	}
	t.cascade(rs)
	t.resolved = true
	return t
}

func (t *TSpan) Build(bs *buildState) {}

func (t *TSpan) Bounds(bst *boundsState) math32.Box2 { return math32.B2Empty() }

func (t *Text) Resolve(rs *resolveState) Node {
	if t.resolved {
		return t
	}
	if !t.Display || t.degenerateTransform() {
		return nil
	}
	sub := t.cascade(rs)
	kept := t.Spans[:0]
	for _, s := range t.Spans {
		if rn := s.Resolve(sub); rn != nil {
			kept = append(kept, rn.(*TSpan))
		}
	}
	t.Spans = kept
	if len(t.Spans) == 0 {
		return nil
	}
	t.resolved = true
	return maskWrap(rs, t)
}

func (t *Text) Build(bs *buildState) {
	wrap := t.Transform != nil || t.HasAlpha || t.Blend != si.BlendNormal || t.ClipID != ""
	if wrap {
		bs.t.group(t.Transform, t.Alpha, t.HasAlpha, t.Blend)
		buildClip(bs, &t.NodeBase)
	}
	bs.t.textBegin()
	for _, s := range t.Spans {
		x, y := s.X, s.Y
		if x == nil {
			x = t.X
		}
		if y == nil {
			y = t.Y
		}
		if len(x) == 0 {
			x = []float32{0}
		}
		if len(y) == 0 {
			y = []float32{0}
		}
		attrs := s.TextAttrs.resolved()
		if err := bs.t.textSpan(x, y, s.Text, &attrs, bs.sipaint(&s.Paint)); err != nil {
			bs.fail(err)
		}
	}
	bs.t.textEnd()
	if wrap {
		bs.t.endGroup()
	}
}

// Bounds contributes the span anchor points; without font metrics
// the text extent itself is unknowable here.
func (t *Text) Bounds(bst *boundsState) math32.Box2 {
	b := math32.B2Empty()
	expand := func(xs, ys []float32) {
		for i := range xs {
			y := float32(0)
			if i < len(ys) {
				y = ys[i]
			} else if len(ys) > 0 {
				y = ys[len(ys)-1]
			}
			b.ExpandByPoint(math32.Vec2(xs[i], y))
		}
	}
	expand(t.X, t.Y)
	for _, s := range t.Spans {
		expand(s.X, s.Y)
	}
	return t.transformedBounds(b)
}
