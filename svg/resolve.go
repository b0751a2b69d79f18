// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Referrers is the linked stack of node identities currently being
// resolved through a reference (use, mask). A reference to a node
// already on the stack is treated as missing rather than recursing
// forever. Gradient parent chains are cut by their own visiting set
// in [GradientNode.flatten]. Entries are always the original
// nodes from the id map, never clones.
type Referrers struct {
	node   Node
	parent *Referrers
}

func (r *Referrers) contains(n Node) bool {
	for f := r; f != nil; f = f.parent {
		if f.node == n {
			return true
		}
	}
	return false
}

// resolveState is the per-recursion context of pass B: the cascaded
// ancestor paint and text attributes, the document's id lookup, and
// the cycle detection stack.
type resolveState struct {
	sv        *SVG
	paint     Paint
	text      TextAttributes
	referrers *Referrers
}

func (rs *resolveState) warnf(format string, args ...any) {
	rs.sv.warnf(format, args...)
}

// resolveChildren resolves a child list under the given state,
// pruning children that resolve to nil.
func resolveChildren(rs *resolveState, kids []Node) []Node {
	kept := kids[:0]
	for _, k := range kids {
		if rn := k.Resolve(rs); rn != nil {
			kept = append(kept, rn)
		}
	}
	return kept
}

// buildTarget receives the resolved graph's build events. The real
// implementation drives an [si.Builder]; the canonicalization pass
// uses a null target that intercepts only the calls carrying
// canonicalizable data.
type buildTarget interface {
	group(transform *math32.Matrix2, alpha float32, hasAlpha bool, blend si.BlendMode)
	endGroup()
	path(src si.PathSource, paint *si.Paint) error
	clipPath(src si.PathSource) error
	image(img si.ImageData)
	textBegin()
	textSpan(x, y []float32, text string, attrs *si.TextAttributes, paint *si.Paint) error
	textEnd()
	masked(bounds *math32.Box2, usesLuma bool)
	maskedChild()
	endMasked()
}

// buildState threads the build target, the document, and the cached
// user-space bounds through the build walk. The first error latches;
// later events still flow but the build result is discarded.
type buildState struct {
	sv     *SVG
	t      buildTarget
	bounds math32.Box2
	err    error
}

func (bs *buildState) fail(err error) {
	if bs.err == nil {
		bs.err = err
	}
}

// boundsState threads document context through bounds computation.
type boundsState struct {
	sv *SVG
}

// sipaint flattens a cascaded scene paint into the resolved paint the
// compact form stores, materializing gradient references and folding
// the fill/stroke opacities into the color alpha. Alpha on gradient
// stops applies independently of the opacity applied to the solid
// fallback.
func (bs *buildState) sipaint(p *Paint) *si.Paint {
	out := si.DefaultPaint()
	out.FillColor = bs.sicolor(p.Fill, p.FillOpacity, si.Solid(0xff000000))
	out.StrokeColor = bs.sicolor(p.Stroke, p.StrokeOpacity, si.NoPaint())
	if p.StrokeWidth != nil {
		out.StrokeWidth = *p.StrokeWidth
	}
	if p.StrokeMiterLimit != nil {
		out.StrokeMiterLimit = *p.StrokeMiterLimit
	}
	if p.StrokeJoin != nil {
		out.StrokeJoin = *p.StrokeJoin
	}
	if p.StrokeCap != nil {
		out.StrokeCap = *p.StrokeCap
	}
	if p.FillType != nil {
		out.FillType = *p.FillType
	}
	if len(p.StrokeDashArray) > 0 {
		out.StrokeDashArray = p.StrokeDashArray
		if p.StrokeDashOffset != nil {
			out.StrokeDashOffset = *p.StrokeDashOffset
		}
	}
	return &out
}

func (bs *buildState) sicolor(c Color, opacity *float32, def si.Color) si.Color {
	switch c.Kind {
	case ColorInherit:
		if def.Type == si.ColorARGB {
			def.ARGB = applyOpacity(def.ARGB, opacity)
		}
		return def
	case ColorValue:
		return si.Solid(applyOpacity(c.ARGB, opacity))
	case ColorNone:
		return si.NoPaint()
	case ColorCurrent:
		return si.CurrentColor()
	case ColorRef:
		gn, ok := bs.sv.NodeByID(c.Ref).(*GradientNode)
		if !ok {
			bs.sv.warnf("paint references missing gradient %q", c.Ref)
			return si.NoPaint()
		}
		return si.GradientPaint(gn.materialize(bs))
	}
	return si.NoPaint()
}
