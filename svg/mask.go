// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Mask is mask content used by reference from mask="url(#id)". It
// never renders at its tree position; the resolver materializes a
// [Masked] wrapper at each reference site.
type Mask struct {
	NodeBase
	Children []Node

	contentResolved bool
}

func (m *Mask) SVGName() string { return "mask" }

func (m *Mask) childNodes() []Node { return m.Children }

func (m *Mask) CloneNode() Node {
	c := &Mask{NodeBase: m.cloneBase(), Children: cloneChildren(m.Children)}
	return c
}

func (m *Mask) Resolve(rs *resolveState) Node { return nil }

func (m *Mask) Build(bs *buildState) {
	for _, k := range m.Children {
		k.Build(bs)
	}
}

func (m *Mask) Bounds(bst *boundsState) math32.Box2 {
	b := math32.B2Empty()
	for _, k := range m.Children {
		kb := k.Bounds(bst)
		if !kb.IsEmpty() {
			b.ExpandByBox(kb)
		}
	}
	return m.transformedBounds(b)
}

// resolveContent resolves the mask subtree once, under its own
// referrers frame, and reports whether any content survived.
func (m *Mask) resolveContent(rs *resolveState) bool {
	if !m.contentResolved {
		m.contentResolved = true
		m.Children = resolveChildren(rs, m.Children)
	}
	return len(m.Children) > 0
}

// needsLuma reports whether the mask's effect depends on luminance:
// false only when everything the mask paints is white (at any alpha),
// so the alpha channel alone reproduces it.
func (m *Mask) needsLuma() bool {
	luma := false
	for _, k := range m.Children {
		walkTree(k, func(n Node) {
			nb := n.AsNodeBase()
			if colorNeedsLuma(nb.Paint.Fill) || colorNeedsLuma(nb.Paint.Stroke) {
				luma = true
			}
			if nb.Paint.Fill.Kind == ColorInherit {
				// an unset fill paints the default black
				switch n.(type) {
				case pathMaker, *TSpan:
					luma = true
				}
			}
			if _, ok := n.(*Image); ok {
				luma = true
			}
		})
	}
	return luma
}

func colorNeedsLuma(c Color) bool {
	switch c.Kind {
	case ColorValue:
		return c.ARGB&0xffffff != 0xffffff
	case ColorRef, ColorCurrent:
		// unknown content, assume luminance matters
		return true
	}
	return false
}

// Masked is the synthetic node the resolver wraps around a node that
// references a mask.
type Masked struct {
	NodeBase

	// Child is the masked content and Mask the resolved mask content.
	Child Node
	Mask  *Mask

	// UsesLuma hints the renderer whether the mask needs the
	// luminance of its drawn content or alpha alone suffices.
	UsesLuma bool
}

func (mk *Masked) SVGName() string { return "masked" }

func (mk *Masked) childNodes() []Node { return []Node{mk.Child} }

func (mk *Masked) CloneNode() Node {
	c := &Masked{NodeBase: mk.cloneBase(), Child: mk.Child.CloneNode(),
		Mask: mk.Mask, UsesLuma: mk.UsesLuma}
	return c
}

func (mk *Masked) Resolve(rs *resolveState) Node { return mk }

func (mk *Masked) Build(bs *buildState) {
	bounds := mk.Mask.Bounds(&boundsState{sv: bs.sv})
	var bp *math32.Box2
	if !bounds.IsEmpty() {
		bp = &bounds
	}
	bs.t.masked(bp, mk.UsesLuma)
	mk.Mask.Build(bs)
	bs.t.maskedChild()
	mk.Child.Build(bs)
	bs.t.endMasked()
}

func (mk *Masked) Bounds(bst *boundsState) math32.Box2 {
	return mk.transformedBounds(mk.Child.Bounds(bst))
}

// maskWrap materializes the mask reference of a resolved node, if
// any. Attributes that must compose outside the mask (transform,
// alpha, blend) are promoted onto an enclosing group so the mask
// modulates the fully transformed content.
func maskWrap(rs *resolveState, n Node) Node {
	nb := n.AsNodeBase()
	if nb.MaskID == "" {
		return n
	}
	id := nb.MaskID
	nb.MaskID = ""
	target, ok := rs.sv.NodeByID(id).(*Mask)
	if !ok {
		rs.warnf("mask reference %q not found", id)
		return n
	}
	if rs.referrers.contains(target) {
		rs.warnf("mask reference cycle through id %q", id)
		return n
	}
	sub := *rs
	sub.referrers = &Referrers{node: target, parent: rs.referrers}
	if !target.resolveContent(&sub) {
		// an empty mask makes its target invisible
		return nil
	}
	mk := &Masked{NodeBase: NewNodeBase(), Child: n, Mask: target,
		UsesLuma: target.needsLuma()}
	mk.resolved = true
	if nb.Transform == nil && !nb.HasAlpha && nb.Blend == si.BlendNormal {
		return mk
	}
	outer := &Group{NodeBase: NewNodeBase(), Children: []Node{mk}}
	outer.Transform = nb.Transform
	outer.Alpha = nb.Alpha
	outer.HasAlpha = nb.HasAlpha
	outer.Blend = nb.Blend
	outer.resolved = true
	nb.Transform = nil
	nb.Alpha = 0
	nb.HasAlpha = false
	nb.Blend = si.BlendNormal
	return outer
}
