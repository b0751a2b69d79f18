// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Group is a container of child nodes sharing cascaded attributes.
type Group struct {
	NodeBase
	Children []Node
}

func (g *Group) SVGName() string { return "g" }

func (g *Group) childNodes() []Node { return g.Children }

func (g *Group) CloneNode() Node {
	c := &Group{NodeBase: g.cloneBase(), Children: cloneChildren(g.Children)}
	return c
}

func (g *Group) Resolve(rs *resolveState) Node {
	if g.resolved {
		return g
	}
	if !g.Display || g.degenerateTransform() {
		return nil
	}
	sub := g.cascade(rs)
	g.Children = resolveChildren(sub, g.Children)
	if len(g.Children) == 0 {
		return nil
	}
	g.resolved = true
	return maskWrap(rs, g)
}

func (g *Group) Build(bs *buildState) {
	bs.t.group(g.Transform, g.Alpha, g.HasAlpha, g.Blend)
	buildClip(bs, &g.NodeBase)
	for _, k := range g.Children {
		k.Build(bs)
	}
	bs.t.endGroup()
}

func (g *Group) Bounds(bst *boundsState) math32.Box2 {
	b := math32.B2Empty()
	for _, k := range g.Children {
		kb := k.Bounds(bst)
		if !kb.IsEmpty() {
			b.ExpandByBox(kb)
		}
	}
	return g.transformedBounds(b)
}

// Root is the document element.
type Root struct {
	Group

	// Width and Height are the optional viewport size.
	Width, Height       float32
	HasWidth, HasHeight bool

	// TintColor and TintMode carry an optional post-composite tint.
	TintColor uint32
	TintMode  si.TintMode
	HasTint   bool
}

func (r *Root) SVGName() string { return "svg" }

func (r *Root) CloneNode() Node {
	c := *r
	c.NodeBase = r.cloneBase()
	c.Children = cloneChildren(r.Children)
	return &c
}

func (r *Root) Resolve(rs *resolveState) Node {
	if r.resolved {
		return r
	}
	sub := r.cascade(rs)
	if r.degenerateTransform() {
		r.Transform = nil
	}
	r.Children = resolveChildren(sub, r.Children)
	r.resolved = true
	return r
}

func (r *Root) Build(bs *buildState) {
	wrap := r.Transform != nil || r.HasAlpha || r.Blend != si.BlendNormal
	if wrap {
		bs.t.group(r.Transform, r.Alpha, r.HasAlpha, r.Blend)
	}
	for _, k := range r.Children {
		k.Build(bs)
	}
	if wrap {
		bs.t.endGroup()
	}
}

// Defs holds referenced-only content: its children are resolved on
// demand when a use, mask, clip, or gradient reference names them,
// and the defs node itself never renders.
type Defs struct {
	Group
}

func (d *Defs) SVGName() string { return "defs" }

func (d *Defs) CloneNode() Node {
	return &Defs{Group{NodeBase: d.cloneBase(), Children: cloneChildren(d.Children)}}
}

func (d *Defs) Resolve(rs *resolveState) Node { return nil }

func (d *Defs) Build(bs *buildState) {}

func (d *Defs) Bounds(bst *boundsState) math32.Box2 { return math32.B2Empty() }
