// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package svg holds the declarative scene graph that a parsed
// SVG-like document is loaded into, and the resolver that normalizes
// it: cascading inherited properties, applying the stylesheet,
// flattening references, materializing masks, and emitting the
// result into an [si.Builder].
//
// The graph is built by an external parser; the resolver owns all
// mutation. After [SVG.Resolve] the graph is logically frozen.
package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Node is the interface for all scene graph nodes.
type Node interface {
	// AsNodeBase returns the [NodeBase], giving access to the
	// base-level attributes without interface methods.
	AsNodeBase() *NodeBase

	// SVGName returns the source element name (e.g. "rect", "path").
	SVGName() string

	// Resolve normalizes this node under the given cascade state and
	// returns the node that replaces it in the resolved graph, or nil
	// to prune the subtree.
	Resolve(rs *resolveState) Node

	// Build emits the resolved node's events into the build target.
	Build(bs *buildState)

	// Bounds returns the node's conservative user-space bounds in its
	// parent's coordinate system, including the node's own transform.
	Bounds(bs *boundsState) math32.Box2

	// CloneNode returns a deep copy of the unresolved node, used to
	// materialize <use> references per reference site.
	CloneNode() Node
}

// NodeBase is the base type for all scene graph nodes, holding the
// inheritable attributes shared by every element.
type NodeBase struct {
	// ID is the element id used by url(#id) references.
	ID string

	// Class contains the whitespace-separated class names used for
	// stylesheet matching.
	Class string

	// Paint holds the inheritable paint attributes; unset fields
	// inherit from the ancestor cascade during resolve.
	Paint Paint

	// TextAttrs holds the inheritable text attributes.
	TextAttrs TextAttributes

	// Transform is the node's own transform, or nil.
	Transform *math32.Matrix2

	// Display is false for display:none, pruning the subtree.
	Display bool

	// Alpha is the group opacity in 0..1 when HasAlpha is set.
	Alpha    float32
	HasAlpha bool

	// Blend is the compositing mode, normal by default.
	Blend si.BlendMode

	// MaskID is the id of a referenced mask, from mask="url(#id)".
	MaskID string

	// ClipID is the id of a referenced clip path.
	ClipID string

	resolved bool
}

// NewNodeBase returns a base with the attribute defaults every
// freshly parsed element starts from.
func NewNodeBase() NodeBase {
	return NodeBase{Display: true}
}

func (nb *NodeBase) AsNodeBase() *NodeBase { return nb }

// cloneBase copies the base attributes, deep-copying the transform.
func (nb *NodeBase) cloneBase() NodeBase {
	c := *nb
	if nb.Transform != nil {
		t := *nb.Transform
		c.Transform = &t
	}
	c.Paint = nb.Paint.clone()
	c.resolved = false
	return c
}

// cascade bakes the ancestor cascade into this node's paint and text
// attributes, leaving set fields alone.
func (nb *NodeBase) cascade(rs *resolveState) *resolveState {
	nb.Paint.Inherit(&rs.paint)
	nb.TextAttrs.Inherit(&rs.text)
	sub := *rs
	sub.paint = nb.Paint
	sub.text = nb.TextAttrs
	return &sub
}

// degenerateTransform reports a transform that collapses all geometry
// onto a line or point; such nodes are pruned.
func (nb *NodeBase) degenerateTransform() bool {
	if nb.Transform == nil {
		return false
	}
	m := nb.Transform
	return m.XX*m.YY-m.XY*m.YX == 0
}

// transformedBounds applies the node's own transform to its local
// bounds.
func (nb *NodeBase) transformedBounds(b math32.Box2) math32.Box2 {
	if b.IsEmpty() || nb.Transform == nil {
		return b
	}
	return b.MulMatrix2(*nb.Transform)
}

// container is implemented by nodes with child nodes.
type container interface {
	childNodes() []Node
}

// walkTree visits n and every node below it, depth first.
func walkTree(n Node, f func(Node)) {
	f(n)
	if c, ok := n.(container); ok {
		for _, k := range c.childNodes() {
			walkTree(k, f)
		}
	}
}

// cloneChildren deep-copies a child slice.
func cloneChildren(kids []Node) []Node {
	if kids == nil {
		return nil
	}
	c := make([]Node, len(kids))
	for i, k := range kids {
		c[i] = k.CloneNode()
	}
	return c
}
