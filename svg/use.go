// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
)

// Use renders another element by reference. Resolving it clones the
// target so each reference site gets its own cascade, and wraps the
// clone in a synthetic group carrying the use element's transform,
// alpha, and paint.
type Use struct {
	NodeBase

	// ChildID is the id of the referenced element.
	ChildID string

	// Pos is the x/y offset, applied after the use transform.
	Pos math32.Vector2
}

func (u *Use) SVGName() string { return "use" }

func (u *Use) CloneNode() Node {
	c := *u
	c.NodeBase = u.cloneBase()
	return &c
}

func (u *Use) Resolve(rs *resolveState) Node {
	if !u.Display {
		return nil
	}
	target := rs.sv.NodeByID(u.ChildID)
	if target == nil {
		rs.warnf("use references missing id %q", u.ChildID)
		return nil
	}
	if target == Node(u) || rs.referrers.contains(target) {
		rs.warnf("use reference cycle through id %q", u.ChildID)
		return nil
	}
	sub := *rs
	sub.referrers = &Referrers{node: target, parent: rs.referrers}

	// the synthetic wrapper carries everything the use element held
	g := &Group{NodeBase: u.cloneBase(), Children: []Node{target.CloneNode()}}
	g.ID = ""
	if u.Pos != (math32.Vector2{}) {
		off := math32.Translate2D(u.Pos.X, u.Pos.Y)
		if g.Transform != nil {
			m := g.Transform.Mul(off)
			g.Transform = &m
		} else {
			g.Transform = &off
		}
	}
	return g.Resolve(&sub)
}

func (u *Use) Build(bs *buildState) {}

func (u *Use) Bounds(bst *boundsState) math32.Box2 { return math32.B2Empty() }
