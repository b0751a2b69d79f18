// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
)

// boundsCollector implements [si.PathSink] by unioning the points it
// sees. It unions control points rather than true curve extents, so
// curve bounds are conservative overestimates; arcs are covered by
// expanding a radius-sized box around the endpoint.
type boundsCollector struct {
	bounds math32.Box2
}

func (bc *boundsCollector) pt(p math32.Vector2) { bc.bounds.ExpandByPoint(p) }

func (bc *boundsCollector) MoveTo(p math32.Vector2) { bc.pt(p) }
func (bc *boundsCollector) LineTo(p math32.Vector2) { bc.pt(p) }

func (bc *boundsCollector) CubicTo(c1, c2, p math32.Vector2) {
	bc.pt(c1)
	bc.pt(c2)
	bc.pt(p)
}

func (bc *boundsCollector) CubicToShorthand(c2, p math32.Vector2) {
	bc.pt(c2)
	bc.pt(p)
}

func (bc *boundsCollector) QuadTo(c, p math32.Vector2) {
	bc.pt(c)
	bc.pt(p)
}

func (bc *boundsCollector) QuadToShorthand(p math32.Vector2) { bc.pt(p) }

func (bc *boundsCollector) Close() {}

func (bc *boundsCollector) Oval(b math32.Box2) {
	bc.pt(b.Min)
	bc.pt(b.Max)
}

func (bc *boundsCollector) ArcToPoint(p, radius math32.Vector2, rotation float32, largeArc, clockwise bool) {
	bc.pt(p.Sub(radius))
	bc.pt(p.Add(radius))
}

// UserSpaceBounds returns the document's user-space bounding box,
// needed to resolve percentage coordinates of userSpaceOnUse
// gradients. Explicit width/height win; otherwise the union of the
// resolved content's conservative bounds; an empty document falls
// back to (0,0,100,100). The result is computed once and cached.
func (sv *SVG) UserSpaceBounds() math32.Box2 {
	if sv.hasBounds {
		return sv.bounds
	}
	sv.Resolve()
	b := math32.B2Empty()
	switch {
	case sv.Root.HasWidth && sv.Root.HasHeight:
		b = math32.B2(0, 0, sv.Root.Width, sv.Root.Height)
	default:
		bst := &boundsState{sv: sv}
		for _, k := range sv.Root.Children {
			kb := k.Bounds(bst)
			if !kb.IsEmpty() {
				b.ExpandByBox(kb)
			}
		}
		if sv.Root.Transform != nil && !b.IsEmpty() {
			b = b.MulMatrix2(*sv.Root.Transform)
		}
		if b.IsEmpty() {
			b = math32.B2(0, 0, 100, 100)
		}
	}
	sv.bounds = b
	sv.hasBounds = true
	return b
}
