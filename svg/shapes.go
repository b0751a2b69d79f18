// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// pathMaker is implemented by every shape node: it lowers the shape
// geometry into path codec events under the cascaded paint.
type pathMaker interface {
	makePath(sink si.PathSink) error
}

// makerSource adapts a pathMaker to [si.PathSource].
type makerSource struct {
	pm pathMaker
}

func (ms makerSource) WalkPath(sink si.PathSink) error { return ms.pm.makePath(sink) }

// buildShape emits the standard shape events: clip wrapper if any,
// then the path with the node's resolved paint.
func buildShape(bs *buildState, nb *NodeBase, pm pathMaker) {
	wrap := nb.Transform != nil || nb.HasAlpha || nb.Blend != si.BlendNormal || nb.ClipID != ""
	if wrap {
		bs.t.group(nb.Transform, nb.Alpha, nb.HasAlpha, nb.Blend)
		buildClip(bs, nb)
	}
	if err := bs.t.path(makerSource{pm}, bs.sipaint(&nb.Paint)); err != nil {
		bs.fail(err)
	}
	if wrap {
		bs.t.endGroup()
	}
}

// shapeResolve is the common shape normalization: prune hidden and
// degenerate nodes, cascade, and wrap masks.
func shapeResolve(rs *resolveState, n Node, empty bool) Node {
	nb := n.AsNodeBase()
	if nb.resolved {
		return n
	}
	if !nb.Display || empty || nb.degenerateTransform() {
		return nil
	}
	nb.cascade(rs)
	nb.resolved = true
	return maskWrap(rs, n)
}

// Path renders SVG path data.
type Path struct {
	NodeBase

	// Data is the path description, in SVG path data syntax.
	Data string
}

func (g *Path) SVGName() string { return "path" }

func (g *Path) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	return &c
}

func (g *Path) makePath(sink si.PathSink) error { return walkPathString(g.Data, sink) }

func (g *Path) Resolve(rs *resolveState) Node {
	empty := emptyPathData(g.Data)
	if !empty {
		if err := walkPathString(g.Data, discardSink{}); err != nil {
			rs.warnf("path %q: bad data: %v", g.ID, err)
			return nil
		}
	}
	return shapeResolve(rs, g, empty)
}

func (g *Path) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

func (g *Path) Bounds(bst *boundsState) math32.Box2 {
	var bc boundsCollector
	bc.bounds.SetEmpty()
	if err := walkPathString(g.Data, &bc); err != nil {
		return math32.B2Empty()
	}
	return g.transformedBounds(bc.bounds)
}

// Rect is a rectangle, optionally with rounded corners.
type Rect struct {
	NodeBase

	// Pos is the upper left corner and Size the width and height.
	Pos, Size math32.Vector2

	// Radius is the per-axis corner rounding, zero for square corners.
	Radius math32.Vector2
}

func (g *Rect) SVGName() string { return "rect" }

func (g *Rect) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	return &c
}

func (g *Rect) makePath(sink si.PathSink) error {
	p, sz := g.Pos, g.Size
	rx, ry := g.Radius.X, g.Radius.Y
	if rx <= 0 && ry <= 0 {
		sink.MoveTo(p)
		sink.LineTo(math32.Vec2(p.X+sz.X, p.Y))
		sink.LineTo(math32.Vec2(p.X+sz.X, p.Y+sz.Y))
		sink.LineTo(math32.Vec2(p.X, p.Y+sz.Y))
		sink.Close()
		return nil
	}
	if rx <= 0 {
		rx = ry
	}
	if ry <= 0 {
		ry = rx
	}
	if rx > sz.X/2 {
		rx = sz.X / 2
	}
	if ry > sz.Y/2 {
		ry = sz.Y / 2
	}
	r := math32.Vec2(rx, ry)
	sink.MoveTo(math32.Vec2(p.X+rx, p.Y))
	sink.LineTo(math32.Vec2(p.X+sz.X-rx, p.Y))
	sink.ArcToPoint(math32.Vec2(p.X+sz.X, p.Y+ry), r, 0, false, true)
	sink.LineTo(math32.Vec2(p.X+sz.X, p.Y+sz.Y-ry))
	sink.ArcToPoint(math32.Vec2(p.X+sz.X-rx, p.Y+sz.Y), r, 0, false, true)
	sink.LineTo(math32.Vec2(p.X+rx, p.Y+sz.Y))
	sink.ArcToPoint(math32.Vec2(p.X, p.Y+sz.Y-ry), r, 0, false, true)
	sink.LineTo(math32.Vec2(p.X, p.Y+ry))
	sink.ArcToPoint(math32.Vec2(p.X+rx, p.Y), r, 0, false, true)
	sink.Close()
	return nil
}

func (g *Rect) Resolve(rs *resolveState) Node {
	return shapeResolve(rs, g, g.Size.X <= 0 || g.Size.Y <= 0)
}

func (g *Rect) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

func (g *Rect) Bounds(bst *boundsState) math32.Box2 {
	return g.transformedBounds(math32.B2(g.Pos.X, g.Pos.Y, g.Pos.X+g.Size.X, g.Pos.Y+g.Size.Y))
}

// Circle is a circle centered at Pos.
type Circle struct {
	NodeBase
	Pos    math32.Vector2
	Radius float32
}

func (g *Circle) SVGName() string { return "circle" }

func (g *Circle) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	return &c
}

func (g *Circle) makePath(sink si.PathSink) error {
	r := g.Radius
	sink.Oval(math32.B2(g.Pos.X-r, g.Pos.Y-r, g.Pos.X+r, g.Pos.Y+r))
	return nil
}

func (g *Circle) Resolve(rs *resolveState) Node {
	return shapeResolve(rs, g, g.Radius <= 0)
}

func (g *Circle) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

func (g *Circle) Bounds(bst *boundsState) math32.Box2 {
	r := g.Radius
	return g.transformedBounds(math32.B2(g.Pos.X-r, g.Pos.Y-r, g.Pos.X+r, g.Pos.Y+r))
}

// Ellipse is an axis-aligned ellipse centered at Pos.
type Ellipse struct {
	NodeBase
	Pos   math32.Vector2
	Radii math32.Vector2
}

func (g *Ellipse) SVGName() string { return "ellipse" }

func (g *Ellipse) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	return &c
}

func (g *Ellipse) makePath(sink si.PathSink) error {
	sink.Oval(math32.B2(g.Pos.X-g.Radii.X, g.Pos.Y-g.Radii.Y,
		g.Pos.X+g.Radii.X, g.Pos.Y+g.Radii.Y))
	return nil
}

func (g *Ellipse) Resolve(rs *resolveState) Node {
	return shapeResolve(rs, g, g.Radii.X <= 0 || g.Radii.Y <= 0)
}

func (g *Ellipse) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

func (g *Ellipse) Bounds(bst *boundsState) math32.Box2 {
	return g.transformedBounds(math32.B2(g.Pos.X-g.Radii.X, g.Pos.Y-g.Radii.Y,
		g.Pos.X+g.Radii.X, g.Pos.Y+g.Radii.Y))
}

// Line is a line segment from Start to End; only its stroke renders.
type Line struct {
	NodeBase
	Start, End math32.Vector2
}

func (g *Line) SVGName() string { return "line" }

func (g *Line) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	return &c
}

func (g *Line) makePath(sink si.PathSink) error {
	sink.MoveTo(g.Start)
	sink.LineTo(g.End)
	return nil
}

func (g *Line) Resolve(rs *resolveState) Node {
	return shapeResolve(rs, g, g.Start == g.End)
}

func (g *Line) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

func (g *Line) Bounds(bst *boundsState) math32.Box2 {
	b := math32.B2Empty()
	b.ExpandByPoint(g.Start)
	b.ExpandByPoint(g.End)
	return g.transformedBounds(b)
}

// Polyline is an open sequence of line segments.
type Polyline struct {
	NodeBase
	Points []math32.Vector2
}

func (g *Polyline) SVGName() string { return "polyline" }

func (g *Polyline) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	c.Points = append([]math32.Vector2(nil), g.Points...)
	return &c
}

func (g *Polyline) makePath(sink si.PathSink) error {
	if len(g.Points) == 0 {
		return nil
	}
	sink.MoveTo(g.Points[0])
	for _, p := range g.Points[1:] {
		sink.LineTo(p)
	}
	return nil
}

func (g *Polyline) Resolve(rs *resolveState) Node {
	return shapeResolve(rs, g, len(g.Points) < 2)
}

func (g *Polyline) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

func (g *Polyline) Bounds(bst *boundsState) math32.Box2 {
	b := math32.B2Empty()
	for _, p := range g.Points {
		b.ExpandByPoint(p)
	}
	return g.transformedBounds(b)
}

// Polygon is a closed sequence of line segments.
type Polygon struct {
	Polyline
}

func (g *Polygon) SVGName() string { return "polygon" }

func (g *Polygon) CloneNode() Node {
	c := &Polygon{}
	c.NodeBase = g.cloneBase()
	c.Points = append([]math32.Vector2(nil), g.Points...)
	return c
}

func (g *Polygon) makePath(sink si.PathSink) error {
	if err := g.Polyline.makePath(sink); err != nil {
		return err
	}
	sink.Close()
	return nil
}

func (g *Polygon) Resolve(rs *resolveState) Node {
	return shapeResolve(rs, g, len(g.Points) < 2)
}

func (g *Polygon) Build(bs *buildState) { buildShape(bs, &g.NodeBase, g) }

// ClipPath holds shapes whose union clips the nodes that reference
// it by id. It never renders on its own.
type ClipPath struct {
	NodeBase
	Children []Node
}

func (g *ClipPath) SVGName() string { return "clipPath" }

func (g *ClipPath) childNodes() []Node { return g.Children }

func (g *ClipPath) CloneNode() Node {
	c := &ClipPath{NodeBase: g.cloneBase(), Children: cloneChildren(g.Children)}
	return c
}

func (g *ClipPath) Resolve(rs *resolveState) Node { return nil }

func (g *ClipPath) Build(bs *buildState) {}

func (g *ClipPath) Bounds(bst *boundsState) math32.Box2 { return math32.B2Empty() }

// clipSource concatenates the clip path's shapes into one path.
type clipSource struct {
	cp *ClipPath
}

func (cs clipSource) WalkPath(sink si.PathSink) error {
	for _, k := range cs.cp.Children {
		pm, ok := k.(pathMaker)
		if !ok {
			continue
		}
		if err := pm.makePath(sink); err != nil {
			return err
		}
	}
	return nil
}

// buildClip emits the clip event for a node referencing a clip path.
func buildClip(bs *buildState, nb *NodeBase) {
	if nb.ClipID == "" {
		return
	}
	cp, ok := bs.sv.NodeByID(nb.ClipID).(*ClipPath)
	if !ok {
		bs.sv.warnf("clip-path reference %q not found", nb.ClipID)
		return
	}
	if err := bs.t.clipPath(clipSource{cp}); err != nil {
		bs.fail(err)
	}
}
