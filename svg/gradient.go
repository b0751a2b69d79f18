// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Coord is one gradient coordinate, which may be a percentage:
// relative to the user-space viewport for userSpaceOnUse gradients,
// or a fraction of the object bounding box otherwise.
type Coord struct {
	Value float32
	Pct   bool
}

// Pt returns an absolute coordinate and PctOf a percentage one.
func Pt(v float32) *Coord  { return &Coord{Value: v} }
func PctOf(v float32) *Coord { return &Coord{Value: v, Pct: true} }

// resolve flattens the coordinate against the given extent. For
// objectBoundingBox gradients the extent is 1, so percentages become
// plain fractions.
func (c *Coord) resolve(def Coord, extent float32) float32 {
	if c == nil {
		c = &def
	}
	if c.Pct {
		return c.Value / 100 * extent
	}
	return c.Value
}

// GradientNode holds a declared gradient. It renders nothing itself:
// paints referencing its id consume it inline. Unset attributes fall
// back along the ParentID inheritance chain.
type GradientNode struct {
	NodeBase

	Kind si.GradientKind

	// ParentID is the href of the gradient this one inherits from.
	ParentID string

	// ObjectBounds is the gradientUnits attribute; nil inherits,
	// defaulting to objectBoundingBox.
	ObjectBounds *bool

	Spread *si.SpreadMethod

	// GradTransform is the gradientTransform attribute.
	GradTransform *math32.Matrix2

	// Stops is nil when this node declares no stops of its own.
	Stops []si.GradientStop

	// Linear geometry.
	X1, Y1, X2, Y2 *Coord

	// Radial geometry.
	CX, CY, FX, FY, R *Coord

	// Sweep geometry, in radians.
	StartAngle, EndAngle *float32

	flattened bool
}

func (g *GradientNode) SVGName() string {
	switch g.Kind {
	case si.GradientRadial:
		return "radialGradient"
	case si.GradientSweep:
		return "sweepGradient"
	}
	return "linearGradient"
}

func (g *GradientNode) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	if g.Stops != nil {
		c.Stops = append([]si.GradientStop(nil), g.Stops...)
	}
	return &c
}

func (g *GradientNode) Resolve(rs *resolveState) Node {
	g.flatten(rs.sv, nil)
	return nil
}

func (g *GradientNode) Build(bs *buildState) {}

func (g *GradientNode) Bounds(bst *boundsState) math32.Box2 { return math32.B2Empty() }

// flatten resolves the parent inheritance chain in place: any unset
// attribute falls back to the nearest ancestor that sets it. A
// parent reference already being visited is treated as missing.
func (g *GradientNode) flatten(sv *SVG, visiting map[*GradientNode]bool) {
	if g.flattened {
		return
	}
	g.flattened = true
	if g.ParentID == "" {
		return
	}
	if visiting == nil {
		visiting = map[*GradientNode]bool{}
	}
	visiting[g] = true
	parent, ok := sv.NodeByID(g.ParentID).(*GradientNode)
	if !ok {
		sv.warnf("gradient parent %q not found", g.ParentID)
		return
	}
	if visiting[parent] {
		sv.warnf("gradient inheritance cycle through id %q", g.ParentID)
		return
	}
	parent.flatten(sv, visiting)
	if g.ObjectBounds == nil {
		g.ObjectBounds = parent.ObjectBounds
	}
	if g.Spread == nil {
		g.Spread = parent.Spread
	}
	if g.GradTransform == nil {
		g.GradTransform = parent.GradTransform
	}
	if g.Stops == nil {
		g.Stops = parent.Stops
	}
	if g.X1 == nil {
		g.X1 = parent.X1
	}
	if g.Y1 == nil {
		g.Y1 = parent.Y1
	}
	if g.X2 == nil {
		g.X2 = parent.X2
	}
	if g.Y2 == nil {
		g.Y2 = parent.Y2
	}
	if g.CX == nil {
		g.CX = parent.CX
	}
	if g.CY == nil {
		g.CY = parent.CY
	}
	if g.FX == nil {
		g.FX = parent.FX
	}
	if g.FY == nil {
		g.FY = parent.FY
	}
	if g.R == nil {
		g.R = parent.R
	}
	if g.StartAngle == nil {
		g.StartAngle = parent.StartAngle
	}
	if g.EndAngle == nil {
		g.EndAngle = parent.EndAngle
	}
}

// materialize converts the flattened node into the resolved gradient
// carried by a paint, resolving percentage coordinates against the
// document's user-space bounds.
func (g *GradientNode) materialize(bs *buildState) si.Gradient {
	g.flatten(bs.sv, nil)
	objectBounds := true
	if g.ObjectBounds != nil {
		objectBounds = *g.ObjectBounds
	}
	base := si.GradientBase{
		ObjectBounds: objectBounds,
		Transform:    g.GradTransform,
		Stops:        g.Stops,
	}
	if g.Spread != nil {
		base.Spread = *g.Spread
	}
	w, h := float32(1), float32(1)
	if !objectBounds {
		sz := bs.bounds.Size()
		w, h = sz.X, sz.Y
	}
	switch g.Kind {
	case si.GradientRadial:
		cx := g.CX.resolve(Coord{Value: 50, Pct: true}, w)
		cy := g.CY.resolve(Coord{Value: 50, Pct: true}, h)
		fx, fy := cx, cy
		if g.FX != nil {
			fx = g.FX.resolve(Coord{}, w)
		}
		if g.FY != nil {
			fy = g.FY.resolve(Coord{}, h)
		}
		return &si.RadialGradient{
			GradientBase: base,
			Center:       math32.Vec2(cx, cy),
			Focal:        math32.Vec2(fx, fy),
			Radius:       g.R.resolve(Coord{Value: 50, Pct: true}, w),
		}
	case si.GradientSweep:
		cx := g.CX.resolve(Coord{Value: 50, Pct: true}, w)
		cy := g.CY.resolve(Coord{Value: 50, Pct: true}, h)
		sg := &si.SweepGradient{GradientBase: base, Center: math32.Vec2(cx, cy),
			EndAngle: 2 * math32.Pi}
		if g.StartAngle != nil {
			sg.StartAngle = *g.StartAngle
		}
		if g.EndAngle != nil {
			sg.EndAngle = *g.EndAngle
		}
		return sg
	default:
		return &si.LinearGradient{
			GradientBase: base,
			Start: math32.Vec2(g.X1.resolve(Coord{}, w), g.Y1.resolve(Coord{}, h)),
			End:   math32.Vec2(g.X2.resolve(Coord{Value: 100, Pct: true}, w), g.Y2.resolve(Coord{}, h)),
		}
	}
}
