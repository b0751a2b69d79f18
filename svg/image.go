// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// Image places an encoded raster image. The bytes are carried
// through to the compact form undecoded; decoding is the renderer's
// concern.
type Image struct {
	NodeBase

	// Pos is the upper left corner and Size the rendered extent.
	Pos, Size math32.Vector2

	// Data is the encoded (e.g. PNG or JPEG) image bytes.
	Data []byte
}

func (g *Image) SVGName() string { return "image" }

func (g *Image) CloneNode() Node {
	c := *g
	c.NodeBase = g.cloneBase()
	return &c
}

func (g *Image) Resolve(rs *resolveState) Node {
	empty := g.Size.X <= 0 || g.Size.Y <= 0 || len(g.Data) == 0
	return shapeResolve(rs, g, empty)
}

func (g *Image) Build(bs *buildState) {
	wrap := g.Transform != nil || g.HasAlpha || g.Blend != si.BlendNormal || g.ClipID != ""
	if wrap {
		bs.t.group(g.Transform, g.Alpha, g.HasAlpha, g.Blend)
		buildClip(bs, &g.NodeBase)
	}
	bs.t.image(si.ImageData{X: g.Pos.X, Y: g.Pos.Y,
		Width: g.Size.X, Height: g.Size.Y, Data: g.Data})
	if wrap {
		bs.t.endGroup()
	}
}

func (g *Image) Bounds(bst *boundsState) math32.Box2 {
	return g.transformedBounds(math32.B2(g.Pos.X, g.Pos.Y,
		g.Pos.X+g.Size.X, g.Pos.Y+g.Size.Y))
}
