// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"log/slog"

	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// WarnFunc receives resolve-time diagnostics: missing references,
// cycles, malformed values. Warnings never abort a resolve.
type WarnFunc func(msg string, err error)

// SVG is one declarative document: the scene graph root plus the
// stylesheet and diagnostics sink. The external parser fills Root
// and Stylesheet; Resolve normalizes the graph in place, and Encode
// emits the compact form.
type SVG struct {
	Root *Root

	// Stylesheet holds rules installed by the parser, in addition to
	// any <style> elements found in the tree.
	Stylesheet *Stylesheet

	// Warn receives diagnostics; the default logs through slog.
	Warn WarnFunc

	ids       map[string]Node
	resolved  bool
	bounds    math32.Box2
	hasBounds bool
}

// NewSVG returns an empty document.
func NewSVG() *SVG {
	r := &Root{}
	r.NodeBase = NewNodeBase()
	return &SVG{Root: r}
}

func (sv *SVG) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if sv.Warn != nil {
		sv.Warn(msg, nil)
		return
	}
	slog.Warn("svg: " + msg)
}

// NodeByID returns the node with the given id, or nil. The lookup
// map is built from the unresolved tree, so referenced-only content
// (defs, masks, gradients, clip paths) stays reachable after it is
// pruned from the resolved graph.
func (sv *SVG) NodeByID(id string) Node {
	if id == "" {
		return nil
	}
	if sv.ids == nil {
		sv.buildIDMap()
	}
	return sv.ids[id]
}

func (sv *SVG) buildIDMap() {
	sv.ids = map[string]Node{}
	walkTree(sv.Root, func(n Node) {
		id := n.AsNodeBase().ID
		if id == "" {
			return
		}
		if _, exists := sv.ids[id]; exists {
			sv.warnf("duplicate id %q", id)
			return
		}
		sv.ids[id] = n
	})
}

// Resolve normalizes the graph: pass A applies the stylesheet, pass
// B cascades inherited attributes, flattens references, detects
// cycles, and materializes masks. It runs once; later calls are
// no-ops. The graph is logically frozen afterwards.
func (sv *SVG) Resolve() {
	if sv.resolved {
		return
	}
	sv.resolved = true
	sv.buildIDMap()
	sv.applyStylesheet()
	rs := &resolveState{sv: sv}
	sv.Root.Resolve(rs)
}

// applyStylesheet is pass A: collect <style> element sheets after
// any parser-installed one, then apply the rules to every node.
func (sv *SVG) applyStylesheet() {
	sheet := sv.Stylesheet
	walkTree(sv.Root, func(n Node) {
		sn, ok := n.(*StyleNode)
		if !ok {
			return
		}
		parsed, err := ParseStylesheet(sn.Text, sv.Warn)
		if err != nil {
			sv.warnf("style element: %v", err)
			return
		}
		if sheet == nil {
			sheet = parsed
		} else {
			for _, st := range parsed.styles {
				sheet.Add(st)
			}
		}
	})
	sv.Stylesheet = sheet
	if sheet == nil || sheet.Len() == 0 {
		return
	}
	walkTree(sv.Root, func(n Node) {
		sheet.Apply(sv, n)
	})
}

// Encode resolves the document and builds its compact form. The
// build runs twice over the resolved graph: a dry run through a null
// target interns every canonicalizable value, then the real pass
// emits the representation using those indices.
func (sv *SVG) Encode(bigFloats bool) (*si.ScalableImage, error) {
	sv.Resolve()
	bounds := sv.UserSpaceBounds()

	ct := newCanonTables()
	dry := &buildState{sv: sv, t: &canonPass{ct: ct}, bounds: bounds}
	sv.Root.Build(dry)
	if dry.err != nil {
		return nil, dry.err
	}

	b := si.NewBuilder(bigFloats)
	b.Init(ct.stringList(), ct.floatListValues, ct.imageValues)
	b.Vector(&si.VectorInfo{
		Width: sv.Root.Width, Height: sv.Root.Height,
		HasWidth: sv.Root.HasWidth, HasHeight: sv.Root.HasHeight,
		TintColor: sv.Root.TintColor, TintMode: sv.Root.TintMode,
		HasTint: sv.Root.HasTint,
	})
	live := &buildState{sv: sv, t: &builderPass{b: b, ct: ct}, bounds: bounds}
	sv.Root.Build(live)
	if live.err != nil {
		return nil, live.err
	}
	return b.EndVector(), nil
}
