// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"strconv"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/si"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Style is one stylesheet rule: property values applied to elements
// matching the tag and/or class. Selector support is deliberately
// element-granular: a tag name, a class, or both.
type Style struct {
	Tag   string
	Class string
	Props map[string]string
}

// Stylesheet is an ordered rule list. Later rules win, so application
// walks each tag's rules in reverse insertion order and only fills
// attributes the node has not set.
type Stylesheet struct {
	styles []*Style
	byTag  map[string][]*Style
}

// Add appends a rule.
func (ss *Stylesheet) Add(st *Style) {
	if ss.byTag == nil {
		ss.byTag = map[string][]*Style{}
	}
	ss.styles = append(ss.styles, st)
	ss.byTag[st.Tag] = append(ss.byTag[st.Tag], st)
}

// Len returns the number of rules.
func (ss *Stylesheet) Len() int { return len(ss.styles) }

// Apply applies the sheet to one node: first class-matched rules for
// the node's tag then untagged ones, then the classless fallback
// rules, all with fill-if-unset semantics.
func (ss *Stylesheet) Apply(sv *SVG, n Node) {
	if ss == nil || len(ss.styles) == 0 {
		return
	}
	nb := n.AsNodeBase()
	classes := strings.Fields(nb.Class)
	inClasses := func(c string) bool {
		for _, cl := range classes {
			if cl == c {
				return true
			}
		}
		return false
	}
	tags := [2]string{n.SVGName(), ""}
	for _, tag := range tags {
		list := ss.byTag[tag]
		for i := len(list) - 1; i >= 0; i-- {
			st := list[i]
			if st.Class != "" && inClasses(st.Class) {
				applyProps(sv, nb, st.Props)
			}
		}
	}
	for _, tag := range tags {
		list := ss.byTag[tag]
		for i := len(list) - 1; i >= 0; i-- {
			st := list[i]
			if st.Class == "" {
				applyProps(sv, nb, st.Props)
			}
		}
	}
}

// ParseStylesheet parses CSS text into a rule list. Selectors beyond
// tag/class granularity are skipped with a warning.
func ParseStylesheet(text string, warn WarnFunc) (*Stylesheet, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("svg: stylesheet: %w", err)
	}
	ss := &Stylesheet{}
	for _, r := range sheet.Rules {
		if r.Kind == css.AtRule {
			continue
		}
		if len(r.Declarations) == 0 {
			continue
		}
		props := make(map[string]string, len(r.Declarations))
		for _, de := range r.Declarations {
			props[de.Property] = de.Value
		}
		for _, sel := range r.Selectors {
			tag, class, ok := splitSelector(sel)
			if !ok {
				if warn != nil {
					warn(fmt.Sprintf("unsupported css selector %q", sel), nil)
				}
				continue
			}
			ss.Add(&Style{Tag: tag, Class: class, Props: props})
		}
	}
	return ss, nil
}

// splitSelector handles "tag", ".class", and "tag.class".
func splitSelector(sel string) (tag, class string, ok bool) {
	sel = strings.TrimSpace(sel)
	if sel == "" || strings.ContainsAny(sel, " >+~#[:,") {
		return "", "", false
	}
	dot := strings.IndexByte(sel, '.')
	if dot < 0 {
		return sel, "", true
	}
	if strings.IndexByte(sel[dot+1:], '.') >= 0 {
		return "", "", false
	}
	return sel[:dot], sel[dot+1:], true
}

// StyleNode carries the text of a <style> element. The stylesheet
// pass collects and parses it; the node itself never renders.
type StyleNode struct {
	NodeBase

	// Text is the raw CSS source.
	Text string
}

func (s *StyleNode) SVGName() string { return "style" }

func (s *StyleNode) CloneNode() Node {
	c := *s
	c.NodeBase = s.cloneBase()
	return &c
}

func (s *StyleNode) Resolve(rs *resolveState) Node { return nil }

func (s *StyleNode) Build(bs *buildState) {}

func (s *StyleNode) Bounds(bst *boundsState) math32.Box2 { return math32.B2Empty() }

// applyProps fills node attributes from rule properties, leaving any
// attribute the element set itself untouched.
func applyProps(sv *SVG, nb *NodeBase, props map[string]string) {
	for name, val := range props {
		if err := applyProp(nb, name, val, false); err != nil {
			sv.warnf("style property %s=%q: %v", name, val, err)
		}
	}
}

// SetProperty sets one presentation attribute on the node from its
// source string form, overwriting any prior value. Parsers use this;
// the stylesheet pass uses the fill-if-unset variant internally.
func (nb *NodeBase) SetProperty(name, val string) error {
	return applyProp(nb, name, val, true)
}

func applyProp(nb *NodeBase, name, val string, force bool) error {
	val = strings.TrimSpace(val)
	switch name {
	case "fill":
		return setColor(&nb.Paint.Fill, val, force)
	case "stroke":
		return setColor(&nb.Paint.Stroke, val, force)
	case "color":
		return setColor(&nb.Paint.Color, val, force)
	case "fill-opacity":
		return setFloat(&nb.Paint.FillOpacity, val, force)
	case "stroke-opacity":
		return setFloat(&nb.Paint.StrokeOpacity, val, force)
	case "stroke-width":
		return setFloat(&nb.Paint.StrokeWidth, val, force)
	case "stroke-miterlimit":
		return setFloat(&nb.Paint.StrokeMiterLimit, val, force)
	case "stroke-dashoffset":
		return setFloat(&nb.Paint.StrokeDashOffset, val, force)
	case "stroke-dasharray":
		if nb.Paint.StrokeDashArray != nil && !force {
			return nil
		}
		return setDashArray(&nb.Paint.StrokeDashArray, val)
	case "stroke-linejoin":
		if nb.Paint.StrokeJoin != nil && !force {
			return nil
		}
		switch val {
		case "miter":
			nb.Paint.StrokeJoin = ptr(si.JoinMiter)
		case "round":
			nb.Paint.StrokeJoin = ptr(si.JoinRound)
		case "bevel":
			nb.Paint.StrokeJoin = ptr(si.JoinBevel)
		default:
			return fmt.Errorf("bad stroke-linejoin %q", val)
		}
	case "stroke-linecap":
		if nb.Paint.StrokeCap != nil && !force {
			return nil
		}
		switch val {
		case "butt":
			nb.Paint.StrokeCap = ptr(si.CapButt)
		case "round":
			nb.Paint.StrokeCap = ptr(si.CapRound)
		case "square":
			nb.Paint.StrokeCap = ptr(si.CapSquare)
		default:
			return fmt.Errorf("bad stroke-linecap %q", val)
		}
	case "fill-rule":
		if nb.Paint.FillType != nil && !force {
			return nil
		}
		switch val {
		case "nonzero":
			nb.Paint.FillType = ptr(si.FillNonZero)
		case "evenodd":
			nb.Paint.FillType = ptr(si.FillEvenOdd)
		default:
			return fmt.Errorf("bad fill-rule %q", val)
		}
	case "display":
		if val == "none" {
			nb.Display = false
		}
	case "opacity":
		if nb.HasAlpha && !force {
			return nil
		}
		v, err := parseFloat(val)
		if err != nil {
			return err
		}
		nb.Alpha = v
		nb.HasAlpha = true
	case "mask":
		if nb.MaskID != "" && !force {
			return nil
		}
		nb.MaskID = parseURLRef(val)
	case "clip-path":
		if nb.ClipID != "" && !force {
			return nil
		}
		nb.ClipID = parseURLRef(val)
	case "font-family":
		if nb.TextAttrs.FontFamily != nil && !force {
			return nil
		}
		nb.TextAttrs.FontFamily = &val
	case "font-size":
		return setFloat(&nb.TextAttrs.FontSize, val, force)
	case "font-style":
		if nb.TextAttrs.FontStyle != nil && !force {
			return nil
		}
		switch val {
		case "normal":
			nb.TextAttrs.FontStyle = ptr(si.FontNormal)
		case "italic", "oblique":
			nb.TextAttrs.FontStyle = ptr(si.FontItalic)
		default:
			return fmt.Errorf("bad font-style %q", val)
		}
	case "font-weight":
		if nb.TextAttrs.FontWeight != nil && !force {
			return nil
		}
		switch val {
		case "normal":
			nb.TextAttrs.FontWeight = ptr(400)
		case "bold":
			nb.TextAttrs.FontWeight = ptr(700)
		default:
			w, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("bad font-weight %q", val)
			}
			nb.TextAttrs.FontWeight = ptr(w)
		}
	case "text-anchor":
		if nb.TextAttrs.Anchor != nil && !force {
			return nil
		}
		switch val {
		case "start":
			nb.TextAttrs.Anchor = ptr(si.AnchorStart)
		case "middle":
			nb.TextAttrs.Anchor = ptr(si.AnchorMiddle)
		case "end":
			nb.TextAttrs.Anchor = ptr(si.AnchorEnd)
		default:
			return fmt.Errorf("bad text-anchor %q", val)
		}
	case "text-decoration":
		if nb.TextAttrs.Decoration != nil && !force {
			return nil
		}
		switch val {
		case "none":
			nb.TextAttrs.Decoration = ptr(si.DecorationNone)
		case "underline":
			nb.TextAttrs.Decoration = ptr(si.DecorationUnderline)
		case "line-through":
			nb.TextAttrs.Decoration = ptr(si.DecorationLineThrough)
		case "overline":
			nb.TextAttrs.Decoration = ptr(si.DecorationOverline)
		default:
			return fmt.Errorf("bad text-decoration %q", val)
		}
	}
	return nil
}

func ptr[T any](v T) *T { return &v }

func setColor(dst *Color, val string, force bool) error {
	if dst.Kind != ColorInherit && !force {
		return nil
	}
	c, err := ParseColor(val)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func setFloat(dst **float32, val string, force bool) error {
	if *dst != nil && !force {
		return nil
	}
	v, err := parseFloat(val)
	if err != nil {
		return err
	}
	*dst = &v
	return nil
}

func parseFloat(val string) (float32, error) {
	val = strings.TrimSuffix(strings.TrimSpace(val), "px")
	v, err := strconv.ParseFloat(val, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", val)
	}
	return float32(v), nil
}

// setDashArray parses a dash list; "none" is an explicit empty array.
func setDashArray(dst *[]float32, val string) error {
	if val == "none" {
		*dst = []float32{}
		return nil
	}
	fields := strings.FieldsFunc(val, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	out := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	*dst = out
	return nil
}
