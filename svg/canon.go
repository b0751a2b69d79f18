// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"math"
	"strings"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/math32"
	"cogentcore.org/si"
)

// canonTables interns the canonicalizable values of a document:
// strings (text content, font families), the x/y position float
// lists, and image blobs. Indices are assigned in first-seen order
// during the dry-run pass and looked up unchanged during the real
// build, so both passes agree.
type canonTables struct {
	strings    *ordmap.Map[string, int]
	floatLists *ordmap.Map[string, int]
	images     *ordmap.Map[string, int]

	floatListValues [][]float32
	imageValues     []si.ImageData
}

func newCanonTables() *canonTables {
	return &canonTables{
		strings:    ordmap.New[string, int](),
		floatLists: ordmap.New[string, int](),
		images:     ordmap.New[string, int](),
	}
}

func (ct *canonTables) internString(s string) int {
	if i, ok := ct.strings.IndexByKeyTry(s); ok {
		return i
	}
	i := ct.strings.Len()
	ct.strings.Add(s, i)
	return i
}

func (ct *canonTables) stringIndex(s string) int {
	i, ok := ct.strings.IndexByKeyTry(s)
	if !ok {
		panic("si/svg: string missed by canonicalization pass: " + s)
	}
	return i
}

func floatListKey(fl []float32) string {
	var sb strings.Builder
	for _, v := range fl {
		fmt.Fprintf(&sb, "%08x", math.Float32bits(v))
	}
	return sb.String()
}

func (ct *canonTables) internFloatList(fl []float32) int {
	key := floatListKey(fl)
	if i, ok := ct.floatLists.IndexByKeyTry(key); ok {
		return i
	}
	i := ct.floatLists.Len()
	ct.floatLists.Add(key, i)
	ct.floatListValues = append(ct.floatListValues, fl)
	return i
}

func (ct *canonTables) floatListIndex(fl []float32) int {
	i, ok := ct.floatLists.IndexByKeyTry(floatListKey(fl))
	if !ok {
		panic("si/svg: float list missed by canonicalization pass")
	}
	return i
}

func imageKey(img *si.ImageData) string {
	return fmt.Sprintf("%08x%08x%08x%08x|%s",
		math.Float32bits(img.X), math.Float32bits(img.Y),
		math.Float32bits(img.Width), math.Float32bits(img.Height), img.Data)
}

func (ct *canonTables) internImage(img si.ImageData) int {
	key := imageKey(&img)
	if i, ok := ct.images.IndexByKeyTry(key); ok {
		return i
	}
	i := ct.images.Len()
	ct.images.Add(key, i)
	ct.imageValues = append(ct.imageValues, img)
	return i
}

func (ct *canonTables) imageIndex(img *si.ImageData) int {
	i, ok := ct.images.IndexByKeyTry(imageKey(img))
	if !ok {
		panic("si/svg: image missed by canonicalization pass")
	}
	return i
}

func (ct *canonTables) stringList() []string {
	out := make([]string, ct.strings.Len())
	for i := range out {
		out[i] = ct.strings.KeyByIndex(i)
	}
	return out
}

// canonPass is the null build target of the canonicalization
// pre-pass: it intercepts only the events carrying canonicalizable
// data and assigns each unique value its index.
type canonPass struct {
	ct *canonTables
}

func (cp *canonPass) group(transform *math32.Matrix2, alpha float32, hasAlpha bool, blend si.BlendMode) {
}
func (cp *canonPass) endGroup() {}

func (cp *canonPass) path(src si.PathSource, paint *si.Paint) error { return nil }

func (cp *canonPass) clipPath(src si.PathSource) error { return nil }

func (cp *canonPass) image(img si.ImageData) {
	cp.ct.internImage(img)
}

func (cp *canonPass) textBegin() {}

func (cp *canonPass) textSpan(x, y []float32, text string, attrs *si.TextAttributes, paint *si.Paint) error {
	cp.ct.internFloatList(x)
	cp.ct.internFloatList(y)
	cp.ct.internString(text)
	if attrs.FontFamily != "" {
		cp.ct.internString(attrs.FontFamily)
	}
	return nil
}

func (cp *canonPass) textEnd() {}

func (cp *canonPass) masked(bounds *math32.Box2, usesLuma bool) {}
func (cp *canonPass) maskedChild()                              {}
func (cp *canonPass) endMasked()                                {}

// builderPass is the real build target: it forwards events to the
// [si.Builder], translating canonicalizable values into the indices
// assigned by the pre-pass.
type builderPass struct {
	b  *si.Builder
	ct *canonTables
}

func (bp *builderPass) group(transform *math32.Matrix2, alpha float32, hasAlpha bool, blend si.BlendMode) {
	bp.b.Group(transform, alpha, hasAlpha, blend)
}

func (bp *builderPass) endGroup() { bp.b.EndGroup() }

func (bp *builderPass) path(src si.PathSource, paint *si.Paint) error {
	return bp.b.Path(src, paint)
}

func (bp *builderPass) clipPath(src si.PathSource) error {
	return bp.b.ClipPath(src)
}

func (bp *builderPass) image(img si.ImageData) {
	bp.b.Image(bp.ct.imageIndex(&img))
}

func (bp *builderPass) textBegin() { bp.b.Text() }

func (bp *builderPass) textSpan(x, y []float32, text string, attrs *si.TextAttributes, paint *si.Paint) error {
	ix := &si.TextSpanIndices{
		X:    bp.ct.floatListIndex(x),
		Y:    bp.ct.floatListIndex(y),
		Text: bp.ct.stringIndex(text),
	}
	if attrs.FontFamily != "" {
		ix.FontFamily = bp.ct.stringIndex(attrs.FontFamily)
		ix.HasFontFamily = true
	}
	return bp.b.TextSpan(ix, attrs, paint)
}

func (bp *builderPass) textEnd() { bp.b.TextEnd() }

func (bp *builderPass) masked(bounds *math32.Box2, usesLuma bool) {
	bp.b.Masked(bounds, usesLuma)
}

func (bp *builderPass) maskedChild() { bp.b.MaskedChild() }

func (bp *builderPass) endMasked() { bp.b.EndMasked() }
