// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package svg

import (
	"fmt"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sinkRec records path sink calls as strings.
type sinkRec struct {
	cmds []string
}

func (r *sinkRec) add(format string, args ...any) {
	r.cmds = append(r.cmds, fmt.Sprintf(format, args...))
}

func (r *sinkRec) MoveTo(p math32.Vector2) { r.add("M %g %g", p.X, p.Y) }
func (r *sinkRec) LineTo(p math32.Vector2) { r.add("L %g %g", p.X, p.Y) }

func (r *sinkRec) CubicTo(c1, c2, p math32.Vector2) {
	r.add("C %g %g %g %g %g %g", c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
}

func (r *sinkRec) CubicToShorthand(c2, p math32.Vector2) {
	r.add("S %g %g %g %g", c2.X, c2.Y, p.X, p.Y)
}

func (r *sinkRec) QuadTo(c, p math32.Vector2) {
	r.add("Q %g %g %g %g", c.X, c.Y, p.X, p.Y)
}

func (r *sinkRec) QuadToShorthand(p math32.Vector2) { r.add("T %g %g", p.X, p.Y) }
func (r *sinkRec) Close()                           { r.add("Z") }

func (r *sinkRec) Oval(b math32.Box2) {
	r.add("O %g %g %g %g", b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

func (r *sinkRec) ArcToPoint(p, radius math32.Vector2, rot float32, large, cw bool) {
	r.add("A %g %g %g %g %g %v %v", p.X, p.Y, radius.X, radius.Y, rot, large, cw)
}

func parseD(t *testing.T, d string) []string {
	t.Helper()
	rec := &sinkRec{}
	require.NoError(t, walkPathString(d, rec))
	return rec.cmds
}

func TestPathDataAbsolute(t *testing.T) {
	got := parseD(t, "M 0 0 L 10 0 L 10 10 L 0 10 Z")
	assert.Equal(t, []string{"M 0 0", "L 10 0", "L 10 10", "L 0 10", "Z"}, got)
}

func TestPathDataCommasAndNoSpace(t *testing.T) {
	got := parseD(t, "M0,0L10,0 10,10")
	assert.Equal(t, []string{"M 0 0", "L 10 0", "L 10 10"}, got)
}

func TestPathDataImplicitLineToAfterMove(t *testing.T) {
	got := parseD(t, "M 1 2 3 4 5 6")
	assert.Equal(t, []string{"M 1 2", "L 3 4", "L 5 6"}, got)
}

func TestPathDataRelative(t *testing.T) {
	got := parseD(t, "m 1 1 l 2 0 l 0 2 z m 10 10 l 1 1")
	assert.Equal(t, []string{
		"M 1 1", "L 3 1", "L 3 3", "Z",
		// after close the current point returns to the subpath start
		"M 11 11", "L 12 12",
	}, got)
}

func TestPathDataHorizVert(t *testing.T) {
	got := parseD(t, "M 1 2 H 5 V 7 h 2 v -1")
	assert.Equal(t, []string{"M 1 2", "L 5 2", "L 5 7", "L 7 7", "L 7 6"}, got)
}

func TestPathDataCurves(t *testing.T) {
	got := parseD(t, "M 0 0 C 1 1 2 2 3 3 S 5 5 6 6 Q 7 7 8 8 T 9 9")
	assert.Equal(t, []string{
		"M 0 0",
		"C 1 1 2 2 3 3",
		"S 5 5 6 6",
		"Q 7 7 8 8",
		"T 9 9",
	}, got)
}

func TestPathDataRelativeCurves(t *testing.T) {
	got := parseD(t, "M 10 10 c 1 1 2 2 3 3 t 2 2")
	assert.Equal(t, []string{
		"M 10 10",
		"C 11 11 12 12 13 13",
		"T 15 15",
	}, got)
}

func TestPathDataArc(t *testing.T) {
	got := parseD(t, "M 0 0 A 5 5 0 0 1 10 0 a 4 3 20 1 0 5 5")
	assert.Equal(t, []string{
		"M 0 0",
		"A 10 0 5 5 0 false true",
		"A 15 5 4 3 20 true false",
	}, got)
}

func TestPathDataRepeatedCommands(t *testing.T) {
	got := parseD(t, "M 0 0 L 1 1 2 2 3 3")
	assert.Equal(t, []string{"M 0 0", "L 1 1", "L 2 2", "L 3 3"}, got)
}

func TestPathDataErrors(t *testing.T) {
	rec := &sinkRec{}
	assert.Error(t, walkPathString("L 1 2", rec), "command before moveto")
	assert.Error(t, walkPathString("M 1", rec), "missing coordinate")
	assert.Error(t, walkPathString("M 1 2 X 3", rec), "unknown command")
}

func TestEmptyPathData(t *testing.T) {
	assert.True(t, emptyPathData(""))
	assert.True(t, emptyPathData("   "))
	assert.False(t, emptyPathData("M 0 0"))
}
