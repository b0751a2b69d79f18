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
	gl "github.com/rustyoz/genericlexer"
)

// discardSink swallows path events; used to validate path data.
type discardSink struct{}

func (discardSink) MoveTo(p math32.Vector2)               {}
func (discardSink) LineTo(p math32.Vector2)               {}
func (discardSink) CubicTo(c1, c2, p math32.Vector2)      {}
func (discardSink) CubicToShorthand(c2, p math32.Vector2) {}
func (discardSink) QuadTo(c, p math32.Vector2)            {}
func (discardSink) QuadToShorthand(p math32.Vector2)      {}
func (discardSink) Close()                                {}
func (discardSink) Oval(b math32.Box2)                    {}
func (discardSink) ArcToPoint(p, r math32.Vector2, rot float32, la, cw bool) {}

// emptyPathData reports path data with no drawing content at all.
func emptyPathData(d string) bool {
	return strings.TrimSpace(d) == ""
}

// dparser interprets SVG path data, dispatching absolute commands to
// a [si.PathSink]. Relative coordinates are made absolute against the
// tracked current point; shorthand curve commands pass through as
// shorthands, since the consumer reflects the prior control point.
type dparser struct {
	lex   *gl.Lexer
	sink  si.PathSink
	cur   math32.Vector2
	start math32.Vector2
	began bool
}

// walkPathString parses SVG path data into the sink.
func walkPathString(d string, sink si.PathSink) error {
	l, _ := gl.Lex("pathdata", d)
	p := &dparser{lex: l, sink: sink}
	for {
		i := p.lex.NextItem()
		switch i.Type {
		case gl.ItemError:
			return fmt.Errorf("svg: path data: %s", i.Value)
		case gl.ItemEOS:
			return nil
		case gl.ItemLetter:
			if err := p.command(i.Value); err != nil {
				return err
			}
		}
	}
}

// hasNumber skips separators and reports whether a number follows,
// without consuming it.
func (p *dparser) hasNumber() bool {
	p.lex.ConsumeWhiteSpace()
	if p.lex.PeekItem().Type == gl.ItemComma {
		p.lex.NextItem()
		p.lex.ConsumeWhiteSpace()
	}
	return p.lex.PeekItem().Type == gl.ItemNumber
}

func (p *dparser) number() (float32, error) {
	p.lex.ConsumeWhiteSpace()
	if p.lex.PeekItem().Type == gl.ItemComma {
		p.lex.NextItem()
		p.lex.ConsumeWhiteSpace()
	}
	i := p.lex.NextItem()
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("svg: path data: expected number, got %q", i.Value)
	}
	v, err := strconv.ParseFloat(i.Value, 32)
	if err != nil {
		return 0, fmt.Errorf("svg: path data: bad number %q", i.Value)
	}
	return float32(v), nil
}

func (p *dparser) point(rel bool) (math32.Vector2, error) {
	x, err := p.number()
	if err != nil {
		return math32.Vector2{}, err
	}
	y, err := p.number()
	if err != nil {
		return math32.Vector2{}, err
	}
	pt := math32.Vec2(x, y)
	if rel {
		pt = pt.Add(p.cur)
	}
	return pt, nil
}

func (p *dparser) command(c string) error {
	if !p.began && c != "M" && c != "m" {
		return fmt.Errorf("svg: path data: command %q before moveto", c)
	}
	switch c {
	case "M", "m":
		return p.moveTo(c == "m")
	case "L", "l":
		return p.lineTo(c == "l")
	case "H", "h":
		return p.hvLineTo(c == "h", true)
	case "V", "v":
		return p.hvLineTo(c == "v", false)
	case "C", "c":
		return p.cubicTo(c == "c")
	case "S", "s":
		return p.cubicShorthand(c == "s")
	case "Q", "q":
		return p.quadTo(c == "q")
	case "T", "t":
		return p.quadShorthand(c == "t")
	case "A", "a":
		return p.arcTo(c == "a")
	case "Z", "z":
		p.sink.Close()
		p.cur = p.start
		return nil
	}
	return fmt.Errorf("svg: path data: unknown command %q", c)
}

func (p *dparser) moveTo(rel bool) error {
	pt, err := p.point(rel)
	if err != nil {
		return err
	}
	p.sink.MoveTo(pt)
	p.cur, p.start, p.began = pt, pt, true
	// additional pairs are implicit line-tos
	for p.hasNumber() {
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.LineTo(pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) lineTo(rel bool) error {
	for first := true; first || p.hasNumber(); first = false {
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.LineTo(pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) hvLineTo(rel, horiz bool) error {
	for first := true; first || p.hasNumber(); first = false {
		v, err := p.number()
		if err != nil {
			return err
		}
		pt := p.cur
		if horiz {
			if rel {
				pt.X += v
			} else {
				pt.X = v
			}
		} else {
			if rel {
				pt.Y += v
			} else {
				pt.Y = v
			}
		}
		p.sink.LineTo(pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) cubicTo(rel bool) error {
	for first := true; first || p.hasNumber(); first = false {
		c1, err := p.point(rel)
		if err != nil {
			return err
		}
		c2, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.CubicTo(c1, c2, pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) cubicShorthand(rel bool) error {
	for first := true; first || p.hasNumber(); first = false {
		c2, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.CubicToShorthand(c2, pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) quadTo(rel bool) error {
	for first := true; first || p.hasNumber(); first = false {
		c, err := p.point(rel)
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.QuadTo(c, pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) quadShorthand(rel bool) error {
	for first := true; first || p.hasNumber(); first = false {
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.QuadToShorthand(pt)
		p.cur = pt
	}
	return nil
}

func (p *dparser) arcTo(rel bool) error {
	for first := true; first || p.hasNumber(); first = false {
		rx, err := p.number()
		if err != nil {
			return err
		}
		ry, err := p.number()
		if err != nil {
			return err
		}
		rot, err := p.number()
		if err != nil {
			return err
		}
		large, err := p.number()
		if err != nil {
			return err
		}
		sweep, err := p.number()
		if err != nil {
			return err
		}
		pt, err := p.point(rel)
		if err != nil {
			return err
		}
		p.sink.ArcToPoint(pt, math32.Vec2(math32.Abs(rx), math32.Abs(ry)),
			rot, large != 0, sweep != 0)
		p.cur = pt
	}
	return nil
}
