// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package si

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// pathCommand is one entry in the nybble-packed path command stream.
// Two commands are packed per byte, high nybble first. Commands with
// index 15 or above are encoded as the escape nybble 15 followed by
// index minus 14. The end command has index 0 so that a path ending
// on a half-filled byte terminates on the trailing zero low nybble.
type pathCommand byte

const (
	cmdEnd pathCommand = iota
	cmdMoveTo
	cmdLineTo
	cmdCubicTo
	cmdCubicToShorthand
	cmdQuadTo
	cmdQuadToShorthand
	cmdClose
	cmdCircle
	cmdEllipse
	cmdArcCircSmallCCW
	cmdArcCircSmallCW
	cmdArcCircLargeCCW
	cmdArcCircLargeCW
	cmdArcEllipseSmallCCW
	cmdArcEllipseSmallCW
	cmdArcEllipseLargeCCW
	cmdArcEllipseLargeCW

	numPathCommands
)

const escapeNybble = 15

// PathSink receives decoded path geometry. The shorthand cubic and
// quadratic commands omit the first control point; the consumer
// reflects the previous control point about the current endpoint.
type PathSink interface {
	MoveTo(p math32.Vector2)
	LineTo(p math32.Vector2)
	CubicTo(c1, c2, p math32.Vector2)
	CubicToShorthand(c2, p math32.Vector2)
	QuadTo(c, p math32.Vector2)
	QuadToShorthand(p math32.Vector2)
	Close()

	// Oval adds an axis-aligned oval inscribed in the given box.
	Oval(b math32.Box2)

	// ArcToPoint adds an SVG-style elliptical arc from the current
	// point to p, with the given radii and x-axis rotation in degrees.
	ArcToPoint(p, radius math32.Vector2, rotation float32, largeArc, clockwise bool)
}

// PathSource supplies path geometry by replaying it into a sink.
type PathSource interface {
	WalkPath(sink PathSink) error
}

// discardPathSink consumes path events without effect. The traverser
// uses it to advance past inline path data deterministically.
type discardPathSink struct{}

func (discardPathSink) MoveTo(p math32.Vector2)                     {}
func (discardPathSink) LineTo(p math32.Vector2)                     {}
func (discardPathSink) CubicTo(c1, c2, p math32.Vector2)            {}
func (discardPathSink) CubicToShorthand(c2, p math32.Vector2)       {}
func (discardPathSink) QuadTo(c, p math32.Vector2)                  {}
func (discardPathSink) QuadToShorthand(p math32.Vector2)            {}
func (discardPathSink) Close()                                      {}
func (discardPathSink) Oval(b math32.Box2)                          {}
func (discardPathSink) ArcToPoint(p, r math32.Vector2, rot float32, la, cw bool) {}

// pathEncoder accumulates the nybble-packed command bytes and float
// operands of one path. It implements [PathSink] so shapes and parsed
// path data can be encoded directly. Calling end finishes the stream;
// further events panic.
type pathEncoder struct {
	bytes   []byte
	args    []float32
	pending byte
	half    bool
	done    bool
}

func (pe *pathEncoder) nybble(n byte) {
	if pe.done {
		panic("si: path event after end of path")
	}
	if pe.half {
		pe.bytes = append(pe.bytes, pe.pending<<4|n)
		pe.half = false
	} else {
		pe.pending = n
		pe.half = true
	}
}

func (pe *pathEncoder) command(c pathCommand) {
	if c >= escapeNybble {
		pe.nybble(escapeNybble)
		pe.nybble(byte(c) - 14)
	} else {
		pe.nybble(byte(c))
	}
}

func (pe *pathEncoder) floats(vs ...float32) {
	pe.args = append(pe.args, vs...)
}

func (pe *pathEncoder) MoveTo(p math32.Vector2) {
	pe.command(cmdMoveTo)
	pe.floats(p.X, p.Y)
}

func (pe *pathEncoder) LineTo(p math32.Vector2) {
	pe.command(cmdLineTo)
	pe.floats(p.X, p.Y)
}

func (pe *pathEncoder) CubicTo(c1, c2, p math32.Vector2) {
	pe.command(cmdCubicTo)
	pe.floats(c1.X, c1.Y, c2.X, c2.Y, p.X, p.Y)
}

func (pe *pathEncoder) CubicToShorthand(c2, p math32.Vector2) {
	pe.command(cmdCubicToShorthand)
	pe.floats(c2.X, c2.Y, p.X, p.Y)
}

func (pe *pathEncoder) QuadTo(c, p math32.Vector2) {
	pe.command(cmdQuadTo)
	pe.floats(c.X, c.Y, p.X, p.Y)
}

func (pe *pathEncoder) QuadToShorthand(p math32.Vector2) {
	pe.command(cmdQuadToShorthand)
	pe.floats(p.X, p.Y)
}

func (pe *pathEncoder) Close() {
	pe.command(cmdClose)
}

func (pe *pathEncoder) Oval(b math32.Box2) {
	sz := b.Size()
	if sz.X == sz.Y {
		pe.command(cmdCircle)
		pe.floats(b.Min.X, b.Min.Y, sz.X)
	} else {
		pe.command(cmdEllipse)
		pe.floats(b.Min.X, b.Min.Y, sz.X, sz.Y)
	}
}

func (pe *pathEncoder) ArcToPoint(p, radius math32.Vector2, rotation float32, largeArc, clockwise bool) {
	circ := radius.X == radius.Y && rotation == 0
	var c pathCommand
	switch {
	case circ && !largeArc && !clockwise:
		c = cmdArcCircSmallCCW
	case circ && !largeArc && clockwise:
		c = cmdArcCircSmallCW
	case circ && largeArc && !clockwise:
		c = cmdArcCircLargeCCW
	case circ && largeArc:
		c = cmdArcCircLargeCW
	case !largeArc && !clockwise:
		c = cmdArcEllipseSmallCCW
	case !largeArc && clockwise:
		c = cmdArcEllipseSmallCW
	case !clockwise:
		c = cmdArcEllipseLargeCCW
	default:
		c = cmdArcEllipseLargeCW
	}
	pe.command(c)
	if circ {
		pe.floats(p.X, p.Y, radius.X)
	} else {
		pe.floats(p.X, p.Y, radius.X, radius.Y, rotation)
	}
}

// end flushes the pending nybble and terminates the stream. Because
// the end command is index 0, a half-filled trailing byte encodes it
// in its zero low nybble; an empty pending buffer emits a 0x00 byte.
func (pe *pathEncoder) end() {
	if pe.half {
		pe.bytes = append(pe.bytes, pe.pending<<4)
		pe.half = false
	} else {
		pe.bytes = append(pe.bytes, 0)
	}
	pe.done = true
}

// nybbleReader yields the nybbles of a command stream, high nybble of
// each byte first.
type nybbleReader struct {
	r       *byteReader
	pending byte
	have    bool
}

func (nr *nybbleReader) next() (byte, error) {
	if nr.have {
		nr.have = false
		return nr.pending, nil
	}
	b, err := nr.r.u8()
	if err != nil {
		return 0, err
	}
	nr.pending = b & 0xf
	nr.have = true
	return b >> 4, nil
}

// walkEncodedPath decodes one path from the command bytes and float
// operands, dispatching each command to the sink, and consuming the
// terminating end byte. It is the exact dual of [pathEncoder].
func walkEncodedPath(children *byteReader, args floatReader, sink PathSink) error {
	nr := nybbleReader{r: children}
	rd2 := func() (math32.Vector2, error) {
		x, err := args.read()
		if err != nil {
			return math32.Vector2{}, err
		}
		y, err := args.read()
		return math32.Vec2(x, y), err
	}
	for {
		n, err := nr.next()
		if err != nil {
			return err
		}
		cmd := pathCommand(n)
		if n == escapeNybble {
			m, err := nr.next()
			if err != nil {
				return err
			}
			cmd = pathCommand(m + 14)
		}
		switch cmd {
		case cmdEnd:
			return nil
		case cmdMoveTo:
			p, err := rd2()
			if err != nil {
				return err
			}
			sink.MoveTo(p)
		case cmdLineTo:
			p, err := rd2()
			if err != nil {
				return err
			}
			sink.LineTo(p)
		case cmdCubicTo:
			c1, err := rd2()
			if err != nil {
				return err
			}
			c2, err := rd2()
			if err != nil {
				return err
			}
			p, err := rd2()
			if err != nil {
				return err
			}
			sink.CubicTo(c1, c2, p)
		case cmdCubicToShorthand:
			c2, err := rd2()
			if err != nil {
				return err
			}
			p, err := rd2()
			if err != nil {
				return err
			}
			sink.CubicToShorthand(c2, p)
		case cmdQuadTo:
			c, err := rd2()
			if err != nil {
				return err
			}
			p, err := rd2()
			if err != nil {
				return err
			}
			sink.QuadTo(c, p)
		case cmdQuadToShorthand:
			p, err := rd2()
			if err != nil {
				return err
			}
			sink.QuadToShorthand(p)
		case cmdClose:
			sink.Close()
		case cmdCircle:
			p, err := rd2()
			if err != nil {
				return err
			}
			w, err := args.read()
			if err != nil {
				return err
			}
			sink.Oval(math32.B2(p.X, p.Y, p.X+w, p.Y+w))
		case cmdEllipse:
			p, err := rd2()
			if err != nil {
				return err
			}
			sz, err := rd2()
			if err != nil {
				return err
			}
			sink.Oval(math32.B2(p.X, p.Y, p.X+sz.X, p.Y+sz.Y))
		case cmdArcCircSmallCCW, cmdArcCircSmallCW, cmdArcCircLargeCCW, cmdArcCircLargeCW:
			p, err := rd2()
			if err != nil {
				return err
			}
			r, err := args.read()
			if err != nil {
				return err
			}
			large := cmd == cmdArcCircLargeCCW || cmd == cmdArcCircLargeCW
			cw := cmd == cmdArcCircSmallCW || cmd == cmdArcCircLargeCW
			sink.ArcToPoint(p, math32.Vec2(r, r), 0, large, cw)
		case cmdArcEllipseSmallCCW, cmdArcEllipseSmallCW, cmdArcEllipseLargeCCW, cmdArcEllipseLargeCW:
			p, err := rd2()
			if err != nil {
				return err
			}
			radius, err := rd2()
			if err != nil {
				return err
			}
			rot, err := args.read()
			if err != nil {
				return err
			}
			large := cmd == cmdArcEllipseLargeCCW || cmd == cmdArcEllipseLargeCW
			cw := cmd == cmdArcEllipseSmallCW || cmd == cmdArcEllipseLargeCW
			sink.ArcToPoint(p, radius, rot, large, cw)
		default:
			return fmt.Errorf("%w: path command %d", ErrBadOpcode, cmd)
		}
	}
}
