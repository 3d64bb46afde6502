package layout

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/grammar"
	"github.com/npillmayer/tyqn/troff"
	"github.com/shopspring/decimal"
)

// markRegister is the number register that carries the position captured
// by Mark until the next Lineup reads it.
const markRegister = "97"

// Fence surrounds body with delimiters scaled to its height. The unit
// count is at least 2, and odd and at least 3 when a curly brace is
// involved, so the brace gets a true center piece. The body is
// re-centered against the taller delimiter extent. A zero right
// delimiter leaves the right side open.
func (s *Session) Fence(left byte, body box.Handle, right byte) (box.Handle, error) {
	if err := s.need(body); err != nil {
		return box.None, err
	}
	h1, b1 := s.Extent(body)
	n := int(tyqn.Max(b1+tyqn.V(1), h1-b1-tyqn.V(1))) / int(tyqn.V(1))
	if n < 2 {
		n = 2
	}
	m := n - 2
	if left == '{' || right == '}' {
		if n%2 == 0 {
			n++
		}
		if n < 3 {
			n = 3
		}
		m = n - 3
	}
	h := tyqn.V(2 * n)
	b := tyqn.V(2 * (n / 2))
	if n%2 == 0 {
		b -= tyqn.V(1)
	}
	v := b1 - h1/2 + tyqn.V(1)

	r := body.Register()
	s.buf.Printf(".ds %s \\v'%du'", r, v.Units())
	s.emitDelim(left, m, true)
	s.buf.Printf("\\v'%du'\\*(%s", (-v).Units(), r)
	if right != 0 {
		s.buf.Printf("\\v'%du'", v.Units())
		s.emitDelim(right, m, false)
		s.buf.Printf("\\v'%du'", (-v).Units())
	}
	s.buf.Printf("\n")
	s.pool.SetExtent(body, h, b)
	tracer().Debugf("fence %q %v %q: %d units, h=%v b=%v", left, body, right, n, h, b)
	return body, nil
}

// emitDelim writes one delimiter pile with m extension pieces.
func (s *Session) emitDelim(c byte, m int, isLeft bool) {
	switch c {
	case 0, 'n': // "none", keep the side open
	case 'f': // floor
		if isLeft {
			s.bracket(m, `\(bv`, `\(bv`, `\(lf`)
		} else {
			s.bracket(m, `\(bv`, `\(bv`, `\(rf`)
		}
	case 'c': // ceiling
		if isLeft {
			s.bracket(m, `\(lc`, `\(bv`, `\(bv`)
		} else {
			s.bracket(m, `\(rc`, `\(bv`, `\(bv`)
		}
	case '{':
		s.brace(m, `\(lt`, `\(lk`, `\(lb`)
	case '}':
		s.brace(m, `\(rt`, `\(rk`, `\(rb`)
	case '(':
		s.bracket(m, `\(lt`, `\(bv`, `\(lb`)
	case ')':
		s.bracket(m, `\(rt`, `\(bv`, `\(rb`)
	case '[':
		s.bracket(m, `\(lc`, `\(bv`, `\(lf`)
	case ']':
		s.bracket(m, `\(rc`, `\(bv`, `\(rf`)
	default: // any other character repeats vertically
		g := string(rune(c))
		s.bracket(m, g, g, g)
	}
}

// bracket writes a delimiter built from a top cap, m extension pieces
// and a bottom cap.
func (s *Session) bracket(m int, top, ext, bot string) {
	var pieces strings.Builder
	pieces.WriteString(top)
	for j := 0; j < m; j++ {
		pieces.WriteString(ext)
	}
	pieces.WriteString(bot)
	s.buf.Printf("%s", troff.Bracket(pieces.String()))
}

// brace writes a curly brace: caps, extensions, and a center piece.
func (s *Session) brace(m int, top, center, bot string) {
	var pieces strings.Builder
	pieces.WriteString(top)
	for j := 0; j < m; j += 2 {
		pieces.WriteString(`\(bv`)
	}
	pieces.WriteString(center)
	for j := 0; j < m; j += 2 {
		pieces.WriteString(`\(bv`)
	}
	pieces.WriteString(bot)
	s.buf.Printf("%s", troff.Bracket(pieces.String()))
}

// Accent sets a diacritical mark over (or a line under) base, centered
// against the base's measured width. The base grows by one half line.
func (s *Session) Accent(kind grammar.Accent, base box.Handle) (box.Handle, error) {
	if err := s.need(base); err != nil {
		return box.None, err
	}
	c, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	r, rc := base.Register(), c.Register()
	s.measure(base)
	switch kind {
	case grammar.AccentVec, grammar.AccentDyad:
		s.buf.Printf(".ds %s \\v'-1'_\\v'1'\n", rc)
	case grammar.AccentHat:
		s.buf.Printf(".ds %s ^\n", rc)
	case grammar.AccentTilde:
		s.buf.Printf(".ds %s ~\n", rc)
	case grammar.AccentDot:
		s.buf.Printf(".ds %s \\v'-1'.\\v'1'\n", rc)
	case grammar.AccentDotDot:
		s.buf.Printf(".ds %s \\v'-1'..\\v'1'\n", rc)
	case grammar.AccentBar:
		s.buf.Printf(".ds %s \\v'-1'%s\\v'1'\n", rc, troff.HLineReg(r))
	case grammar.AccentUnder:
		s.buf.Printf(".ds %s %s\n", rc, troff.HLineReg(r))
	default:
		s.pool.Free(c)
		return box.None, fmt.Errorf("layout: unknown diacritical mark %q", kind)
	}
	s.measure(c)
	s.buf.Printf(".as %s \\h'-\\n(%su-\\n(%su/2u'\\*(%s", r, r, rc, rc)
	s.buf.Printf("\\h'-\\n(%su+\\n(%su/2u'\n", rc, r)
	h, b := s.Extent(base)
	s.pool.SetExtent(base, h+tyqn.V(1), b)
	s.pool.Free(c)
	tracer().Debugf("accent %c over %v; h=%v", kind, base, h+tyqn.V(1))
	return base, nil
}

// Move nudges arg by amount hundredths of an em in the given direction.
// The motion is undone after the box, and the box's logical extent does
// not change: a move is a rendering adjustment, not layout.
func (s *Session) Move(dir grammar.Direction, amount int, arg box.Handle) (box.Handle, error) {
	if err := s.need(arg); err != nil {
		return box.None, err
	}
	ems := decimal.New(int64(amount), -2).StringFixed(2)
	r := arg.Register()
	switch dir {
	case grammar.MoveForward:
		s.buf.Printf(".ds %s \\h'%sm'\\*(%s\n", r, ems, r)
	case grammar.MoveBack:
		s.buf.Printf(".ds %s \\h'-%sm'\\*(%s\n", r, ems, r)
	case grammar.MoveUp:
		s.buf.Printf(".ds %s \\v'-%sm'\\*(%s\\v'%sm'\n", r, ems, r, ems)
	case grammar.MoveDown:
		s.buf.Printf(".ds %s \\v'%sm'\\*(%s\\v'-%sm'\n", r, ems, r, ems)
	default:
		return box.None, fmt.Errorf("layout: unknown move direction %d", dir)
	}
	tracer().Debugf("move %v by %sm, direction %d", arg, ems, dir)
	return arg, nil
}

// Mark captures the current horizontal position, either appended to an
// existing box or as a standalone zero-extent box.
func (s *Session) Mark(arg box.Handle) (box.Handle, error) {
	if !arg.IsNone() {
		if err := s.need(arg); err != nil {
			return box.None, err
		}
		s.buf.Add(arg.Register(), troff.Mark(markRegister))
		return arg, nil
	}
	h, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	s.buf.Define(h.Register(), troff.Mark(markRegister))
	s.measure(h)
	s.pool.SetExtent(h, 0, 0)
	return h, nil
}

// Lineup moves to the position captured by Mark, either re-emitting an
// existing box right-aligned at that position or as a standalone
// zero-extent motion box.
func (s *Session) Lineup(arg box.Handle) (box.Handle, error) {
	if !arg.IsNone() {
		if err := s.need(arg); err != nil {
			return box.None, err
		}
		r := arg.Register()
		s.measure(arg)
		s.buf.Printf(".ds %s \\h'|\\n(%su-\\n(%su'\\*(%s\n", r, markRegister, r, r)
		return arg, nil
	}
	h, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	s.buf.Define(h.Register(), `\h'|`+troff.Number(markRegister)+`u'`)
	s.measure(h)
	s.pool.SetExtent(h, 0, 0)
	return h, nil
}
