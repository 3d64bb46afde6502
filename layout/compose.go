package layout

import (
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/troff"
)

// Concat joins two boxes side by side on a common baseline. The second
// box's rendition is appended to the first one's register, the second
// box is released.
func (s *Session) Concat(p1, p2 box.Handle) (box.Handle, error) {
	if err := s.need(p1, p2); err != nil {
		return box.None, err
	}
	h1, b1 := s.Extent(p1)
	h2, b2 := s.Extent(p2)
	b := tyqn.Max(b1, b2)
	h := b + tyqn.Max(h1-b1, h2-b2)
	s.buf.Add(p1.Register(), `"`+troff.Interp(p2.Register()))
	s.pool.SetExtent(p1, h, b)
	s.pool.Free(p2)
	tracer().Debugf("concat %v %v; h=%v b=%v", p1, p2, h, b)
	return p1, nil
}

// Fraction stacks num over den, separated by a rule as wide as the wider
// of the two. Both are centered against that width; the result's
// baseline sits one half line above the bottom of the denominator.
func (s *Session) Fraction(num, den box.Handle) (box.Handle, error) {
	if err := s.need(num, den); err != nil {
		return box.None, err
	}
	treg, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	h1, b1 := s.Extent(num)
	h2, b2 := s.Extent(den)
	h := h1 + h2 + tyqn.V(2)
	b := h2 - tyqn.V(1)
	r1, r2, rt := num.Register(), den.Register(), treg.Register()
	s.measure(num)
	s.measure(den)
	s.buf.SetNumber(rt, troff.Number(r1))
	s.buf.Printf(".if \\n(%s>\\n(%s .nr %s \\n(%s\n", r2, rt, rt, r2)
	s.buf.Printf(".ds %s \\v'%du'\\h'(\\n(%su-\\n(%su)/2u'\\*(%s\\\n",
		r1, (h2 - b2 - tyqn.V(1)).Units(), rt, r2, r2)
	s.buf.Printf("\\h'(-(\\n(%su-\\n(%su))/2u'\\v'%du'\\*(%s\\\n",
		rt, r1, (-h2 + b2 - b1).Units(), r1)
	s.buf.Printf("\\h'(-(\\n(%su-\\n(%su))/2u'\\v'%du'%s\\v'%du'\n",
		rt, r1, b1.Units(), troff.HLineReg(rt), tyqn.V(1).Units())
	s.pool.SetExtent(num, h, b)
	s.pool.Free(den)
	s.pool.Free(treg)
	tracer().Debugf("fraction %v over %v; h=%v b=%v", num, den, h, b)
	return num, nil
}

// Script attaches a subscript, a superscript, or both to base. The shift
// is one half line below or above the reference line, reduced when the
// base's own extent already provides the clearance. With both scripts
// present the shifts are computed independently against the unshifted
// base and the scripts are stacked at the base's right edge.
func (s *Session) Script(base, sub, sup box.Handle) (box.Handle, error) {
	switch {
	case sub.IsNone() && sup.IsNone():
		return base, s.need(base)
	case sup.IsNone():
		return s.shiftb(base, sub, false)
	case sub.IsNone():
		return s.shiftb(base, sup, true)
	}
	return s.shift2(base, sub, sup)
}

// shiftb sets a single script next to base.
func (s *Session) shiftb(base, script box.Handle, super bool) (box.Handle, error) {
	if err := s.need(base, script); err != nil {
		return box.None, err
	}
	h1, b1 := s.Extent(base)
	h2, b2 := s.Extent(script)
	d1 := tyqn.V(1)
	var shval tyqn.Vert
	if super {
		shval = -d1 - b2
		if d1+h2 < h1-b1 {
			shval = -(h1 - b1) + (h2 - b2) - d1
		}
		s.pool.SetExtent(base, h1+tyqn.Max(0, h2-d1), b1)
	} else {
		shval = -d1 + h2 - b2
		if d1+b1 > h2 {
			shval = b1 - b2
		}
		grow := tyqn.Max(0, h2-b1-d1)
		s.pool.SetExtent(base, h1+grow, b1+grow)
	}
	s.buf.Add(base.Register(),
		troff.VMove(shval)+troff.Interp(script.Register())+troff.VMove(-shval))
	s.pool.Free(script)
	tracer().Debugf("script %v on %v, shift %v", script, base, shval)
	return base, nil
}

// shift2 sets a subscript and a superscript at the same right edge.
func (s *Session) shift2(base, sub, sup box.Handle) (box.Handle, error) {
	if err := s.need(base, sub, sup); err != nil {
		return box.None, err
	}
	treg, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	h1, b1 := s.Extent(base)
	h2, b2 := s.Extent(sub)
	h3, b3 := s.Extent(sup)
	d1 := tyqn.V(1)
	subsh := -d1 + h2 - b2
	if d1+b1 > h2 {
		subsh = b1 - b2
	}
	supsh := -d1 - b3
	if d1+h3 < h1-b1 {
		supsh = -(h1 - b1) + (h3 - b3) - d1
	}
	h := h1 + tyqn.Max(0, h3-d1) + tyqn.Max(0, h2-b1-d1)
	b := b1 + tyqn.Max(0, h2-b1-d1)
	r1, r2, r3, rt := base.Register(), sub.Register(), sup.Register(), treg.Register()
	s.measure(sub)
	s.measure(sup)
	s.buf.SetNumber(rt, troff.Number(r3))
	s.buf.Printf(".if \\n(%s>\\n(%s .nr %s \\n(%s\n", r2, rt, rt, r2)
	s.buf.Printf(".as %s \\v'%du'\\*(%s\\h'-\\n(%su'\\v'%du'\\\n",
		r1, subsh.Units(), r2, r2, (-subsh + supsh).Units())
	s.buf.Printf("\\*(%s\\h'-\\n(%su+\\n(%su'\\v'%du'\n",
		r3, r3, rt, (-supsh).Units())
	s.pool.SetExtent(base, h, b)
	s.pool.Free(sub)
	s.pool.Free(sup)
	s.pool.Free(treg)
	tracer().Debugf("scripts %v, %v on %v; h=%v b=%v", sub, sup, base, h, b)
	return base, nil
}

// Sqrt draws a radical over arg: a diagonal, a vertical rule as tall as
// the box, and a horizontal rule across its width. The box grows by one
// half line to clear the overbar.
func (s *Session) Sqrt(arg box.Handle) (box.Handle, error) {
	if err := s.need(arg); err != nil {
		return box.None, err
	}
	h, b := s.Extent(arg)
	r := arg.Register()
	s.measure(arg)
	s.buf.Printf(".ds %s \\v'%du'\\e\\L'%du'%s", r, b.Units(), (-h).Units(), troff.HLineReg(r))
	s.buf.Printf("\\v'%du'\\h'-\\n(%su'\\*(%s\n", (h - b).Units(), r, r)
	s.pool.SetExtent(arg, h+tyqn.V(1), b)
	tracer().Debugf("sqrt %v; h=%v b=%v", arg, h+tyqn.V(1), b)
	return arg, nil
}

// FromTo centers a "from" box below and a "to" box above a central
// operator box; either limit may be absent. All three are centered to
// the widest of them, the height accumulates all present parts, and the
// baseline accounts for the "from" part only.
func (s *Session) FromTo(base, from, to box.Handle) (box.Handle, error) {
	operands := []box.Handle{base}
	if !from.IsNone() {
		operands = append(operands, from)
	}
	if !to.IsNone() {
		operands = append(operands, to)
	}
	if err := s.need(operands...); err != nil {
		return box.None, err
	}
	res, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	h1, b1 := s.Extent(base)
	h := h1
	var below tyqn.Vert
	r, r1 := res.Register(), base.Register()
	s.measure(base)
	s.buf.SetNumber(r, troff.Number(r1))
	if !from.IsNone() {
		s.measure(from)
		s.buf.Printf(".if \\n(%s>\\n(%s .nr %s \\n(%s\n", from.Register(), r, r, from.Register())
		h += s.pool.Height(from)
		below = s.pool.Height(from)
	}
	if !to.IsNone() {
		s.measure(to)
		s.buf.Printf(".if \\n(%s>\\n(%s .nr %s \\n(%s\n", to.Register(), r, r, to.Register())
		h += s.pool.Height(to)
	}
	s.buf.Printf(".ds %s ", r)
	if !from.IsNone() {
		h2, b2 := s.Extent(from)
		r2 := from.Register()
		down := h2 - b2 + b1
		s.buf.Printf("\\v'%du'\\h'\\n(%su-\\n(%su/2u'\\*(%s", down.Units(), r, r2, r2)
		s.buf.Printf("\\h'-\\n(%su-\\n(%su/2u'\\v'%du'\\\n", r, r2, (-down).Units())
	}
	s.buf.Printf("\\h'\\n(%su-\\n(%su/2u'\\*(%s\\h'\\n(%su-\\n(%su+2u/2u'\\\n",
		r, r1, r1, r, r1)
	if !to.IsNone() {
		r3 := to.Register()
		up := h1 - b1 + s.pool.Baseline(to)
		s.buf.Printf("\\v'%du'\\h'-\\n(%su-\\n(%su/2u'\\*(%s\\h'\\n(%su-\\n(%su/2u'\\v'%du'\\\n",
			(-up).Units(), r, r3, r3, r, r3, up.Units())
	}
	s.buf.Printf("\n")
	s.pool.SetExtent(res, h, below+b1)
	s.pool.Free(base)
	if !from.IsNone() {
		s.pool.Free(from)
	}
	if !to.IsNone() {
		s.pool.Free(to)
	}
	tracer().Debugf("limits %v on %v; h=%v b=%v", res, base, h, below+b1)
	return res, nil
}
