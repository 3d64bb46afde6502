package layout

import (
	"fmt"

	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/grammar"
	"github.com/npillmayer/tyqn/troff"
)

// Pile stacks elements vertically, first element on top. The gap between
// elements is one half line, or zero in stack mode. The pile's baseline
// is taken from the middle element for an odd count, or placed halfway
// between the two middle elements for an even count. Elements are
// aligned against the widest one per the pile mode and released.
func (s *Session) Pile(mode grammar.PileMode, elems []box.Handle) (box.Handle, error) {
	if err := s.need(elems...); err != nil {
		return box.None, err
	}
	res, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	r := res.Register()
	if len(elems) == 0 {
		s.buf.Printf(".ds %s \"\"\n", r)
		return res, nil
	}
	gap := tyqn.V(1)
	if mode == grammar.StackPile {
		gap = 0
	}
	n := len(elems)
	mid := (n+1)/2 - 1

	var h tyqn.Vert
	for _, e := range elems {
		h += s.pool.Height(e)
	}
	h += tyqn.Vert((n - 1)) * gap

	var b tyqn.Vert
	for i := 0; i < mid; i++ {
		b += s.pool.Height(elems[i]) + gap
	}
	if n%2 == 1 {
		b += s.pool.Baseline(elems[mid])
	} else {
		b += s.pool.Height(elems[mid]) + gap/2
	}
	s.pool.SetExtent(res, h, b)

	// the result's number register collects the widest element width
	s.measure(elems[0])
	s.buf.SetNumber(r, troff.Number(elems[0].Register()))
	for _, e := range elems[1:] {
		s.measure(e)
		s.buf.Printf(".if \\n(%s>\\n(%s .nr %s \\n(%s\n", e.Register(), r, r, e.Register())
	}

	s.buf.Printf(".ds %s \\v'%du'", r, b.Units())
	s.buf.Printf("\\\n")
	for i := n - 1; i >= 0; i-- {
		hi, bi := s.Extent(elems[i])
		ri := elems[i].Register()
		s.buf.Printf("\\v'-%du'", bi.Units())
		switch mode {
		case grammar.LeftPile:
			s.buf.Printf("\\*(%s", ri)
		case grammar.RightPile:
			s.buf.Printf("\\h'(\\n(%su-\\n(%su)'\\*(%s\\h'(-\\n(%su+\\n(%su))'",
				r, ri, ri, r, ri)
		case grammar.CenterPile, grammar.StackPile:
			s.buf.Printf("\\h'((\\n(%su-\\n(%su))/2u)'\\*(%s\\h'(-(\\n(%su-\\n(%su))/2u)'",
				r, ri, ri, r, ri)
		default:
			s.buf.Printf("\\*(%s", ri)
		}
		if i > 0 {
			s.buf.Printf("\\v'-%du'", (hi - bi + gap).Units())
		}
		s.buf.Printf("\\")
		if i > 0 {
			s.buf.Printf("\n")
		}
	}
	s.buf.Printf("\\v'%du'\n", (h - b + gap).Units())

	for _, e := range elems {
		s.pool.Free(e)
	}
	tracer().Debugf("%c pile %v of %d elements; h=%v b=%v", mode, res, n, h, b)
	return res, nil
}

// matrixCell is one entry of the flat layout list a matrix is built
// over: per column one row-count cell, the element cells, and one
// alignment cell. Columns therefore start rows+2 cells apart.
type matrixCell struct {
	count int
	elem  box.Handle
	mode  grammar.PileMode
}

// flattenColumns lays the columns out into the flat list.
func flattenColumns(cols []grammar.Column) []matrixCell {
	flat := make([]matrixCell, 0, len(cols)*(len(cols[0].Elems)+2))
	for _, c := range cols {
		flat = append(flat, matrixCell{count: len(c.Elems)})
		for _, e := range c.Elems {
			flat = append(flat, matrixCell{elem: e})
		}
		flat = append(flat, matrixCell{mode: c.Mode})
	}
	return flat
}

// rowStride is the distance between the cells of one row in adjacent
// columns of the flat layout list.
func rowStride(nrow int) int {
	return nrow + 2
}

// Matrix aligns columns of piles row by row. Every row is normalized to
// uniform height above and depth below the baseline before the columns
// are piled, so the rows of neighboring columns line up. The column
// piles are then joined left to right with a fixed gap.
func (s *Session) Matrix(cols []grammar.Column) (box.Handle, error) {
	if len(cols) == 0 {
		return box.None, fmt.Errorf("layout: matrix without columns")
	}
	nrow := len(cols[0].Elems)
	if nrow == 0 {
		return box.None, fmt.Errorf("layout: matrix with empty columns")
	}
	for i, c := range cols {
		if len(c.Elems) != nrow {
			return box.None, fmt.Errorf("layout: matrix column %d has %d rows, want %d",
				i+1, len(c.Elems), nrow)
		}
		if err := s.need(c.Elems...); err != nil {
			return box.None, err
		}
	}

	flat := flattenColumns(cols)
	stride := rowStride(nrow)
	for k := 1; k <= nrow; k++ {
		var hb, b tyqn.Vert
		for j := k; j < len(flat); j += stride {
			e := flat[j].elem
			if e.IsNone() {
				return box.None, fmt.Errorf("layout: matrix layout list corrupted at cell %d", j)
			}
			hb = tyqn.Max(hb, s.pool.Height(e)-s.pool.Baseline(e))
			b = tyqn.Max(b, s.pool.Baseline(e))
		}
		tracer().Debugf("matrix row %d: above=%v below=%v", k, hb, b)
		for j := k; j < len(flat); j += stride {
			if err := s.pool.SetExtent(flat[j].elem, b+hb, b); err != nil {
				return box.None, err
			}
		}
	}

	piles := make([]box.Handle, len(cols))
	for i, c := range cols {
		p, err := s.Pile(c.Mode, c.Elems)
		if err != nil {
			return box.None, err
		}
		piles[i] = p
	}

	res, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	s.pool.SetExtent(res, s.pool.Height(piles[0]), s.pool.Baseline(piles[0]))
	s.buf.Printf(".ds %s \"", res.Register())
	for i, p := range piles {
		sep := `\ \ `
		if i == len(piles)-1 {
			sep = ""
		}
		s.buf.Printf("\\*(%s%s", p.Register(), sep)
		s.pool.Free(p)
	}
	s.buf.Printf("\n")
	tracer().Debugf("matrix %v: %d rows, %d columns", res, nrow, len(cols))
	return res, nil
}
