package layout

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/grammar"
)

func texts(t *testing.T, s *Session, strs ...string) []box.Handle {
	t.Helper()
	hs := make([]box.Handle, len(strs))
	for i, str := range strs {
		hs[i] = text(t, s, str)
	}
	return hs
}

func TestPileOddBaseline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	elems := texts(t, s, "a", "b", "c")
	res, err := s.Pile(grammar.CenterPile, elems)
	if err != nil {
		t.Fatalf("expected pile to succeed, got %v", err)
	}
	// 3 elements of V(2) each, gaps of V(1): total V(8); the middle
	// element carries the baseline, shifted by the top element and a gap
	if h, b := s.Extent(res); h != tyqn.V(8) || b != tyqn.V(3) {
		t.Errorf("expected h=%v b=%v, have h=%v b=%v", tyqn.V(8), tyqn.V(3), h, b)
	}
	if s.Pool().InUse() != 1 {
		t.Errorf("expected pile elements to be released, have %d live", s.Pool().InUse())
	}
}

func TestPileEvenBaseline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	elems := texts(t, s, "a", "b", "c", "d")
	res, err := s.Pile(grammar.LeftPile, elems)
	if err != nil {
		t.Fatalf("expected pile to succeed, got %v", err)
	}
	// 4 elements: total 4*V(2)+3*V(1) = V(11); the reference point sits
	// between elements 2 and 3: V(2)+V(1) + V(2) + V(1)/2
	if h, b := s.Extent(res); h != tyqn.V(11) || b != tyqn.V(5)+tyqn.V(1)/2 {
		t.Errorf("expected h=%v b=%v, have h=%v b=%v", tyqn.V(11), tyqn.V(5)+tyqn.V(1)/2, h, b)
	}
}

func TestStackPileHasNoGaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	elems := texts(t, s, "a", "b", "c")
	res, err := s.Pile(grammar.StackPile, elems)
	if err != nil {
		t.Fatalf("expected pile to succeed, got %v", err)
	}
	if h, b := s.Extent(res); h != tyqn.V(6) || b != tyqn.V(2) {
		t.Errorf("expected h=%v b=%v, have h=%v b=%v", tyqn.V(6), tyqn.V(2), h, b)
	}
}

func TestPileRightAlignment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	elems := texts(t, s, "a", "bb")
	res, err := s.Pile(grammar.RightPile, elems)
	if err != nil {
		t.Fatalf("expected pile to succeed, got %v", err)
	}
	// right alignment pads each element to the pile's width register
	pad := `\h'(\n(` + res.Register() + `u-\n(11u)'\*(11`
	if !strings.Contains(s.Buffer().String(), pad) {
		t.Errorf("expected right-flush padding %q, buffer is %q", pad, s.Buffer().String())
	}
}

func TestMatrixNormalizesRows(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	c1 := texts(t, s, "a", "b")
	c2 := texts(t, s, "x", "y")
	// give one element of the first row a deeper baseline and a taller top
	s.Pool().SetExtent(c1[0], tyqn.V(5), tyqn.V(2))
	cols := []grammar.Column{
		{Mode: grammar.CenterPile, Elems: c1},
		{Mode: grammar.CenterPile, Elems: c2},
	}
	res, err := s.Matrix(cols)
	if err != nil {
		t.Fatalf("expected matrix to succeed, got %v", err)
	}
	if res.IsNone() {
		t.Fatal("expected a matrix box")
	}
	// both column piles saw the same normalized first row of h=V(5), so
	// they agree in total height: V(5)+V(1)+V(2) and matching baselines
	if h, _ := s.Extent(res); h != tyqn.V(8) {
		t.Errorf("expected normalized matrix height %v, have %v", tyqn.V(8), h)
	}
	if !strings.Contains(s.Buffer().String(), `\ \ `) {
		t.Errorf("expected a fixed gap between column piles, buffer is %q", s.Buffer().String())
	}
	if s.Pool().InUse() != 1 {
		t.Errorf("expected all element and column boxes to be released, have %d live",
			s.Pool().InUse())
	}
}

func TestMatrixColumnStride(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	// the flat layout list holds a count cell and an alignment cell per
	// column; walking rows across columns must step over both
	cols := []grammar.Column{
		{Mode: grammar.LeftPile, Elems: []box.Handle{box.None, box.None, box.None}},
		{Mode: grammar.RightPile, Elems: []box.Handle{box.None, box.None, box.None}},
	}
	flat := flattenColumns(cols)
	stride := rowStride(3)
	if stride != 5 {
		t.Fatalf("expected stride 5 for 3 rows, have %d", stride)
	}
	if len(flat) != 10 {
		t.Fatalf("expected 10 layout cells, have %d", len(flat))
	}
	for k := 1; k <= 3; k++ {
		count := 0
		for j := k; j < len(flat); j += stride {
			if flat[j].count != 0 || flat[j].mode != 0 {
				t.Errorf("row %d walk hit a marker cell at %d", k, j)
			}
			count++
		}
		if count != 2 {
			t.Errorf("expected row %d to visit 2 columns, visited %d", k, count)
		}
	}
}

func TestMatrixRejectsRaggedColumns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	c1 := texts(t, s, "a", "b")
	c2 := texts(t, s, "x")
	mark := s.Buffer().Len()
	_, err := s.Matrix([]grammar.Column{
		{Mode: grammar.CenterPile, Elems: c1},
		{Mode: grammar.CenterPile, Elems: c2},
	})
	if err == nil {
		t.Error("expected ragged matrix to be rejected")
	}
	if s.Buffer().Len() != mark {
		t.Error("expected no output from a rejected matrix")
	}
}
