package grammar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
)

// recorder is a Builder that notes every semantic action in order.
type recorder struct {
	pool *box.Pool
	ops  []string
}

func newRecorder() *recorder {
	return &recorder{pool: box.NewPool(tyqn.DefaultOptions())}
}

func (rb *recorder) note(format string, args ...interface{}) (box.Handle, error) {
	rb.ops = append(rb.ops, fmt.Sprintf(format, args...))
	return rb.pool.Alloc()
}

func (rb *recorder) Text(kind TextKind, text string) (box.Handle, error) {
	k := byte(kind)
	if kind == PlainText {
		k = '-'
	}
	return rb.note("text(%c,%s)", k, text)
}

func (rb *recorder) Concat(p1, p2 box.Handle) (box.Handle, error) {
	return rb.note("concat")
}

func (rb *recorder) Fraction(num, den box.Handle) (box.Handle, error) {
	return rb.note("over")
}

func (rb *recorder) Script(base, sub, sup box.Handle) (box.Handle, error) {
	return rb.note("script(sub=%v,sup=%v)", !sub.IsNone(), !sup.IsNone())
}

func (rb *recorder) Sqrt(arg box.Handle) (box.Handle, error) {
	return rb.note("sqrt")
}

func (rb *recorder) FromTo(base, from, to box.Handle) (box.Handle, error) {
	return rb.note("fromto(from=%v,to=%v)", !from.IsNone(), !to.IsNone())
}

func (rb *recorder) Pile(mode PileMode, elems []box.Handle) (box.Handle, error) {
	return rb.note("pile(%c,%d)", byte(mode), len(elems))
}

func (rb *recorder) Matrix(cols []Column) (box.Handle, error) {
	shape := make([]string, len(cols))
	for i, c := range cols {
		shape[i] = fmt.Sprintf("%c%d", byte(c.Mode), len(c.Elems))
	}
	return rb.note("matrix(%s)", strings.Join(shape, ","))
}

func (rb *recorder) Fence(left byte, body box.Handle, right byte) (box.Handle, error) {
	if right == 0 {
		return rb.note("fence(%c,-)", left)
	}
	return rb.note("fence(%c,%c)", left, right)
}

func (rb *recorder) Accent(kind Accent, base box.Handle) (box.Handle, error) {
	return rb.note("accent(%c)", byte(kind))
}

func (rb *recorder) Move(dir Direction, amount int, arg box.Handle) (box.Handle, error) {
	return rb.note("move(%d,%d)", dir, amount)
}

func (rb *recorder) BigSymbol(kind BigSymbol) (box.Handle, error) {
	return rb.note("big(%c)", byte(kind))
}

func (rb *recorder) Size(n int, arg box.Handle) (box.Handle, error) {
	return rb.note("size(%d)", n)
}

func (rb *recorder) Font(f tyqn.Font, arg box.Handle) (box.Handle, error) {
	return rb.note("font(%v)", f)
}

func (rb *recorder) Fat(arg box.Handle) (box.Handle, error) {
	return rb.note("fat")
}

func (rb *recorder) Mark(arg box.Handle) (box.Handle, error) {
	return rb.note("mark(%v)", !arg.IsNone())
}

func (rb *recorder) Lineup(arg box.Handle) (box.Handle, error) {
	return rb.note("lineup(%v)", !arg.IsNone())
}

var _ Builder = &recorder{}

func parseInto(t *testing.T, input string) *recorder {
	t.Helper()
	rb := newRecorder()
	p := NewParser(lexerFor(input), rb)
	h, err := p.Parse()
	if err != nil {
		t.Fatalf("parsing %q: %v", input, err)
	}
	if h.IsNone() {
		t.Fatalf("parsing %q: no box produced", input)
	}
	return rb
}

func checkOps(t *testing.T, input string, want []string) {
	t.Helper()
	rb := parseInto(t, input)
	if len(rb.ops) != len(want) {
		t.Fatalf("parsing %q: got ops %v, want %v", input, rb.ops, want)
	}
	for i := range want {
		if rb.ops[i] != want[i] {
			t.Errorf("parsing %q: op %d is %q, want %q", input, i, rb.ops[i], want[i])
		}
	}
}

func TestParseConcat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "x y z", []string{
		"text(-,x)", "text(-,y)", "concat", "text(-,z)", "concat",
	})
}

func TestParseScripts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "x sup 2", []string{
		"text(-,x)", "text(-,2)", "script(sub=false,sup=true)",
	})
	checkOps(t, "x sub i", []string{
		"text(-,x)", "text(-,i)", "script(sub=true,sup=false)",
	})
	// a subscript directly followed by a superscript combines
	checkOps(t, "x sub i sup 2", []string{
		"text(-,x)", "text(-,i)", "text(-,2)", "script(sub=true,sup=true)",
	})
}

func TestParseFractionBindsTighterThanLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "sum from i over 2", []string{
		"big(S)", "text(-,i)", "text(-,2)", "over", "fromto(from=true,to=false)",
	})
}

func TestParseScriptsBindTighterThanOver(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "a sup 2 over b", []string{
		"text(-,a)", "text(-,2)", "script(sub=false,sup=true)",
		"text(-,b)", "over",
	})
}

func TestParseSqrt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "sqrt {x+1}", []string{
		"text(-,x+1)", "sqrt",
	})
}

func TestParseGroups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "{ a over b } sup 2", []string{
		"text(-,a)", "text(-,b)", "over", "text(-,2)",
		"script(sub=false,sup=true)",
	})
}

func TestParsePile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "lpile { a above b above c }", []string{
		"text(-,a)", "text(-,b)", "text(-,c)", "pile(L,3)",
	})
	checkOps(t, "pile { x above y }", []string{
		"text(-,x)", "text(-,y)", "pile(C,2)",
	})
}

func TestParseMatrix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "matrix { lcol { a above b } rcol { c above d } }", []string{
		"text(-,a)", "text(-,b)", "text(-,c)", "text(-,d)",
		"matrix(L2,R2)",
	})
}

func TestParseFence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "left ( x over y right )", []string{
		"text(-,x)", "text(-,y)", "over", "fence((,))",
	})
	checkOps(t, "left [ x", []string{
		"text(-,x)", "fence([,-)",
	})
}

func TestParsePrefixesAndAccents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "size 8 bold x dot", []string{
		"text(-,x)", "accent(D)", "font(B)", "size(8)",
	})
	checkOps(t, "up 30 x", []string{
		"text(-,x)", "move(1,30)",
	})
	checkOps(t, "fat roman V", []string{
		"text(-,V)", "font(R)", "fat",
	})
}

func TestParseMarkAndLineup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "mark x = y", []string{
		"text(-,x)", "mark(true)", "text(-,=)", "concat",
		"text(-,y)", "concat",
	})
	checkOps(t, "lineup = z", []string{
		"text(-,=)", "lineup(true)", "text(-,z)", "concat",
	})
}

func TestParseFromTo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	checkOps(t, "sum from i=0 to inf x sub i", []string{
		"big(S)", "text(-,i=0)", "text(-,inf)", "fromto(from=true,to=true)",
		"text(-,x)", "text(-,i)", "script(sub=true,sup=false)", "concat",
	})
}

func TestParseEmptyEquation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	rb := newRecorder()
	p := NewParser(lexerFor("gsize 12"), rb)
	h, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if !h.IsNone() {
		t.Error("expected no box for a directive-only equation")
	}
	if len(rb.ops) != 0 {
		t.Errorf("expected no builder calls, got %v", rb.ops)
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	rb := newRecorder()
	p := NewParser(lexerFor("x over } y"), rb)
	_, err := p.Parse()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), "test:") {
		t.Errorf("expected error to name the input, got %v", err)
	}
}
