package grammar

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyqn"
)

func lexerFor(input string) *Lexer {
	src := NewSource("test", strings.NewReader(input))
	return NewLexer(src, tyqn.DefaultOptions())
}

func TestLexTokenSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor(`x sup 2 over { alpha ~ y }`)
	want := []tokType{Contig, Sup, Contig, Over, GroupOpen, Contig, FullSpace, Contig, GroupClose, EOF}
	for i, w := range want {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tokType(tok.TokType) != w {
			t.Errorf("token %d: got %s %q, want %s", i, tokType(tok.TokType), tok.Name, w)
		}
	}
}

func TestLexBracesTerminateTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	// braces stick to the preceding token without separating blanks
	lx := lexerFor(`a{b}`)
	var got []string
	for {
		tok, err := lx.Next()
		if err != nil {
			t.Fatal(err)
		}
		if tokType(tok.TokType) == EOF {
			break
		}
		got = append(got, tok.Name)
	}
	want := []string{"a", "{", "b", "}"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLexQuotedString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor(`"a \" b \(*a"`)
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tokType(tok.TokType) != Quoted {
		t.Fatalf("expected QTEXT, got %s", tokType(tok.TokType))
	}
	if tok.Name != `a " b \(*a` {
		t.Errorf("quoted lexeme: got %q", tok.Name)
	}
}

func TestLexMacroExpansion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor(`define foo "alpha beta" foo x`)
	want := []struct {
		tt   tokType
		name string
	}{
		{Contig, "alpha"}, {Contig, "beta"}, {Contig, "x"}, {EOF, ""},
	}
	for i, w := range want {
		tok, err := lx.Next()
		if err != nil {
			t.Fatalf("token %d: %v", i, err)
		}
		if tokType(tok.TokType) != w.tt || tok.Name != w.name {
			t.Errorf("token %d: got %s %q, want %s %q", i,
				tokType(tok.TokType), tok.Name, w.tt, w.name)
		}
	}
	if len(lx.Macros()) != 1 {
		t.Errorf("expected one macro defined, have %d", len(lx.Macros()))
	}
}

func TestLexMacroNestingLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	// a self-referencing macro must run into the nesting limit
	lx := lexerFor(`define loop "loop x" loop`)
	var lastErr error
	for i := 0; i < 100; i++ {
		_, err := lx.Next()
		if err != nil {
			lastErr = err
			break
		}
	}
	if lastErr == nil {
		t.Fatal("expected nesting limit error")
	}
	if !strings.Contains(lastErr.Error(), "nested") {
		t.Errorf("unexpected error: %v", lastErr)
	}
}

func TestLexDelimDirective(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor(`delim $$ x$y`)
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	l, r := lx.Delims()
	if l != '$' || r != '$' {
		t.Fatalf("expected delimiters $ $, got %q %q", l, r)
	}
	if tok.Name != "x" {
		t.Errorf("expected token x, got %q", tok.Name)
	}
	tok, err = lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tokType(tok.TokType) != EOF {
		t.Errorf("expected right delimiter to end the equation, got %s %q",
			tokType(tok.TokType), tok.Name)
	}
}

func TestLexDelimOff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor(`delim $$ delim off x$y`)
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if l, r := lx.Delims(); l != 0 || r != 0 {
		t.Errorf("expected delimiters disabled, got %q %q", l, r)
	}
	if tok.Name != "x$y" {
		t.Errorf("expected $ to lose its meaning, got token %q", tok.Name)
	}
}

func TestLexGsizeGfontHooks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor(`gsize 12 gfont I x`)
	var size int
	var font tyqn.Font
	lx.OnSize = func(n int) { size = n }
	lx.OnFont = func(f tyqn.Font) { font = f }
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if size != 12 {
		t.Errorf("expected gsize hook with 12, got %d", size)
	}
	if font != tyqn.ItalicFont {
		t.Errorf("expected gfont hook with I, got %v", font)
	}
	if tok.Name != "x" {
		t.Errorf("expected token x after directives, got %q", tok.Name)
	}
}

func TestLexBlockTerminator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.grammar")
	defer teardown()
	//
	lx := lexerFor("x\n.EN\n")
	if tok, _ := lx.Next(); tok.Name != "x" {
		t.Fatalf("expected token x, got %q", tok.Name)
	}
	tok, err := lx.Next()
	if err != nil {
		t.Fatal(err)
	}
	if tokType(tok.TokType) != EOF {
		t.Fatalf("expected EOF at block terminator, got %s", tokType(tok.TokType))
	}
	if !lx.AtEquationEnd() {
		t.Error("expected AtEquationEnd after block terminator")
	}
}
