package layout

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/grammar"
)

func TestFenceMinimumHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	body := text(t, s, "x")
	res, err := s.Fence('(', body, ')')
	if err != nil {
		t.Fatalf("expected fence to succeed, got %v", err)
	}
	// even a one-line body gets delimiters of 2 units
	if h, b := s.Extent(res); h != tyqn.V(4) || b != tyqn.V(1) {
		t.Errorf("expected h=%v b=%v, have h=%v b=%v", tyqn.V(4), tyqn.V(1), h, b)
	}
	out := s.Buffer().String()
	if !strings.Contains(out, `\b'\(lt\(lb'`) || !strings.Contains(out, `\b'\(rt\(rb'`) {
		t.Errorf("expected parenthesis caps without extensions, buffer is %q", out)
	}
}

func TestBraceHeightIsOdd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	body := text(t, s, "x")
	res, err := s.Fence('{', body, '}')
	if err != nil {
		t.Fatalf("expected fence to succeed, got %v", err)
	}
	// braces round the unit count up to an odd minimum of 3
	if h, b := s.Extent(res); h != tyqn.V(6) || b != tyqn.V(2) {
		t.Errorf("expected h=%v b=%v, have h=%v b=%v", tyqn.V(6), tyqn.V(2), h, b)
	}
	out := s.Buffer().String()
	if !strings.Contains(out, `\(lk`) || !strings.Contains(out, `\(rk`) {
		t.Errorf("expected brace center pieces, buffer is %q", out)
	}
}

func TestFenceWithoutRightDelimiter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	body := text(t, s, "x")
	if _, err := s.Fence('[', body, 0); err != nil {
		t.Fatalf("expected fence to succeed, got %v", err)
	}
	out := s.Buffer().String()
	if !strings.Contains(out, `\b'\(lc\(lf'`) {
		t.Errorf("expected a left bracket, buffer is %q", out)
	}
	if strings.Contains(out, `\(rc`) || strings.Contains(out, `\(rf`) {
		t.Errorf("expected no right delimiter, buffer is %q", out)
	}
}

func TestAccentGrowsHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	base := text(t, s, "x")
	res, err := s.Accent(grammar.AccentBar, base)
	if err != nil {
		t.Fatalf("expected accent to succeed, got %v", err)
	}
	if h, b := s.Extent(res); h != tyqn.V(3) || b != 0 {
		t.Errorf("expected h=%v b=0, have h=%v b=%v", tyqn.V(3), h, b)
	}
	if s.Pool().InUse() != 1 {
		t.Errorf("expected the mark's scratch box to be released, have %d live",
			s.Pool().InUse())
	}
	// the overline is drawn as wide as the base's measured width
	if !strings.Contains(s.Buffer().String(), `\l'\n(11u'`) {
		t.Errorf("expected an overline sized to register 11, buffer is %q",
			s.Buffer().String())
	}
}

func TestMoveKeepsExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	arg := text(t, s, "x")
	h0, b0 := s.Extent(arg)
	res, err := s.Move(grammar.MoveUp, 50, arg)
	if err != nil {
		t.Fatalf("expected move to succeed, got %v", err)
	}
	if h, b := s.Extent(res); h != h0 || b != b0 {
		t.Errorf("expected extent to stay h=%v b=%v, have h=%v b=%v", h0, b0, h, b)
	}
	if !strings.Contains(s.Buffer().String(), `\v'-0.50m'`) {
		t.Errorf("expected an upward motion of 0.50m, buffer is %q", s.Buffer().String())
	}
}

func TestMoveFormatsHundredths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	arg := text(t, s, "x")
	if _, err := s.Move(grammar.MoveBack, 105, arg); err != nil {
		t.Fatalf("expected move to succeed, got %v", err)
	}
	if !strings.Contains(s.Buffer().String(), `\h'-1.05m'`) {
		t.Errorf("expected a backward motion of 1.05m, buffer is %q", s.Buffer().String())
	}
}

func TestStandaloneMarkHasZeroExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	h, err := s.Mark(box.None)
	if err != nil {
		t.Fatalf("expected mark to succeed, got %v", err)
	}
	if hh, b := s.Extent(h); hh != 0 || b != 0 {
		t.Errorf("expected a zero-extent marker, have h=%v b=%v", hh, b)
	}
	if !strings.Contains(s.Buffer().String(), `\k(97`) {
		t.Errorf("expected a position capture, buffer is %q", s.Buffer().String())
	}
}

func TestMarkAppendsToBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	b := text(t, s, "x")
	res, err := s.Mark(b)
	if err != nil {
		t.Fatalf("expected mark to succeed, got %v", err)
	}
	if res != b {
		t.Error("expected the marked box to pass through")
	}
	if !strings.Contains(s.Buffer().String(), `.as 11 \k(97`) {
		t.Errorf("expected capture appended to register 11, buffer is %q", s.Buffer().String())
	}
}

func TestLineupMovesToMark(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	b := text(t, s, "y")
	if _, err := s.Lineup(b); err != nil {
		t.Fatalf("expected lineup to succeed, got %v", err)
	}
	if !strings.Contains(s.Buffer().String(), `\h'|\n(97u-\n(11u'\*(11`) {
		t.Errorf("expected right-aligned motion to the mark, buffer is %q",
			s.Buffer().String())
	}
}

func TestStandaloneLineupHasZeroExtent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn.layout")
	defer teardown()
	//
	s := NewSession(tyqn.DefaultOptions())
	h, err := s.Lineup(box.None)
	if err != nil {
		t.Fatalf("expected lineup to succeed, got %v", err)
	}
	if hh, b := s.Extent(h); hh != 0 || b != 0 {
		t.Errorf("expected a zero-extent motion box, have h=%v b=%v", hh, b)
	}
	if !strings.Contains(s.Buffer().String(), `\h'|\n(97u'`) {
		t.Errorf("expected motion to the captured position, buffer is %q",
			s.Buffer().String())
	}
}
