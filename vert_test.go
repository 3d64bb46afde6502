package tyqn

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestVertRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn")
	defer teardown()
	//
	if V(3).Halves() != 3 {
		t.Errorf("3 half line-feeds came back as %d", V(3).Halves())
	}
	if V(2).Units() != 2*unitsPerHalfLine {
		t.Errorf("unexpected machine unit count %d", V(2).Units())
	}
	if (V(1) + Vert(unitsPerHalfLine-1)).Halves() != 1 {
		t.Errorf("Halves should truncate, got %d", (V(1) + Vert(unitsPerHalfLine-1)).Halves())
	}
}

func TestVertMax(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn")
	defer teardown()
	//
	if Max(V(1), -V(2)) != V(1) {
		t.Errorf("Max picked %v", Max(V(1), -V(2)))
	}
	if Max(V(1), V(1)) != V(1) {
		t.Errorf("Max of equal distances broken")
	}
}

func TestDefaultOptionsKeepHistoricLimits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyqn")
	defer teardown()
	//
	opts := DefaultOptions()
	if opts.PoolLow != 11 || opts.PoolHigh != 99 {
		t.Errorf("register range changed: %d…%d", opts.PoolLow, opts.PoolHigh)
	}
	if opts.LeftDelim != 0 || opts.RightDelim != 0 {
		t.Errorf("inline delimiters should default to off")
	}
	if opts.GlobalFont != RomanFont || opts.GlobalSize != 10 {
		t.Errorf("ambient style changed: %v", opts)
	}
}
