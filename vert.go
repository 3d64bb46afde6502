package tyqn

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tyqn'.
func tracer() tracing.Trace {
	return tracing.Select("tyqn")
}

// Vert is a vertical distance in machine units. A typesetting device for
// line-oriented output quantizes vertical motion into units of half a
// line-feed; all equation geometry is expressed in these units.
type Vert int

// unitsPerHalfLine is the machine-unit size of one half line-feed.
const unitsPerHalfLine = 20

// V returns n half line-feeds as a vertical distance.
func V(n int) Vert {
	return Vert(n * unitsPerHalfLine)
}

// Halves returns the distance as a count of half line-feeds, truncating.
func (v Vert) Halves() int {
	return int(v) / unitsPerHalfLine
}

// Units returns the distance in raw machine units.
func (v Vert) Units() int {
	return int(v)
}

func (v Vert) String() string {
	return strconv.Itoa(int(v)) + "u"
}

// Max returns the larger of two distances.
func Max(a, b Vert) Vert {
	if a > b {
		return a
	}
	return b
}

// --- Session options -------------------------------------------------------

// Font identifies a typesetter font by its single-letter troff name.
type Font byte

// Fonts known to the output protocol.
const (
	NoFont     Font = 0
	RomanFont  Font = 'R'
	ItalicFont Font = 'I'
	BoldFont   Font = 'B'
)

func (f Font) String() string {
	if f == NoFont {
		return "<no font>"
	}
	return string(rune(f))
}

// Options collects the tunable limits and ambient defaults of a translation
// session. Historic implementations hard-wired these; we keep the historic
// values as defaults and let clients (and the CLI) override them.
type Options struct {
	GlobalSize   int  // initial point size for equations
	GlobalFont   Font // initial font for equations
	LeftDelim    rune // inline equation start delimiter, 0 = none
	RightDelim   rune // inline equation end delimiter, 0 = none
	PoolLow      int  // first usable string register
	PoolHigh     int  // last usable string register (inclusive)
	MaxNesting   int  // maximum depth of macro expansions
	TokenLimit   int  // soft limit for a single token or quoted string
	SymbolLimit  int  // soft limit for a translated text fragment
	SuppresseEqn bool // typeset invisibly (measurement only)
}

// DefaultOptions returns a session configuration with the historic limits.
func DefaultOptions() Options {
	return Options{
		GlobalSize:  10,
		GlobalFont:  RomanFont,
		PoolLow:     11,
		PoolHigh:    99,
		MaxNesting:  9,
		TokenLimit:  256,
		SymbolLimit: 400,
	}
}

func (opts Options) String() string {
	return fmt.Sprintf("options[size=%d font=%v regs=%d…%d]", opts.GlobalSize,
		opts.GlobalFont, opts.PoolLow, opts.PoolHigh)
}
