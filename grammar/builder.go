package grammar

import (
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
)

// TextKind tells a Builder how to treat the text of a text box.
type TextKind byte

// Text box flavors. Plain text is translated symbol by symbol, the other
// kinds map to fixed renditions.
const (
	PlainText  TextKind = 0
	QuotedText TextKind = 'q'
	SpaceText  TextKind = '~'
	NullText   TextKind = '^'
	TabText    TextKind = '\t'
)

// PileMode selects the horizontal alignment of pile elements.
type PileMode byte

// Pile alignments. StackPile packs elements without gaps.
const (
	LeftPile   PileMode = 'L'
	CenterPile PileMode = 'C'
	RightPile  PileMode = 'R'
	StackPile  PileMode = '-'
)

// Column is one column of a matrix.
type Column struct {
	Mode  PileMode
	Elems []box.Handle
}

// Accent identifies a diacritical mark set over or under a box.
type Accent byte

// Diacritical marks.
const (
	AccentVec    Accent = 'V'
	AccentDyad   Accent = 'Y'
	AccentHat    Accent = 'H'
	AccentTilde  Accent = 'T'
	AccentDot    Accent = 'D'
	AccentDotDot Accent = 'U'
	AccentBar    Accent = 'B'
	AccentUnder  Accent = 'N'
)

// Direction of a local motion.
type Direction int

// Motion directions.
const (
	MoveForward Direction = 0
	MoveUp      Direction = 1
	MoveBack    Direction = 2
	MoveDown    Direction = 3
)

// BigSymbol identifies an oversized operator glyph.
type BigSymbol byte

// Oversized operators.
const (
	SumSymbol      BigSymbol = 'S'
	UnionSymbol    BigSymbol = 'U'
	InterSymbol    BigSymbol = 'A'
	ProdSymbol     BigSymbol = 'P'
	IntegralSymbol BigSymbol = 'I'
)

// Builder receives the semantic actions of the parser. Every method builds
// one box out of its operands and returns the handle of the result; the
// parser threads handles, nothing more. A Builder is free to release the
// operand boxes of a construct once the result subsumes them.
type Builder interface {
	// Text builds a box from a text token.
	Text(kind TextKind, text string) (box.Handle, error)
	// Concat joins two boxes side by side on a common baseline.
	Concat(p1, p2 box.Handle) (box.Handle, error)
	// Fraction stacks num over den, separated by a rule.
	Fraction(num, den box.Handle) (box.Handle, error)
	// Script attaches a subscript, a superscript, or both to base.
	// Unused positions are box.None.
	Script(base, sub, sup box.Handle) (box.Handle, error)
	// Sqrt draws a radical over arg.
	Sqrt(arg box.Handle) (box.Handle, error)
	// FromTo sets limits below and above base; either may be box.None.
	FromTo(base, from, to box.Handle) (box.Handle, error)
	// Pile stacks elements vertically.
	Pile(mode PileMode, elems []box.Handle) (box.Handle, error)
	// Matrix aligns columns of piles row by row.
	Matrix(cols []Column) (box.Handle, error)
	// Fence surrounds body with scaled delimiters; right may be 0.
	Fence(left byte, body box.Handle, right byte) (box.Handle, error)
	// Accent sets a diacritical mark on base.
	Accent(kind Accent, base box.Handle) (box.Handle, error)
	// Move shifts arg by amount hundredths of an em.
	Move(dir Direction, amount int, arg box.Handle) (box.Handle, error)
	// BigSymbol builds an oversized operator box.
	BigSymbol(kind BigSymbol) (box.Handle, error)
	// Size typesets arg in point size n.
	Size(n int, arg box.Handle) (box.Handle, error)
	// Font typesets arg in font f.
	Font(f tyqn.Font, arg box.Handle) (box.Handle, error)
	// Fat emboldens arg where the device supports it.
	Fat(arg box.Handle) (box.Handle, error)
	// Mark remembers the horizontal position at arg, box.None for a
	// bare mark.
	Mark(arg box.Handle) (box.Handle, error)
	// Lineup aligns arg with the position remembered by Mark.
	Lineup(arg box.Handle) (box.Handle, error)
}
