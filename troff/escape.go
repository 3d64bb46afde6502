package troff

import (
	"fmt"

	"github.com/npillmayer/tyqn"
)

// Escape helpers for the in-line escapes of the output language. Register
// names are at most two characters; the parenthesis form \*( and \n( covers
// them without a closing delimiter.

// Interp interpolates string register reg.
func Interp(reg string) string {
	return `\*(` + reg
}

// Number interpolates number register reg.
func Number(reg string) string {
	return `\n(` + reg
}

// VMove moves vertically by d, positive moving down the page.
func VMove(d tyqn.Vert) string {
	return fmt.Sprintf(`\v'%du'`, d.Units())
}

// HLineReg draws a horizontal line as wide as number register reg.
func HLineReg(reg string) string {
	return `\l'` + Number(reg) + `u'`
}

// Mark stores the current horizontal position in number register reg.
func Mark(reg string) string {
	return `\k(` + reg
}

// Glyph names a special character by its two-character name.
func Glyph(name string) string {
	return `\(` + name
}

// Bracket stacks the given pieces vertically, centered on the line.
func Bracket(pieces string) string {
	return `\b'` + pieces + `'`
}

// Size switches to point size n.
func Size(n int) string {
	return fmt.Sprintf(`\s%d`, n)
}

// SizeReg switches to the point size saved in number register reg.
func SizeReg(reg string) string {
	return `\s` + Number(reg)
}

// FontChange switches to font f.
func FontChange(f tyqn.Font) string {
	return fmt.Sprintf(`\f%c`, byte(f))
}

// FontReg switches to the font saved in number register reg.
func FontReg(reg string) string {
	return `\f` + Number(reg)
}

// VExtend reserves vertical space without moving, expr in units.
func VExtend(expr string) string {
	return `\x'` + expr + `'`
}
