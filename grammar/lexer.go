package grammar

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/gorgo/terex"
	"github.com/npillmayer/tyqn"
)

// ErrTokenTooLong flags a token, quoted string, or replacement text beyond
// the session's token limit. It ends the run: the input is broken in a
// way that makes everything after the overflow unreliable.
var ErrTokenTooLong = errors.New("token too long")

// ErrNestingTooDeep flags macro expansions nested beyond the session
// limit, which is how runaway recursive definitions surface.
var ErrNestingTooDeep = errors.New("definitions nested too deeply")

// Lexer splits the character stream into tokens. It owns the macro table
// and the inline delimiter pair, and it handles the directives define,
// ndefine, tdefine, delim, gsize and gfont itself: the parser never sees
// them.
//
// The immediate effects of gsize and gfont are reported through the OnSize
// and OnFont hooks, since a directive must change the session defaults and
// emit a device request right where it occurs.
type Lexer struct {
	src      *Source
	limit    int
	macros   macroStorage
	lefteq   rune
	righteq  rune
	atEnd    bool
	OnSize   func(int)
	OnFont   func(tyqn.Font)
}

// NewLexer creates a lexer reading from src.
func NewLexer(src *Source, opts tyqn.Options) *Lexer {
	limit := opts.TokenLimit
	if limit <= 0 {
		limit = 256
	}
	src.SetMaxNesting(opts.MaxNesting)
	return &Lexer{
		src:     src,
		limit:   limit,
		lefteq:  opts.LeftDelim,
		righteq: opts.RightDelim,
	}
}

// Source returns the character source the lexer reads from.
func (lx *Lexer) Source() *Source {
	return lx.src
}

// Delims returns the current inline delimiter pair, 0 when disabled.
func (lx *Lexer) Delims() (rune, rune) {
	return lx.lefteq, lx.righteq
}

// Macros lists the currently defined macros, in definition order.
func (lx *Lexer) Macros() []Macro {
	return lx.macros.all()
}

// AtEquationEnd reports whether the last EOF token was produced by the
// block terminator line rather than by the input or delimiter ending.
func (lx *Lexer) AtEquationEnd() bool {
	return lx.atEnd
}

// Next delivers the next token. An EOF token ends the current equation;
// it is produced by the end of input, by the right inline delimiter, or
// by the block terminator.
func (lx *Lexer) Next() (terex.Token, error) {
	lx.atEnd = false
	for {
		c, err := lx.src.Next()
		for err == nil && (c == ' ' || c == '\n') {
			c, err = lx.src.Next()
		}
		if err == io.EOF {
			return makeToken(EOF, ""), nil
		} else if err != nil {
			return terex.Token{}, err
		}
		switch c {
		case '\t', '{', '}', '~', '^':
			tracer().Debugf("equation lexer accepting %s", tokType(c))
			return makeToken(tokType(c), string(c)), nil
		case '"':
			return lx.quoted()
		}
		if lx.righteq != 0 && c == lx.righteq {
			return makeToken(EOF, ""), nil
		}
		lexeme, err := lx.scanToken(c)
		if err != nil {
			return terex.Token{}, err
		}
		if lexeme == ".EN" {
			lx.atEnd = true
			return makeToken(EOF, ""), nil
		}
		if text, ok := lx.macros.lookup(lexeme); ok {
			if err := lx.src.pushExpansion(text); err != nil {
				return terex.Token{}, lx.posError(err)
			}
			continue
		}
		if toktype, ok := tokenTypeFromLexeme[lexeme]; ok {
			tracer().Debugf("equation lexer accepting %s", toktype)
			return makeToken(toktype, lexeme), nil
		}
		if d, ok := directiveFromLexeme[lexeme]; ok {
			if err := lx.directive(d); err != nil {
				return terex.Token{}, err
			}
			continue
		}
		tracer().Debugf("equation lexer accepting CONTIG %q", lexeme)
		return makeToken(Contig, lexeme), nil
	}
}

// scanToken collects a text token starting with c. Space, tab, newline,
// braces, quote, tilde, hat and the right delimiter terminate the token;
// terminators other than whitespace are pushed back. A backslash protects
// the following character, except that \" reduces to a bare quote.
func (lx *Lexer) scanToken(c rune) (string, error) {
	var lexeme []rune
	var err error
	for !lx.isTerminator(c) {
		if c == '\\' {
			c, err = lx.src.Next()
			if err != nil {
				lexeme = append(lexeme, '\\')
				break
			}
			if c != '"' {
				lexeme = append(lexeme, '\\')
			}
		}
		lexeme = append(lexeme, c)
		if len(lexeme) >= lx.limit {
			return "", lx.posError(fmt.Errorf("token %.20s...: %w", string(lexeme), ErrTokenTooLong))
		}
		c, err = lx.src.Next()
		if err != nil {
			return string(lexeme), nil
		}
	}
	switch c {
	case '{', '}', '"', '~', '^', '\t':
		lx.src.PushBack(c)
	default:
		if lx.righteq != 0 && c == lx.righteq {
			lx.src.PushBack(c)
		}
	}
	return string(lexeme), nil
}

func (lx *Lexer) isTerminator(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '{', '}', '"', '~', '^':
		return true
	}
	return lx.righteq != 0 && c == lx.righteq
}

// quoted collects a quoted string, which the layout takes literally.
func (lx *Lexer) quoted() (terex.Token, error) {
	var lexeme []rune
	for {
		c, err := lx.src.Next()
		if err != nil {
			return terex.Token{}, lx.posError(fmt.Errorf("missing closing quote"))
		}
		if c == '"' {
			break
		}
		if c == '\\' {
			c, err = lx.src.Next()
			if err != nil {
				return terex.Token{}, lx.posError(fmt.Errorf("missing closing quote"))
			}
			if c != '"' {
				lexeme = append(lexeme, '\\')
			}
		}
		lexeme = append(lexeme, c)
		if len(lexeme) >= lx.limit {
			return terex.Token{}, lx.posError(fmt.Errorf("quoted string %.20s...: %w", string(lexeme), ErrTokenTooLong))
		}
	}
	tracer().Debugf("equation lexer accepting QTEXT %q", string(lexeme))
	return makeToken(Quoted, string(lexeme)), nil
}

func (lx *Lexer) directive(d int) error {
	switch d {
	case dirDefine, dirNdefine, dirTdefine:
		return lx.defineDirective(d)
	case dirDelim:
		return lx.delimDirective()
	case dirGsize:
		return lx.gsizeDirective()
	case dirGfont:
		return lx.gfontDirective()
	}
	return nil
}

// defineDirective installs a macro. This translator serves the
// low-resolution device, so ndefine is a synonym for define and a
// tdefine body is read and discarded.
func (lx *Lexer) defineDirective(kind int) error {
	c, err := lx.skipSpace()
	if err != nil {
		return lx.posError(fmt.Errorf("missing name after define"))
	}
	name, err := lx.scanToken(c)
	if err != nil {
		return err
	}
	text, err := lx.delimitedString()
	if err != nil {
		return err
	}
	if kind == dirTdefine {
		return nil
	}
	lx.macros.define(name, text)
	return nil
}

// delimitedString reads a replacement text bracketed by an arbitrary
// delimiter character, "..." by convention.
func (lx *Lexer) delimitedString() (string, error) {
	del, err := lx.skipAllSpace()
	if err != nil {
		return "", lx.posError(fmt.Errorf("missing replacement text"))
	}
	var text []rune
	for {
		c, err := lx.src.Next()
		if err != nil {
			return "", lx.posError(fmt.Errorf("replacement text not closed by %c", del))
		}
		if c == del {
			break
		}
		text = append(text, c)
		if len(text) >= lx.limit {
			return "", lx.posError(fmt.Errorf("replacement text %.20s...: %w", string(text), ErrTokenTooLong))
		}
	}
	return string(text), nil
}

// delimDirective sets the inline delimiter pair; "delim off" disables it.
func (lx *Lexer) delimDirective() error {
	l, err := lx.skipSpace()
	if err != nil {
		return lx.posError(fmt.Errorf("missing delimiters"))
	}
	r, err := lx.src.Next()
	if err != nil {
		return lx.posError(fmt.Errorf("missing right delimiter"))
	}
	if l == 'o' && r == 'f' {
		// the word is "off", drain its tail so it does not tokenize
		for {
			c, err := lx.src.Next()
			if err != nil {
				break
			}
			if lx.isTerminator(c) {
				if c != ' ' && c != '\t' && c != '\n' {
					lx.src.PushBack(c)
				}
				break
			}
		}
		l, r = 0, 0
	}
	lx.lefteq, lx.righteq = l, r
	tracer().Debugf("inline delimiters now %q %q", l, r)
	return nil
}

func (lx *Lexer) gsizeDirective() error {
	c, err := lx.skipSpace()
	if err != nil {
		return lx.posError(fmt.Errorf("missing size"))
	}
	tok, err := lx.scanToken(c)
	if err != nil {
		return err
	}
	n := numb(tok)
	if lx.OnSize != nil {
		lx.OnSize(n)
	}
	return nil
}

func (lx *Lexer) gfontDirective() error {
	c, err := lx.skipSpace()
	if err != nil {
		return lx.posError(fmt.Errorf("missing font"))
	}
	if lx.OnFont != nil {
		lx.OnFont(tyqn.Font(c))
	}
	return nil
}

// skipSpace skips blanks and newlines.
func (lx *Lexer) skipSpace() (rune, error) {
	for {
		c, err := lx.src.Next()
		if err != nil {
			return 0, err
		}
		if c != ' ' && c != '\n' {
			return c, nil
		}
	}
}

// skipAllSpace skips blanks, tabs and newlines.
func (lx *Lexer) skipAllSpace() (rune, error) {
	for {
		c, err := lx.src.Next()
		if err != nil {
			return 0, err
		}
		if c != ' ' && c != '\t' && c != '\n' {
			return c, nil
		}
	}
}

// numb parses the leading digits of s.
func numb(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0
	}
	return n
}

func (lx *Lexer) posError(err error) error {
	return fmt.Errorf("%s:%d: %w", lx.src.Name(), lx.src.Line(), err)
}
