package grammar

import (
	"fmt"

	"github.com/npillmayer/gorgo/terex"
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
)

// Parser recognizes one equation at a time. It is a recursive descent
// parser mirroring the precedence of the equation language, loosest first:
// concatenation, limits (from/to), fractions and radicals, scripts (right
// associative), size/font/motion prefixes, diacritics, primaries.
type Parser struct {
	lx  *Lexer
	bld Builder
	tok terex.Token
}

// NewParser creates a parser delivering semantic actions to bld.
func NewParser(lx *Lexer, bld Builder) *Parser {
	return &Parser{lx: lx, bld: bld}
}

// Parse reads one equation up to its terminating EOF token and returns
// the handle of the resulting box. An empty equation (for instance one
// holding only directives) yields box.None.
func (p *Parser) Parse() (box.Handle, error) {
	if err := p.advance(); err != nil {
		return box.None, err
	}
	if p.tt() == EOF {
		return box.None, nil
	}
	h, err := p.equation()
	if err != nil {
		return box.None, err
	}
	if p.tt() != EOF {
		return box.None, p.unexpected("end of equation")
	}
	return h, nil
}

// SkipToEnd discards input up to the end of the current equation. It
// resynchronizes the scanner after a syntax error, so that leftover
// equation text does not leak into the surrounding document. A no-op
// when the error occurred at the equation end already.
func (p *Parser) SkipToEnd() error {
	for p.tt() != EOF {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) tt() tokType {
	return tokType(p.tok.TokType)
}

func (p *Parser) unexpected(wanted string) error {
	return p.lx.posError(fmt.Errorf("expected %s, found %s %q",
		wanted, p.tt(), p.tok.Name))
}

// equation := item { item }
func (p *Parser) equation() (box.Handle, error) {
	h, err := p.item()
	if err != nil {
		return box.None, err
	}
	for startsBox(p.tt()) || p.tt() == Mark || p.tt() == Lineup {
		h2, err := p.item()
		if err != nil {
			return box.None, err
		}
		if h, err = p.bld.Concat(h, h2); err != nil {
			return box.None, err
		}
	}
	return h, nil
}

// item := MARK [limits] | LINEUP [limits] | limits
func (p *Parser) item() (box.Handle, error) {
	switch p.tt() {
	case Mark:
		if err := p.advance(); err != nil {
			return box.None, err
		}
		if !startsBox(p.tt()) {
			return p.bld.Mark(box.None)
		}
		h, err := p.limits()
		if err != nil {
			return box.None, err
		}
		return p.bld.Mark(h)
	case Lineup:
		if err := p.advance(); err != nil {
			return box.None, err
		}
		if !startsBox(p.tt()) {
			return p.bld.Lineup(box.None)
		}
		h, err := p.limits()
		if err != nil {
			return box.None, err
		}
		return p.bld.Lineup(h)
	}
	return p.limits()
}

// limits := fraction [FROM fraction] [TO fraction]
func (p *Parser) limits() (box.Handle, error) {
	h, err := p.fraction()
	if err != nil {
		return box.None, err
	}
	from, to := box.None, box.None
	if p.tt() == From {
		if err := p.advance(); err != nil {
			return box.None, err
		}
		if from, err = p.fraction(); err != nil {
			return box.None, err
		}
	}
	if p.tt() == To {
		if err := p.advance(); err != nil {
			return box.None, err
		}
		if to, err = p.fraction(); err != nil {
			return box.None, err
		}
	}
	if from.IsNone() && to.IsNone() {
		return h, nil
	}
	return p.bld.FromTo(h, from, to)
}

// fraction := radical { OVER radical }
func (p *Parser) fraction() (box.Handle, error) {
	h, err := p.radical()
	if err != nil {
		return box.None, err
	}
	for p.tt() == Over {
		if err := p.advance(); err != nil {
			return box.None, err
		}
		den, err := p.radical()
		if err != nil {
			return box.None, err
		}
		if h, err = p.bld.Fraction(h, den); err != nil {
			return box.None, err
		}
	}
	return h, nil
}

// radical := SQRT radical | scripted
func (p *Parser) radical() (box.Handle, error) {
	if p.tt() == Sqrt {
		if err := p.advance(); err != nil {
			return box.None, err
		}
		arg, err := p.radical()
		if err != nil {
			return box.None, err
		}
		return p.bld.Sqrt(arg)
	}
	return p.scripted()
}

// scripted := prefixed [script tail], scripts associate to the right and
// a subscript directly followed by a superscript forms one combined
// construct.
func (p *Parser) scripted() (box.Handle, error) {
	base, err := p.prefixed()
	if err != nil {
		return box.None, err
	}
	return p.scriptTail(base)
}

func (p *Parser) scriptTail(base box.Handle) (box.Handle, error) {
	switch p.tt() {
	case Sub:
		if err := p.advance(); err != nil {
			return box.None, err
		}
		sub, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		if p.tt() == Sup {
			if err := p.advance(); err != nil {
				return box.None, err
			}
			sup, err := p.scripted()
			if err != nil {
				return box.None, err
			}
			return p.bld.Script(base, sub, sup)
		}
		if p.tt() == Sub {
			if sub, err = p.scriptTail(sub); err != nil {
				return box.None, err
			}
		}
		return p.bld.Script(base, sub, box.None)
	case Sup:
		if err := p.advance(); err != nil {
			return box.None, err
		}
		sup, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		if p.tt() == Sub || p.tt() == Sup {
			if sup, err = p.scriptTail(sup); err != nil {
				return box.None, err
			}
		}
		return p.bld.Script(base, box.None, sup)
	}
	return base, nil
}

// prefixed := SIZE n prefixed | FONT c prefixed | ROMAN prefixed | ...
//           | UP n prefixed | DOWN n prefixed | BACK n prefixed
//           | FWD n prefixed | accented
func (p *Parser) prefixed() (box.Handle, error) {
	switch p.tt() {
	case SizeTok:
		n, err := p.numberArg("size")
		if err != nil {
			return box.None, err
		}
		arg, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		return p.bld.Size(n, arg)
	case FontTok:
		f, err := p.fontArg()
		if err != nil {
			return box.None, err
		}
		arg, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		return p.bld.Font(f, arg)
	case Roman, Italic, Bold:
		f := tyqn.RomanFont
		if p.tt() == Italic {
			f = tyqn.ItalicFont
		} else if p.tt() == Bold {
			f = tyqn.BoldFont
		}
		if err := p.advance(); err != nil {
			return box.None, err
		}
		arg, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		return p.bld.Font(f, arg)
	case Fat:
		if err := p.advance(); err != nil {
			return box.None, err
		}
		arg, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		return p.bld.Fat(arg)
	case Up, Down, Back, Fwd:
		dir := map[tokType]Direction{
			Fwd: MoveForward, Up: MoveUp, Back: MoveBack, Down: MoveDown,
		}[p.tt()]
		amt, err := p.numberArg("amount")
		if err != nil {
			return box.None, err
		}
		arg, err := p.prefixed()
		if err != nil {
			return box.None, err
		}
		return p.bld.Move(dir, amt, arg)
	}
	return p.accented()
}

// accented := primary { DOT | DOTDOT | HAT | TILDE | BAR | UNDER | VEC | DYAD }
func (p *Parser) accented() (box.Handle, error) {
	h, err := p.primary()
	if err != nil {
		return box.None, err
	}
	for {
		var kind Accent
		switch p.tt() {
		case Dot:
			kind = AccentDot
		case Dotdot:
			kind = AccentDotDot
		case Hat:
			kind = AccentHat
		case Tilde:
			kind = AccentTilde
		case Bar:
			kind = AccentBar
		case Under:
			kind = AccentUnder
		case Vec:
			kind = AccentVec
		case Dyad:
			kind = AccentDyad
		default:
			return h, nil
		}
		if err := p.advance(); err != nil {
			return box.None, err
		}
		if h, err = p.bld.Accent(kind, h); err != nil {
			return box.None, err
		}
	}
}

func (p *Parser) primary() (box.Handle, error) {
	switch p.tt() {
	case Contig:
		return p.textBox(PlainText)
	case Quoted:
		return p.textBox(QuotedText)
	case FullSpace:
		return p.textBox(SpaceText)
	case ThinSpace:
		return p.textBox(NullText)
	case Tab:
		return p.textBox(TabText)
	case GroupOpen:
		if err := p.advance(); err != nil {
			return box.None, err
		}
		h, err := p.equation()
		if err != nil {
			return box.None, err
		}
		if p.tt() != GroupClose {
			return box.None, p.unexpected("'}'")
		}
		if err := p.advance(); err != nil {
			return box.None, err
		}
		return h, nil
	case Sum:
		return p.bigSymbol(SumSymbol)
	case Integral:
		return p.bigSymbol(IntegralSymbol)
	case Prod:
		return p.bigSymbol(ProdSymbol)
	case Union:
		return p.bigSymbol(UnionSymbol)
	case Inter:
		return p.bigSymbol(InterSymbol)
	case Lpile:
		return p.pile(LeftPile)
	case Rpile:
		return p.pile(RightPile)
	case Cpile, Pile:
		return p.pile(CenterPile)
	case Matrix:
		return p.matrix()
	case LeftTok:
		return p.fence()
	}
	return box.None, p.unexpected("a box")
}

func (p *Parser) textBox(kind TextKind) (box.Handle, error) {
	text := p.tok.Name
	if err := p.advance(); err != nil {
		return box.None, err
	}
	return p.bld.Text(kind, text)
}

func (p *Parser) bigSymbol(kind BigSymbol) (box.Handle, error) {
	if err := p.advance(); err != nil {
		return box.None, err
	}
	return p.bld.BigSymbol(kind)
}

// pile := LPILE '{' list '}' etc.
func (p *Parser) pile(mode PileMode) (box.Handle, error) {
	if err := p.advance(); err != nil {
		return box.None, err
	}
	elems, err := p.list()
	if err != nil {
		return box.None, err
	}
	return p.bld.Pile(mode, elems)
}

// matrix := MATRIX '{' column+ '}' with
// column := (LCOL | CCOL | RCOL | COL) '{' list '}'
func (p *Parser) matrix() (box.Handle, error) {
	if err := p.advance(); err != nil {
		return box.None, err
	}
	if p.tt() != GroupOpen {
		return box.None, p.unexpected("'{'")
	}
	if err := p.advance(); err != nil {
		return box.None, err
	}
	var cols []Column
	for {
		var mode PileMode
		switch p.tt() {
		case Lcol:
			mode = LeftPile
		case Rcol:
			mode = RightPile
		case Ccol, Col:
			mode = CenterPile
		default:
			if len(cols) == 0 {
				return box.None, p.unexpected("a matrix column")
			}
			if p.tt() != GroupClose {
				return box.None, p.unexpected("'}'")
			}
			if err := p.advance(); err != nil {
				return box.None, err
			}
			return p.bld.Matrix(cols)
		}
		if err := p.advance(); err != nil {
			return box.None, err
		}
		elems, err := p.list()
		if err != nil {
			return box.None, err
		}
		cols = append(cols, Column{Mode: mode, Elems: elems})
	}
}

// list := '{' equation { ABOVE equation } '}'
func (p *Parser) list() ([]box.Handle, error) {
	if p.tt() != GroupOpen {
		return nil, p.unexpected("'{'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var elems []box.Handle
	for {
		h, err := p.equation()
		if err != nil {
			return nil, err
		}
		elems = append(elems, h)
		if p.tt() != Above {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.tt() != GroupClose {
		return nil, p.unexpected("'}'")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return elems, nil
}

// fence := LEFT delim equation [RIGHT delim]
func (p *Parser) fence() (box.Handle, error) {
	if err := p.advance(); err != nil {
		return box.None, err
	}
	left, err := p.delimChar()
	if err != nil {
		return box.None, err
	}
	body, err := p.equation()
	if err != nil {
		return box.None, err
	}
	var right byte
	if p.tt() == RightTok {
		if err := p.advance(); err != nil {
			return box.None, err
		}
		if right, err = p.delimChar(); err != nil {
			return box.None, err
		}
	}
	return p.bld.Fence(left, body, right)
}

// delimChar takes the first character of the next token as a fence
// delimiter, so '(', '[', '{', '|', 'c' and 'f' all work.
func (p *Parser) delimChar() (byte, error) {
	if p.tok.Name == "" {
		return 0, p.unexpected("a delimiter")
	}
	c := p.tok.Name[0]
	if err := p.advance(); err != nil {
		return 0, err
	}
	return c, nil
}

// numberArg consumes a prefix keyword's numeric argument.
func (p *Parser) numberArg(what string) (int, error) {
	if err := p.advance(); err != nil {
		return 0, err
	}
	if p.tt() != Contig {
		return 0, p.unexpected(what)
	}
	n := numb(p.tok.Name)
	if err := p.advance(); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *Parser) fontArg() (tyqn.Font, error) {
	if err := p.advance(); err != nil {
		return 0, err
	}
	if p.tok.Name == "" {
		return 0, p.unexpected("a font name")
	}
	f := tyqn.Font(p.tok.Name[0])
	if err := p.advance(); err != nil {
		return 0, err
	}
	return f, nil
}

func startsBox(t tokType) bool {
	switch t {
	case Contig, Quoted, FullSpace, ThinSpace, Tab, GroupOpen,
		Sum, Integral, Prod, Union, Inter,
		Lpile, Rpile, Cpile, Pile, Matrix, LeftTok, Sqrt,
		SizeTok, FontTok, Roman, Italic, Bold, Fat,
		Up, Down, Back, Fwd:
		return true
	}
	return false
}
