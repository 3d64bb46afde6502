package grammar

import (
	"fmt"

	"github.com/npillmayer/gorgo/terex"
)

type tokType int

// Single-character terminals keep their character code as token type;
// everything else starts above the character range.
const (
	EOF        tokType = 0
	GroupOpen  tokType = '{'
	GroupClose tokType = '}'
	FullSpace  tokType = '~'
	ThinSpace  tokType = '^'
	Tab        tokType = '\t'
)

const (
	Contig tokType = iota + 257 // contiguous text
	Quoted                      // quoted text, taken literally

	Above
	Back
	Bar
	Bold
	Ccol
	Col
	Cpile
	Dot
	Dotdot
	Down
	Dyad
	Fat
	FontTok
	From
	Fwd
	Hat
	Integral
	Inter
	Italic
	Lcol
	LeftTok
	Lineup
	Lpile
	Mark
	Matrix
	Over
	Pile
	Prod
	Rcol
	RightTok
	Roman
	Rpile
	SizeTok
	Sqrt
	Sub
	Sup
	Sum
	Tilde
	To
	Under
	Union
	Up
	Vec
)

// keywords that become parser tokens.
var tokenTypeFromLexeme = map[string]tokType{
	"above":  Above,
	"back":   Back,
	"bar":    Bar,
	"bold":   Bold,
	"ccol":   Ccol,
	"col":    Col,
	"cpile":  Cpile,
	"dot":    Dot,
	"dotdot": Dotdot,
	"down":   Down,
	"dyad":   Dyad,
	"fat":    Fat,
	"font":   FontTok,
	"from":   From,
	"fwd":    Fwd,
	"hat":    Hat,
	"int":    Integral,
	"inter":  Inter,
	"italic": Italic,
	"lcol":   Lcol,
	"left":   LeftTok,
	"lineup": Lineup,
	"lpile":  Lpile,
	"mark":   Mark,
	"matrix": Matrix,
	"over":   Over,
	"pile":   Pile,
	"prod":   Prod,
	"rcol":   Rcol,
	"right":  RightTok,
	"roman":  Roman,
	"rpile":  Rpile,
	"size":   SizeTok,
	"sqrt":   Sqrt,
	"sub":    Sub,
	"sup":    Sup,
	"sum":    Sum,
	"tilde":  Tilde,
	"to":     To,
	"under":  Under,
	"union":  Union,
	"up":     Up,
	"vec":    Vec,
}

// directives are handled inside the lexer and never become tokens.
const (
	dirDefine = iota + 1
	dirNdefine
	dirTdefine
	dirDelim
	dirGsize
	dirGfont
)

var directiveFromLexeme = map[string]int{
	"define":  dirDefine,
	"ndefine": dirNdefine,
	"tdefine": dirTdefine,
	"delim":   dirDelim,
	"gsize":   dirGsize,
	"gfont":   dirGfont,
}

func makeToken(toktype tokType, lexeme string) terex.Token {
	return terex.Token{
		Name:    lexeme,
		TokType: int(toktype),
		Token:   lexeme,
	}
}

func (t tokType) String() string {
	if t == EOF {
		return "EOF"
	}
	if t < 257 {
		return fmt.Sprintf("'%c'", rune(t))
	}
	switch t {
	case Contig:
		return "CONTIG"
	case Quoted:
		return "QTEXT"
	}
	for lexeme, tt := range tokenTypeFromLexeme {
		if tt == t {
			return lexeme
		}
	}
	return fmt.Sprintf("token(%d)", int(t))
}
