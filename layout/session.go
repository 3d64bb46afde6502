package layout

import (
	"fmt"

	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/grammar"
	"github.com/npillmayer/tyqn/symbol"
	"github.com/npillmayer/tyqn/troff"
)

// Session holds the state of one translation run: the box pool, the
// command buffer of the current equation, and the ambient size and font.
// A session is not safe for concurrent use; translation is strictly
// sequential, one equation after the other.
type Session struct {
	opts tyqn.Options
	pool *box.Pool
	buf  *troff.Buffer
}

var _ grammar.Builder = (*Session)(nil)

// NewSession creates a session with the given options.
func NewSession(opts tyqn.Options) *Session {
	return &Session{
		opts: opts,
		pool: box.NewPool(opts),
		buf:  troff.NewBuffer(),
	}
}

// Reset prepares the session for the next equation: all boxes are
// released and the command buffer is cleared.
func (s *Session) Reset() {
	s.pool.Reset()
	s.buf.Reset()
}

// Buffer returns the command buffer of the current equation.
func (s *Session) Buffer() *troff.Buffer {
	return s.buf
}

// Pool returns the session's box pool.
func (s *Session) Pool() *box.Pool {
	return s.pool
}

// Options returns the session options, reflecting gsize/gfont updates.
func (s *Session) Options() tyqn.Options {
	return s.opts
}

// SetGlobalSize handles a gsize directive: the ambient point size changes
// for the rest of the run.
func (s *Session) SetGlobalSize(n int) {
	tracer().Debugf("global point size set to %d", n)
	s.opts.GlobalSize = n
	s.buf.PointSize(n)
}

// SetGlobalFont handles a gfont directive.
func (s *Session) SetGlobalFont(f tyqn.Font) {
	tracer().Debugf("global font set to %v", f)
	s.opts.GlobalFont = f
	s.buf.FontRequest(f)
}

// Extent returns height and baseline of a box.
func (s *Session) Extent(h box.Handle) (tyqn.Vert, tyqn.Vert) {
	return s.pool.Height(h), s.pool.Baseline(h)
}

// need checks that every operand names a live box. Layout methods call it
// before emitting anything, so a construct over a bad handle aborts
// without output.
func (s *Session) need(hs ...box.Handle) error {
	for _, h := range hs {
		if !s.pool.Valid(h) {
			return fmt.Errorf("layout: %v is not a live box", h)
		}
	}
	return nil
}

// measure asks the device to record the rendered width of box h in the
// number register of the same name.
func (s *Session) measure(h box.Handle) {
	s.buf.MeasureWidth(h.Register(), h.Register())
}

// Text builds a leaf box from a text token. Plain text is looked up as a
// symbol name first and translated character by character on miss; the
// other kinds have fixed renditions. Text boxes sit on the baseline and
// are one line high.
func (s *Session) Text(kind grammar.TextKind, text string) (box.Handle, error) {
	var content string
	switch kind {
	case grammar.QuotedText:
		content = text
	case grammar.SpaceText:
		content = `\ `
	case grammar.NullText:
		content = ""
	case grammar.TabText:
		content = `\t`
	default:
		if repl, ok := symbol.Lookup(text); ok {
			content = repl
		} else {
			var err error
			content, err = symbol.Translate(text, s.opts.SymbolLimit)
			if err != nil {
				return box.None, err
			}
		}
	}
	h, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	s.buf.Printf(".ds %s \"%s\n", h.Register(), content)
	s.pool.SetExtent(h, tyqn.V(2), 0)
	tracer().Debugf("text %v <- %q", h, text)
	return h, nil
}

// BigSymbol builds a box for an oversized operator glyph. The glyphs have
// a nominal height of one line and sit on the baseline.
func (s *Session) BigSymbol(kind grammar.BigSymbol) (box.Handle, error) {
	var glyph string
	switch kind {
	case grammar.SumSymbol:
		glyph = troff.Glyph("*S")
	case grammar.UnionSymbol:
		glyph = troff.Glyph("cu")
	case grammar.InterSymbol:
		glyph = troff.Glyph("ca")
	case grammar.ProdSymbol:
		glyph = troff.Glyph("*P")
	case grammar.IntegralSymbol:
		glyph = troff.Glyph("is")
	default:
		return box.None, fmt.Errorf("layout: unknown operator symbol %q", kind)
	}
	h, err := s.pool.Alloc()
	if err != nil {
		return box.None, err
	}
	s.buf.Define(h.Register(), glyph)
	s.pool.SetExtent(h, tyqn.V(2), 0)
	tracer().Debugf("operator %v <- %s", h, glyph)
	return h, nil
}

// Size records a local size change. The line-oriented device renders all
// sizes alike, so the box passes through unchanged.
func (s *Session) Size(n int, arg box.Handle) (box.Handle, error) {
	if err := s.need(arg); err != nil {
		return box.None, err
	}
	tracer().Debugf("size %d ignored for %v", n, arg)
	return arg, nil
}

// Font records a local font change; like Size it is a pass-through on
// this device.
func (s *Session) Font(f tyqn.Font, arg box.Handle) (box.Handle, error) {
	if err := s.need(arg); err != nil {
		return box.None, err
	}
	tracer().Debugf("font %v ignored for %v", f, arg)
	return arg, nil
}

// Fat emboldens where the device supports it, which this one does not.
func (s *Session) Fat(arg box.Handle) (box.Handle, error) {
	if err := s.need(arg); err != nil {
		return box.None, err
	}
	tracer().Debugf("fat ignored for %v", arg)
	return arg, nil
}
