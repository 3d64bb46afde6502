package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/box"
	"github.com/npillmayer/tyqn/grammar"
	"github.com/npillmayer/tyqn/layout"
	"github.com/npillmayer/tyqn/symbol"
	"github.com/npillmayer/tyqn/troff"
)

// eqnStart opens an equation block; the block runs until the end marker,
// which the scanner recognizes on its own.
const eqnStart = ".EQ"

// Troff number registers holding the document's point size and font while
// an equation temporarily changes them.
const (
	sizeSaveReg = "99"
	fontSaveReg = "98"
)

// A Driver translates one document. It owns the character source, the
// equation scanner and a layout session; macro definitions and delimiter
// settings made in one equation stay in effect for the rest of the run.
type Driver struct {
	opts   tyqn.Options
	src    *grammar.Source
	lx     *grammar.Lexer
	sess   *layout.Session
	out    *troff.Writer
	errcnt int
}

// New creates a driver that translates the document read from in and
// writes troff output to out. More input files may be chained with
// AddInput before calling Run.
func New(opts tyqn.Options, name string, in io.Reader, out io.Writer) *Driver {
	src := grammar.NewSource(name, in)
	lx := grammar.NewLexer(src, opts)
	sess := layout.NewSession(opts)
	lx.OnSize = sess.SetGlobalSize
	lx.OnFont = sess.SetGlobalFont
	return &Driver{
		opts: opts,
		src:  src,
		lx:   lx,
		sess: sess,
		out:  troff.NewWriter(out),
	}
}

// AddInput appends another input after the ones already queued. The
// chained inputs form one document.
func (d *Driver) AddInput(name string, in io.Reader) {
	d.src.Append(name, in)
}

// Macros lists the macro definitions made by the document so far.
func (d *Driver) Macros() []grammar.Macro {
	return d.lx.Macros()
}

// ErrorCount reports how many equations failed to translate during Run.
func (d *Driver) ErrorCount() int {
	return d.errcnt
}

// Run copies the document to the output, translating every equation.
// Malformed equations are traced and skipped; Run returns an error only
// when a resource limit is hit or the output cannot be written.
func (d *Driver) Run() error {
	for {
		line, term, err := d.getline()
		if err == io.EOF {
			if line != "" {
				d.out.Line(line)
			}
			break
		} else if err != nil {
			return err
		}
		lefteq, _ := d.lx.Delims()
		switch {
		case strings.HasPrefix(line, eqnStart):
			if err := d.equationBlock(line); err != nil {
				d.out.Flush()
				return err
			}
		case lefteq != 0 && term == lefteq:
			if err := d.inlineRun(line); err != nil {
				d.out.Flush()
				return err
			}
		default:
			d.out.Line(line)
		}
	}
	return d.out.Flush()
}

// getline collects characters up to a newline, the end of input, or the
// inline start delimiter. The terminator is not part of the returned
// line; it is reported separately, with 0 standing for end of input.
func (d *Driver) getline() (string, rune, error) {
	lefteq, _ := d.lx.Delims()
	var b strings.Builder
	for {
		c, err := d.src.Next()
		if err == io.EOF {
			return b.String(), 0, io.EOF
		} else if err != nil {
			return b.String(), 0, err
		}
		if c == '\n' {
			return b.String(), '\n', nil
		}
		if lefteq != 0 && c == lefteq {
			return b.String(), lefteq, nil
		}
		b.WriteRune(c)
	}
}

// equationBlock translates one display equation. The opening line is
// echoed, the document's size and font are saved, and the equation body
// is parsed and typeset. On success the equation's commands are emitted
// between the save and the restore; on a syntax error they are dropped
// and only the empty frame remains.
func (d *Driver) equationBlock(line string) error {
	startLine := d.src.Line()
	d.out.Line(line)
	d.out.Printf(".nr %s \\n(.s\n", sizeSaveReg)
	d.out.Printf(".nr %s \\n(.f\n", fontSaveReg)
	d.sess.Reset()
	p := grammar.NewParser(d.lx, d.sess)
	h, err := p.Parse()
	if err != nil {
		d.report(startLine, err)
		d.sess.Reset()
		if fatal(err) {
			d.restoreState(d.out)
			return err
		}
		if serr := p.SkipToEnd(); serr != nil && fatal(serr) {
			d.restoreState(d.out)
			return serr
		}
	} else if !h.IsNone() {
		reg, ht := d.box(h)
		buf := d.sess.Buffer()
		buf.MeasureWidth(reg, reg)
		u := ht.Units()
		buf.Printf(".if %d>\\n(.v .ne %du\n", u, u)
		buf.Rename(reg, "10")
		if !d.opts.SuppresseEqn {
			buf.Printf("%s\n", troff.Interp("10"))
		}
		d.out.Emit(buf)
	} else if d.sess.Buffer().Len() > 0 {
		// directive-only equation, keep its requests
		d.out.Emit(d.sess.Buffer())
	}
	d.restoreState(d.out)
	d.out.Printf(".EN")
	d.echoRestOfLine()
	return d.out.Err()
}

// inlineRun translates a sequence of inline equations starting in the
// given text fragment. The surrounding text and the typeset equations
// accumulate in one string register, which is interpolated once the
// line ends without opening another equation. A segment whose equation
// fails contributes its text only.
func (d *Driver) inlineRun(line string) error {
	d.out.Printf(".nr %s \\n(.s\n", sizeSaveReg)
	d.out.Printf(".nr %s \\n(.f\n", fontSaveReg)
	d.sess.Reset()
	ds, err := d.sess.Pool().Alloc()
	if err != nil {
		return err
	}
	buf := d.sess.Buffer()
	buf.Printf(".ds %s \"\n", ds.Register())
	seg := line
	for {
		buf.Printf(".as %s \"%s\n", ds.Register(), seg)
		startLine := d.src.Line()
		p := grammar.NewParser(d.lx, d.sess)
		h, perr := p.Parse()
		if perr != nil {
			d.report(startLine, perr)
			if fatal(perr) {
				d.sess.Reset()
				d.restoreState(d.out)
				return perr
			}
			if serr := p.SkipToEnd(); serr != nil && fatal(serr) {
				d.sess.Reset()
				d.restoreState(d.out)
				return serr
			}
		} else if !h.IsNone() {
			buf.Add(ds.Register(), troff.Interp(h.Register()))
			d.sess.Pool().Free(h)
		}
		d.restoreState(buf)
		var term rune
		seg, term, err = d.getline()
		lefteq, _ := d.lx.Delims()
		if term != lefteq || lefteq == 0 {
			break
		}
	}
	buf.Printf(".as %s \"%s\n", ds.Register(), seg)
	d.restoreState(buf)
	buf.Printf("%s\n", troff.Interp(ds.Register()))
	d.sess.Pool().Free(ds)
	d.out.Emit(buf)
	if err == io.EOF {
		return nil
	}
	return err
}

// box wraps the finished equation box into the ambient font and size and
// centers it on the text baseline, shifting up by whatever sticks out
// above a line and down by whatever hangs below. Returns the register
// holding the wrapped equation and its height.
func (d *Driver) box(h box.Handle) (string, tyqn.Vert) {
	buf := d.sess.Buffer()
	reg := h.Register()
	ht, base := d.sess.Extent(h)
	opts := d.sess.Options()
	buf.Printf(".ds %s %s", reg, troff.VExtend("0"))
	if before := ht - base - tyqn.V(3); before > 0 {
		buf.Printf("%s", troff.VExtend(fmt.Sprintf("0-%du", before.Units())))
	}
	buf.Printf("%s%s%s%s%s", troff.FontChange(opts.GlobalFont), troff.Size(opts.GlobalSize),
		troff.Interp(reg), troff.SizeReg(sizeSaveReg), troff.FontReg(fontSaveReg))
	if after := base - tyqn.V(1); after > 0 {
		buf.Printf("%s", troff.VExtend(fmt.Sprintf("%du", after.Units())))
	}
	buf.Printf("\n")
	tracer().Debugf("equation box %v: h=%v b=%v", h, ht, base)
	return reg, ht
}

// printer is satisfied by troff.Writer and troff.Buffer both.
type printer interface {
	Printf(format string, args ...interface{})
}

// restoreState resets point size and font to the values saved at the
// start of the equation.
func (d *Driver) restoreState(out printer) {
	out.Printf(".ps %s\n", troff.Number(sizeSaveReg))
	out.Printf(".ft %s\n", troff.Number(fontSaveReg))
}

// echoRestOfLine copies whatever follows the equation end marker on its
// line, so that arguments to the .EN macro survive.
func (d *Driver) echoRestOfLine() {
	if !d.lx.AtEquationEnd() {
		d.out.Printf("\n")
		return
	}
	switch last := d.src.Last(); last {
	case '\n', 0:
		d.out.Printf("\n")
		return
	case ' ', '\t':
		d.out.Printf("%c", last)
	}
	for {
		c, err := d.src.Next()
		if err != nil {
			d.out.Printf("\n")
			return
		}
		d.out.Printf("%c", c)
		if c == '\n' {
			return
		}
	}
}

func (d *Driver) report(startLine int, err error) {
	d.errcnt++
	tracer().Errorf("%s: equation at line %d: %v", d.src.Name(), startLine, err)
}

// fatal tells resource exhaustion apart from syntax errors. Syntax
// errors spoil one equation; these spoil the run.
func fatal(err error) bool {
	return errors.Is(err, box.ErrPoolExhausted) ||
		errors.Is(err, grammar.ErrTokenTooLong) ||
		errors.Is(err, grammar.ErrNestingTooDeep) ||
		errors.Is(err, symbol.ErrTooLong)
}
