package troff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/npillmayer/tyqn"
)

// Writer writes the output document. It remembers the first write error and
// turns subsequent writes into no-ops, so callers check Err once at the end.
type Writer struct {
	out *bufio.Writer
	err error
}

// NewWriter wraps an output stream.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: bufio.NewWriter(out)}
}

// Line writes one line verbatim, terminated by a newline.
func (w *Writer) Line(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.out.WriteString(s); err != nil {
		w.err = err
		return
	}
	w.err = w.out.WriteByte('\n')
}

// Printf writes formatted output without adding a newline.
func (w *Writer) Printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}

// Emit copies a finished equation buffer into the document.
func (w *Writer) Emit(b *Buffer) {
	if w.err != nil {
		return
	}
	tracer().Debugf("emitting %d bytes of equation commands", b.buf.Len())
	_, w.err = w.out.Write(b.buf.Bytes())
}

// Flush flushes buffered output and returns the first error seen.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.out.Flush()
	return w.err
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// --- Equation command buffer -----------------------------------------------

// Buffer collects the requests and escapes for a single equation.
type Buffer struct {
	buf bytes.Buffer
}

// NewBuffer creates an empty equation buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Printf appends a formatted command fragment.
func (b *Buffer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(&b.buf, format, args...)
}

// Define sets string register reg to content.
func (b *Buffer) Define(reg string, content string) {
	b.Printf(".ds %s %s\n", reg, content)
}

// Add appends content to string register reg.
func (b *Buffer) Add(reg string, content string) {
	b.Printf(".as %s %s\n", reg, content)
}

// SetNumber sets number register reg from a register expression.
func (b *Buffer) SetNumber(reg string, expr string) {
	b.Printf(".nr %s %s\n", reg, expr)
}

// MeasureWidth stores the rendered width of string register sreg into
// number register nreg.
func (b *Buffer) MeasureWidth(nreg, sreg string) {
	b.Printf(".nr %s \\w'%s'\n", nreg, Interp(sreg))
}

// Rename renames string register from to to.
func (b *Buffer) Rename(from, to string) {
	b.Printf(".rn %s %s\n", from, to)
}

// PointSize emits a point size request.
func (b *Buffer) PointSize(n int) {
	b.Printf(".ps %d\n", n)
}

// FontRequest emits a font change request.
func (b *Buffer) FontRequest(f tyqn.Font) {
	b.Printf(".ft %c\n", byte(f))
}

// Len returns the number of buffered bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// String returns the buffered commands.
func (b *Buffer) String() string {
	return b.buf.String()
}

// Reset discards all buffered commands.
func (b *Buffer) Reset() {
	b.buf.Reset()
}
