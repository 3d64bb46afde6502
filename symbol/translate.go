package symbol

import (
	"errors"
	"fmt"
)

// ErrTooLong flags a token whose translation exceeds the session's buffer
// limit. In the historic implementation this aborts the run.
var ErrTooLong = errors.New("converted token too long")

// Translate converts a text token character by character into a device
// character sequence. Known symbol names should be resolved with Lookup
// first; Translate is for everything else. limit bounds the size of the
// result, 0 means the historic default.
func Translate(token string, limit int) (string, error) {
	if limit <= 0 {
		limit = 400
	}
	t := translator{in: token, limit: limit}
	for t.pos < len(t.in) {
		c := t.in[t.pos]
		t.pos++
		t.step(c)
		if len(t.out) > t.limit {
			head := token
			if len(head) > 25 {
				head = head[:25]
			}
			tracer().Errorf("converted token %s... too long", head)
			return "", fmt.Errorf("%w: %s...", ErrTooLong, head)
		}
	}
	return string(t.out), nil
}

type translator struct {
	in    string
	pos   int
	out   []byte
	limit int
}

func (t *translator) step(c byte) {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', ':', ';', '!':
		t.put(c)
	case '(', '[', ')', ']':
		t.shim()
		t.put(c)
	case '+', '|':
		t.shim()
		t.put(c)
		t.shim()
	case '=', '>', '<':
		if t.peek() == '=' {
			t.pair(c, '=')
			t.pos++
		} else {
			t.shim()
			t.put(c)
			t.shim()
		}
	case '-':
		if t.peek() == '>' {
			t.shim()
			t.pair('-', '>')
			t.pos++
		} else {
			t.shim()
			t.pair('m', 'i')
			t.shim()
		}
	case '/':
		t.pair('s', 'l')
	case '~', ' ':
		t.shim()
		t.shim()
	case '^':
		t.shim()
	case '\\':
		t.escape()
	case '\'':
		t.pair('f', 'm')
	default:
		t.put(c)
	}
}

// escape passes a device escape through, keeping 2, 3 or 4 character forms
// intact: \(xy names four characters, \*(xy string interpolations five.
func (t *translator) escape() {
	t.put('\\')
	if t.pos >= len(t.in) {
		return
	}
	c := t.in[t.pos]
	t.pos++
	t.put(c)
	if t.pos >= len(t.in) {
		return
	}
	d := t.in[t.pos]
	t.pos++
	t.put(d)
	if c == '(' && t.pos < len(t.in) {
		t.put(t.in[t.pos])
		t.pos++
	}
	if c == '*' && d == '(' {
		for i := 0; i < 2 && t.pos < len(t.in); i++ {
			t.put(t.in[t.pos])
			t.pos++
		}
	}
}

// shim inserts a spacing hint, narrowing with every repetition: a thin
// space first, then half and zero width, finally negative.
func (t *translator) shim() {
	var prev byte
	if len(t.out) > 0 {
		prev = t.out[len(t.out)-1]
	}
	switch prev {
	case '|':
		t.puts(`\^`)
	case '^':
		t.puts(`\&`)
	case '&':
		t.puts(`\!`)
	default:
		t.puts(`\|`)
	}
}

// pair emits a two-character device name \(xy.
func (t *translator) pair(c1, c2 byte) {
	t.put('\\')
	t.put('(')
	t.put(c1)
	t.put(c2)
}

func (t *translator) put(c byte) {
	t.out = append(t.out, c)
}

func (t *translator) puts(s string) {
	t.out = append(t.out, s...)
}

func (t *translator) peek() byte {
	if t.pos < len(t.in) {
		return t.in[t.pos]
	}
	return 0
}
