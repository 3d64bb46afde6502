package grammar

import (
	"bufio"
	"fmt"
	"io"

	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// Source is the character input of the translator. It chains input files,
// counts lines, supports one character of pushback, and carries the stack
// of active macro expansions. Reading past the end of one file silently
// continues with the next.
type Source struct {
	inputs     []namedInput
	index      int
	line       int
	pushback   rune
	haveBack   bool
	last       rune
	isEof      bool
	expansions *linkedliststack.Stack
	maxDepth   int
}

type namedInput struct {
	name   string
	reader io.RuneReader
}

// expFrame is one active macro expansion. Pushing a frame saves the outer
// pushback character; popping restores it and yields a space, so two
// expansions never glue together.
type expFrame struct {
	text     []rune
	pos      int
	saved    rune
	hadSaved bool
}

// NewSource creates a character source reading from r. name is used in
// error messages.
func NewSource(name string, r io.Reader) *Source {
	src := &Source{
		line:       1,
		expansions: linkedliststack.New(),
		maxDepth:   9,
	}
	src.Append(name, r)
	return src
}

// Append chains another input after the current ones.
func (src *Source) Append(name string, r io.Reader) {
	src.inputs = append(src.inputs, namedInput{name: name, reader: bufio.NewReader(r)})
	src.isEof = false
}

// SetMaxNesting bounds the depth of macro expansions.
func (src *Source) SetMaxNesting(d int) {
	if d > 0 {
		src.maxDepth = d
	}
}

// Name returns the name of the input currently read.
func (src *Source) Name() string {
	if src.index < len(src.inputs) {
		return src.inputs[src.index].name
	}
	return "<eof>"
}

// Line returns the current line number.
func (src *Source) Line() int {
	return src.line
}

// Last returns the character most recently delivered by Next.
func (src *Source) Last() rune {
	return src.last
}

// Next delivers the next character, from the innermost macro expansion
// first. At the end of all inputs it returns io.EOF.
func (src *Source) Next() (rune, error) {
	r, err := src.next()
	src.last = r
	return r, err
}

func (src *Source) next() (rune, error) {
	if src.haveBack {
		src.haveBack = false
		return src.pushback, nil
	}
	for !src.expansions.Empty() {
		top, _ := src.expansions.Peek()
		f := top.(*expFrame)
		if f.pos < len(f.text) {
			r := f.text[f.pos]
			f.pos++
			return r, nil
		}
		src.expansions.Pop()
		if f.hadSaved {
			src.PushBack(f.saved)
		}
		return ' ', nil
	}
	for src.index < len(src.inputs) {
		r, _, err := src.inputs[src.index].reader.ReadRune()
		if err == io.EOF {
			src.index++
			continue
		}
		if err != nil {
			return 0, err
		}
		if r == '\n' {
			src.line++
		}
		return r, nil
	}
	src.isEof = true
	return 0, io.EOF
}

// PushBack returns one character to the source, to be delivered by the
// next call to Next.
func (src *Source) PushBack(r rune) {
	if src.haveBack {
		tracer().Errorf("pushback overrun, dropping %#U", src.pushback)
	}
	src.pushback = r
	src.haveBack = true
}

// pushExpansion starts reading from a macro replacement text.
func (src *Source) pushExpansion(text string) error {
	if src.expansions.Size() >= src.maxDepth {
		return fmt.Errorf("%w: > %d", ErrNestingTooDeep, src.maxDepth)
	}
	f := &expFrame{text: []rune(text)}
	if src.haveBack {
		f.saved = src.pushback
		f.hadSaved = true
		src.haveBack = false
	}
	src.expansions.Push(f)
	return nil
}
