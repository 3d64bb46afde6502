package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/driver"
	"github.com/npillmayer/tyqn/tyqn/ui/termui"
	"github.com/spf13/cobra"
)

func runTyqnRepl(cmd *cobra.Command) {
	tracer().Infof("tyqn interactive mode")
	repl := &eqnREPL{opts: options(cmd)}
	repl.BaseREPL = termui.NewBaseREPL("tyqn", "0.1 experimental")
	repl.Interpreter = repl
	repl.Helper = func(w io.Writer) {
		io.WriteString(w, `
Every input line is typeset as one equation and the generated troff
requests are printed. Directive lines are remembered and prefixed to
every following equation:

  define <name> '<text>'  : introduce a replacement text
  gsize <n>               : set the global point size
  gfont <f>               : set the global font
  delim <xy> | off        : set or clear in-line delimiters

Additionally the following inspection commands are available:

  macros                  : list the remembered definitions
  symbols                 : list the known special symbol names

`)
	}
	repl.Prompt(true)
}

// eqnREPL typesets one equation per input line. Directives accumulate in
// a preamble which re-runs in front of every subsequent equation, so
// definitions behave as if all lines formed one document.
type eqnREPL struct {
	*termui.BaseREPL
	opts     tyqn.Options
	preamble []string
}

func (repl *eqnREPL) InterpretCommand(command string) {
	command = strings.Trim(command, "\x00 \t")
	if command == "" {
		return
	}
	stdout, stderr := repl.Outputs()
	switch strings.Fields(command)[0] {
	case "macros":
		repl.showMacros(stdout)
		return
	case "symbols":
		termui.DefaultFormatter{}.Format(symbolTable(), stdout)
		return
	case "define", "ndefine", "tdefine", "gsize", "gfont", "delim":
		repl.preamble = append(repl.preamble, command)
		fmt.Fprintf(stderr, "> remembered for subsequent equations\n")
		return
	}
	out, err := repl.typeset(command)
	if err != nil {
		fmt.Fprintf(stderr, "translation error: %s\n", err.Error())
		return
	}
	termui.DefaultFormatter{}.Format(out, stdout)
}

// typeset wraps a single equation into a throwaway document and runs the
// translation, returning the troff requests it generates.
func (repl *eqnREPL) typeset(eqn string) (string, error) {
	d, out := repl.document(eqn)
	if err := d.Run(); err != nil {
		return "", err
	}
	if d.ErrorCount() > 0 {
		return "", errors.New("equation is malformed")
	}
	s := out.String()
	// strip the .EQ/.EN scaffold, the interesting part sits in between
	if i := strings.Index(s, "\n"); i >= 0 && strings.HasPrefix(s, ".EQ") {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, ".EN"); i >= 0 {
		s = s[:i]
	}
	return s, nil
}

func (repl *eqnREPL) document(eqn string) (*driver.Driver, *strings.Builder) {
	var doc strings.Builder
	doc.WriteString(".EQ\n")
	for _, p := range repl.preamble {
		doc.WriteString(p)
		doc.WriteByte('\n')
	}
	if eqn != "" {
		doc.WriteString(eqn)
		doc.WriteByte('\n')
	}
	doc.WriteString(".EN\n")
	out := &strings.Builder{}
	return driver.New(repl.opts, "repl", strings.NewReader(doc.String()), out), out
}

func (repl *eqnREPL) showMacros(out io.Writer) {
	d, _ := repl.document("")
	if err := d.Run(); err != nil {
		tracer().Errorf("preamble broken: %v", err)
	}
	termui.DefaultFormatter{}.Format(macroTable(d.Macros()), out)
}
