package termui

// Line-editing REPL scaffold for interactive interpreters.

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/tyqn"
)

// BaseREPL drives a readline loop and dispatches input lines. A handful
// of administrative commands (help, bye, mode, setprompt) are handled
// here; every other line goes to the embedding type's Interpreter.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter // receives non-administrative input lines
	Helper      func(io.Writer)        // appended to the help output, may be nil
	readline    *readline.Instance
	toolname    string
	version     string
	editmode    string
}

// REPLCommandInterpreter interprets one input line. Implementations
// write their results to the REPL's Outputs.
type REPLCommandInterpreter interface {
	InterpretCommand(string)
}

// NewBaseREPL creates the readline scaffold for a named tool. Input
// history persists in a per-tool file under the system temp directory.
func NewBaseREPL(toolname, version string) *BaseREPL {
	histfile := fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt(toolname),
		HistoryFile:         histfile,
		AutoComplete:        replCompleter,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		panic(err) // no terminal to talk to, nothing sensible left to do
	}
	return &BaseREPL{
		readline: rl,
		toolname: toolname,
		version:  version,
		editmode: "emacs",
	}
}

func prompt(toolname string) string {
	return prtxt.FgGreen.Sprintf("%s> ", toolname)
}

// Completer-tree for administrative and equation-language commands.
var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
	readline.PcItem("setprompt"),
	readline.PcItem("macros"),
	readline.PcItem("symbols"),
	readline.PcItem("define"),
	readline.PcItem("delim"),
	readline.PcItem("gsize"),
	readline.PcItem("gfont"),
)

// Outputs returns stdout and stderr of this REPL.
func (repl *BaseREPL) Outputs() (io.Writer, io.Writer) {
	return repl.readline.Stdout(), repl.readline.Stderr()
}

func (repl *BaseREPL) banner(out io.Writer) {
	fmt.Fprintf(out, "Welcome to %s [V%s]\n", repl.toolname, repl.version)
}

// Prompt enters the read-eval-print loop and blocks until the user
// leaves with 'bye', EOF or an interrupt on an empty line.
func (repl *BaseREPL) Prompt(exitOnBye bool) {
	defer repl.readline.Close()
	repl.banner(repl.readline.Stderr())
	for {
		line, err := repl.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		words := strings.Fields(line)
		command := ""
		if len(words) > 0 {
			command = words[0]
		}
		if doExit := repl.executeCommand(command, words, line); doExit {
			break
		}
	}
	if exitOnBye {
		tyqn.Exit(0)
	}
}

// executeCommand handles one input line. It receives the first word,
// the word list, and the unsplit line; a true result ends the loop.
func (repl *BaseREPL) executeCommand(cmd string, args []string, line string) bool {
	stderr := repl.readline.Stderr()
	switch cmd {
	case "":
		// empty line, prompt again
	case "help":
		repl.banner(stderr)
		io.WriteString(stderr, "\nThe following commands are available:\n\n")
		io.WriteString(stderr, "  help               : print this message\n")
		io.WriteString(stderr, "  bye                : quit application\n")
		io.WriteString(stderr, "  mode [mode]        : display or set current editing mode\n")
		io.WriteString(stderr, "  setprompt [prompt] : set current prompt [to default]\n")
		if repl.Helper != nil {
			repl.Helper(stderr)
		}
	case "bye":
		println("> goodbye!")
		return true
	case "mode":
		if len(args) > 1 && (args[1] == "vi" || args[1] == "emacs") {
			repl.readline.SetVimMode(args[1] == "vi")
			repl.editmode = args[1]
			return false
		}
		fmt.Fprintf(stderr, "> current input mode: %s\n", repl.editmode)
	case "setprompt":
		if rest := strings.TrimSpace(line[len(cmd):]); rest != "" {
			repl.readline.SetPrompt(rest + " ")
		} else {
			repl.readline.SetPrompt(prompt(repl.toolname))
		}
	default:
		if repl.Interpreter == nil {
			fmt.Fprintf(stderr, "> no interpreter attached\n")
			return false
		}
		trace().Debugf("call interpreter on: '%s'", line)
		repl.Interpreter.InterpretCommand(line)
	}
	return false
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
