// Package cli implements the tyqn command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/driver"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tyqn [flags] [file ...]",
	Short: "An equation preprocessor for terminal-oriented troff",
	Long: `Welcome to tyqn V0.1 (experimental)

tyqn translates mathematical equations embedded in troff documents into
requests a terminal-oriented troff can render. Equations live between
.EQ and .EN markers, or between configurable in-line delimiters; all
other input passes through untouched.

tyqn reads the given files in order, as one document, and writes the
result to stdout. A dash stands for stdin, as does an empty file list.
If run in interactive mode, it will prompt for equations in a terminal
REPL and show the generated requests.

`,
	Run: runTyqnCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by tyqn.main().
func Execute() {
	if rootCmd.Execute() != nil {
		tyqn.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	rootCmd.PersistentFlags().BoolP("interactive", "i", false, "Force run in interactive mode")
	rootCmd.PersistentFlags().String("logfile", "stderr", "URL of log output location")
	rootCmd.PersistentFlags().StringP("delim", "d", "", "Pair of in-line equation delimiters, e.g. -d '$$'")
	rootCmd.PersistentFlags().IntP("size", "s", 10, "Global point size for equations")
	rootCmd.PersistentFlags().StringP("font", "f", "R", "Global font for equations")
	rootCmd.PersistentFlags().BoolP("noeqn", "n", false, "Measure equations without printing them")
}

// options merges command line flags into a set of translation options.
func options(cmd *cobra.Command) tyqn.Options {
	opts := tyqn.DefaultOptions()
	if d, _ := cmd.Flags().GetString("delim"); len(d) >= 2 {
		r := []rune(d)
		opts.LeftDelim, opts.RightDelim = r[0], r[1]
	}
	if n, _ := cmd.Flags().GetInt("size"); n > 0 {
		opts.GlobalSize = n
	}
	if f, _ := cmd.Flags().GetString("font"); f != "" {
		opts.GlobalFont = tyqn.Font(f[0])
	}
	opts.SuppresseEqn, _ = cmd.Flags().GetBool("noeqn")
	return opts
}

func runTyqnCmd(cmd *cobra.Command, args []string) {
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		runTyqnRepl(cmd)
		return
	}
	opts := options(cmd)
	d, closers, err := documentDriver(opts, args)
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	if err != nil {
		tracing.Errorf("tyqn: %v", err)
		tyqn.Exit(1)
	}
	if err := d.Run(); err != nil {
		tracing.Errorf("tyqn: %v", err)
		tyqn.Exit(1)
	}
	if d.ErrorCount() > 0 {
		tracing.Errorf("tyqn: %d equations could not be translated", d.ErrorCount())
		tyqn.Exit(1)
	}
}

// documentDriver chains the named input files into one document and sets
// up a driver writing to stdout. A dash names stdin.
func documentDriver(opts tyqn.Options, args []string) (*driver.Driver, []io.Closer, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}
	var d *driver.Driver
	var closers []io.Closer
	for _, name := range args {
		var in io.Reader
		if name == "-" {
			name, in = "stdin", os.Stdin
		} else {
			f, err := os.Open(name)
			if err != nil {
				return d, closers, err
			}
			closers = append(closers, f)
			in = f
		}
		if d == nil {
			d = driver.New(opts, name, in, os.Stdout)
		} else {
			d.AddInput(name, in)
		}
	}
	return d, closers, nil
}
