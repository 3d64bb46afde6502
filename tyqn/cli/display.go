package cli

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/tyqn/grammar"
	"github.com/npillmayer/tyqn/symbol"
)

// --- Property tables for various types -------------------------------------

func macroTable(macros []grammar.Macro) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle("Definitions")
	tw.AppendHeader(table.Row{"name", "replacement text"})
	for _, m := range macros {
		tw.AppendRow(table.Row{m.Name, m.Text})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}

func symbolTable() table.Writer {
	names := symbol.Names()
	keys := make([]string, 0, len(names))
	for k := range names {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	tw := table.NewWriter()
	tw.SetTitle("Symbols")
	tw.AppendHeader(table.Row{"name", "output"})
	for _, k := range keys {
		tw.AppendRow(table.Row{k, names[k]})
	}
	tw.SetStyle(table.StyleLight)
	return tw
}
