// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'tyqn.cli'.
func trace() tracing.Trace {
	return tracing.Select("tyqn.cli")
}

// A Formatter renders an interpreter result for the terminal. It reports
// whether it knew how to handle the item.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

type DefaultFormatter struct{}

func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	switch t := item.(type) {
	case string:
		// multi-line strings get a marker per line, as troff requests
		// usually span several lines
		for _, line := range strings.Split(strings.TrimRight(t, "\n"), "\n") {
			w.Write([]byte("▶ "))
			if _, err := w.Write([]byte(line)); err != nil {
				return false, err
			}
			w.Write([]byte{'\n'})
		}
		return true, nil
	case table.Writer:
		if t == nil {
			w.Write([]byte("▶ (empty table)\n"))
		} else {
			w.Write([]byte(t.Render()))
			w.Write([]byte{'\n'})
		}
		return true, nil
	default:
		w.Write([]byte("▶ "))
		w.Write([]byte(fmt.Sprintf("object of type %T\n", t)))
		return true, nil
	}
}
