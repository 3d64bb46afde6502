// Package tyqn is an equation preprocessor for terminal-oriented troff.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/npillmayer/tyqn"
	"github.com/npillmayer/tyqn/tyqn/cli"
)

func main() {
	var stop context.CancelFunc
	tyqn.SignalContext, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli.Execute()
}
