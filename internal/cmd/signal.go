// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// terminationSignals are the signals that request an orderly shutdown of
// the run.
var terminationSignals = []os.Signal{
	unix.SIGINT,
	unix.SIGTERM,
	unix.SIGHUP,
}

// watchTerminationSignals installs a handler for the given signals. The
// handler communicates with the rest of the program solely through the
// returned flag; it never blocks.
//
// The returned stop function removes the handler and releases its
// goroutine.
func watchTerminationSignals(
	out io.Writer,
	signals ...os.Signal,
) (*atomic.Bool, func()) {
	if len(signals) == 0 {
		signals = terminationSignals
	}

	terminating := &atomic.Bool{}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, signals...)

	done := make(chan struct{})
	go func() {
		defer close(done)

		for range sigCh {
			fmt.Fprintln(out, "uefi-run terminating...")
			terminating.Store(true)
		}
	}()

	stop := func() {
		signal.Stop(sigCh)
		close(sigCh)
		<-done
	}

	return terminating, stop
}
