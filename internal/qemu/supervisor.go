// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"
)

const (
	// defaultPollInterval bounds the latency for noticing a termination
	// request while the child is running.
	defaultPollInterval = 500 * time.Millisecond

	// defaultGracePeriod is granted twice: once for the child to stop on
	// its own after a termination request and once to be reaped after a
	// kill request.
	defaultGracePeriod = time.Second
)

// State of a supervised child process.
type State int

const (
	// StateRunning is the initial state. It is only ever observed in a
	// [Result] if supervision failed.
	StateRunning State = iota
	// StateExited means the child exited on its own.
	StateExited
	// StateKilled means the child ignored the grace period after a
	// termination request and was forcibly killed.
	StateKilled
)

// String implements [fmt.Stringer].
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return "invalid"
	}
}

// Result describes how a supervised child process ended.
type Result struct {
	State State

	// ExitCode is the child's exit status for [StateExited]. It is
	// negative if the child was terminated by a signal.
	ExitCode int
}

// Supervisor owns a started child process until it has exited or has been
// killed.
//
// A single goroutine reaps the child. The supervising caller only ever
// blocks on bounded waits, so it never blocks indefinitely.
type Supervisor struct {
	cmd *exec.Cmd

	// PollInterval is the bounded wait per poll iteration.
	PollInterval time.Duration

	// GracePeriod is the bounded wait after a termination request and
	// again after a kill request.
	GracePeriod time.Duration
}

// NewSupervisor returns a [Supervisor] for the given started command with
// default timing.
func NewSupervisor(cmd *exec.Cmd) *Supervisor {
	return &Supervisor{
		cmd:          cmd,
		PollInterval: defaultPollInterval,
		GracePeriod:  defaultGracePeriod,
	}
}

// Supervise blocks until the child process has exited or was killed.
//
// The terminating flag is shared with the asynchronous signal handler and
// is the only communication channel between the two. It is rechecked once
// per poll interval, so a termination request is noticed with at most one
// interval of latency. Once the flag is observed, the child gets one grace
// period to stop on its own. It is not signaled directly. If it is still
// running afterwards, it is killed.
//
// A kill failure caused by the process being gone already is treated as
// success, since it merely lost the race with the child's own exit. Any
// other kill failure is returned as an error wrapping [ErrKillFailed], as
// it leaves a leaked subprocess behind.
func (s *Supervisor) Supervise(terminating *atomic.Bool) (Result, error) {
	// Reap the child in a separate goroutine. Supervision selects on the
	// channel with timeouts, so signal delivery never surfaces as an error
	// from an interrupted wait.
	waitCh := make(chan error, 1)
	go func() {
		waitCh <- s.cmd.Wait()
	}()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for !terminating.Load() {
		select {
		case err := <-waitCh:
			return s.exited(err)
		case <-ticker.C:
		}
	}

	// Termination requested while the child is still running. Grant one
	// grace period before escalating.
	select {
	case err := <-waitCh:
		return s.exited(err)
	case <-time.After(s.GracePeriod):
	}

	err := s.kill()
	if err != nil {
		return Result{State: StateRunning}, err
	}

	select {
	case <-waitCh:
		return Result{State: StateKilled, ExitCode: -1}, nil
	case <-time.After(s.GracePeriod):
		return Result{State: StateRunning}, ErrNotReaped
	}
}

func (s *Supervisor) kill() error {
	err := s.cmd.Process.Kill()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrProcessDone), errors.Is(err, unix.ESRCH):
		// The child exited between the grace period elapsing and the kill
		// request. Acceptable outcome.
		return nil
	default:
		return fmt.Errorf("%w: %w", ErrKillFailed, err)
	}
}

func (s *Supervisor) exited(waitErr error) (Result, error) {
	var exitErr *exec.ExitError

	switch {
	case waitErr == nil:
	case errors.As(waitErr, &exitErr):
		// Non-zero exit status and signal death of the child are
		// informational only, not supervision failures.
	default:
		return Result{State: StateRunning},
			fmt.Errorf("%w: %w", ErrWaitFailed, waitErr)
	}

	return Result{
		State:    StateExited,
		ExitCode: s.cmd.ProcessState.ExitCode(),
	}, nil
}
