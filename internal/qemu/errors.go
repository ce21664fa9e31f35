// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import "errors"

var (
	// ErrArgumentCollision is returned if two [Argument]s are considered
	// equal.
	ErrArgumentCollision = errors.New("colliding args")

	// ErrKillFailed is returned if the kill request for the child process
	// failed for a reason other than the process being gone already. The
	// child process is possibly leaked.
	ErrKillFailed = errors.New("unable to kill child process")

	// ErrWaitFailed is returned if waiting on the child process failed for
	// a reason other than a non-zero exit status.
	ErrWaitFailed = errors.New("wait on child process failed")

	// ErrNotReaped is returned if the child process could not be reaped
	// after a kill request. The child process is possibly leaked.
	ErrNotReaped = errors.New("child process still running after kill")
)
