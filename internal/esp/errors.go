// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package esp

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySourcePath is returned for an extra file entry without a
	// source path.
	ErrEmptySourcePath = errors.New("empty source path")

	// ErrDestNotLocal is returned for an extra file entry whose destination
	// escapes the staging directory.
	ErrDestNotLocal = errors.New("destination escapes staging directory")
)

// EntryError wraps errors caused by a malformed extra file entry.
type EntryError struct {
	Entry string
	Err   error
}

// Error implements the [error] interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("file entry %q: %v", e.Entry, e.Err)
}

// Is implements the [errors.Is] interface.
func (*EntryError) Is(other error) bool {
	_, ok := other.(*EntryError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *EntryError) Unwrap() error {
	return e.Err
}
