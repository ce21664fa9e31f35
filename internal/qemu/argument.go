// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"slices"
	"strings"
)

// Argument is a QEMU command line argument with an optional value.
//
// Its name might be marked unique in a list of [Argument]s.
type Argument struct {
	name   string
	value  string
	unique bool
}

// UniqueArg returns a new [Argument] whose name may appear only once in an
// argument list. Multiple values are joined with ",".
func UniqueArg(name string, value ...string) Argument {
	return Argument{
		name:   name,
		value:  strings.Join(value, ","),
		unique: true,
	}
}

// RepeatableArg returns a new [Argument] that may appear multiple times in
// an argument list as long as the values differ.
func RepeatableArg(name string, value ...string) Argument {
	return Argument{
		name:  name,
		value: strings.Join(value, ","),
	}
}

// String implements [fmt.Stringer].
func (a Argument) String() string {
	s := "-" + a.name
	if a.value != "" {
		s += " " + a.value
	}

	return s
}

// collides reports whether the two [Argument]s violate each other's
// uniqueness constraint.
func (a Argument) collides(other Argument) bool {
	if a.name != other.name {
		return false
	}

	if a.unique || other.unique {
		return true
	}

	return a.value == other.value
}

// buildArgs compiles the [Argument]s into a slice of strings usable with
// [os/exec.Command].
//
// It returns an error if the uniqueness constraint of any [Argument] is
// violated.
func buildArgs(args []Argument) ([]string, error) {
	argv := make([]string, 0, 2*len(args))

	for idx, arg := range args {
		if i := slices.IndexFunc(args[:idx], arg.collides); i != -1 {
			return nil, fmt.Errorf(
				"%w: %s, %s",
				ErrArgumentCollision,
				arg.String(),
				args[i].String(),
			)
		}

		argv = append(argv, "-"+arg.name)

		if arg.value != "" {
			argv = append(argv, arg.value)
		}
	}

	return argv, nil
}
