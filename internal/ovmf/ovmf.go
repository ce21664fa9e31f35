// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ovmf locates OVMF firmware images on the host system.
package ovmf

import (
	"errors"
	"os"
)

// DefaultCandidates is the ordered list of well-known OVMF image locations
// probed when no firmware path is given on the command line.
var DefaultCandidates = []string{
	// Debian, Ubuntu
	"/usr/share/OVMF/OVMF.fd",
	// Arch Linux
	"/usr/share/ovmf/x64/OVMF_CODE.fd",
	// Working directory
	"OVMF.fd",
}

// ErrNotFound is returned if none of the candidate paths exists.
var ErrNotFound = errors.New("no OVMF firmware image found")

// Locate returns the first candidate that exists as a regular file. Each
// candidate is probed exactly once.
func Locate(candidates []string) (string, error) {
	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		if info.Mode().IsRegular() {
			return path, nil
		}
	}

	return "", ErrNotFound
}
