// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for uefi-run. It handles
// flag parsing, logging setup, signal handling and the overall run
// lifecycle.
package cmd
