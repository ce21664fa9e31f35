// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu composes the QEMU command line for booting a staged EFI
// System Partition with OVMF firmware and supervises the running QEMU child
// process until it exits or is killed. It expects the required QEMU binary
// to be present on the system.
package qemu
