// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/12101111/uefi-run/internal/esp"
	"github.com/12101111/uefi-run/internal/ovmf"
	"github.com/12101111/uefi-run/internal/qemu"
)

func run(opts *options, cfg IO) error {
	firmware := opts.bios
	if firmware == "" {
		var err error

		firmware, err = ovmf.Locate(ovmf.DefaultCandidates)
		if err != nil {
			return fmt.Errorf("locate firmware: %w", err)
		}
	}

	slog.Debug("Using firmware image", slog.String("path", firmware))

	// The watcher must be live before the staging directory exists so a
	// termination request arriving mid-run cannot leave it behind.
	terminating, stopWatching := watchTerminationSignals(cfg.Stderr)
	defer stopWatching()

	staged, err := esp.Stage(opts.executable, opts.addFiles)
	if err != nil {
		return fmt.Errorf("stage boot files: %w", err)
	}
	defer removeStaged(staged)

	slog.Debug("Staged boot files", slog.String("path", staged.Path()))

	spec := qemu.CommandSpec{
		Executable: opts.qemuBin,
		Firmware:   firmware,
		ESPDir:     staged.Path(),
		ExtraArgs:  opts.qemuArgs,
		Stdin:      cfg.Stdin,
		Stdout:     cfg.Stdout,
		Stderr:     cfg.Stderr,
	}

	cmd, err := spec.Start()
	if err != nil {
		return fmt.Errorf("qemu: %w", err)
	}

	result, err := qemu.NewSupervisor(cmd).Supervise(terminating)
	if err != nil {
		return fmt.Errorf("supervise qemu: %w", err)
	}

	reportResult(result)

	return nil
}

// reportResult logs how QEMU ended. Only a clean zero exit stays silent.
// The result is informational and never a tool failure.
func reportResult(result qemu.Result) {
	switch {
	case result.State == qemu.StateKilled:
		slog.Warn("QEMU did not stop within the grace period and was killed")
	case result.ExitCode == 0:
	case result.ExitCode < 0:
		slog.Warn("QEMU exited unsuccessfully")
	default:
		slog.Warn("QEMU exited with non-zero status",
			slog.Int("status", result.ExitCode))
	}
}

func removeStaged(staged *esp.Dir) {
	err := staged.Remove()
	if err != nil {
		slog.Error("Failed to remove staging directory",
			slog.String("path", staged.Path()),
			slog.Any("error", err))
	}
}
