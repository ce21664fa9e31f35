// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// DefaultExecutable is the QEMU binary used if none is given. It is looked
// up via the environment's executable search path.
const DefaultExecutable = "qemu-system-x86_64"

// CommandSpec defines the parameters for a single QEMU launch.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// Path to the OVMF firmware image.
	Firmware string

	// Path to the staging directory that is mounted as raw FAT boot drive.
	ESPDir string

	// ExtraArgs are appended verbatim after the fixed baseline arguments.
	// Order is preserved and no interpretation happens beyond what process
	// spawning requires.
	ExtraArgs []string

	// Stdin of the QEMU command. If not set, [os.Stdin] is used. The
	// baseline wires the guest serial port to stdio, so this is the UEFI
	// console.
	Stdin io.Reader

	// Stdout of the QEMU command. If not set, [os.Stdout] is used.
	Stdout io.Writer

	// Stderr of the QEMU command. If not set, [os.Stderr] is used.
	Stderr io.Writer
}

// arguments compiles the fixed baseline argument list.
func (s *CommandSpec) arguments() []Argument {
	return []Argument{
		// QEMU enables a load of default devices that slow down boot.
		UniqueArg("nodefaults"),
		// Modern machine type, with acceleration if available.
		UniqueArg("machine", "q35", "accel=kvm:tcg"),
		// Standard VGA card with Bochs VBE extensions.
		UniqueArg("vga", "std"),
		// OVMF wires the UEFI stdin and stdout to the serial port.
		RepeatableArg("serial", "stdio"),
		UniqueArg("bios", s.Firmware),
		// Mount the staging directory as a raw FAT drive.
		RepeatableArg("drive", "format=raw", "file=fat:rw:"+s.ESPDir),
	}
}

// Args returns the complete argument vector: the baseline followed by
// [CommandSpec.ExtraArgs] verbatim.
//
// The baseline is checked for argument collisions; the extra arguments are
// not touched.
func (s *CommandSpec) Args() ([]string, error) {
	argv, err := buildArgs(s.arguments())
	if err != nil {
		return nil, err
	}

	return append(argv, s.ExtraArgs...), nil
}

// Start launches QEMU as a child process. It fails if the binary cannot be
// started, surfacing the underlying OS error.
func (s *CommandSpec) Start() (*exec.Cmd, error) {
	argv, err := s.Args()
	if err != nil {
		return nil, err
	}

	executable := s.Executable
	if executable == "" {
		executable = DefaultExecutable
	}

	cmd := exec.Command(executable, argv...)
	cmd.Stdin = s.stdin()
	cmd.Stdout = s.stdout()
	cmd.Stderr = s.stderr()

	err = cmd.Start()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", executable, err)
	}

	slog.Debug("Started QEMU",
		slog.Int("pid", cmd.Process.Pid),
		slog.String("command", cmd.String()))

	return cmd, nil
}

func (s *CommandSpec) stdin() io.Reader {
	if s.Stdin == nil {
		return os.Stdin
	}

	return s.Stdin
}

func (s *CommandSpec) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}

	return s.Stdout
}

func (s *CommandSpec) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}

	return s.Stderr
}
