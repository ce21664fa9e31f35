// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const usageLong = `Runs UEFI executables in QEMU.

The executable is copied into a temporary directory laid out like an EFI
System Partition and booted as EFI/BOOT/BOOTX64.EFI with OVMF firmware. The
directory is mounted into the guest as a raw FAT drive and is removed again
when QEMU has exited.

All arguments following FILE are passed to QEMU verbatim:

    uefi-run -b /path/to/OVMF.fd app.efi -m 512 -nographic
`

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// options is the launch configuration. It is populated once from the
// command line and consumed by run.
type options struct {
	bios     string
	qemuBin  string
	addFiles []string
	debug    bool

	executable string
	qemuArgs   []string
}

func newRootCommand(
	opts *options,
	cfg IO,
	runFn func(*options, IO) error,
) *cobra.Command {
	root := &cobra.Command{
		Use:           "uefi-run [flags] FILE [qemu-args...]",
		Short:         "Runs UEFI executables in QEMU",
		Long:          usageLong,
		Args:          cobra.MinimumNArgs(1),
		Version:       version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			opts.executable = args[0]
			// All arguments after the executable are passed through.
			opts.qemuArgs = args[1:]

			setupLogging(cfg.Stderr, opts.debug)

			return runFn(opts, cfg)
		},
	}

	root.SetIn(cfg.Stdin)
	root.SetOut(cfg.Stdout)
	root.SetErr(cfg.Stderr)

	flags := root.Flags()
	// Stop flag parsing at the first positional argument so trailing
	// arguments reach QEMU unmodified.
	flags.SetInterspersed(false)

	flags.StringVarP(
		&opts.bios,
		"bios", "b",
		"",
		"BIOS image (default = /usr/share/OVMF/OVMF.fd, "+
			"/usr/share/ovmf/x64/OVMF_CODE.fd or ./OVMF.fd)",
	)

	flags.StringVarP(
		&opts.qemuBin,
		"qemu", "q",
		"",
		"path to QEMU executable (default = qemu-system-x86_64)",
	)

	flags.StringArrayVarP(
		&opts.addFiles,
		"add-file", "f",
		nil,
		"additional file to stage, as src or src:dest with dest relative "+
			"to the partition root. May be given multiple times.",
	)

	flags.BoolVar(
		&opts.debug,
		"debug",
		false,
		"enable debug output",
	)

	return root
}

// Run is the main entry point for the CLI command. It returns the process
// exit code.
func Run(args []string, cfg IO) int {
	opts := &options{}

	root := newRootCommand(opts, cfg, run)
	root.SetArgs(args)

	err := root.Execute()

	return handleRunError(err, cfg.Stderr)
}

// handleRunError reports the error and decides the exit code. The exit
// status of QEMU itself never becomes the tool's exit code.
func handleRunError(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	return 1
}

func version() string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	return buildInfo.Main.Version
}
