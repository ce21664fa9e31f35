// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/12101111/uefi-run/internal/ovmf"
)

func writeFile(t *testing.T, name string, content string, mode os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))

	return path
}

// stagingDirs lists current staging directories so tests can assert none
// are left behind.
func stagingDirs(t *testing.T) []string {
	t.Helper()

	matches, err := filepath.Glob(
		filepath.Join(os.TempDir(), "uefi-run-esp-*"),
	)
	require.NoError(t, err)

	return matches
}

func withFirmwareCandidates(t *testing.T, candidates []string) {
	t.Helper()

	orig := ovmf.DefaultCandidates
	ovmf.DefaultCandidates = candidates

	t.Cleanup(func() {
		ovmf.DefaultCandidates = orig
	})
}

func TestRunWithoutFirmwareNeverSpawns(t *testing.T) {
	withFirmwareCandidates(t, []string{
		filepath.Join(t.TempDir(), "missing.fd"),
	})

	marker := filepath.Join(t.TempDir(), "spawned")
	fakeQemu := writeFile(t, "fake-qemu",
		"#!/bin/sh\ntouch "+marker+"\n", 0o755)

	opts := &options{
		executable: writeFile(t, "app.efi", "boot", 0o644),
		qemuBin:    fakeQemu,
	}

	cfg, _, _ := testIO()

	before := stagingDirs(t)

	err := run(opts, cfg)
	require.ErrorIs(t, err, ovmf.ErrNotFound)

	assert.NoFileExists(t, marker, "emulator must never be spawned")
	assert.Equal(t, before, stagingDirs(t))
}

func TestRunReportsZeroExit(t *testing.T) {
	opts := &options{
		executable: writeFile(t, "app.efi", "boot", 0o644),
		bios:       writeFile(t, "OVMF.fd", "firmware", 0o644),
		qemuBin:    writeFile(t, "fake-qemu", "#!/bin/sh\nexit 0\n", 0o755),
	}

	cfg, _, _ := testIO()

	before := stagingDirs(t)

	require.NoError(t, run(opts, cfg))

	assert.Equal(t, before, stagingDirs(t),
		"staging directory must be removed after the run")
}

func TestRunEmulatorFailureIsInformational(t *testing.T) {
	opts := &options{
		executable: writeFile(t, "app.efi", "boot", 0o644),
		bios:       writeFile(t, "OVMF.fd", "firmware", 0o644),
		qemuBin:    writeFile(t, "fake-qemu", "#!/bin/sh\nexit 7\n", 0o755),
	}

	cfg, _, _ := testIO()

	err := run(opts, cfg)
	require.NoError(t, err, "emulator exit status is not a tool failure")
}

func TestRunSpawnFailureCleansUp(t *testing.T) {
	opts := &options{
		executable: writeFile(t, "app.efi", "boot", 0o644),
		bios:       writeFile(t, "OVMF.fd", "firmware", 0o644),
		qemuBin:    filepath.Join(t.TempDir(), "no-such-qemu"),
	}

	cfg, _, _ := testIO()

	before := stagingDirs(t)

	err := run(opts, cfg)
	require.Error(t, err)
	assert.ErrorContains(t, err, "qemu")

	assert.Equal(t, before, stagingDirs(t),
		"staging directory must be removed on the fatal error path")
}
