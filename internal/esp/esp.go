// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package esp stages boot files in a directory laid out like an EFI System
// Partition. The directory is meant to be passed to QEMU's vvfat driver,
// which presents it to the guest as a raw FAT drive.
package esp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BootFileName is the fallback boot loader file name UEFI firmware looks up
// on x86-64 systems.
const BootFileName = "BOOTX64.EFI"

// Dir is a staging directory owned exclusively by a single run. It must be
// released with [Dir.Remove] when the run ends, regardless of the exit path
// taken.
type Dir struct {
	path string
}

// Stage creates a fresh staging directory with the given executable copied
// to EFI/BOOT/BOOTX64.EFI.
//
// Entries in extraFiles have the form "src" or "src:dest" with dest being a
// path relative to the root of the staging directory. Without dest, the file
// is placed in the root under its base name.
func Stage(executable string, extraFiles []string) (*Dir, error) {
	path, err := os.MkdirTemp("", "uefi-run-esp-")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}

	dir := &Dir{path: path}

	err = dir.populate(executable, extraFiles)
	if err != nil {
		_ = dir.Remove()
		return nil, err
	}

	return dir, nil
}

// Path returns the absolute path of the staging directory.
func (d *Dir) Path() string {
	return d.path
}

// Remove deletes the staging directory and everything in it.
func (d *Dir) Remove() error {
	err := os.RemoveAll(d.path)
	if err != nil {
		return fmt.Errorf("remove staging directory: %w", err)
	}

	return nil
}

func (d *Dir) populate(executable string, extraFiles []string) error {
	bootDir := filepath.Join(d.path, "EFI", "BOOT")

	err := os.MkdirAll(bootDir, 0o755)
	if err != nil {
		return fmt.Errorf("create boot directory: %w", err)
	}

	err = copyFile(executable, filepath.Join(bootDir, BootFileName))
	if err != nil {
		return fmt.Errorf("copy boot executable: %w", err)
	}

	eg := errgroup.Group{}

	for _, entry := range extraFiles {
		src, dest, err := splitEntry(entry)
		if err != nil {
			return err
		}

		target := filepath.Join(d.path, dest)

		eg.Go(func() error {
			err := os.MkdirAll(filepath.Dir(target), 0o755)
			if err != nil {
				return fmt.Errorf("create directory for %s: %w", dest, err)
			}

			err = copyFile(src, target)
			if err != nil {
				return fmt.Errorf("copy %s: %w", src, err)
			}

			return nil
		})
	}

	return eg.Wait()
}

// splitEntry splits an extra file entry into source path and destination
// path relative to the staging directory root.
func splitEntry(entry string) (string, string, error) {
	src, dest, found := strings.Cut(entry, ":")
	if src == "" {
		return "", "", &EntryError{Entry: entry, Err: ErrEmptySourcePath}
	}

	if !found || dest == "" {
		dest = filepath.Base(src)
	}

	// The destination must stay inside the staging directory.
	if !filepath.IsLocal(dest) {
		return "", "", &EntryError{Entry: entry, Err: ErrDestNotLocal}
	}

	return src, dest, nil
}

func copyFile(src, dest string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer srcFile.Close()

	destFile, err := os.Create(dest)
	if err != nil {
		return err //nolint:wrapcheck
	}

	_, err = io.Copy(destFile, srcFile)
	if err != nil {
		_ = destFile.Close()
		return fmt.Errorf("copy contents: %w", err)
	}

	return destFile.Close() //nolint:wrapcheck
}
