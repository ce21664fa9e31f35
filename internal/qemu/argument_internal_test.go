// SPDX-FileCopyrightText: 2026 Richard Wiedenhöft <richard@wiedenhoeft.xyz>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []Argument
		expected    []string
		expectedErr error
	}{
		{
			name: "builds",
			args: []Argument{
				UniqueArg("nodefaults"),
				UniqueArg("vga", "std"),
				RepeatableArg("serial", "stdio"),
			},
			expected: []string{
				"-nodefaults",
				"-vga", "std",
				"-serial", "stdio",
			},
		},
		{
			name: "multi value joined",
			args: []Argument{
				UniqueArg("machine", "q35", "accel=kvm:tcg"),
			},
			expected: []string{"-machine", "q35,accel=kvm:tcg"},
		},
		{
			name: "unique name collision",
			args: []Argument{
				UniqueArg("bios", "a.fd"),
				UniqueArg("bios", "b.fd"),
			},
			expectedErr: ErrArgumentCollision,
		},
		{
			name: "repeatable same value collision",
			args: []Argument{
				RepeatableArg("drive", "format=raw"),
				RepeatableArg("drive", "format=raw"),
			},
			expectedErr: ErrArgumentCollision,
		},
		{
			name: "repeatable different values",
			args: []Argument{
				RepeatableArg("drive", "format=raw,file=a"),
				RepeatableArg("drive", "format=raw,file=b"),
			},
			expected: []string{
				"-drive", "format=raw,file=a",
				"-drive", "format=raw,file=b",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := buildArgs(tt.args)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}
