// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets", "deep", "colors.json")

	require.NoError(t, AtomicWriteFile(path, []byte(`["red"]`), 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `["red"]`, string(content))
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, AtomicWriteFile(path, []byte("initial"), 0o644))
	require.NoError(t, AtomicWriteFile(path, []byte("updated"), 0o644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "updated", string(content))
}

func TestAtomicWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, AtomicWriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o600))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "a.txt", entries[0].Name())
}

// =============================================================================
// TEXT TESTS
// =============================================================================

func TestRuneLen(t *testing.T) {
	require.Equal(t, 0, RuneLen(""))
	require.Equal(t, 5, RuneLen("hello"))
	require.Equal(t, 2, RuneLen("日本"))
}

func TestSafeSubstring(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		start, end int
		want       string
	}{
		{"ascii", "hello", 1, 3, "el"},
		{"multibyte", "日本語", 1, 2, "本"},
		{"negative start", "hello", -2, 2, "he"},
		{"end past length", "hello", 3, 99, "lo"},
		{"negative end", "hello", 2, -1, "llo"},
		{"start past length", "hi", 5, 6, ""},
		{"empty range", "hello", 2, 2, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SafeSubstring(tt.s, tt.start, tt.end))
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	require.Equal(t, "short", TruncateWidth("short", 10))
	require.Equal(t, "", TruncateWidth("anything", 0))
	require.Equal(t, "hell…", TruncateWidth("hello world", 5))
	// wide runes take two cells each
	require.Equal(t, "日…", TruncateWidth("日本語", 3))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(-3, 0, 5))
	require.Equal(t, 5, Clamp(9, 0, 5))
	require.Equal(t, 3, Clamp(3, 0, 5))
}

func TestAbs(t *testing.T) {
	require.Equal(t, 4, Abs(-4))
	require.Equal(t, 4, Abs(4))
	require.Equal(t, 0, Abs(0))
}
