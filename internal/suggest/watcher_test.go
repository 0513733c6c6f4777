// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	next := "[[token]]\nkind = \"element\"\nvalue = \"Cryo\"\n"
	require.NoError(t, os.WriteFile(path, []byte(next), 0o600))

	select {
	case r := <-w.Reloads():
		require.NoError(t, r.Err)
		require.Equal(t, []string{"Cryo"}, values(r.Catalog.Tokens()))
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	_, open := <-w.Reloads()
	require.False(t, open)
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0o600))

	select {
	case <-w.Reloads():
		t.Fatal("unexpected reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "catalog.toml"), 0)
	require.Error(t, err)
}
