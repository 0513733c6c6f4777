// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tokenbox/internal/cli"
	"github.com/jeranaias/tokenbox/internal/storage"
	"github.com/jeranaias/tokenbox/internal/suggest"
)

const mainCatalog = `
kinds = ["element"]

[[token]]
kind = "element"
value = "Pyro"
`

func TestOpenCatalog_MissingFileIsEmpty(t *testing.T) {
	c, err := openCatalog(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	require.Equal(t, 0, c.Len())
}

func TestOpenCatalog_BadFileIsConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	require.NoError(t, os.WriteFile(path, []byte("kinds = ["), 0600))

	_, err := openCatalog(path)

	var ce *cli.ConfigError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, cli.ExitConfigError, cli.GetExitCode(err))
}

func TestInitialItems(t *testing.T) {
	catalog, err := suggest.ParseCatalog(mainCatalog)
	require.NoError(t, err)

	items := initialItems(catalog, []string{"pyro", " ", "loose"})

	require.Len(t, items, 2)
	tok, ok := items[0].(suggest.SearchToken)
	require.True(t, ok)
	require.Equal(t, "Pyro", tok.Value)
	require.Equal(t, "loose", items[1])
}

func TestPrintResult(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		delim  string
		want   string
	}{
		{"space", []string{"a", "b"}, " ", "a b\n"},
		{"comma", []string{"a", "b"}, ",", "a,b\n"},
		{"no delimiter", []string{"a", "b"}, "", "a\nb\n"},
		{"empty", nil, " ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printResult(&buf, tt.tokens, tt.delim)
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestListPresets(t *testing.T) {
	store, err := storage.NewPresetStore(t.TempDir())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, listPresets(&buf, store))
	require.Equal(t, "No presets saved.\n", buf.String())

	require.NoError(t, store.Save(storage.NewPreset("daily", " ", []suggest.SearchToken{{Kind: "element", Value: "Pyro"}})))
	buf.Reset()
	require.NoError(t, listPresets(&buf, store))
	require.True(t, strings.Contains(buf.String(), "daily"))
	require.True(t, strings.Contains(buf.String(), "Pyro"))
}

func TestRun_UsageErrors(t *testing.T) {
	require.Equal(t, cli.ExitUsageError, run([]string{"--bogus"}))
	require.Equal(t, cli.ExitSuccess, run([]string{"--version"}))
}
