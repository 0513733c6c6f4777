// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tokenbox/internal/tokenbox"
)

type fakeRecorder struct {
	values []string
	err    error
}

func (r *fakeRecorder) Record(_ context.Context, value string) error {
	r.values = append(r.values, value)
	return r.err
}

func newAttached(t *testing.T, opts Options) (*tokenbox.Box, *Provider) {
	t.Helper()
	b := tokenbox.New(tokenbox.WithKeyboard(&tokenbox.HeldKeys{}), tokenbox.WithFocus(&tokenbox.MemoryFocus{}))
	b.FocusLast()
	p := Attach(b, mustCatalog(t), opts)
	t.Cleanup(p.Detach)
	return b, p
}

func TestProvider_MapsTextToCatalogToken(t *testing.T) {
	ctx := context.Background()
	b, p := newAttached(t, Options{Restrict: true})

	require.NoError(t, b.InsertText(ctx, "pyro "))

	require.Equal(t, []any{SearchToken{Kind: "element", Value: "Pyro", Order: 2}}, b.Payloads())
	require.Equal(t, []string{"Pyro"}, values(p.Committed()))
}

func TestProvider_RestrictRejectsUnknownText(t *testing.T) {
	ctx := context.Background()
	b, _ := newAttached(t, Options{Restrict: true})

	require.NoError(t, b.InsertText(ctx, "cryo hydro "))

	require.Equal(t, []string{"Hydro"}, b.TokenStrings())
	require.Empty(t, b.Text())
}

func TestProvider_UnrestrictedKeepsFreeText(t *testing.T) {
	ctx := context.Background()
	b, p := newAttached(t, Options{})

	require.NoError(t, b.InsertText(ctx, "cryo "))

	require.Equal(t, []any{"cryo"}, b.Payloads())
	require.Equal(t, []SearchToken{{Kind: KindText, Value: "cryo"}}, p.Committed())
}

func TestProvider_DropsCommittedNotFound(t *testing.T) {
	ctx := context.Background()
	b, _ := newAttached(t, Options{Restrict: true})

	require.NoError(t, b.SubmitQuery(ctx, "zzz", NotFound))

	require.Empty(t, b.Tokens())
	require.NoError(t, b.Validate())
}

func TestProvider_FilterRunsOnAddRemoveAndRawSubmit(t *testing.T) {
	ctx := context.Background()
	var calls [][]string
	b, _ := newAttached(t, Options{OnFilter: func(c []SearchToken) { calls = append(calls, values(c)) }})

	require.NoError(t, b.SubmitQuery(ctx, "sword", nil))
	require.Equal(t, [][]string{{}, {"Sword"}}, calls)

	_, err := b.RemoveEntry(ctx, b.Tokens()[0])
	require.NoError(t, err)
	require.Equal(t, []string{}, calls[len(calls)-1])
}

func TestProvider_ChosenSubmitSkipsQueryFilter(t *testing.T) {
	ctx := context.Background()
	calls := 0
	b, p := newAttached(t, Options{OnFilter: func([]SearchToken) { calls++ }})
	sword, _ := p.Catalog().Lookup("sword")

	require.NoError(t, b.SubmitQuery(ctx, "sw", sword))

	require.Equal(t, 1, calls)
	require.Equal(t, []string{"Sword"}, b.TokenStrings())
}

func TestProvider_RecordsUsage(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{err: errors.New("disk full")}
	b, p := newAttached(t, Options{Recorder: rec, Usage: Usage{"Hydro": 1}})

	require.NoError(t, b.InsertText(ctx, "pyro pyro "))

	require.Equal(t, []string{"Pyro", "Pyro"}, rec.values)
	require.Equal(t, 2, p.Uses("PYRO"))
	require.Equal(t, 1, p.Uses("hydro"))
	require.Equal(t, []string{"Pyro", "Hydro"}, values(p.Suggestions("o"))[:2])
}

func TestProvider_SetCatalog(t *testing.T) {
	ctx := context.Background()
	b, p := newAttached(t, Options{Restrict: true})
	next, err := ParseCatalog("[[token]]\nkind = \"element\"\nvalue = \"Cryo\"\n")
	require.NoError(t, err)

	p.SetCatalog(next)
	p.SetCatalog(nil)
	require.NoError(t, b.InsertText(ctx, "cryo pyro "))

	require.Equal(t, []string{"Cryo"}, b.TokenStrings())
	require.Same(t, next, p.Catalog())
}

func TestProvider_Detach(t *testing.T) {
	ctx := context.Background()
	b, p := newAttached(t, Options{Restrict: true})

	p.Detach()
	require.NoError(t, b.InsertText(ctx, "cryo "))

	require.Equal(t, []any{"cryo"}, b.Payloads())
}
