// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeSelection_SelectAllTokens(t *testing.T) {
	b, _, _ := boxWithTokens(t, "a", "b", "c")

	b.SelectAll()

	require.Equal(t, "a b c", b.SerializeSelection())
}

func TestSerializeSelection_NothingSelectedUsesAllEntries(t *testing.T) {
	ctx := context.Background()
	b, _, _ := boxWithTokens(t, "a", "b")
	require.NoError(t, b.SetText(ctx, "draft"))

	// the trailing text has no text selection, so it contributes nothing
	require.Equal(t, "a b", b.SerializeSelection())
}

func TestSerializeSelection_UsesDelimiterAndOrder(t *testing.T) {
	b, keys, _ := newTestBox(t, WithDelimiter(","))
	b.SetItems([]any{"a", "b", "c"})
	ids := b.Entries()

	b.Click(ids[2].ID())
	keys.Mods = ModCtrl
	b.Click(ids[0].ID())

	require.Equal(t, "a,c", b.SerializeSelection())
}

func TestSerializeSelection_IncludesSelectedText(t *testing.T) {
	ctx := context.Background()
	b, _, _ := boxWithTokens(t, "a")
	require.NoError(t, b.SetText(ctx, "hi"))

	b.SelectAll()

	require.Equal(t, "a hi", b.SerializeSelection())
}

func TestCopy_WritesClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	b, _, _ := newTestBox(t, WithClipboard(clip))
	b.SetItems([]any{"a", "b"})

	require.NoError(t, b.Copy())

	require.Equal(t, []string{"a b"}, clip.writes)
}

func TestCopy_EmptySkipsWrite(t *testing.T) {
	clip := &fakeClipboard{}
	b, _, _ := newTestBox(t, WithClipboard(clip))

	require.NoError(t, b.Copy())

	require.Empty(t, clip.writes)
}

func TestCopy_WrapsClipboardError(t *testing.T) {
	errNoDisplay := errors.New("no display")
	b, _, _ := newTestBox(t, WithClipboard(&fakeClipboard{err: errNoDisplay}))
	b.SetItems([]any{"a"})

	require.ErrorIs(t, b.Copy(), errNoDisplay)
}

func TestCut_CopiesThenRemoves(t *testing.T) {
	ctx := context.Background()
	clip := &fakeClipboard{}
	b, _, _ := newTestBox(t, WithClipboard(clip))
	b.SetItems([]any{"a", "b"})
	require.NoError(t, b.SetText(ctx, "hi"))
	b.SelectAll()

	handled, err := b.HandleKey(ctx, KeyCut)

	require.NoError(t, err)
	require.True(t, handled)
	require.Equal(t, []string{"a b hi"}, clip.writes)
	require.Empty(t, b.Tokens())
	require.Empty(t, b.Text())
	requireValid(t, b)
}
