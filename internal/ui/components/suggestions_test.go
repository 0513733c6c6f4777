// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/ui/styles"
)

func manyTokens(n int) []suggest.SearchToken {
	out := make([]suggest.SearchToken, n)
	for i := range out {
		out[i] = suggest.SearchToken{Kind: "k", Value: fmt.Sprintf("item%02d", i)}
	}
	return out
}

func TestSuggestionList_Navigation(t *testing.T) {
	l := NewSuggestionList(styles.NewTheme(styles.ThemeDark), 3)
	l.SetItems(manyTokens(3))
	l.Open()

	_, ok := l.Selected()
	require.False(t, ok)

	l.Next()
	tok, ok := l.Selected()
	require.True(t, ok)
	require.Equal(t, "item00", tok.Value)

	l.Prev()
	l.Prev()
	tok, _ = l.Selected()
	require.Equal(t, "item01", tok.Value)

	l.Close()
	require.False(t, l.IsOpen())
	_, ok = l.Selected()
	require.False(t, ok)
}

func TestSuggestionList_ViewWindows(t *testing.T) {
	l := NewSuggestionList(styles.NewTheme(styles.ThemeDark), 3)
	l.SetItems(manyTokens(10))

	require.Empty(t, l.View())

	l.Open()
	view := l.View()
	require.Contains(t, view, "item00")
	require.NotContains(t, view, "item03")
	require.Contains(t, view, "7 more")

	for i := 0; i < 6; i++ {
		l.Next()
	}
	view = l.View()
	require.Contains(t, view, "item05")
	require.NotContains(t, view, "item00")
}

func TestSuggestionList_EmptyIsClosed(t *testing.T) {
	l := NewSuggestionList(styles.NewTheme(styles.ThemeDark), 0)
	l.Open()

	require.False(t, l.IsOpen())
	l.Next()
	l.Prev()
}
