// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCollection(t *testing.T) {
	c := newCollection([]any{"a", "b"}, "seed")

	require.Equal(t, 3, c.Len())
	require.Equal(t, 2, c.TokenCount())
	require.Same(t, c.Last(), c.At(2))
	require.Equal(t, "seed", c.Last().Text())
	require.True(t, c.Last().IsLast())
	require.NoError(t, c.validate())
}

func TestCollection_Lookup(t *testing.T) {
	c := newCollection([]any{"a", "b"}, "")
	b := c.At(1)

	require.Equal(t, 1, c.IndexOf(b))
	require.Equal(t, 1, c.IndexOfID(b.ID()))
	require.Same(t, b, c.ByID(b.ID()))
	require.Equal(t, -1, c.IndexOf(NewToken("x")))
	require.Equal(t, -1, c.IndexOf(nil))
	require.Nil(t, c.At(-1))
	require.Nil(t, c.At(3))
}

func TestCollection_InsertKeepsTrailingLast(t *testing.T) {
	c := newCollection(nil, "")

	require.NoError(t, c.Insert(0, NewToken("a")))
	require.ErrorIs(t, c.Insert(2, NewToken("b")), ErrIndexOutOfRange)
	require.ErrorIs(t, c.Insert(0, nil), ErrNilEntry)

	require.Equal(t, 2, c.Len())
	require.NoError(t, c.validate())
}

func TestCollection_RemoveEntries(t *testing.T) {
	c := newCollection([]any{"a", "b"}, "")

	removed, err := c.RemoveAt(0)
	require.NoError(t, err)
	require.Equal(t, "a", removed.(*Token).String())
	require.ErrorIs(t, c.Remove(removed), ErrEntryNotFound)
	_, err = c.RemoveAt(5)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, 2, c.Len())
}

func TestCollection_GuardsTrailingSlot(t *testing.T) {
	if debugInvariants {
		t.Skip("invariant violations panic in debug builds")
	}
	c := newCollection([]any{"a"}, "")

	_, err := c.RemoveAt(1)
	require.ErrorIs(t, err, ErrTrailingEdit)
	require.Error(t, c.Insert(0, newTextEdit("", true)))

	require.Equal(t, 2, c.Len())
	require.NoError(t, c.validate())
}

func TestTextEdit_Editing(t *testing.T) {
	e := newTextEdit("héllo", false)
	require.Equal(t, 5, e.Caret())

	e.Select(1, 3)
	require.Equal(t, "éll", e.SelectedText())
	require.Equal(t, "ho", e.textWithoutSelection())

	e.replaceSelection("EY")
	require.Equal(t, "hEYo", e.Text())
	require.Equal(t, 3, e.Caret())

	require.True(t, e.deleteBackward())
	require.Equal(t, "hEo", e.Text())
	require.True(t, e.deleteForward())
	require.Equal(t, "hE", e.Text())
	require.False(t, e.deleteForward())

	e.SelectAll()
	require.True(t, e.AllSelected())
	require.True(t, e.CaretAtStart())
	require.True(t, e.CaretAtEnd())
}

func TestTextEdit_SelectClamps(t *testing.T) {
	e := newTextEdit("abc", true)

	e.Select(-4, 100)
	start, length := e.Selection()

	require.Equal(t, 0, start)
	require.Equal(t, 3, length)
}

func TestToken_String(t *testing.T) {
	require.Equal(t, "plain", NewToken("plain").String())
	require.Equal(t, "7", NewToken(7).String())
	require.Equal(t, "", NewToken(nil).String())
	require.Equal(t, "chip", NewToken(fmtStringer{}).String())
}

type fmtStringer struct{}

func (fmtStringer) String() string { return "chip" }
