// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/tokenbox"
)

const lineCatalog = `
kinds = ["element", "weapon"]

[[token]]
kind = "element"
value = "Pyro"

[[token]]
kind = "element"
value = "Hydro"

[[token]]
kind = "weapon"
value = "Polearm"
`

type scriptedReader struct {
	lines   []string
	end     error
	history []string
}

func (r *scriptedReader) Prompt(string) (string, error) {
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) { r.history = append(r.history, item) }

func newLineSession(t *testing.T, restrict bool, opts ...tokenbox.Option) (*LineSession, *tokenbox.Box, *bytes.Buffer) {
	t.Helper()
	catalog, err := suggest.ParseCatalog(lineCatalog)
	require.NoError(t, err)

	opts = append([]tokenbox.Option{tokenbox.WithKeyboard(&tokenbox.HeldKeys{}), tokenbox.WithFocus(&tokenbox.MemoryFocus{})}, opts...)
	box := tokenbox.New(opts...)
	box.FocusLast()
	provider := suggest.Attach(box, catalog, suggest.Options{Restrict: restrict})
	t.Cleanup(provider.Detach)

	var out bytes.Buffer
	return NewLineSession(box, provider, &out), box, &out
}

func TestLineSession_Feed(t *testing.T) {
	ctx := context.Background()
	s, box, out := newLineSession(t, false)

	more, err := s.Feed(ctx, "pyro sword")

	require.NoError(t, err)
	require.True(t, more)
	require.Equal(t, []string{"Pyro", "sword"}, box.TokenStrings())
	require.Empty(t, box.Text())
	require.Equal(t, "[Pyro] [sword]\n", out.String())
}

func TestLineSession_FeedBlankEnds(t *testing.T) {
	s, box, _ := newLineSession(t, false)

	more, err := s.Feed(context.Background(), "   ")

	require.NoError(t, err)
	require.False(t, more)
	require.Empty(t, box.Tokens())
}

func TestLineSession_RestrictDropsUnknown(t *testing.T) {
	s, box, _ := newLineSession(t, true)

	_, err := s.Feed(context.Background(), "hydro cryo")

	require.NoError(t, err)
	require.Equal(t, []string{"Hydro"}, box.TokenStrings())
}

func TestLineSession_EchoesCounter(t *testing.T) {
	s, _, out := newLineSession(t, false, tokenbox.WithMaxTokens(1))

	_, err := s.Feed(context.Background(), "pyro hydro")

	require.NoError(t, err)
	require.Equal(t, "[Pyro]  1/1 (limit)\n", out.String())
}

func TestLineSession_Completions(t *testing.T) {
	s, _, _ := newLineSession(t, false)

	require.Equal(t, []string{"Pyro"}, s.Completions("py"))
	require.Equal(t, []string{"Hydro Polearm"}, s.Completions("Hydro pol"))
	require.Nil(t, s.Completions("Hydro "))
	require.Nil(t, s.Completions("zzz"))
}

func TestLineSession_Run(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		end     error
		wantErr error
		tokens  []string
		history []string
	}{
		{"blank line finishes", []string{"pyro", "", "hydro"}, io.EOF, nil, []string{"Pyro"}, []string{"pyro"}},
		{"eof finishes", []string{"pyro hydro"}, io.EOF, nil, []string{"Pyro", "Hydro"}, []string{"pyro hydro"}},
		{"ctrl+c aborts", []string{"pyro"}, liner.ErrPromptAborted, ErrAborted, []string{"Pyro"}, []string{"pyro"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, box, _ := newLineSession(t, false)
			r := &scriptedReader{lines: tt.lines, end: tt.end}

			err := s.Run(context.Background(), r)

			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, tt.tokens, box.TokenStrings())
			require.Equal(t, tt.history, r.history)
		})
	}
}

func TestLineSession_RunStopsOnCanceledContext(t *testing.T) {
	s, _, _ := newLineSession(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx, &scriptedReader{lines: []string{"pyro"}, end: io.EOF})

	require.ErrorIs(t, err, context.Canceled)
}
