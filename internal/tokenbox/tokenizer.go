// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"strings"
	"unicode"
)

// splitDelimited splits text on delim. Completed segments are every part
// followed by a delimiter; rest is the unterminated remainder that stays in
// the text slot. Segments are trimmed and blank ones are dropped.
//
// A delimiter at the very end of the raw text terminates the last part,
// so "red blue " completes both words while "red blue" keeps "blue" as
// the remainder.
func splitDelimited(text, delim string) (segments []string, rest string) {
	if delim == "" || !strings.Contains(text, delim) {
		return nil, text
	}

	terminated := strings.HasSuffix(text, delim)
	parts := strings.Split(strings.TrimSpace(text), delim)
	if !terminated {
		rest = strings.TrimSpace(parts[len(parts)-1])
		parts = parts[:len(parts)-1]
	}

	for _, p := range parts {
		if seg := strings.TrimSpace(p); seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments, rest
}

// tokenize commits every delimited segment of edit as a token placed in
// front of edit, in order, and writes the remainder back. An inner slot left
// blank is dropped and focus returns to the trailing slot.
func (b *Box) tokenize(ctx context.Context, edit *TextEdit) error {
	if b.delimiter == "" || !strings.Contains(edit.text, b.delimiter) {
		return nil
	}

	segments, rest := splitDelimited(edit.text, b.delimiter)
	for _, seg := range segments {
		if err := b.addBefore(ctx, seg, edit); err != nil {
			return err
		}
	}

	if b.coll.IndexOf(edit) < 0 {
		// a subscriber removed the source slot; keep what the user typed
		if rest == "" {
			return nil
		}
		last := b.coll.Last()
		last.replaceSelection(rest)
		emit(&b.events.textChanged, TextChangedEvent{Edit: last, Text: last.text, Reason: ReasonProgrammatic})
		return nil
	}

	if rest == "" && !edit.isLast {
		if err := b.coll.Remove(edit); err != nil {
			return err
		}
		b.sel.Remove(edit.ID())
		b.cursor.reset()
		b.FocusLast()
		b.refreshLayout()
		return nil
	}

	edit.setText(rest)
	emit(&b.events.textChanged, TextChangedEvent{Edit: edit, Text: rest, Reason: ReasonProgrammatic})
	return nil
}

// addBefore commits payload and inserts the token in front of edit, or in
// front of the trailing slot when edit is gone.
func (b *Box) addBefore(ctx context.Context, payload any, edit *TextEdit) error {
	tok, err := b.commit(ctx, payload)
	if tok == nil || err != nil {
		return err
	}
	index := b.coll.IndexOf(edit)
	if index < 0 {
		index = b.coll.Len() - 1
	}
	if err := b.coll.Insert(index, tok); err != nil {
		return err
	}
	emit(&b.events.added, tok)
	b.refreshLayout()
	return nil
}

func isBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
