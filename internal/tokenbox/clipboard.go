// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"fmt"
	"strings"
)

// SerializeSelection renders the selected entries, or every entry when
// nothing is selected, as one delimited string in collection order. Tokens
// contribute their string form and text slots their selected text; a text
// slot with nothing selected contributes nothing.
func (b *Box) SerializeSelection() string {
	entries := b.coll.Entries()
	if b.sel.Len() > 0 {
		idx := b.sel.indices(b.coll)
		entries = make([]Entry, len(idx))
		for i, n := range idx {
			entries[i] = b.coll.At(n)
		}
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := entryString(e); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, b.delimiter)
}

// Copy writes the serialized selection to the clipboard. Nothing is written
// when the selection serializes to an empty string.
func (b *Box) Copy() error {
	text := b.SerializeSelection()
	if text == "" {
		return nil
	}
	if err := b.clipboard.WriteText(text); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

// Cut copies the selection and then removes it. The trailing slot only loses
// its selected text.
func (b *Box) Cut(ctx context.Context) error {
	if err := b.Copy(); err != nil {
		return err
	}
	if err := b.RemoveAllSelected(ctx); err != nil {
		return err
	}

	last := b.coll.Last()
	if !last.HasSelection() {
		return nil
	}
	last.replaceSelection("")
	return b.afterEdit(ctx, last, ReasonUserInput)
}
