// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"errors"
	"fmt"
)

// =============================================================================
// INTERSPERSED COLLECTION
// =============================================================================

// Collection is the ordered list of entries backing the control. Tokens
// from the application's backing sequence are interspersed with text slots;
// the trailing text slot is always the final entry.
type Collection struct {
	entries []Entry
	last    *TextEdit
}

// newCollection wraps payloads as tokens followed by a new trailing slot
// seeded with text.
func newCollection(payloads []any, text string) *Collection {
	c := &Collection{
		entries: make([]Entry, 0, len(payloads)+1),
		last:    newTextEdit(text, true),
	}
	for _, p := range payloads {
		c.entries = append(c.entries, NewToken(p))
	}
	c.entries = append(c.entries, c.last)
	return c
}

// Len returns the number of entries, including the trailing slot.
func (c *Collection) Len() int { return len(c.entries) }

// At returns the entry at index i, or nil when i is out of range.
func (c *Collection) At(i int) Entry {
	if i < 0 || i >= len(c.entries) {
		return nil
	}
	return c.entries[i]
}

// Last returns the trailing text slot.
func (c *Collection) Last() *TextEdit { return c.last }

// Entries returns a copy of the entries in display order.
func (c *Collection) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IndexOf returns the index of e, or -1.
func (c *Collection) IndexOf(e Entry) int {
	if e == nil {
		return -1
	}
	return c.IndexOfID(e.ID())
}

// IndexOfID returns the index of the entry with the given ID, or -1.
func (c *Collection) IndexOfID(id ID) int {
	for i, e := range c.entries {
		if e.ID() == id {
			return i
		}
	}
	return -1
}

// ByID returns the entry with the given ID, or nil.
func (c *Collection) ByID(id ID) Entry {
	if i := c.IndexOfID(id); i >= 0 {
		return c.entries[i]
	}
	return nil
}

// TokenCount returns the number of token entries. Text slots are not counted.
func (c *Collection) TokenCount() int {
	n := 0
	for _, e := range c.entries {
		if _, ok := e.(*Token); ok {
			n++
		}
	}
	return n
}

// Tokens returns the token entries in display order.
func (c *Collection) Tokens() []*Token {
	var out []*Token
	for _, e := range c.entries {
		if t, ok := e.(*Token); ok {
			out = append(out, t)
		}
	}
	return out
}

// Insert places e at index. The trailing slot always stays last, so index
// may not exceed Len()-1.
func (c *Collection) Insert(index int, e Entry) error {
	if e == nil {
		return ErrNilEntry
	}
	if index < 0 || index > len(c.entries)-1 {
		return fmt.Errorf("insert at %d of %d: %w", index, len(c.entries), ErrIndexOutOfRange)
	}
	if te, ok := e.(*TextEdit); ok && te.isLast {
		return violation("insert", errors.New("a second trailing text edit"))
	}
	c.entries = append(c.entries, nil)
	copy(c.entries[index+1:], c.entries[index:])
	c.entries[index] = e
	return nil
}

// RemoveAt removes and returns the entry at index.
func (c *Collection) RemoveAt(index int) (Entry, error) {
	if index < 0 || index >= len(c.entries) {
		return nil, fmt.Errorf("remove at %d of %d: %w", index, len(c.entries), ErrIndexOutOfRange)
	}
	e := c.entries[index]
	if e == Entry(c.last) {
		return nil, violation("remove", ErrTrailingEdit)
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return e, nil
}

// Remove removes e from the collection.
func (c *Collection) Remove(e Entry) error {
	i := c.IndexOf(e)
	if i < 0 {
		return ErrEntryNotFound
	}
	_, err := c.RemoveAt(i)
	return err
}

// validate checks the structural invariants: at least one entry, and the
// only trailing slot sits at the end.
func (c *Collection) validate() error {
	if len(c.entries) == 0 {
		return errors.New("empty collection")
	}
	lasts := 0
	for _, e := range c.entries {
		if te, ok := e.(*TextEdit); ok && te.isLast {
			lasts++
		}
	}
	if lasts != 1 {
		return fmt.Errorf("%d trailing text edits", lasts)
	}
	if c.entries[len(c.entries)-1] != Entry(c.last) {
		return errors.New("trailing text edit is not the final entry")
	}
	return nil
}
