// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

// Cursor tracks which text slot holds the logical insertion caret.
type Cursor struct {
	coll    *Collection
	current ID
}

func newCursor(coll *Collection) *Cursor {
	return &Cursor{coll: coll, current: coll.Last().ID()}
}

// Last returns the permanent trailing slot.
func (c *Cursor) Last() *TextEdit { return c.coll.Last() }

// Current returns the current text slot. If the slot it pointed at has left
// the collection, the cursor falls back to the trailing slot.
func (c *Cursor) Current() *TextEdit {
	if te, ok := c.coll.ByID(c.current).(*TextEdit); ok {
		return te
	}
	c.current = c.coll.Last().ID()
	return c.coll.Last()
}

// AtLast reports whether the current slot is the trailing slot.
func (c *Cursor) AtLast() bool { return c.Current() == c.coll.Last() }

// set makes te current.
func (c *Cursor) set(te *TextEdit) { c.current = te.ID() }

// reset points the cursor back at the trailing slot.
func (c *Cursor) reset() { c.current = c.coll.Last().ID() }
