// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/tokenbox/internal/util"
)

// Direction is a navigation direction.
type Direction int

const (
	// Previous moves towards the first entry.
	Previous Direction = iota
	// Next moves towards the trailing slot.
	Next
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Key is an editing or navigation key the host forwards to HandleKey.
// Printable input goes through InsertText instead.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyEscape
	KeySelectAll
	KeyCopy
	KeyCut
)

// =============================================================================
// SELECTION
// =============================================================================

// SelectedIndex returns the index of the selection anchor, or -1.
func (b *Box) SelectedIndex() int {
	id, ok := b.sel.anchor()
	if !ok {
		return -1
	}
	return b.coll.IndexOfID(id)
}

// setSelectedIndex collapses the selection onto index, or clears it when
// index is out of range.
func (b *Box) setSelectedIndex(index int) {
	e := b.coll.At(index)
	if e == nil {
		b.sel.Clear()
		return
	}
	b.sel.Set(e.ID())
}

// SelectedIndices returns the selected indices in collection order.
func (b *Box) SelectedIndices() []int { return b.sel.indices(b.coll) }

// SelectedEntries returns the selected entries in collection order.
func (b *Box) SelectedEntries() []Entry {
	idx := b.sel.indices(b.coll)
	out := make([]Entry, len(idx))
	for i, n := range idx {
		out[i] = b.coll.At(n)
	}
	return out
}

// IsSelected reports whether the entry with the given ID is selected.
func (b *Box) IsSelected(id ID) bool { return b.sel.Contains(id) }

// SelectAll selects every entry and all the text in every text slot, then
// focuses the trailing slot without dropping the selection.
func (b *Box) SelectAll() {
	b.sel.Clear()
	for _, e := range b.coll.entries {
		b.sel.Add(e.ID())
		if te, ok := e.(*TextEdit); ok {
			te.SelectAll()
		}
	}
	b.pauseTokenClearOnFocus = true
	b.FocusLast()
}

// DeselectAll clears the entry selection and the text selection of every
// text slot except ignore.
func (b *Box) DeselectAll(ignore *TextEdit) {
	b.sel.Clear()
	b.clearTextSelections(ignore)
}

func (b *Box) clearTextSelections(ignore *TextEdit) {
	for _, e := range b.coll.entries {
		if te, ok := e.(*TextEdit); ok && te != ignore {
			te.ClearSelection()
		}
	}
}

// Click applies a pointer click on the entry with the given ID. Ctrl toggles
// the entry, Shift extends a range from the anchor, and a plain click
// selects only that entry.
func (b *Box) Click(id ID) {
	index := b.coll.IndexOfID(id)
	if index < 0 {
		return
	}
	mods := b.keyboard.Modifiers()
	anchor := b.SelectedIndex()

	if !mods.Has(ModCtrl) {
		b.clearTextSelections(nil)
	}
	b.pauseTokenClearOnFocus = true
	b.Focus(id)
	b.pauseTokenClearOnFocus = false

	// focus bookkeeping may have dropped a blank slot
	index = b.coll.IndexOfID(id)
	switch {
	case mods.Has(ModCtrl):
		if b.sel.Contains(id) {
			b.sel.Remove(id)
		} else {
			b.sel.Add(id)
		}
	case mods.Has(ModShift) && anchor >= 0:
		anchorID, _ := b.sel.anchor()
		if anchor = b.coll.IndexOfID(anchorID); anchor < 0 {
			// the anchor slot was dropped by the focus change
			anchor, anchorID = index, id
		}
		lo, hi := min(anchor, index), max(anchor, index)
		b.sel.Set(anchorID)
		for i := lo; i <= hi; i++ {
			b.sel.Add(b.coll.At(i).ID())
		}
	default:
		b.sel.Set(id)
	}
}

// =============================================================================
// MOVE
// =============================================================================

// Move shifts focus one entry in dir and updates the selection according to
// the held modifiers. It reports whether the key was handled.
func (b *Box) Move(dir Direction) bool {
	focused, previous := b.Focused()
	if focused == nil {
		return false
	}
	mods := b.keyboard.Modifiers()
	shift := mods.Has(ModShift)

	target := previous
	switch dir {
	case Previous:
		if previous == 0 {
			if !b.tabNavigateBack {
				return false
			}
			b.focus.FocusPrevious()
			b.lostFocus(focused.ID())
			return true
		}
		target = previous - 1
	case Next:
		if previous >= b.coll.Len()-1 {
			return false
		}
		target = previous + 1
	}

	e := b.coll.At(target)
	if te, ok := e.(*TextEdit); ok && !shift {
		if dir == Next {
			te.SetCaret(0)
		} else {
			te.SetCaret(util.RuneLen(te.text))
		}
	}

	anchor := b.SelectedIndex()
	newDistance := util.Abs(anchor - target)
	oldDistance := util.Abs(anchor - previous)

	if mods.Has(ModCtrl) && !shift {
		b.pauseTokenClearOnFocus = true
	}
	b.Focus(e.ID())
	b.pauseTokenClearOnFocus = false

	switch {
	case shift:
		if newDistance > oldDistance {
			b.sel.Add(e.ID())
		} else {
			b.sel.Remove(focused.ID())
		}
	case mods.Has(ModCtrl):
	default:
		if b.sel.Len() > 1 {
			b.sel.Clear()
		}
		b.sel.Set(e.ID())
	}
	return true
}

// selectAdjacent focuses the entry delta steps away from e and adds it to
// the selection. It is how arrow and delete keys leave a text slot whose
// caret sits on the boundary.
func (b *Box) selectAdjacent(e Entry, delta int) bool {
	target := b.coll.At(b.coll.IndexOf(e) + delta)
	if target == nil {
		return false
	}
	b.Focus(target.ID())
	b.sel.Add(target.ID())
	return true
}

// =============================================================================
// KEYBOARD INPUT
// =============================================================================

// HandleKey applies an editing or navigation key to the focused entry. It
// reports whether the key was consumed.
func (b *Box) HandleKey(ctx context.Context, k Key) (bool, error) {
	switch k {
	case KeyEscape:
		b.DeselectAll(nil)
		b.FocusLast()
		return true, nil
	case KeySelectAll:
		b.SelectAll()
		return true, nil
	case KeyCopy:
		return true, b.Copy()
	case KeyCut:
		return true, b.Cut(ctx)
	}

	focused, _ := b.Focused()
	if focused == nil {
		b.FocusLast()
		focused = b.coll.Last()
	}

	switch e := focused.(type) {
	case *TextEdit:
		return b.editKey(ctx, e, k)
	case *Token:
		return b.tokenKey(ctx, k)
	default:
		panic(fmt.Sprintf("tokenbox: unknown entry type %T", focused))
	}
}

func (b *Box) editKey(ctx context.Context, e *TextEdit, k Key) (bool, error) {
	shift := b.keyboard.Modifiers().Has(ModShift)
	n := util.RuneLen(e.text)

	switch k {
	case KeyLeft, KeyBackspace:
		if e.CaretAtStart() && (!e.HasSelection() || (k == KeyLeft && shift && e.head == 0)) {
			if b.selectAdjacent(e, -1) {
				if !shift {
					e.ClearSelection()
				}
				return true, nil
			}
		}
	case KeyRight, KeyDelete:
		if e.CaretAtEnd() && (!e.HasSelection() || (k == KeyRight && shift && e.head == n)) {
			if b.selectAdjacent(e, 1) {
				if !shift {
					e.ClearSelection()
				}
				return true, nil
			}
		}
	}

	switch k {
	case KeyLeft:
		e.moveCaret(-1, shift)
	case KeyRight:
		e.moveCaret(1, shift)
	case KeyHome:
		e.moveCaretTo(0, shift)
	case KeyEnd:
		e.moveCaretTo(n, shift)
	case KeyBackspace, KeyDelete:
		edit, err := b.beforeTyping(ctx, e)
		if err != nil {
			return true, err
		}
		var changed bool
		if k == KeyBackspace {
			changed = edit.deleteBackward()
		} else {
			changed = edit.deleteForward()
		}
		if !changed {
			return false, nil
		}
		return true, b.afterEdit(ctx, edit, ReasonUserInput)
	default:
		return false, nil
	}

	if !shift && !e.AllSelected() {
		b.DeselectAll(e)
	}
	return true, nil
}

func (b *Box) tokenKey(ctx context.Context, k Key) (bool, error) {
	switch k {
	case KeyLeft:
		return b.Move(Previous), nil
	case KeyRight:
		return b.Move(Next), nil
	case KeyBackspace, KeyDelete:
		return true, b.RemoveSelectedFromToken(ctx)
	default:
		return false, nil
	}
}

// RemoveSelectedFromToken removes the selection while a token has focus,
// then selects and focuses the entry in front of the first removed one, or
// the trailing slot when there is none.
func (b *Box) RemoveSelectedFromToken(ctx context.Context) error {
	newIndex := -1
	if idx := b.sel.indices(b.coll); len(idx) > 0 {
		newIndex = idx[0] - 1
	}

	if err := b.RemoveAllSelected(ctx); err != nil {
		return err
	}

	b.setSelectedIndex(newIndex)
	if newIndex < 0 {
		newIndex = b.coll.Len() - 1
	}
	if e := b.coll.At(newIndex); e != nil {
		b.pauseTokenClearOnFocus = true
		b.Focus(e.ID())
		b.pauseTokenClearOnFocus = false
	}
	return nil
}

// beforeTyping removes a multi-entry selection before e is edited. It
// returns the slot that should receive the edit.
func (b *Box) beforeTyping(ctx context.Context, e *TextEdit) (*TextEdit, error) {
	if b.sel.Len() <= 1 {
		return e, nil
	}
	if err := b.RemoveAllSelected(ctx); err != nil {
		return nil, err
	}
	if b.coll.IndexOf(e) < 0 {
		e = b.cursor.Current()
		b.Focus(e.ID())
	}
	return e, nil
}

// InsertText types s into the focused entry. On a text slot it replaces the
// text selection. On a token it replaces the selected entries with a new
// text slot holding s, or appends s to the trailing slot when nothing is
// selected.
func (b *Box) InsertText(ctx context.Context, s string) error {
	if s == "" {
		return nil
	}
	focused, _ := b.Focused()
	if focused == nil {
		b.FocusLast()
		focused = b.coll.Last()
	}

	switch e := focused.(type) {
	case *TextEdit:
		edit, err := b.beforeTyping(ctx, e)
		if err != nil {
			return err
		}
		edit.replaceSelection(s)
		return b.afterEdit(ctx, edit, ReasonUserInput)
	case *Token:
		return b.typeOnToken(ctx, s)
	default:
		panic(fmt.Sprintf("tokenbox: unknown entry type %T", focused))
	}
}

func (b *Box) typeOnToken(ctx context.Context, s string) error {
	last := b.coll.Last()

	if b.sel.Len() == 0 {
		last.replaceSelection(s)
		b.FocusLast()
		return b.afterEdit(ctx, last, ReasonUserInput)
	}

	index := b.sel.indices(b.coll)[0]
	if err := b.RemoveAllSelected(ctx); err != nil {
		return err
	}

	if index >= b.coll.Len()-1 && isBlank(last.text) {
		last.setText(s)
		b.FocusLast()
		return b.afterEdit(ctx, last, ReasonUserInput)
	}

	index = util.Clamp(index, 0, b.coll.Len()-1)
	edit := newTextEdit(strings.TrimSpace(s), false)
	if err := b.coll.Insert(index, edit); err != nil {
		return err
	}
	b.Focus(edit.ID())
	return b.afterEdit(ctx, edit, ReasonUserInput)
}
