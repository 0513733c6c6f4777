// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/tokenbox/internal/util"
)

// =============================================================================
// ENTRY UNION
// =============================================================================

// ID identifies an entry for the lifetime of the Box. Cursor and selection
// state refer to entries by ID so a removed entry can never be aliased.
type ID = uuid.UUID

// Entry is one element of the token list. It is either a *Token or a
// *TextEdit; the interface is sealed so every consumer can switch
// exhaustively over the two variants.
type Entry interface {
	ID() ID
	sealed()
}

// Token is a committed, opaque application value.
type Token struct {
	id      ID
	payload any
}

// NewToken wraps payload in a new token entry.
func NewToken(payload any) *Token {
	return &Token{id: uuid.New(), payload: payload}
}

// ID returns the entry ID.
func (t *Token) ID() ID { return t.id }

// Payload returns the application value.
func (t *Token) Payload() any { return t.payload }

// String returns the clipboard representation of the token.
func (t *Token) String() string {
	switch p := t.payload.(type) {
	case nil:
		return ""
	case string:
		return p
	case fmt.Stringer:
		return p.String()
	default:
		return fmt.Sprint(p)
	}
}

func (*Token) sealed() {}

// TextEdit is an editable text slot. Positions are rune offsets; the
// selection runs from anchor to head, and head is the caret.
type TextEdit struct {
	id     ID
	text   string
	isLast bool

	anchor int
	head   int
}

// newTextEdit creates a text slot holding text with the caret at its end.
func newTextEdit(text string, isLast bool) *TextEdit {
	e := &TextEdit{id: uuid.New(), isLast: isLast}
	e.setText(text)
	return e
}

// ID returns the entry ID.
func (e *TextEdit) ID() ID { return e.id }

// Text returns the current buffer.
func (e *TextEdit) Text() string { return e.text }

// IsLast reports whether this is the permanent trailing slot.
func (e *TextEdit) IsLast() bool { return e.isLast }

// Selection returns the selection start and length.
func (e *TextEdit) Selection() (start, length int) {
	if e.anchor <= e.head {
		return e.anchor, e.head - e.anchor
	}
	return e.head, e.anchor - e.head
}

// Caret returns the caret position.
func (e *TextEdit) Caret() int { return e.head }

// SelectedText returns the selected substring, or "" if nothing is selected.
func (e *TextEdit) SelectedText() string {
	start, length := e.Selection()
	if length == 0 {
		return ""
	}
	return util.SafeSubstring(e.text, start, start+length)
}

// CaretAtStart reports whether the selection starts at offset 0.
func (e *TextEdit) CaretAtStart() bool {
	start, _ := e.Selection()
	return start == 0
}

// CaretAtEnd reports whether the selection ends at the end of the text.
func (e *TextEdit) CaretAtEnd() bool {
	start, length := e.Selection()
	return start+length == util.RuneLen(e.text)
}

// HasSelection reports whether a non-empty range is selected.
func (e *TextEdit) HasSelection() bool { return e.anchor != e.head }

// AllSelected reports whether the whole non-empty text is selected.
func (e *TextEdit) AllSelected() bool {
	start, length := e.Selection()
	return e.text != "" && start == 0 && length == util.RuneLen(e.text)
}

// Select sets a forward selection, clamped to the text.
func (e *TextEdit) Select(start, length int) {
	n := util.RuneLen(e.text)
	start = util.Clamp(start, 0, n)
	e.anchor = start
	e.head = util.Clamp(start+length, start, n)
}

// SetCaret collapses the selection to pos.
func (e *TextEdit) SetCaret(pos int) { e.Select(pos, 0) }

// SelectAll selects the whole text.
func (e *TextEdit) SelectAll() { e.Select(0, util.RuneLen(e.text)) }

// ClearSelection collapses the selection onto the caret.
func (e *TextEdit) ClearSelection() { e.SetCaret(e.head) }

// moveCaret moves the head by delta. With extend the anchor stays put,
// otherwise the selection collapses.
func (e *TextEdit) moveCaret(delta int, extend bool) {
	head := util.Clamp(e.head+delta, 0, util.RuneLen(e.text))
	e.head = head
	if !extend {
		e.anchor = head
	}
}

// moveCaretTo places the head at pos, extending the selection if asked.
func (e *TextEdit) moveCaretTo(pos int, extend bool) {
	e.moveCaret(pos-e.head, extend)
}

// setText replaces the buffer and moves the caret to the end.
func (e *TextEdit) setText(text string) {
	e.text = text
	e.SetCaret(util.RuneLen(text))
}

// textWithoutSelection returns the text with the selected range cut out.
func (e *TextEdit) textWithoutSelection() string {
	start, length := e.Selection()
	if length == 0 {
		return e.text
	}
	runes := []rune(e.text)
	return string(runes[:start]) + string(runes[start+length:])
}

// replaceSelection replaces the selected range (or inserts at the caret) with s.
func (e *TextEdit) replaceSelection(s string) {
	start, length := e.Selection()
	runes := []rune(e.text)
	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(s)
	b.WriteString(string(runes[start+length:]))
	e.text = b.String()
	e.SetCaret(start + util.RuneLen(s))
}

// deleteBackward removes the selection, or the rune before the caret.
func (e *TextEdit) deleteBackward() bool {
	if e.HasSelection() {
		e.replaceSelection("")
		return true
	}
	if e.head == 0 {
		return false
	}
	e.Select(e.head-1, 1)
	e.replaceSelection("")
	return true
}

// deleteForward removes the selection, or the rune after the caret.
func (e *TextEdit) deleteForward() bool {
	if e.HasSelection() {
		e.replaceSelection("")
		return true
	}
	if e.head >= util.RuneLen(e.text) {
		return false
	}
	e.Select(e.head, 1)
	e.replaceSelection("")
	return true
}

func (*TextEdit) sealed() {}

// entryString renders an entry for the clipboard: a token contributes its
// string form, a text slot only its selected substring.
func entryString(e Entry) string {
	switch v := e.(type) {
	case *Token:
		return v.String()
	case *TextEdit:
		return v.SelectedText()
	default:
		panic(fmt.Sprintf("tokenbox: unknown entry type %T", e))
	}
}
