// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tokenbox implements the state core of a tokenizing text input.
//
// A Box presents one logical text-entry surface as an ordered list of
// entries. Each entry is either a committed token or an editable text slot.
// The last entry is always the trailing text slot: it is created with the
// Box and is never removed, only cleared.
//
// # Key Types
//
//   - Entry: sealed union of *Token and *TextEdit
//   - Collection: the ordered entry list (the interspersed collection)
//   - Cursor: tracks the current and the trailing TextEdit by ID
//   - Selection: list-style multi selection with an anchor
//   - Events: cancelable (adding, removing) and plain notifications
//   - Box: ties the above together with the add/remove protocol,
//     navigation, delimiter tokenizing and clipboard serialization
//
// # Threading
//
// A Box is not safe for concurrent use. All calls must come from one
// goroutine (the bubbletea Update loop in the TUI). Operations that raise
// cancelable events take a context and block until every subscriber has
// returned. A canceled context abandons the operation before it mutates
// anything.
//
// Placement decisions in AddEntry are taken from the cursor at call time,
// but the insertion happens after the adding subscribers return. A subscriber
// that re-enters the Box (for example by adding or removing entries from an
// adding handler) can therefore move the insertion point under a pending add.
// The delimiter tokenizer submits its segments one after another and has the
// same exposure. This is a known reentrancy hazard and is not guarded.
//
// # Usage
//
//	box := tokenbox.New(tokenbox.WithDelimiter(","))
//	box.Events().OnAdding(func(ctx context.Context, ev *tokenbox.AddingEvent) error {
//	    if ev.Text == "forbidden" {
//	        ev.Cancel = true
//	    }
//	    return nil
//	})
//	_ = box.InsertText(ctx, "red,blue,")
//	fmt.Println(box.TokenStrings()) // [red blue]
package tokenbox
