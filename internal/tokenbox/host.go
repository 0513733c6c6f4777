// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import "strings"

// =============================================================================
// HOST CAPABILITIES
// =============================================================================

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	// ModNone means no modifier is held.
	ModNone Modifier = 0
	// ModShift is the Shift key.
	ModShift Modifier = 1 << iota
	// ModCtrl is the Control key.
	ModCtrl
	// ModAlt is the Alt key.
	ModAlt
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// String returns a form like "Ctrl+Shift".
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// Keyboard reports the modifier keys held while the current input is
// handled.
type Keyboard interface {
	Modifiers() Modifier
}

// FocusManager is the platform focus primitive.
type FocusManager interface {
	// Focused returns the entry holding focus, if any.
	Focused() (ID, bool)
	// Focus moves focus to the entry's container.
	Focus(id ID)
	// FocusPrevious moves focus to the element before the control.
	FocusPrevious()
}

// Clipboard is the platform clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// =============================================================================
// DEFAULT IMPLEMENTATIONS
// =============================================================================

// HeldKeys is a Keyboard whose state the host sets before dispatching input.
type HeldKeys struct {
	Mods Modifier
}

// Modifiers implements Keyboard.
func (k *HeldKeys) Modifiers() Modifier { return k.Mods }

// MemoryFocus keeps focus in memory. It is what a terminal host uses, since
// a terminal has no platform focus of its own.
type MemoryFocus struct {
	id       ID
	has      bool
	LeftBack bool // set when focus moved out of the control backwards
}

// Focused implements FocusManager.
func (f *MemoryFocus) Focused() (ID, bool) { return f.id, f.has }

// Focus implements FocusManager.
func (f *MemoryFocus) Focus(id ID) {
	f.id, f.has = id, true
	f.LeftBack = false
}

// FocusPrevious implements FocusManager.
func (f *MemoryFocus) FocusPrevious() {
	f.has = false
	f.LeftBack = true
}

// discardClipboard drops everything written to it.
type discardClipboard struct{}

func (discardClipboard) WriteText(string) error { return nil }
