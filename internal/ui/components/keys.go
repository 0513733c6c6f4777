// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/tokenbox/internal/tokenbox"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the token input.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding
	SelectAll key.Binding
	Copy      key.Binding
	Cut       key.Binding
	Escape    key.Binding

	Up     key.Binding
	Down   key.Binding
	Accept key.Binding
	Submit key.Binding

	Help  key.Binding
	Abort key.Binding
}

// DefaultKeyMap returns the default bindings. Arrow, Home and End keys
// accept shift and ctrl variants; the modifiers are forwarded to the box.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "shift+left", "ctrl+left", "ctrl+shift+left"),
			key.WithHelp("←/S-←", "move / extend"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "shift+right", "ctrl+right", "ctrl+shift+right"),
			key.WithHelp("→/S-→", "move / extend"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "shift+home", "ctrl+home"),
			key.WithHelp("Home", "start of text"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "shift+end", "ctrl+end"),
			key.WithHelp("End", "end of text"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("Bksp", "delete / remove token"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("Del", "delete forward"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "select all"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "cut"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close / deselect"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next suggestion"),
		),
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "accept suggestion"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "commit / finish"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "abort"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Accept, k.Backspace, k.Help, k.Abort}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Home, k.End},
		{k.Backspace, k.Delete, k.SelectAll, k.Escape},
		{k.Copy, k.Cut, k.Up, k.Down},
		{k.Accept, k.Submit, k.Help, k.Abort},
	}
}

// modifiersOf returns the modifiers encoded in a key message.
func modifiersOf(msg tea.KeyMsg) tokenbox.Modifier {
	var mods tokenbox.Modifier
	s := msg.String()
	if strings.Contains(s, "ctrl+") {
		mods |= tokenbox.ModCtrl
	}
	if strings.Contains(s, "shift+") {
		mods |= tokenbox.ModShift
	}
	if msg.Alt {
		mods |= tokenbox.ModAlt
	}
	return mods
}
