// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the Bubble Tea token input.

TokenInput (tokeninput.go) renders a tokenbox.Box as a row of chips
followed by the text slot, and forwards keys, modifiers and clicks to the
box. SuggestionList (suggestions.go) is the catalog dropdown beneath it.
KeyMap (keys.go) holds the bindings and the help text. SystemClipboard
(clipboard.go) backs copy and cut with the OS clipboard.

# Usage

	keys := &tokenbox.HeldKeys{}
	box := tokenbox.New(tokenbox.WithKeyboard(keys), tokenbox.WithClipboard(components.SystemClipboard{}))
	input := components.NewTokenInput(ctx, box, keys, provider, styles.NewTheme(styles.ThemeAuto), components.InputConfig{})
	_, err := tea.NewProgram(input).Run()
*/
package components
