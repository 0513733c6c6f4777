// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the tokenbox TUI.

Colors are Lip Gloss AdaptiveColor values so they follow the terminal's
light or dark background. NewTheme detects the background with termenv,
or forces it when the configured theme is "dark" or "light".

# Token chips

Committed tokens render as chips. Each catalog kind gets a color from
KindColors by rank, and selection and focus override the chip style:

	theme := styles.NewTheme(styles.ThemeAuto)
	chip := theme.ChipFor(rank, selected, focused).Render("Pyro")
*/
package styles
