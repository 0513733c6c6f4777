// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by NewTheme.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme holds the styles for the token input.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width int

	// ==========================================================================
	// INPUT
	// ==========================================================================

	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Chip         lipgloss.Style
	ChipSelected lipgloss.Style
	ChipFocused  lipgloss.Style
	Text         lipgloss.Style
	TextSelected lipgloss.Style
	Cursor       lipgloss.Style
	Placeholder  lipgloss.Style

	// ==========================================================================
	// COUNTER AND STATUS
	// ==========================================================================

	Counter        lipgloss.Style
	CounterReached lipgloss.Style
	Status         lipgloss.Style

	// ==========================================================================
	// SUGGESTION DROPDOWN
	// ==========================================================================

	Dropdown         lipgloss.Style
	DropdownItem     lipgloss.Style
	DropdownSelected lipgloss.Style
	DropdownKind     lipgloss.Style
	DropdownEmpty    lipgloss.Style
}

// NewTheme detects terminal capabilities and builds the styles. mode is
// ThemeAuto, ThemeDark or ThemeLight; anything else is treated as auto.
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()
	isDark := termenv.HasDarkBackground()
	switch mode {
	case ThemeDark:
		isDark = true
	case ThemeLight:
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Frame = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)
	t.FrameFocused = t.Frame.BorderForeground(Cyan)

	t.Chip = lipgloss.NewStyle().
		Foreground(TextInverse).
		Padding(0, 1)
	t.ChipSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)
	t.ChipFocused = t.ChipSelected.Underline(true)

	t.Text = lipgloss.NewStyle().Foreground(TextPrimary)
	t.TextSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg)
	t.Cursor = lipgloss.NewStyle().Reverse(true)
	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.Counter = lipgloss.NewStyle().Foreground(TextMuted)
	t.CounterReached = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.Status = lipgloss.NewStyle().Foreground(TextSecondary)

	t.Dropdown = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.DropdownItem = lipgloss.NewStyle().Foreground(TextPrimary)
	t.DropdownSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true)
	t.DropdownKind = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.DropdownEmpty = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
}

// SetWidth sets the available width.
func (t *Theme) SetWidth(width int) { t.Width = width }

// ChipFor returns the chip style for a token of the given kind rank.
func (t *Theme) ChipFor(rank int, selected, focused bool) lipgloss.Style {
	switch {
	case focused:
		return t.ChipFocused
	case selected:
		return t.ChipSelected
	default:
		return t.Chip.Background(KindColor(rank))
	}
}
