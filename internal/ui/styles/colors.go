// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, focus ring
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - Errors, rejected input
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings, token limit reached
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Blue
var Blue = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}

// Pink
var Pink = lipgloss.AdaptiveColor{Light: "#DB2777", Dark: "#F5C2E7"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

var (
	Surface       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	SurfaceDim    = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}
	SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}
	Overlay       = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}
	OverlayDim    = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}

	TextPrimary   = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
)

// SelectionBg highlights selected text inside a text slot.
var SelectionBg = lipgloss.AdaptiveColor{Light: "#BFDBFE", Dark: "#1E3A5F"}

// KindColors colors token chips by catalog kind rank. Ranks past the end
// wrap around.
var KindColors = []lipgloss.AdaptiveColor{Cyan, Emerald, Amber, Blue, Pink, Purple}

// KindColor returns the chip color for a kind rank. Negative ranks are
// free text.
func KindColor(rank int) lipgloss.AdaptiveColor {
	if rank < 0 {
		return TextSecondary
	}
	return KindColors[rank%len(KindColors)]
}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicators are ASCII shape cues shown alongside colors.
var StatusIndicators = struct {
	Error string
	Info  string
	Limit string
}{
	Error: "[X]",
	Info:  "[i]",
	Limit: "[!]",
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Render(StatusIndicators.Error + " " + message)
}

// RenderInfo renders an info message with its indicator.
func RenderInfo(message string) string {
	return lipgloss.NewStyle().
		Foreground(Blue).
		Render(StatusIndicators.Info + " " + message)
}
