// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTheme_ForcedModes(t *testing.T) {
	require.True(t, NewTheme(ThemeDark).IsDark)
	require.False(t, NewTheme(ThemeLight).IsDark)
}

func TestKindColor_Wraps(t *testing.T) {
	require.Equal(t, KindColors[0], KindColor(0))
	require.Equal(t, KindColors[1], KindColor(len(KindColors)+1))
	require.Equal(t, TextSecondary, KindColor(-1))
}

func TestChipFor_RendersText(t *testing.T) {
	theme := NewTheme(ThemeDark)

	for _, style := range []struct{ selected, focused bool }{{false, false}, {true, false}, {true, true}} {
		out := theme.ChipFor(2, style.selected, style.focused).Render("Pyro")
		require.True(t, strings.Contains(out, "Pyro"), out)
	}
}

func TestRenderStatus(t *testing.T) {
	require.Contains(t, RenderError("boom"), "[X] boom")
	require.Contains(t, RenderInfo("loaded"), "[i] loaded")
}
