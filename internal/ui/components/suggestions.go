// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/ui/styles"
	"github.com/jeranaias/tokenbox/internal/util"
)

// =============================================================================
// SUGGESTION LIST COMPONENT
// =============================================================================

// SuggestionList is the dropdown under the token input.
type SuggestionList struct {
	items      []suggest.SearchToken
	selected   int
	maxVisible int
	open       bool
	width      int
	theme      *styles.Theme
}

// NewSuggestionList creates a closed list showing up to maxVisible rows.
func NewSuggestionList(theme *styles.Theme, maxVisible int) *SuggestionList {
	if maxVisible < 1 {
		maxVisible = 8
	}
	return &SuggestionList{
		selected:   -1,
		maxVisible: maxVisible,
		width:      40,
		theme:      theme,
	}
}

// SetItems replaces the suggestions and clears the highlight.
func (l *SuggestionList) SetItems(items []suggest.SearchToken) {
	l.items = items
	l.selected = -1
}

// Items returns the current suggestions.
func (l *SuggestionList) Items() []suggest.SearchToken { return l.items }

// Open shows the list.
func (l *SuggestionList) Open() { l.open = true }

// Close hides the list and clears the highlight.
func (l *SuggestionList) Close() {
	l.open = false
	l.selected = -1
}

// IsOpen reports whether the list is shown.
func (l *SuggestionList) IsOpen() bool { return l.open && len(l.items) > 0 }

// Next highlights the next suggestion, wrapping around.
func (l *SuggestionList) Next() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
}

// Prev highlights the previous suggestion, wrapping around.
func (l *SuggestionList) Prev() {
	if len(l.items) == 0 {
		return
	}
	l.selected--
	if l.selected < 0 {
		l.selected = len(l.items) - 1
	}
}

// Selected returns the highlighted suggestion. ok is false when nothing
// is highlighted.
func (l *SuggestionList) Selected() (tok suggest.SearchToken, ok bool) {
	if l.selected < 0 || l.selected >= len(l.items) {
		return suggest.SearchToken{}, false
	}
	return l.items[l.selected], true
}

// SetWidth sets the dropdown width.
func (l *SuggestionList) SetWidth(width int) { l.width = max(width, 12) }

// View renders the dropdown, or nothing when closed.
func (l *SuggestionList) View() string {
	if !l.IsOpen() {
		return ""
	}

	// scrolling window centered on the highlight
	start, end := 0, len(l.items)
	if len(l.items) > l.maxVisible {
		start = util.Clamp(l.selected-l.maxVisible/2, 0, len(l.items)-l.maxVisible)
		end = start + l.maxVisible
	}

	rows := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		rows = append(rows, l.renderItem(l.items[i], i == l.selected))
	}
	if hidden := len(l.items) - (end - start); hidden > 0 {
		rows = append(rows, l.theme.DropdownKind.Render("…"+strconv.Itoa(hidden)+" more"))
	}

	return l.theme.Dropdown.Width(l.width).Render(strings.Join(rows, "\n"))
}

func (l *SuggestionList) renderItem(tok suggest.SearchToken, selected bool) string {
	if tok.IsNotFound() {
		return l.theme.DropdownEmpty.Render(tok.Value)
	}

	indicator := "  "
	style := l.theme.DropdownItem
	if selected {
		indicator = "> "
		style = l.theme.DropdownSelected
	}

	kind := string(tok.Kind)
	valueWidth := max(l.width-lipgloss.Width(kind)-6, 4)
	value := util.TruncateWidth(tok.Value, valueWidth)
	pad := strings.Repeat(" ", max(valueWidth-lipgloss.Width(value), 0))

	return indicator + style.Render(value) + pad + " " + l.theme.DropdownKind.Render(kind)
}
