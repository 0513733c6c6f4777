// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/tokenbox"
	"github.com/jeranaias/tokenbox/internal/ui/styles"
	"github.com/jeranaias/tokenbox/internal/util"
)

// =============================================================================
// MESSAGES
// =============================================================================

// CatalogReloadedMsg carries the result of a catalog file reload.
type CatalogReloadedMsg struct {
	Catalog *suggest.Catalog
	Err     error
}

// =============================================================================
// TOKEN INPUT COMPONENT
// =============================================================================

// InputConfig holds the display options of a TokenInput.
type InputConfig struct {
	Placeholder    string
	ChipWidth      int
	MaxSuggestions int
}

// frame border plus padding in front of the content
const (
	frameOffsetX = 2
	frameOffsetY = 1
)

// zone is the screen span of one rendered entry, in content coordinates.
type zone struct {
	row, x0, x1 int
	id          tokenbox.ID
}

// TokenInput is a bubbletea model that edits a tokenbox.Box.
type TokenInput struct {
	ctx      context.Context
	box      *tokenbox.Box
	keys     *tokenbox.HeldKeys
	provider *suggest.Provider
	reloads  <-chan suggest.Reload

	theme  *styles.Theme
	keyMap KeyMap
	help   help.Model
	list   *SuggestionList

	placeholder string
	chipWidth   int
	width       int

	showHelp bool
	status   string
	err      error
	done     bool
	aborted  bool

	zones []zone
}

// NewTokenInput wraps box. keys must be the Keyboard the box was built
// with; the input sets it from each key and mouse message. provider may
// be nil for a box without a catalog.
func NewTokenInput(ctx context.Context, box *tokenbox.Box, keys *tokenbox.HeldKeys, provider *suggest.Provider, theme *styles.Theme, cfg InputConfig) *TokenInput {
	if cfg.ChipWidth < 4 {
		cfg.ChipWidth = 24
	}
	m := &TokenInput{
		ctx:         ctx,
		box:         box,
		keys:        keys,
		provider:    provider,
		theme:       theme,
		keyMap:      DefaultKeyMap(),
		help:        help.New(),
		list:        NewSuggestionList(theme, cfg.MaxSuggestions),
		placeholder: cfg.Placeholder,
		chipWidth:   cfg.ChipWidth,
	}
	box.Events().OnTextChanged(m.onTextChanged)
	box.FocusLast()
	return m
}

// WatchCatalog makes the input apply reloads from ch. Call before the
// program starts.
func (m *TokenInput) WatchCatalog(ch <-chan suggest.Reload) { m.reloads = ch }

// Done reports whether the user finished editing.
func (m *TokenInput) Done() bool { return m.done }

// Aborted reports whether the user quit without finishing.
func (m *TokenInput) Aborted() bool { return m.aborted }

// Err returns the error of the last failed operation.
func (m *TokenInput) Err() error { return m.err }

// Suggestions returns the dropdown.
func (m *TokenInput) Suggestions() *SuggestionList { return m.list }

// Init implements tea.Model.
func (m *TokenInput) Init() tea.Cmd { return m.waitForReload() }

func (m *TokenInput) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return CatalogReloadedMsg{Catalog: r.Catalog, Err: r.Err}
	}
}

// Update implements tea.Model.
func (m *TokenInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.theme.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.list.SetWidth(min(msg.Width-2, 50))
		return m, nil

	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else if m.provider != nil && msg.Catalog != nil {
			m.provider.SetCatalog(msg.Catalog)
			m.status = fmt.Sprintf("catalog reloaded (%d tokens)", msg.Catalog.Len())
			if m.list.IsOpen() {
				m.openSuggestions()
			}
		}
		return m, m.waitForReload()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *TokenInput) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.keys.Mods = modifiersOf(msg)
	defer func() { m.keys.Mods = tokenbox.ModNone }()
	m.err = nil

	km := m.keyMap
	switch {
	case key.Matches(msg, km.Abort):
		m.aborted = true
		m.done = true
		return tea.Quit
	case key.Matches(msg, km.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, km.Submit):
		return m.submit()
	case key.Matches(msg, km.Accept):
		m.accept()
	case key.Matches(msg, km.Up):
		m.highlight(m.list.Prev)
	case key.Matches(msg, km.Down):
		if m.list.IsOpen() {
			m.highlight(m.list.Next)
		} else {
			m.openSuggestions()
		}
	case key.Matches(msg, km.Escape):
		if m.list.IsOpen() {
			m.list.Close()
		} else {
			m.press(tokenbox.KeyEscape)
		}
	case key.Matches(msg, km.Left):
		m.press(tokenbox.KeyLeft)
	case key.Matches(msg, km.Right):
		m.press(tokenbox.KeyRight)
	case key.Matches(msg, km.Home):
		m.press(tokenbox.KeyHome)
	case key.Matches(msg, km.End):
		m.press(tokenbox.KeyEnd)
	case key.Matches(msg, km.Backspace):
		m.press(tokenbox.KeyBackspace)
	case key.Matches(msg, km.Delete):
		m.press(tokenbox.KeyDelete)
	case key.Matches(msg, km.SelectAll):
		m.press(tokenbox.KeySelectAll)
	case key.Matches(msg, km.Copy):
		if m.press(tokenbox.KeyCopy) {
			m.status = "copied"
		}
	case key.Matches(msg, km.Cut):
		if m.press(tokenbox.KeyCut) {
			m.status = "cut"
		}
	case msg.Type == tea.KeySpace:
		m.fail(m.box.InsertText(m.ctx, " "))
	case msg.Type == tea.KeyRunes:
		m.fail(m.box.InsertText(m.ctx, string(msg.Runes)))
	}
	return nil
}

// press forwards k to the box. It reports whether k succeeded.
func (m *TokenInput) press(k tokenbox.Key) bool {
	_, err := m.box.HandleKey(m.ctx, k)
	return m.fail(err)
}

// fail records err, if any, and reports whether err was nil.
func (m *TokenInput) fail(err error) bool {
	if err == nil {
		return true
	}
	m.err = err
	log.Printf("OP_FAILED | error=%v", err)
	return false
}

// submit commits the highlighted suggestion or the typed text. With
// nothing to commit it finishes the input.
func (m *TokenInput) submit() tea.Cmd {
	text := m.box.Text()
	if tok, ok := m.list.Selected(); ok && m.list.IsOpen() {
		m.list.Close()
		m.fail(m.box.SubmitQuery(m.ctx, text, tok))
		return nil
	}
	if strings.TrimSpace(text) != "" {
		m.list.Close()
		m.fail(m.box.SubmitQuery(m.ctx, text, nil))
		return nil
	}
	m.done = true
	return tea.Quit
}

// accept commits the highlighted suggestion, or the first one when nothing
// is highlighted. A closed dropdown is opened instead.
func (m *TokenInput) accept() {
	if !m.list.IsOpen() {
		m.openSuggestions()
		return
	}
	tok, ok := m.list.Selected()
	if !ok {
		tok = m.list.Items()[0]
	}
	m.list.Close()
	if tok.IsNotFound() {
		return
	}
	m.fail(m.box.SubmitQuery(m.ctx, m.box.Text(), tok))
}

func (m *TokenInput) highlight(step func()) {
	if !m.list.IsOpen() {
		return
	}
	step()
	if tok, ok := m.list.Selected(); ok {
		m.box.ChooseSuggestion(tok)
	}
}

func (m *TokenInput) openSuggestions() {
	if m.provider == nil {
		return
	}
	m.list.SetItems(m.provider.Suggestions(m.box.Text()))
	m.list.Open()
}

func (m *TokenInput) onTextChanged(ev tokenbox.TextChangedEvent) {
	if m.provider == nil {
		return
	}
	if strings.TrimSpace(ev.Text) == "" {
		if ev.Reason != tokenbox.ReasonUserInput {
			m.list.Close()
		} else {
			m.list.SetItems(m.provider.Suggestions(""))
		}
		return
	}
	m.list.SetItems(m.provider.Suggestions(ev.Text))
	if ev.Reason == tokenbox.ReasonUserInput {
		m.list.Open()
	}
}

func (m *TokenInput) handleMouse(msg tea.MouseMsg) {
	if msg.Type != tea.MouseLeft {
		return
	}
	var mods tokenbox.Modifier
	if msg.Ctrl {
		mods |= tokenbox.ModCtrl
	}
	if msg.Shift {
		mods |= tokenbox.ModShift
	}
	if msg.Alt {
		mods |= tokenbox.ModAlt
	}
	m.keys.Mods = mods
	defer func() { m.keys.Mods = tokenbox.ModNone }()

	row, x := msg.Y-frameOffsetY, msg.X-frameOffsetX
	for _, z := range m.zones {
		if z.row == row && x >= z.x0 && x < z.x1 {
			m.box.Click(z.id)
			return
		}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *TokenInput) View() string {
	if m.done {
		return ""
	}

	focused, _ := m.box.Focused()
	frame := m.theme.Frame
	if focused != nil {
		frame = m.theme.FrameFocused
	}

	var b strings.Builder
	b.WriteString(frame.Width(m.frameWidth()).Render(strings.Join(m.layout(focused), "\n")))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	if dropdown := m.list.View(); dropdown != "" {
		b.WriteString("\n")
		b.WriteString(dropdown)
	}
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keyMap.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keyMap.ShortHelp()))
	}
	return b.String()
}

func (m *TokenInput) frameWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width-2, 20)
}

// layout renders the entries as wrapped rows and records their zones.
func (m *TokenInput) layout(focused tokenbox.Entry) []string {
	inner := m.frameWidth() - 2
	m.zones = m.zones[:0]

	var (
		rows []string
		line strings.Builder
		x    int
	)
	place := func(s string, id tokenbox.ID) {
		w := lipgloss.Width(s)
		if x > 0 && x+1+w > inner {
			rows = append(rows, line.String())
			line.Reset()
			x = 0
		}
		if x > 0 {
			line.WriteString(" ")
			x++
		}
		m.zones = append(m.zones, zone{row: len(rows), x0: x, x1: x + w, id: id})
		line.WriteString(s)
		x += w
	}

	for _, e := range m.box.Entries() {
		isFocused := focused != nil && e.ID() == focused.ID()
		switch e := e.(type) {
		case *tokenbox.Token:
			place(m.renderChip(e, isFocused), e.ID())
		case *tokenbox.TextEdit:
			if s := m.renderEdit(e, isFocused); s != "" {
				place(s, e.ID())
			}
		}
	}
	return append(rows, line.String())
}

func (m *TokenInput) renderChip(t *tokenbox.Token, focused bool) string {
	rank := -1
	if st, ok := t.Payload().(suggest.SearchToken); ok && m.provider != nil {
		rank = m.provider.Catalog().KindRank(st.Kind)
	}
	style := m.theme.ChipFor(rank, m.box.IsSelected(t.ID()), focused)
	return style.Render(util.TruncateWidth(t.String(), m.chipWidth))
}

func (m *TokenInput) renderEdit(e *tokenbox.TextEdit, focused bool) string {
	runes := []rune(e.Text())
	if len(runes) == 0 {
		switch {
		case e.IsLast() && len(m.box.Tokens()) == 0 && m.placeholder != "":
			if focused {
				return m.theme.Cursor.Render(" ") + m.theme.Placeholder.Render(m.placeholder)
			}
			return m.theme.Placeholder.Render(m.placeholder)
		case focused:
			return m.theme.Cursor.Render(" ")
		default:
			return ""
		}
	}

	start, length := e.Selection()
	if length > 0 {
		return m.theme.Text.Render(string(runes[:start])) +
			m.theme.TextSelected.Render(string(runes[start:start+length])) +
			m.theme.Text.Render(string(runes[start+length:]))
	}
	if !focused {
		return m.theme.Text.Render(string(runes))
	}

	caret := e.Caret()
	under, after := " ", ""
	if caret < len(runes) {
		under, after = string(runes[caret]), string(runes[caret+1:])
	}
	return m.theme.Text.Render(string(runes[:caret])) +
		m.theme.Cursor.Render(under) +
		m.theme.Text.Render(after)
}

func (m *TokenInput) statusLine() string {
	count, bound, reached := m.box.TokenCounter()
	var counter string
	switch {
	case bound < 0:
		counter = m.theme.Counter.Render(fmt.Sprintf("%d tokens", count))
	case reached:
		counter = m.theme.CounterReached.Render(fmt.Sprintf("%s %d/%d limit reached", styles.StatusIndicators.Limit, count, bound))
	default:
		counter = m.theme.Counter.Render(fmt.Sprintf("%d/%d", count, bound))
	}

	parts := []string{counter}
	if summary := m.kindSummary(); summary != "" {
		parts = append(parts, m.theme.Status.Render(summary))
	}
	switch {
	case m.err != nil:
		parts = append(parts, styles.RenderError(m.err.Error()))
	case m.status != "":
		parts = append(parts, styles.RenderInfo(m.status))
	}
	return strings.Join(parts, "  ")
}

// kindSummary counts committed tokens per kind, in catalog kind order.
func (m *TokenInput) kindSummary() string {
	if m.provider == nil {
		return ""
	}
	counts := map[suggest.Kind]int{}
	for _, tok := range m.provider.Committed() {
		counts[tok.Kind]++
	}
	var parts []string
	for _, k := range append(m.provider.Catalog().Kinds(), suggest.KindText) {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", k, n))
			delete(counts, k)
		}
	}
	return strings.Join(parts, " · ")
}
