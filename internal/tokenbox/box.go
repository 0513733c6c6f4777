// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"log"
	"strings"
)

const (
	// DefaultDelimiter separates tokens when none is configured.
	DefaultDelimiter = " "
	// Unbounded disables the max-token bound.
	Unbounded = -1
)

// =============================================================================
// BOX
// =============================================================================

// Box is the tokenizing input state: the entry collection, the edit cursor,
// the selection, and the protocols that mutate them.
type Box struct {
	coll   *Collection
	cursor *Cursor
	sel    Selection
	events Events

	delimiter       string
	maxTokens       int
	tabNavigateBack bool

	keyboard  Keyboard
	focus     FocusManager
	clipboard Clipboard

	// set by SelectAll so focusing the trailing slot keeps the selection
	pauseTokenClearOnFocus bool
}

// Option configures a Box.
type Option func(*Box)

// WithDelimiter sets the tokenizing delimiter. An empty delimiter turns
// tokenizing off.
func WithDelimiter(d string) Option {
	return func(b *Box) { b.delimiter = d }
}

// WithMaxTokens bounds the number of tokens. Negative means unbounded.
func WithMaxTokens(n int) Option {
	return func(b *Box) { b.maxTokens = n }
}

// WithTabNavigateBack lets Previous navigation on the first entry move
// focus out of the control.
func WithTabNavigateBack(on bool) Option {
	return func(b *Box) { b.tabNavigateBack = on }
}

// WithKeyboard injects the modifier-key source.
func WithKeyboard(k Keyboard) Option {
	return func(b *Box) { b.keyboard = k }
}

// WithFocus injects the focus primitive.
func WithFocus(f FocusManager) Option {
	return func(b *Box) { b.focus = f }
}

// WithClipboard injects the clipboard.
func WithClipboard(c Clipboard) Option {
	return func(b *Box) { b.clipboard = c }
}

// New creates a Box holding only the empty trailing slot.
func New(opts ...Option) *Box {
	b := &Box{
		delimiter: DefaultDelimiter,
		maxTokens: Unbounded,
		keyboard:  &HeldKeys{},
		focus:     &MemoryFocus{},
		clipboard: discardClipboard{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.coll = newCollection(nil, "")
	b.cursor = newCursor(b.coll)
	return b
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Events returns the subscriber lists.
func (b *Box) Events() *Events { return &b.events }

// Collection returns the entry collection. Callers must not mutate it
// directly.
func (b *Box) Collection() *Collection { return b.coll }

// Entries returns the entries in display order.
func (b *Box) Entries() []Entry { return b.coll.Entries() }

// Len returns the number of entries.
func (b *Box) Len() int { return b.coll.Len() }

// Tokens returns the token entries in display order.
func (b *Box) Tokens() []*Token { return b.coll.Tokens() }

// TokenStrings returns the string form of every token.
func (b *Box) TokenStrings() []string {
	tokens := b.coll.Tokens()
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}

// Payloads returns the application values of every token. This is the
// backing sequence the control owns.
func (b *Box) Payloads() []any {
	tokens := b.coll.Tokens()
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = t.Payload()
	}
	return out
}

// Current returns the text slot holding the logical caret.
func (b *Box) Current() *TextEdit { return b.cursor.Current() }

// Last returns the trailing text slot.
func (b *Box) Last() *TextEdit { return b.coll.Last() }

// Delimiter returns the tokenizing delimiter.
func (b *Box) Delimiter() string { return b.delimiter }

// SetDelimiter changes the tokenizing delimiter.
func (b *Box) SetDelimiter(d string) { b.delimiter = d }

// MaxTokens returns the token bound, or Unbounded.
func (b *Box) MaxTokens() int { return b.maxTokens }

// TabNavigateBack reports whether Previous on the first entry leaves the
// control.
func (b *Box) TabNavigateBack() bool { return b.tabNavigateBack }

// SetTabNavigateBack changes the tab-navigate-back option.
func (b *Box) SetTabNavigateBack(on bool) { b.tabNavigateBack = on }

// TokenCounter returns the token count, the bound, and whether the bound
// has been reached.
func (b *Box) TokenCounter() (count, max int, reached bool) {
	count = b.coll.TokenCount()
	return count, b.maxTokens, b.maxReached()
}

func (b *Box) maxReached() bool {
	return b.maxTokens >= 0 && b.coll.TokenCount() >= b.maxTokens
}

// Text returns the current slot's text.
func (b *Box) Text() string { return b.cursor.Current().Text() }

// SetText replaces the current slot's text. The change is announced and
// tokenized like any other edit.
func (b *Box) SetText(ctx context.Context, text string) error {
	edit := b.cursor.Current()
	edit.setText(text)
	return b.afterEdit(ctx, edit, ReasonProgrammatic)
}

// SetItems replaces the backing sequence. The payloads are wrapped as
// tokens, trimmed from the tail to the token bound, and followed by a new
// trailing slot seeded with the current text. No events are raised for
// trimmed payloads.
func (b *Box) SetItems(payloads []any) {
	text := b.Text()
	if b.maxTokens >= 0 && len(payloads) > b.maxTokens {
		log.Printf("TOKEN_EVICTED | count=%d reason=items_over_max max=%d", len(payloads)-b.maxTokens, b.maxTokens)
		payloads = payloads[:b.maxTokens]
	}
	b.coll = newCollection(payloads, text)
	b.cursor = newCursor(b.coll)
	b.sel.Clear()
	b.focus.Focus(b.coll.Last().ID())
	b.refreshLayout()
}

// =============================================================================
// FOCUS BOOKKEEPING
// =============================================================================

// Focus moves focus to the entry with the given ID and runs the focus
// bookkeeping: a blank inner slot losing focus is dropped, and a slot
// gaining focus becomes current.
func (b *Box) Focus(id ID) {
	prev, had := b.focus.Focused()
	b.focus.Focus(id)
	if had && prev != id {
		b.lostFocus(prev)
	}
	b.gotFocus(id)
}

// Focused returns the focused entry and its index, or nil and -1.
func (b *Box) Focused() (Entry, int) {
	id, ok := b.focus.Focused()
	if !ok {
		return nil, -1
	}
	i := b.coll.IndexOfID(id)
	if i < 0 {
		return nil, -1
	}
	return b.coll.At(i), i
}

// FocusLast focuses the trailing slot.
func (b *Box) FocusLast() { b.Focus(b.coll.Last().ID()) }

func (b *Box) gotFocus(id ID) {
	te, ok := b.coll.ByID(id).(*TextEdit)
	if !ok {
		return
	}
	b.cursor.set(te)
	if !b.pauseTokenClearOnFocus && !b.keyboard.Modifiers().Has(ModShift) {
		b.sel.Clear()
	}
	b.pauseTokenClearOnFocus = false
}

func (b *Box) lostFocus(id ID) {
	te, ok := b.coll.ByID(id).(*TextEdit)
	if !ok || te.isLast || strings.TrimSpace(te.text) != "" {
		return
	}
	if err := b.coll.Remove(te); err != nil {
		return
	}
	b.sel.Remove(id)
	b.cursor.reset()
	b.refreshLayout()
}

// refreshLayout announces a structural change around the trailing slot.
func (b *Box) refreshLayout() {
	for _, h := range b.events.layout.snapshot() {
		h()
	}
}

// afterEdit announces a text change on edit and runs the tokenizer over it.
func (b *Box) afterEdit(ctx context.Context, edit *TextEdit, reason TextChangeReason) error {
	emit(&b.events.textChanged, TextChangedEvent{Edit: edit, Text: edit.text, Reason: reason})
	return b.tokenize(ctx, edit)
}

// Validate checks the collection invariants. It is meant for tests and
// debug assertions.
func (b *Box) Validate() error {
	if err := b.coll.validate(); err != nil {
		return &InvariantError{Op: "validate", Err: err}
	}
	if b.coll.IndexOf(b.cursor.Current()) < 0 {
		return &InvariantError{Op: "validate", Err: ErrEntryNotFound}
	}
	return nil
}
