// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"sync"
)

// =============================================================================
// EVENT PAYLOADS
// =============================================================================

// AddingEvent is raised before a raw string becomes a token. Handlers may
// set Cancel to veto the add, or set Item to substitute the payload.
type AddingEvent struct {
	Text   string
	Item   any
	Cancel bool
}

func (e *AddingEvent) canceled() bool { return e.Cancel }

// RemovingEvent is raised before an entry is removed. Handlers may set
// Cancel to keep the entry.
type RemovingEvent struct {
	Entry  Entry
	Cancel bool
}

func (e *RemovingEvent) canceled() bool { return e.Cancel }

// TextChangeReason says why a text slot changed.
type TextChangeReason int

const (
	// ReasonProgrammatic is a change made through SetText or by the tokenizer.
	ReasonProgrammatic TextChangeReason = iota
	// ReasonUserInput is a change caused by typing.
	ReasonUserInput
	// ReasonSuggestionChosen is a change caused by picking a suggestion.
	ReasonSuggestionChosen
)

// String returns the reason name.
func (r TextChangeReason) String() string {
	switch r {
	case ReasonUserInput:
		return "user_input"
	case ReasonSuggestionChosen:
		return "suggestion_chosen"
	default:
		return "programmatic"
	}
}

// TextChangedEvent is raised after a text slot's buffer changed.
type TextChangedEvent struct {
	Edit   *TextEdit
	Text   string
	Reason TextChangeReason
}

// QuerySubmittedEvent is raised when the suggestion consumer commits a query.
// ChosenSuggestion is nil when the user submitted raw text.
type QuerySubmittedEvent struct {
	QueryText        string
	ChosenSuggestion any
}

// SuggestionChosenEvent is raised when a suggestion is highlighted.
type SuggestionChosenEvent struct {
	Suggestion any
}

// =============================================================================
// HANDLER LISTS
// =============================================================================

type canceler interface {
	canceled() bool
}

// CancelableHandler handles a cancelable event. Returning an error aborts
// the operation that raised the event.
type CancelableHandler[E any] func(ctx context.Context, ev E) error

type slot[H any] struct {
	id int
	h  H
}

// handlerList is an ordered subscriber list. Handlers are snapshotted before
// dispatch so they may unsubscribe while running.
type handlerList[H any] struct {
	mu     sync.RWMutex
	slots  []slot[H]
	nextID int
}

func (l *handlerList[H]) subscribe(h H) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.slots = append(l.slots, slot[H]{id: id, h: h})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, s := range l.slots {
			if s.id == id {
				l.slots = append(l.slots[:i], l.slots[i+1:]...)
				return
			}
		}
	}
}

func (l *handlerList[H]) snapshot() []H {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]H, len(l.slots))
	for i, s := range l.slots {
		out[i] = s.h
	}
	return out
}

func (l *handlerList[H]) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.slots)
}

// invokeCancelable runs every handler in subscription order, waiting for
// each one, and then reports whether any of them canceled ev. A done context
// or a handler error stops dispatch and is returned.
func invokeCancelable[E canceler](ctx context.Context, l *handlerList[CancelableHandler[E]], ev E) (bool, error) {
	for _, h := range l.snapshot() {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := h(ctx, ev); err != nil {
			return false, err
		}
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return ev.canceled(), nil
}

func emit[E any](l *handlerList[func(E)], ev E) {
	for _, h := range l.snapshot() {
		h(ev)
	}
}

// =============================================================================
// EVENTS
// =============================================================================

// Events holds the Box's subscriber lists. Subscribing is safe from any
// goroutine; handlers always run on the Box's goroutine.
type Events struct {
	adding           handlerList[CancelableHandler[*AddingEvent]]
	added            handlerList[func(*Token)]
	removing         handlerList[CancelableHandler[*RemovingEvent]]
	removed          handlerList[func(Entry)]
	textChanged      handlerList[func(TextChangedEvent)]
	querySubmitted   handlerList[func(QuerySubmittedEvent)]
	suggestionChosen handlerList[func(SuggestionChosenEvent)]
	layout           handlerList[func()]
}

// OnAdding subscribes to the cancelable adding event.
func (e *Events) OnAdding(h CancelableHandler[*AddingEvent]) func() { return e.adding.subscribe(h) }

// OnAdded subscribes to the added event.
func (e *Events) OnAdded(h func(*Token)) func() { return e.added.subscribe(h) }

// OnRemoving subscribes to the cancelable removing event.
func (e *Events) OnRemoving(h CancelableHandler[*RemovingEvent]) func() {
	return e.removing.subscribe(h)
}

// OnRemoved subscribes to the removed event.
func (e *Events) OnRemoved(h func(Entry)) func() { return e.removed.subscribe(h) }

// OnTextChanged subscribes to text changes of any text slot.
func (e *Events) OnTextChanged(h func(TextChangedEvent)) func() {
	return e.textChanged.subscribe(h)
}

// OnQuerySubmitted subscribes to query commits.
func (e *Events) OnQuerySubmitted(h func(QuerySubmittedEvent)) func() {
	return e.querySubmitted.subscribe(h)
}

// OnSuggestionChosen subscribes to suggestion highlights.
func (e *Events) OnSuggestionChosen(h func(SuggestionChosenEvent)) func() {
	return e.suggestionChosen.subscribe(h)
}

// OnLayout subscribes to the placeholder refresh that follows every
// structural change around the trailing slot.
func (e *Events) OnLayout(h func()) func() { return e.layout.subscribe(h) }
