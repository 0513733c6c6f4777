// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"fmt"
	"log"
)

// =============================================================================
// ADD / REMOVE PROTOCOL
// =============================================================================

// AddEntry commits payload as a new token.
//
// The add is a silent no-op when the token bound is already reached. A
// string payload is first offered to the adding subscribers, who may cancel
// the add or substitute the payload. A nil token with a nil error means the
// add was rejected or canceled.
//
// When atEnd is set, or the user was typing in the trailing slot, the token
// goes right before the trailing slot. Otherwise it replaces the current
// inner slot. Focus then returns to the trailing slot.
func (b *Box) AddEntry(ctx context.Context, payload any, atEnd bool) (*Token, error) {
	current := b.cursor.Current()
	last := b.coll.Last()
	replace := !atEnd && current != last

	tok, err := b.commit(ctx, payload)
	if tok == nil || err != nil {
		return nil, err
	}

	index := b.coll.IndexOf(current)
	if !replace || index < 0 {
		if err := b.coll.Insert(b.coll.Len()-1, tok); err != nil {
			return nil, err
		}
	} else {
		if err := b.coll.Insert(index, tok); err != nil {
			return nil, err
		}
		if err := b.coll.Remove(current); err != nil {
			return nil, err
		}
		b.sel.Remove(current.ID())
		b.cursor.reset()
	}

	b.Focus(last.ID())
	emit(&b.events.added, tok)
	b.refreshLayout()
	return tok, nil
}

// commit runs the bound check and the adding subscribers, and returns the
// token to insert. A nil token with a nil error means the add was rejected.
func (b *Box) commit(ctx context.Context, payload any) (*Token, error) {
	if b.maxReached() {
		return nil, nil
	}

	text, ok := payload.(string)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewToken(payload), nil
	}

	ev := &AddingEvent{Text: text}
	canceled, err := invokeCancelable(ctx, &b.events.adding, ev)
	if err != nil {
		log.Printf("OP_ABANDONED | op=add error=%v", err)
		return nil, fmt.Errorf("adding %q: %w", text, err)
	}
	if canceled {
		return nil, nil
	}
	if ev.Item != nil {
		payload = ev.Item
	}
	return NewToken(payload), nil
}

// RemoveEntry removes e after the removing subscribers agree. It returns
// false, with no mutation, when a subscriber cancels. Removing the trailing
// slot is an invariant violation.
func (b *Box) RemoveEntry(ctx context.Context, e Entry) (bool, error) {
	if e == Entry(b.coll.Last()) {
		return false, violation("remove_entry", ErrTrailingEdit)
	}
	if b.coll.IndexOf(e) < 0 {
		return false, ErrEntryNotFound
	}

	ev := &RemovingEvent{Entry: e}
	canceled, err := invokeCancelable(ctx, &b.events.removing, ev)
	if err != nil {
		log.Printf("OP_ABANDONED | op=remove error=%v", err)
		return false, fmt.Errorf("removing entry: %w", err)
	}
	if canceled {
		return false, nil
	}

	// a subscriber may have removed it already
	if err := b.coll.Remove(e); err != nil {
		return false, err
	}
	b.sel.Remove(e.ID())

	emit(&b.events.removed, e)
	b.refreshLayout()
	return true, nil
}

// RemoveAllSelected removes the selected entries in collection order. A
// selected text slot only loses its selected text, and is removed only when
// nothing is left. The trailing slot is never touched. Entries whose removal
// a subscriber vetoes are deselected so the loop always terminates.
func (b *Box) RemoveAllSelected(ctx context.Context) error {
	last := b.coll.Last()
	for _, id := range b.selectedInOrder() {
		e := b.coll.ByID(id)
		if e == nil || e == Entry(last) {
			continue
		}
		switch v := e.(type) {
		case *TextEdit:
			rest := v.textWithoutSelection()
			if rest == "" {
				if err := b.removeSelected(ctx, v); err != nil {
					return err
				}
				continue
			}
			v.replaceSelection("")
			b.sel.Remove(id)
			if err := b.afterEdit(ctx, v, ReasonUserInput); err != nil {
				return err
			}
		case *Token:
			if err := b.removeSelected(ctx, v); err != nil {
				return err
			}
		default:
			panic(fmt.Sprintf("tokenbox: unknown entry type %T", e))
		}
	}
	b.sel.prune(b.coll)
	return nil
}

func (b *Box) removeSelected(ctx context.Context, e Entry) error {
	ok, err := b.RemoveEntry(ctx, e)
	if err != nil {
		return err
	}
	if !ok {
		b.sel.Remove(e.ID())
	}
	return nil
}

// Clear removes every entry in front of the trailing slot and then empties
// the current text. It stops at the first removal a subscriber vetoes.
func (b *Box) Clear(ctx context.Context) error {
	for b.coll.Len() > 1 {
		ok, err := b.RemoveEntry(ctx, b.coll.At(0))
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return b.SetText(ctx, "")
}

// SetMaxTokens changes the token bound. Lowering it below the token count
// evicts tokens from the tail without asking the removing subscribers; a
// removed event still fires for each evicted token.
func (b *Box) SetMaxTokens(n int) {
	b.maxTokens = n
	if n < 0 {
		return
	}

	tokens := b.coll.Tokens()
	count := len(tokens)
	if count == 0 || count <= n {
		return
	}

	toRemove := count - max(n, 0)
	for i := count; i > count-toRemove; i-- {
		tok := tokens[i-1]
		index := b.coll.IndexOf(tok)
		if err := b.coll.Remove(tok); err != nil {
			continue
		}
		b.sel.Remove(tok.ID())
		log.Printf("TOKEN_EVICTED | index=%d reason=max_tokens max=%d", index, n)
		emit(&b.events.removed, Entry(tok))
	}
}

// =============================================================================
// SUGGESTION CONSUMER
// =============================================================================

// SubmitQuery commits a query from the suggestion consumer. The chosen
// suggestion wins over the raw query text; blank text with no suggestion
// only raises the event. After the add the current slot is cleared and
// refocused. An inner slot is replaced by the token, so the trailing slot
// keeps its text and only takes focus.
func (b *Box) SubmitQuery(ctx context.Context, queryText string, chosen any) error {
	emit(&b.events.querySubmitted, QuerySubmittedEvent{QueryText: queryText, ChosenSuggestion: chosen})

	var item any
	switch {
	case chosen != nil:
		item = chosen
	case !isBlank(queryText):
		item = queryText
	default:
		return nil
	}

	edit := b.cursor.Current()
	if _, err := b.AddEntry(ctx, item, false); err != nil {
		return err
	}

	if b.coll.IndexOf(edit) < 0 {
		b.FocusLast()
		return nil
	}
	edit.setText("")
	if err := b.afterEdit(ctx, edit, ReasonProgrammatic); err != nil {
		return err
	}
	b.Focus(edit.ID())
	return nil
}

// ChooseSuggestion announces that the consumer highlighted a suggestion.
func (b *Box) ChooseSuggestion(suggestion any) {
	emit(&b.events.suggestionChosen, SuggestionChosenEvent{Suggestion: suggestion})
}

// selectedInOrder returns the selected IDs in collection order.
func (b *Box) selectedInOrder() []ID {
	idx := b.sel.indices(b.coll)
	out := make([]ID, len(idx))
	for i, n := range idx {
		out[i] = b.coll.At(n).ID()
	}
	return out
}
