// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/jeranaias/tokenbox/internal/tokenbox"
)

// Recorder persists committed token values.
type Recorder interface {
	Record(ctx context.Context, value string) error
}

// Options configures a Provider.
type Options struct {
	// Mode picks contains or fuzzy matching. Empty means contains.
	Mode Mode
	// Restrict cancels adds whose text is not in the catalog.
	Restrict bool
	// Limit caps Suggestions. Zero means no cap.
	Limit int
	// OnFilter runs whenever the committed tokens change.
	OnFilter func(committed []SearchToken)
	// Recorder, if set, is told about every committed catalog token.
	Recorder Recorder
	// Usage seeds the ranking boost. Keys differing only in case are
	// summed.
	Usage Usage
}

// Provider connects a catalog to a token box.
type Provider struct {
	box  *tokenbox.Box
	opts Options

	mu      sync.RWMutex
	catalog *Catalog
	usage   Usage

	unsubscribe []func()
}

// Attach subscribes a Provider to box. Call Detach to unsubscribe.
func Attach(box *tokenbox.Box, catalog *Catalog, opts Options) *Provider {
	if catalog == nil {
		catalog = EmptyCatalog()
	}
	if opts.Mode == "" {
		opts.Mode = MatchContains
	}
	usage := make(Usage, len(opts.Usage))
	for k, v := range opts.Usage {
		usage[foldKey(k)] += v
	}

	p := &Provider{box: box, opts: opts, catalog: catalog, usage: usage}
	ev := box.Events()
	p.unsubscribe = []func(){
		ev.OnAdding(p.onAdding),
		ev.OnAdded(p.onAdded),
		ev.OnRemoved(p.onRemoved),
		ev.OnQuerySubmitted(p.onQuerySubmitted),
	}
	return p
}

// Detach removes the provider's subscriptions.
func (p *Provider) Detach() {
	for _, u := range p.unsubscribe {
		u()
	}
	p.unsubscribe = nil
}

// Catalog returns the current catalog.
func (p *Provider) Catalog() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog
}

// SetCatalog swaps in a reloaded catalog. Committed tokens are kept.
func (p *Provider) SetCatalog(c *Catalog) {
	if c == nil {
		return
	}
	p.mu.Lock()
	p.catalog = c
	p.mu.Unlock()
	log.Printf("CATALOG_RELOADED | tokens=%d kinds=%d", c.Len(), len(c.kinds))
}

// Uses returns how often value was committed.
func (p *Provider) Uses(value string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.usage.Uses(value)
}

// Suggestions returns the ranked suggestions for text.
func (p *Provider) Suggestions(text string) []SearchToken {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog.Filter(text, p.opts.Mode, p.usage, p.opts.Limit)
}

// Committed returns the box's tokens as search tokens. Free text tokens
// get KindText.
func (p *Provider) Committed() []SearchToken {
	var out []SearchToken
	for _, t := range p.box.Tokens() {
		switch v := t.Payload().(type) {
		case SearchToken:
			if !v.IsNotFound() {
				out = append(out, v)
			}
		default:
			out = append(out, SearchToken{Kind: KindText, Value: t.String()})
		}
	}
	return out
}

// =============================================================================
// HANDLERS
// =============================================================================

func (p *Provider) onAdding(ctx context.Context, ev *tokenbox.AddingEvent) error {
	if strings.TrimSpace(ev.Text) == "" {
		return nil
	}
	if tok, ok := p.Catalog().Lookup(ev.Text); ok {
		ev.Item = tok
		return nil
	}
	if p.opts.Restrict {
		log.Printf("TOKEN_REJECTED | text=%q reason=not_in_catalog", ev.Text)
		ev.Cancel = true
	}
	return nil
}

func (p *Provider) onAdded(t *tokenbox.Token) {
	if st, ok := t.Payload().(SearchToken); ok {
		if st.IsNotFound() {
			if _, err := p.box.RemoveEntry(context.Background(), t); err != nil {
				log.Printf("OP_ABANDONED | op=drop_not_found error=%v", err)
			}
			return
		}
		p.record(st.Value)
	}
	p.filter()
}

func (p *Provider) onRemoved(tokenbox.Entry) { p.filter() }

func (p *Provider) onQuerySubmitted(ev tokenbox.QuerySubmittedEvent) {
	if ev.ChosenSuggestion == nil {
		p.filter()
	}
}

func (p *Provider) record(value string) {
	p.mu.Lock()
	p.usage[foldKey(value)]++
	p.mu.Unlock()

	if p.opts.Recorder == nil {
		return
	}
	if err := p.opts.Recorder.Record(context.Background(), value); err != nil {
		log.Printf("HISTORY_WRITE_FAILED | value=%q error=%v", value, err)
	}
}

func (p *Provider) filter() {
	if p.opts.OnFilter != nil {
		p.opts.OnFilter(p.Committed())
	}
}
