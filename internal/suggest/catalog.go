// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrBlankValue     = errors.New("token value is blank")
	ErrMissingKind    = errors.New("token kind is missing")
	ErrDuplicateToken = errors.New("duplicate token")
)

// =============================================================================
// SEARCH TOKEN
// =============================================================================

// Kind groups catalog tokens. The zero Kind is reserved for NotFound.
type Kind string

const (
	// KindNone marks the NotFound sentinel.
	KindNone Kind = ""
	// KindText marks free text committed by an unrestricted provider.
	KindText Kind = "text"
)

// SearchToken is a catalog entry and the payload of catalog-backed tokens.
type SearchToken struct {
	Kind  Kind   `toml:"kind" json:"kind"`
	Value string `toml:"value" json:"value"`
	Order int    `toml:"order" json:"order"`
}

// NotFound is offered as the only suggestion when nothing matches. It is
// dropped again if the user commits it.
var NotFound = SearchToken{Kind: KindNone, Value: "No results"}

// String returns the token value.
func (t SearchToken) String() string { return t.Value }

// IsNotFound reports whether t is the NotFound sentinel.
func (t SearchToken) IsNotFound() bool { return t.Kind == KindNone }

// foldKey returns the case-insensitive lookup key for s.
// A Caser is stateful, so each call gets its own.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an immutable set of available tokens, sorted by kind rank and
// then by order. Kind rank follows the declared kinds list; undeclared kinds
// rank after it in order of first appearance.
type Catalog struct {
	tokens []SearchToken
	rank   map[Kind]int
	byKey  map[string]SearchToken
	kinds  []Kind
}

type catalogFile struct {
	Kinds  []Kind        `toml:"kinds"`
	Tokens []SearchToken `toml:"token"`
}

// NewCatalog validates tokens and builds a catalog.
func NewCatalog(kinds []Kind, tokens []SearchToken) (*Catalog, error) {
	c := &Catalog{
		rank:  make(map[Kind]int, len(kinds)),
		byKey: make(map[string]SearchToken, len(tokens)),
	}
	addKind := func(k Kind) {
		if _, ok := c.rank[k]; !ok {
			c.rank[k] = len(c.kinds)
			c.kinds = append(c.kinds, k)
		}
	}
	for _, k := range kinds {
		if k == KindNone {
			return nil, ErrMissingKind
		}
		addKind(k)
	}

	for i, tok := range tokens {
		tok.Value = strings.TrimSpace(tok.Value)
		if tok.Value == "" {
			return nil, fmt.Errorf("token %d: %w", i, ErrBlankValue)
		}
		if tok.Kind == KindNone {
			return nil, fmt.Errorf("token %q: %w", tok.Value, ErrMissingKind)
		}
		key := foldKey(tok.Value)
		if prev, ok := c.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q", ErrDuplicateToken, prev.Value, tok.Value)
		}
		addKind(tok.Kind)
		c.byKey[key] = tok
		c.tokens = append(c.tokens, tok)
	}

	sort.SliceStable(c.tokens, func(i, j int) bool {
		a, b := c.tokens[i], c.tokens[j]
		if ra, rb := c.rank[a.Kind], c.rank[b.Kind]; ra != rb {
			return ra < rb
		}
		return a.Order < b.Order
	})
	return c, nil
}

// EmptyCatalog returns a catalog with no tokens.
func EmptyCatalog() *Catalog {
	c, _ := NewCatalog(nil, nil)
	return c
}

// LoadCatalog reads a catalog TOML file. Unknown keys are logged and
// ignored.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(string(data))
}

// ParseCatalog decodes catalog TOML.
func ParseCatalog(data string) (*Catalog, error) {
	var f catalogFile
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("CATALOG_UNKNOWN_KEY | key=%s", key)
	}
	return NewCatalog(f.Kinds, f.Tokens)
}

// Lookup finds the token whose value equals text, ignoring case and
// surrounding space.
func (c *Catalog) Lookup(text string) (SearchToken, bool) {
	tok, ok := c.byKey[foldKey(text)]
	return tok, ok
}

// Tokens returns the catalog in rank order.
func (c *Catalog) Tokens() []SearchToken {
	out := make([]SearchToken, len(c.tokens))
	copy(out, c.tokens)
	return out
}

// Kinds returns the kinds in rank order.
func (c *Catalog) Kinds() []Kind {
	out := make([]Kind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Len returns the number of tokens.
func (c *Catalog) Len() int { return len(c.tokens) }

// KindRank returns the rank of k. Unknown kinds sort last.
func (c *Catalog) KindRank(k Kind) int {
	if r, ok := c.rank[k]; ok {
		return r
	}
	return len(c.kinds)
}
