// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"sort"
	"strings"
)

// Usage maps folded token values to how often they were committed.
type Usage map[string]int

// Uses returns the count for value.
func (u Usage) Uses(value string) int { return u[foldKey(value)] }

type candidate struct {
	tok   SearchToken
	rank  int
	uses  int
	score int
}

// Filter returns the suggestions for text. Blank text lists the whole
// catalog by kind. Otherwise matching tokens are ordered by kind, then by
// usage, then by catalog order, then by match score. When nothing matches
// the result is just NotFound. A positive limit caps the result.
func (c *Catalog) Filter(text string, mode Mode, usage Usage, limit int) []SearchToken {
	if strings.TrimSpace(text) == "" {
		return capped(c.Tokens(), limit)
	}

	var cands []candidate
	for _, tok := range c.tokens {
		score, ok := match(mode, text, tok.Value)
		if !ok {
			continue
		}
		cands = append(cands, candidate{
			tok:   tok,
			rank:  c.KindRank(tok.Kind),
			uses:  usage.Uses(tok.Value),
			score: score,
		})
	}
	if len(cands) == 0 {
		return []SearchToken{NotFound}
	}

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		switch {
		case a.rank != b.rank:
			return a.rank < b.rank
		case a.uses != b.uses:
			return a.uses > b.uses
		case a.tok.Order != b.tok.Order:
			return a.tok.Order < b.tok.Order
		default:
			return a.score > b.score
		}
	})

	out := make([]SearchToken, len(cands))
	for i, cd := range cands {
		out[i] = cd.tok
	}
	return capped(out, limit)
}

func capped(toks []SearchToken, limit int) []SearchToken {
	if limit > 0 && len(toks) > limit {
		return toks[:limit]
	}
	return toks
}
