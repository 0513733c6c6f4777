// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"strings"
	"unicode"
)

// Mode selects how typed text is matched against catalog values.
type Mode string

const (
	// MatchContains keeps values containing the text, ignoring case.
	MatchContains Mode = "contains"
	// MatchFuzzy keeps values containing the text's runes in order.
	MatchFuzzy Mode = "fuzzy"
)

const (
	bonusConsecutive = 5
	bonusStart       = 10
	bonusBoundary    = 7
	bonusExactCase   = 2
)

// match scores value against query. Higher is better.
func match(mode Mode, query, value string) (score int, ok bool) {
	if mode == MatchFuzzy {
		return fuzzyScore(query, value)
	}
	q, v := foldKey(query), foldKey(value)
	i := strings.Index(v, q)
	if i < 0 {
		return 0, false
	}
	if i == 0 {
		score += bonusStart
	}
	if v == q {
		score += bonusStart
	}
	return score, true
}

// fuzzyScore reports whether every rune of query appears in value in order.
// Runs of consecutive runes, a match at the start, matches on word
// boundaries and exact-case matches earn bonuses; long values are
// penalized.
func fuzzyScore(query, value string) (int, bool) {
	q := []rune(strings.TrimSpace(query))
	v := []rune(value)
	if len(q) == 0 {
		return 0, true
	}
	if len(q) > len(v) {
		return 0, false
	}

	score, qi, last := 0, 0, -2
	for vi := 0; vi < len(v) && qi < len(q); vi++ {
		if unicode.ToLower(v[vi]) != unicode.ToLower(q[qi]) {
			continue
		}
		s := 1
		if last == vi-1 {
			s += bonusConsecutive
		}
		if vi == 0 {
			s += bonusStart
		}
		if atBoundary(v, vi) {
			s += bonusBoundary
		}
		if v[vi] == q[qi] {
			s += bonusExactCase
		}
		score += s
		last = vi
		qi++
	}
	if qi < len(q) {
		return 0, false
	}
	return score - len(v)/4, true
}

// atBoundary reports whether v[i] starts a word: after a separator or at a
// lower-to-upper case change.
func atBoundary(v []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev := v[i-1]
	switch prev {
	case ' ', '/', '-', '_', '.':
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(v[i])
}
