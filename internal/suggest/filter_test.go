// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter_BlankListsWholeCatalog(t *testing.T) {
	c := mustCatalog(t)

	require.Equal(t, values(c.Tokens()), values(c.Filter("  ", MatchContains, nil, 0)))
	require.Len(t, c.Filter("", MatchContains, nil, 2), 2)
}

func TestFilter_ContainsOrdersByKindThenOrder(t *testing.T) {
	c := mustCatalog(t)

	got := c.Filter("O", MatchContains, nil, 0)

	require.Equal(t, []string{"Hydro", "Pyro", "Sword", "Polearm", "Mondstadt"}, values(got))
}

func TestFilter_NoMatchFallsBackToNotFound(t *testing.T) {
	c := mustCatalog(t)

	got := c.Filter("zzz", MatchContains, nil, 0)

	require.Equal(t, []SearchToken{NotFound}, got)
}

func TestFilter_UsageBoostsWithinKind(t *testing.T) {
	c := mustCatalog(t)
	usage := Usage{foldKey("Pyro"): 3}

	got := c.Filter("o", MatchContains, usage, 0)

	require.Equal(t, []string{"Pyro", "Hydro"}, values(got)[:2])
}

func TestFilter_Fuzzy(t *testing.T) {
	c := mustCatalog(t)

	require.Equal(t, []string{"Polearm"}, values(c.Filter("plrm", MatchFuzzy, nil, 0)))
	require.Equal(t, []string{"Mondstadt"}, values(c.Filter("mdt", MatchFuzzy, nil, 0)))
	require.Equal(t, []SearchToken{NotFound}, c.Filter("plrm", MatchContains, nil, 0))
}

func TestFuzzyScore(t *testing.T) {
	prefix, ok := fuzzyScore("sw", "Sword")
	require.True(t, ok)
	scattered, ok := fuzzyScore("sd", "Sword")
	require.True(t, ok)
	require.Greater(t, prefix, scattered)

	_, ok = fuzzyScore("xyz", "Sword")
	require.False(t, ok)
	_, ok = fuzzyScore("swordfish", "Sword")
	require.False(t, ok)

	boundary, _ := fuzzyScore("fb", "foo-bar")
	inner, _ := fuzzyScore("fa", "foo-bar")
	require.Greater(t, boundary, inner)
}

func TestMatch_Contains(t *testing.T) {
	exact, ok := match(MatchContains, "pyro", "Pyro")
	require.True(t, ok)
	prefix, _ := match(MatchContains, "py", "Pyro")
	inner, _ := match(MatchContains, "yr", "Pyro")
	require.Greater(t, exact, prefix)
	require.Greater(t, prefix, inner)

	_, ok = match(MatchContains, "pyr o", "Pyro")
	require.False(t, ok)
}
