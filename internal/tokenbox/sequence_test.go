// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var sequenceTexts = []string{"a", "bc", " ", "d ", "e f", "g h ", "  ", "xyz"}

var sequenceKeys = []Key{
	KeyLeft, KeyRight, KeyBackspace, KeyDelete, KeyHome, KeyEnd,
	KeyEscape, KeySelectAll, KeyCopy, KeyCut,
}

var sequenceMods = []Modifier{ModNone, ModNone, ModShift, ModCtrl}

// step applies one random operation to b and returns its name.
func step(ctx context.Context, r *rand.Rand, b *Box, keys *HeldKeys) string {
	keys.Mods = sequenceMods[r.Intn(len(sequenceMods))]
	text := sequenceTexts[r.Intn(len(sequenceTexts))]

	switch r.Intn(12) {
	case 0, 1:
		_ = b.InsertText(ctx, text)
		return "InsertText"
	case 2:
		if r.Intn(2) == 0 {
			b.Move(Previous)
		} else {
			b.Move(Next)
		}
		return "Move"
	case 3, 4:
		_, _ = b.HandleKey(ctx, sequenceKeys[r.Intn(len(sequenceKeys))])
		return "HandleKey"
	case 5:
		entries := b.Entries()
		b.Click(entries[r.Intn(len(entries))].ID())
		return "Click"
	case 6:
		_, _ = b.AddEntry(ctx, text, r.Intn(2) == 0)
		return "AddEntry"
	case 7:
		b.SetMaxTokens(r.Intn(6) - 1)
		return "SetMaxTokens"
	case 8:
		var chosen any
		if r.Intn(3) == 0 {
			chosen = struct{ N int }{r.Intn(10)}
		}
		_ = b.SubmitQuery(ctx, text, chosen)
		return "SubmitQuery"
	case 9:
		_ = b.RemoveAllSelected(ctx)
		return "RemoveAllSelected"
	case 10:
		b.SelectAll()
		return "SelectAll"
	default:
		if r.Intn(4) == 0 {
			_ = b.Clear(ctx)
			return "Clear"
		}
		_ = b.SetText(ctx, text)
		return "SetText"
	}
}

func TestOperationSequences_KeepTrailingSlot(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 300; seed++ {
		r := rand.New(rand.NewSource(seed))
		b, keys, _ := newTestBox(t)

		for i := 0; i < 60; i++ {
			op := step(ctx, r, b, keys)

			require.NoError(t, b.Validate(), "seed %d step %d after %s", seed, i, op)
			last := 0
			for _, e := range b.Entries() {
				if te, ok := e.(*TextEdit); ok && te.IsLast() {
					last++
				}
			}
			require.Equal(t, 1, last, "seed %d step %d after %s", seed, i, op)
			require.GreaterOrEqual(t, b.Len(), 1)
			require.GreaterOrEqual(t, b.Collection().IndexOf(b.Current()), 0, "seed %d step %d after %s", seed, i, op)
		}
	}
}
