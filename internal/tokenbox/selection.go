// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package tokenbox

import "sort"

// Selection is the set of selected entries, kept in the order they were
// selected the way a list control keeps its SelectedItems. The first
// selected entry is the anchor used for shift navigation.
type Selection struct {
	ids []ID
}

// Len returns the number of selected entries.
func (s *Selection) Len() int { return len(s.ids) }

// Contains reports whether id is selected.
func (s *Selection) Contains(id ID) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// IDs returns the selected IDs in selection order.
func (s *Selection) IDs() []ID {
	out := make([]ID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Add selects id. Selecting an already selected entry is a no-op.
func (s *Selection) Add(id ID) {
	if !s.Contains(id) {
		s.ids = append(s.ids, id)
	}
}

// Remove deselects id.
func (s *Selection) Remove(id ID) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Clear deselects everything.
func (s *Selection) Clear() { s.ids = s.ids[:0] }

// Set makes id the only selected entry.
func (s *Selection) Set(id ID) {
	s.ids = append(s.ids[:0], id)
}

// anchor returns the first selected ID.
func (s *Selection) anchor() (ID, bool) {
	if len(s.ids) == 0 {
		return ID{}, false
	}
	return s.ids[0], true
}

// indices maps the selection onto coll, in collection order. IDs no longer
// in coll are skipped.
func (s *Selection) indices(coll *Collection) []int {
	out := make([]int, 0, len(s.ids))
	for _, id := range s.ids {
		if i := coll.IndexOfID(id); i >= 0 {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// prune drops IDs that are no longer in coll.
func (s *Selection) prune(coll *Collection) {
	kept := s.ids[:0]
	for _, id := range s.ids {
		if coll.IndexOfID(id) >= 0 {
			kept = append(kept, id)
		}
	}
	s.ids = kept
}
