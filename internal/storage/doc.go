// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists named token presets.
//
// A preset is a saved backing sequence: the committed tokens of a box and
// the delimiter they were typed with. Presets live as one JSON file each
// and are written atomically.
//
// # Usage
//
//	store, err := storage.NewPresetStore(dir)
//	err = store.Save(storage.NewPreset("daily", " ", provider.Committed()))
//	p, err := store.Load("daily")
//	box.SetItems(p.Payloads())
//
// # Storage Location
//
// Presets are stored in ~/.tokenbox/presets/ by default.
package storage
