// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeranaias/tokenbox/internal/suggest"
)

// =============================================================================
// PRESET STORE TESTS
// =============================================================================

func sampleTokens() []suggest.SearchToken {
	return []suggest.SearchToken{
		{Kind: "element", Value: "Pyro", Order: 2},
		{Kind: suggest.KindText, Value: "custom"},
	}
}

func TestNewPresetStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "presets")

	store, err := NewPresetStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if store.BaseDir != dir {
		t.Errorf("BaseDir = %q, want %q", store.BaseDir, dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestPresetStore_SaveAndLoad(t *testing.T) {
	store, err := NewPresetStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := store.Save(NewPreset("daily", ",", sampleTokens())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("daily")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Delimiter != "," {
		t.Errorf("Delimiter = %q, want %q", loaded.Delimiter, ",")
	}
	if len(loaded.Tokens) != 2 || loaded.Tokens[0].Value != "Pyro" {
		t.Errorf("Tokens = %+v", loaded.Tokens)
	}
	if loaded.CreatedAt.IsZero() || loaded.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestPresetStore_SaveKeepsCreatedAt(t *testing.T) {
	store, _ := NewPresetStore(t.TempDir())
	first := NewPreset("p", " ", nil)
	if err := store.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	created := first.CreatedAt

	time.Sleep(5 * time.Millisecond)
	if err := store.Save(NewPreset("p", " ", sampleTokens())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load("p")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, created)
	}
	if !loaded.UpdatedAt.After(created) {
		t.Error("UpdatedAt not advanced")
	}
}

func TestPresetStore_LoadNotFound(t *testing.T) {
	store, _ := NewPresetStore(t.TempDir())

	_, err := store.Load("missing")
	if !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
	if err := store.Delete("missing"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestPresetStore_RejectsBadNames(t *testing.T) {
	store, _ := NewPresetStore(t.TempDir())

	for _, name := range []string{"", "../escape", "a/b", ".hidden", "x..y"} {
		if err := store.Save(NewPreset(name, " ", nil)); !errors.Is(err, ErrInvalidName) {
			t.Errorf("Save(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestPresetStore_ListAndDelete(t *testing.T) {
	store, _ := NewPresetStore(t.TempDir())
	store.Save(NewPreset("old", " ", sampleTokens()))
	time.Sleep(5 * time.Millisecond)
	store.Save(NewPreset("new", " ", sampleTokens()[:1]))
	os.WriteFile(filepath.Join(store.BaseDir, "broken.json"), []byte("{"), 0o644)

	metas, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d presets, want 2", len(metas))
	}
	if metas[0].Name != "new" || metas[1].Name != "old" {
		t.Errorf("order = %s, %s", metas[0].Name, metas[1].Name)
	}
	if metas[1].Preview != "Pyro custom" || metas[1].TokenCount != 2 {
		t.Errorf("meta = %+v", metas[1])
	}

	if err := store.Delete("old"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	metas, _ = store.List()
	if len(metas) != 1 {
		t.Errorf("List after delete returned %d presets", len(metas))
	}
}

func TestPresetStore_EnforcesLimit(t *testing.T) {
	store, _ := NewPresetStore(t.TempDir())
	store.MaxPresets = 2

	for _, name := range []string{"a", "b", "c"} {
		if err := store.Save(NewPreset(name, " ", nil)); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := store.Load("a"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("oldest preset kept: %v", err)
	}
}

func TestPreset_Payloads(t *testing.T) {
	p := NewPreset("x", " ", sampleTokens())

	got := p.Payloads()

	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if _, ok := got[0].(suggest.SearchToken); !ok {
		t.Errorf("catalog token payload = %T", got[0])
	}
	if s, ok := got[1].(string); !ok || s != "custom" {
		t.Errorf("free text payload = %#v", got[1])
	}
}
