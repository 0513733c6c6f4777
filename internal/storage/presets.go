// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jeranaias/tokenbox/internal/suggest"
	"github.com/jeranaias/tokenbox/internal/util"
)

// =============================================================================
// PRESET TYPE
// =============================================================================

// Preset is a named, saved token sequence.
type Preset struct {
	Name      string                `json:"name"`
	Delimiter string                `json:"delimiter"`
	Tokens    []suggest.SearchToken `json:"tokens"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// PresetMeta is the listing view of a preset.
type PresetMeta struct {
	Name       string    `json:"name"`
	TokenCount int       `json:"token_count"`
	UpdatedAt  time.Time `json:"updated_at"`
	Preview    string    `json:"preview"`
}

// NewPreset builds a preset from committed tokens.
func NewPreset(name, delimiter string, tokens []suggest.SearchToken) *Preset {
	return &Preset{Name: name, Delimiter: delimiter, Tokens: tokens}
}

// Payloads converts the preset back into box payloads. Free text tokens
// become plain strings.
func (p *Preset) Payloads() []any {
	out := make([]any, 0, len(p.Tokens))
	for _, tok := range p.Tokens {
		if tok.Kind == suggest.KindText {
			out = append(out, tok.Value)
			continue
		}
		out = append(out, tok)
	}
	return out
}

// =============================================================================
// PRESET STORE
// =============================================================================

// PresetStore reads and writes presets under BaseDir.
type PresetStore struct {
	BaseDir string

	// MaxPresets limits stored presets (0 = unlimited). The least recently
	// updated are dropped first.
	MaxPresets int
}

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _.-]{0,63}$`)

// NewPresetStore creates the directory if needed.
func NewPresetStore(baseDir string) (*PresetStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create preset dir: %w", err)
	}
	return &PresetStore{BaseDir: baseDir, MaxPresets: 100}, nil
}

// Save writes p, replacing any preset with the same name.
func (s *PresetStore) Save(p *Preset) error {
	if err := checkName(p.Name); err != nil {
		return err
	}

	now := time.Now()
	if existing, err := s.Load(p.Name); err == nil {
		p.CreatedAt = existing.CreatedAt
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Tokens == nil {
		p.Tokens = []suggest.SearchToken{}
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := util.AtomicWriteFile(s.filePath(p.Name), data, 0o644); err != nil {
		return err
	}

	if s.MaxPresets > 0 {
		s.enforceLimit()
	}
	return nil
}

// Load reads the preset called name.
func (s *PresetStore) Load(name string) (*Preset, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.filePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPresetNotFound
		}
		return nil, err
	}

	var p Preset
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode preset %s: %w", name, err)
	}
	return &p, nil
}

// List returns all presets, most recently updated first. Unreadable files
// are skipped.
func (s *PresetStore) List() ([]PresetMeta, error) {
	entries, err := os.ReadDir(s.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []PresetMeta{}, nil
		}
		return nil, err
	}

	metas := []PresetMeta{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		p, err := s.Load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			continue
		}
		values := make([]string, len(p.Tokens))
		for i, tok := range p.Tokens {
			values[i] = tok.Value
		}
		metas = append(metas, PresetMeta{
			Name:       p.Name,
			TokenCount: len(p.Tokens),
			UpdatedAt:  p.UpdatedAt,
			Preview:    util.TruncateWidth(strings.Join(values, p.Delimiter), 60),
		})
	}

	sort.Slice(metas, func(i, j int) bool {
		return metas[i].UpdatedAt.After(metas[j].UpdatedAt)
	})
	return metas, nil
}

// Delete removes the preset called name.
func (s *PresetStore) Delete(name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	if err := os.Remove(s.filePath(name)); err != nil {
		if os.IsNotExist(err) {
			return ErrPresetNotFound
		}
		return err
	}
	return nil
}

func (s *PresetStore) enforceLimit() {
	metas, err := s.List()
	if err != nil || len(metas) <= s.MaxPresets {
		return
	}
	for _, m := range metas[s.MaxPresets:] {
		s.Delete(m.Name)
	}
}

func (s *PresetStore) filePath(name string) string {
	return filepath.Join(s.BaseDir, name+".json")
}

func checkName(name string) error {
	if !validName.MatchString(name) || strings.Contains(name, "..") {
		return &PresetError{Message: ErrInvalidName.Message, Name: name}
	}
	return nil
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrPresetNotFound is returned when a preset doesn't exist.
	ErrPresetNotFound = &PresetError{Message: "preset not found"}
	// ErrInvalidName matches any rejected preset name.
	ErrInvalidName = &PresetError{Message: "invalid preset name"}
)

// PresetError is a preset-related error. Errors compare equal under
// errors.Is when their messages match.
type PresetError struct {
	Message string
	Name    string
}

func (e *PresetError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %q", e.Message, e.Name)
	}
	return e.Message
}

// Is implements errors.Is.
func (e *PresetError) Is(target error) bool {
	t, ok := target.(*PresetError)
	return ok && e.Message == t.Message
}
