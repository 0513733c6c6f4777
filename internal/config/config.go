// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/tokenbox/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tokenbox configuration.
type Config struct {
	Version string `toml:"version"`

	Input   InputConfig   `toml:"input"`
	Catalog CatalogConfig `toml:"catalog"`
	History HistoryConfig `toml:"history"`
	Presets PresetsConfig `toml:"presets"`
	UI      UIConfig      `toml:"ui"`
}

// InputConfig configures the token box itself.
type InputConfig struct {
	// Delimiter triggers tokenizing of typed text. Empty turns it off.
	Delimiter string `toml:"delimiter"`
	// MaxTokens bounds the number of tokens; negative means unbounded.
	MaxTokens       int    `toml:"max_tokens"`
	TabNavigateBack bool   `toml:"tab_navigate_back"`
	Placeholder     string `toml:"placeholder"`
	// InitialTokens is the initial backing sequence.
	InitialTokens []string `toml:"initial_tokens"`
	InitialText   string   `toml:"initial_text"`
}

// CatalogConfig configures the suggestion catalog.
type CatalogConfig struct {
	Path string `toml:"path"`
	// Match is "contains" or "fuzzy".
	Match string `toml:"match"`
	// Restrict cancels adds of text that is not in the catalog.
	Restrict bool `toml:"restrict"`
	// Watch reloads the catalog when the file changes.
	Watch bool `toml:"watch"`
}

// HistoryConfig configures the usage history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// PresetsConfig configures where named token sets are kept.
type PresetsConfig struct {
	Dir string `toml:"dir"`
}

// UIConfig configures the terminal front end.
type UIConfig struct {
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme"`
	// ChipWidth is the widest a token chip is drawn, in cells.
	ChipWidth int `toml:"chip_width"`
	// MaxSuggestions caps the suggestion dropdown.
	MaxSuggestions int `toml:"max_suggestions"`
}

// Match modes.
const (
	MatchContains = "contains"
	MatchFuzzy    = "fuzzy"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Input: InputConfig{
			Delimiter:   " ",
			MaxTokens:   -1,
			Placeholder: "Add a tag...",
		},
		Catalog: CatalogConfig{
			Path:     "~/.tokenbox/catalog.toml",
			Match:    MatchContains,
			Restrict: false,
			Watch:    true,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "~/.tokenbox/history.db",
		},
		Presets: PresetsConfig{
			Dir: "~/.tokenbox/presets",
		},
		UI: UIConfig{
			Theme:          "auto",
			ChipWidth:      24,
			MaxSuggestions: 8,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tokenbox configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tokenbox"), nil
}

// ConfigPath returns the path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads ~/.tokenbox/config.toml if it exists, or the defaults if it
// does not. Environment overrides are applied last.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return LoadFromPath(path)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific TOML file. Keys missing
// from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("CONFIG_UNKNOWN_KEY | path=%s key=%s", path, key.String())
	}

	cfg.ApplyEnvOverrides()
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) expandPaths() {
	c.Catalog.Path = ExpandPath(c.Catalog.Path)
	c.History.Path = ExpandPath(c.History.Path)
	c.Presets.Dir = ExpandPath(c.Presets.Dir)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path atomically.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# tokenbox configuration file")
	fmt.Fprintln(&buf, "# Generated by tokenbox - edit with care")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors collects every validation error found.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "config validation failed:\n  - " + strings.Join(msgs, "\n  - ")
}

// Validate checks the configuration and returns ValidateErrors listing every
// problem, or nil.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.ContainsAny(c.Input.Delimiter, "\r\n") {
		errs = append(errs, ValidationError{
			Field:   "input.delimiter",
			Message: "must not contain a line break",
		})
	}
	if c.Input.MaxTokens < -1 {
		errs = append(errs, ValidationError{
			Field:   "input.max_tokens",
			Message: fmt.Sprintf("invalid bound %d, use -1 for unbounded", c.Input.MaxTokens),
		})
	}
	if c.Input.MaxTokens >= 0 && len(c.Input.InitialTokens) > c.Input.MaxTokens {
		errs = append(errs, ValidationError{
			Field:   "input.initial_tokens",
			Message: fmt.Sprintf("%d tokens exceed max_tokens %d", len(c.Input.InitialTokens), c.Input.MaxTokens),
		})
	}

	switch strings.ToLower(c.Catalog.Match) {
	case MatchContains, MatchFuzzy:
	default:
		errs = append(errs, ValidationError{
			Field:   "catalog.match",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: contains, fuzzy", c.Catalog.Match),
		})
	}

	if c.History.Enabled && c.History.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "history.path",
			Message: "required when history is enabled",
		})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.ChipWidth < 4 {
		errs = append(errs, ValidationError{
			Field:   "ui.chip_width",
			Message: "must be at least 4",
		})
	}
	if c.UI.MaxSuggestions < 1 {
		errs = append(errs, ValidationError{
			Field:   "ui.max_suggestions",
			Message: "must be at least 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies TOKENBOX_* environment variables.
//
//   - TOKENBOX_DELIMITER: overrides input.delimiter ("\t" is understood)
//   - TOKENBOX_MAX_TOKENS: overrides input.max_tokens
//   - TOKENBOX_CATALOG: overrides catalog.path
//   - TOKENBOX_NO_HISTORY: disables the usage history when "1" or "true"
func (c *Config) ApplyEnvOverrides() {
	if delim, ok := os.LookupEnv("TOKENBOX_DELIMITER"); ok {
		c.Input.Delimiter = strings.ReplaceAll(delim, `\t`, "\t")
	}

	if raw := os.Getenv("TOKENBOX_MAX_TOKENS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("CONFIG_ENV_IGNORED | var=TOKENBOX_MAX_TOKENS error=%v", err)
		} else {
			c.Input.MaxTokens = n
		}
	}

	if path := os.Getenv("TOKENBOX_CATALOG"); path != "" {
		c.Catalog.Path = path
	}

	if noHistory := os.Getenv("TOKENBOX_NO_HISTORY"); noHistory != "" {
		if noHistory == "1" || strings.ToLower(noHistory) == "true" {
			c.History.Enabled = false
		}
	}
}
