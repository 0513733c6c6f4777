// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for tokenbox.
//
// Configuration is TOML, decoded on top of built-in defaults, followed by
// environment overrides and validation.
//
// # Key Types
//
//   - Config: the complete configuration
//   - InputConfig: delimiter, token bound and initial contents of the box
//   - CatalogConfig: where suggestions come from and how they match
//   - HistoryConfig: the sqlite usage history
//   - ValidateErrors: every validation problem found, not just the first
//
// # Configuration Precedence
//
//   - Environment variables (TOKENBOX_*)
//   - --config PATH, or ~/.tokenbox/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	box := tokenbox.New(
//	    tokenbox.WithDelimiter(cfg.Input.Delimiter),
//	    tokenbox.WithMaxTokens(cfg.Input.MaxTokens),
//	)
package config
