// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package suggest backs a token box with a catalog of known tokens.
//
// A Catalog is loaded from a TOML file:
//
//	kinds = ["element", "weapon"]
//
//	[[token]]
//	kind = "element"
//	value = "Pyro"
//	order = 1
//
// Attach subscribes a Provider to a tokenbox.Box. Typed text is mapped to
// catalog tokens case-insensitively, unknown text is rejected when the
// provider is restricted, and Suggestions ranks candidates for the
// dropdown. A Watcher reloads the catalog when the file changes.
package suggest
