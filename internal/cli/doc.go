// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli holds the non-TUI surface of tokenbox: flag parsing, exit
// codes, and line mode.
//
// Line mode reads lines with liner and feeds each one to a tokenbox.Box,
// so the delimiter tokenizer and the catalog rules apply exactly as in the
// TUI. Tab completes the word under the cursor from the catalog.
package cli
