// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds the small helpers shared by tokenbox packages.
//
// # Key Functions
//
// Text:
//   - RuneLen, SafeSubstring: rune-indexed access used by text slots
//   - TruncateWidth: display-width truncation for token chips
//
// Numbers:
//   - Clamp, Abs
//
// Files:
//   - AtomicWriteFile: crash-safe writes for config and presets
package util
