// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records how often each token value is committed.
//
// Counts live in a SQLite database (pure Go driver) and feed the
// suggestion ranking boost.
package history
