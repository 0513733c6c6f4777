// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

// SchemaVersion tracks the database schema version for migrations.
const SchemaVersion = 1

// Schema creates the usage tables.
const Schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- one row per committed token value
CREATE TABLE IF NOT EXISTS usage (
    value TEXT PRIMARY KEY,
    uses INTEGER NOT NULL DEFAULT 0,
    last_used INTEGER NOT NULL  -- Unix timestamp
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_usage_last_used ON usage(last_used);
CREATE INDEX IF NOT EXISTS idx_usage_uses ON usage(uses);
`

const initMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
`
