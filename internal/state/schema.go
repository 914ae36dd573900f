// ABOUTME: SQLite schema for session state
// ABOUTME: One row per session holding the last resolved tag
package state

// Schema contains all SQL statements for database initialization
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    last_tag TEXT NOT NULL DEFAULT '',
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
`
