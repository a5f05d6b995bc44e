// ABOUTME: SQLite database schema for the routing audit log
// ABOUTME: Creates the decisions table and its query indexes
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Routing decisions audit log
CREATE TABLE IF NOT EXISTS routing_decisions (
    id TEXT PRIMARY KEY,
    query TEXT NOT NULL,
    status TEXT NOT NULL,
    confidence REAL DEFAULT 0.0,
    target_source TEXT,
    classifier TEXT,
    is_healthcare INTEGER DEFAULT 0,
    message TEXT,
    processing_time_ms REAL DEFAULT 0.0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_decisions_status ON routing_decisions(status);
CREATE INDEX IF NOT EXISTS idx_decisions_created ON routing_decisions(created_at);
`
