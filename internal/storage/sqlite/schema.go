// ABOUTME: SQLite database schema for the imported talk corpus
// ABOUTME: Creates the transcript, talk metadata and import audit tables
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Transcripts in corpus order; position is the document position
CREATE TABLE IF NOT EXISTS transcripts (
    position INTEGER PRIMARY KEY,
    raw_key TEXT NOT NULL,
    body TEXT NOT NULL
);

-- Talk metadata used for listings and statistics
CREATE TABLE IF NOT EXISTS talks (
    position INTEGER PRIMARY KEY,
    key TEXT NOT NULL,
    title TEXT NOT NULL,
    name TEXT,
    main_speaker TEXT,
    event TEXT,
    description TEXT,
    url TEXT,
    comments INTEGER NOT NULL DEFAULT 0,
    views INTEGER NOT NULL DEFAULT 0,
    duration INTEGER NOT NULL DEFAULT 0,
    languages INTEGER NOT NULL DEFAULT 0,
    num_speaker INTEGER NOT NULL DEFAULT 0
);

-- One row per completed import
CREATE TABLE IF NOT EXISTS imports (
    id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    source TEXT,
    row_count INTEGER NOT NULL,
    imported_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_talks_key ON talks(key);
CREATE INDEX IF NOT EXISTS idx_imports_kind ON imports(kind, imported_at);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
