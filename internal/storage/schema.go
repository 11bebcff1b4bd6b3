package storage

// BlobSchema is the SQL schema for the catalog database.
const BlobSchema = `
CREATE TABLE IF NOT EXISTS blobs (
    key         TEXT PRIMARY KEY,
    value       BLOB NOT NULL,
    updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);
`

// dsnPragmas configures SQLite for a single local writer.
const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
