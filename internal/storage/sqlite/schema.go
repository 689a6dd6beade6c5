// ABOUTME: SQLite schema for corpus snapshots and the embedding cache
// ABOUTME: Items and vectors are keyed by snapshot version for atomic replacement
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Snapshot metadata; exactly one row has current = 1
CREATE TABLE IF NOT EXISTS snapshots (
    version TEXT PRIMARY KEY,
    built_at DATETIME NOT NULL,
    item_count INTEGER NOT NULL,
    current INTEGER NOT NULL DEFAULT 0
);

-- Corpus items, ordered by pos within their snapshot
CREATE TABLE IF NOT EXISTS items (
    version TEXT NOT NULL REFERENCES snapshots(version) ON DELETE CASCADE,
    pos INTEGER NOT NULL,
    imdb_id TEXT NOT NULL,
    title TEXT NOT NULL,
    overview TEXT,
    year INTEGER,
    release_date TEXT,
    rating REAL,
    votes INTEGER,
    metascore INTEGER,
    language TEXT,
    genre TEXT,
    media_type TEXT,
    poster_url TEXT,
    director TEXT,
    actors TEXT,
    runtime TEXT,
    awards TEXT,
    PRIMARY KEY (version, pos),
    UNIQUE (version, imdb_id)
);

-- Embedding vectors as little-endian float64 blobs, aligned with item pos
CREATE TABLE IF NOT EXISTS embeddings (
    version TEXT NOT NULL,
    pos INTEGER NOT NULL,
    imdb_id TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (version, pos)
);

CREATE INDEX IF NOT EXISTS idx_items_version ON items(version);
CREATE INDEX IF NOT EXISTS idx_embeddings_version ON embeddings(version);
`
