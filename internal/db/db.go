package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS favorites (
    id              INTEGER PRIMARY KEY,
    restaurant_name TEXT NOT NULL,
    address         TEXT NOT NULL DEFAULT '',
    memo            TEXT,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_favorites_name_addr
    ON favorites(restaurant_name, address);

CREATE TABLE IF NOT EXISTS exclusions (
    id              INTEGER PRIMARY KEY,
    restaurant_name TEXT NOT NULL,
    address         TEXT NOT NULL DEFAULT '',
    reason          TEXT,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_exclusions_name_addr
    ON exclusions(restaurant_name, address);

CREATE TABLE IF NOT EXISTS search_history (
    id               INTEGER PRIMARY KEY,
    restaurant_name  TEXT NOT NULL,
    address          TEXT,
    phone            TEXT,
    cuisine_type     TEXT,
    area             TEXT,
    reservation_date TEXT,
    reservation_time TEXT,
    party_size       INTEGER,
    link             TEXT,
    created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_search_history_created_at
    ON search_history(created_at DESC);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := database.Exec(schema); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// ExclusionStore adapts the exclusions table to the search package's
// exclusion predicate. Read-only from the searcher's point of view.
type ExclusionStore struct {
	DB *sql.DB
}

func (s ExclusionStore) IsExcluded(name, address string) bool {
	excluded, err := IsExcluded(s.DB, name, address)
	if err != nil {
		return false
	}
	return excluded
}
