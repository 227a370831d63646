package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS analyses (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	file_name           TEXT NOT NULL,
	language            TEXT NOT NULL DEFAULT '',
	transcription_model TEXT NOT NULL DEFAULT '',
	analysis_model      TEXT NOT NULL DEFAULT '',
	target_language     TEXT NOT NULL DEFAULT '',
	transcript          TEXT NOT NULL DEFAULT '',
	payload             TEXT NOT NULL DEFAULT '',
	coverage_ratio      REAL NOT NULL DEFAULT 0,
	similarity          REAL NOT NULL DEFAULT 0,
	fallback            INTEGER NOT NULL DEFAULT 0,
	created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (and if needed initializes) the analyses database at dbPath.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create analyses table: %w", err)
	}
	return db, nil
}
