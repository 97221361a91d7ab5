package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database. Tests and demo runs use it.
const MemoryPath = ":memory:"

type pragma struct {
	stmt     string
	onMemory bool
}

// WAL has no meaning for an in-memory database. busy_timeout covers the
// TUI and a `fleksjobb jobs ...` run sharing one file.
var pragmas = []pragma{
	{stmt: "PRAGMA journal_mode = WAL"},
	{stmt: "PRAGMA busy_timeout = 5000", onMemory: true},
	{stmt: "PRAGMA foreign_keys = ON", onMemory: true},
}

// OpenDB opens the marketplace database at path, creating its directory
// when needed, and brings the schema up to date.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if memory {
		// Every connection to :memory: sees its own database.
		db.SetMaxOpenConns(1)
	}

	for _, p := range pragmas {
		if memory && !p.onMemory {
			continue
		}
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.stmt, err)
		}
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
