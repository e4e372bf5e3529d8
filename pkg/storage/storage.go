// Package storage provides access to the admin database: documents, content
// types, users, persisted options and per-user menu snapshots. All search
// providers read through this package; nothing outside it touches SQL.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/aporotti/dashsearch/pkg/db"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the admin database at dbPath and
// applies any pending schema migrations.
func Open(dbPath string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Apply performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	if err := db.NewMigrator(conn).Run(); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return &Store{db: conn}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

