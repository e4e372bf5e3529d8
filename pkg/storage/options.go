package storage

import (
	"database/sql"
	"fmt"
)

// GetOption returns the persisted option value and whether it exists.
func (s *Store) GetOption(name string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM options WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying option %s: %w", name, err)
	}
	return value, true, nil
}

// SetOption persists an option, replacing any previous value.
func (s *Store) SetOption(name, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO options (name, value)
		VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("setting option %s: %w", name, err)
	}
	return nil
}

// DeleteOption removes an option. Deleting a missing option is not an error.
func (s *Store) DeleteOption(name string) error {
	if _, err := s.db.Exec(`DELETE FROM options WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting option %s: %w", name, err)
	}
	return nil
}
