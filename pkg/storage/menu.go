package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Menu snapshot kinds. Each user owns at most one snapshot per kind.
const (
	MenuKindTop = "menu"
	MenuKindSub = "submenu"
)

// MenuSnapshot returns the stored snapshot payload for a user and kind,
// and whether one exists. A missing snapshot is not an error: the menu
// provider treats it as "no results for this user".
func (s *Store) MenuSnapshot(userID int64, kind string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(`
		SELECT payload FROM menu_snapshots
		WHERE user_id = ? AND kind = ?
	`, userID, kind).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("querying menu snapshot: %w", err)
	}
	return payload, true, nil
}

// SaveMenuSnapshot stores the snapshot payload for a user and kind,
// replacing any previous one.
func (s *Store) SaveMenuSnapshot(userID int64, kind string, payload []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO menu_snapshots (user_id, kind, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, kind) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, userID, kind, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving menu snapshot: %w", err)
	}
	return nil
}

// DeleteMenuSnapshots evicts every snapshot owned by the given user.
func (s *Store) DeleteMenuSnapshots(userID int64) error {
	if _, err := s.db.Exec(`DELETE FROM menu_snapshots WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("deleting menu snapshots for user %d: %w", userID, err)
	}
	return nil
}

// DeleteAllMenuSnapshots evicts every user's snapshots.
func (s *Store) DeleteAllMenuSnapshots() error {
	if _, err := s.db.Exec(`DELETE FROM menu_snapshots`); err != nil {
		return fmt.Errorf("deleting all menu snapshots: %w", err)
	}
	return nil
}
