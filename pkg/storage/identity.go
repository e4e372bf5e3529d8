package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aporotti/dashsearch/pkg/core"
)

// ErrUserNotFound is returned when a lookup matches no user. The API layer
// maps it to an authentication failure.
var ErrUserNotFound = errors.New("user not found")

// SearchUsers returns the users whose display name or login contains query,
// case-insensitive, ordered by login ascending.
func (s *Store) SearchUsers(query string) ([]core.User, error) {
	q := strings.ToLower(query)
	rows, err := s.db.Query(`
		SELECT id, login, display_name, role
		FROM users
		WHERE instr(lower(display_name), ?) > 0
		   OR instr(lower(login), ?) > 0
		ORDER BY login ASC
	`, q, q)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var users []core.User
	for rows.Next() {
		var u core.User
		if err := rows.Scan(&u.ID, &u.Login, &u.DisplayName, &u.Role); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UserByToken resolves an API token to a user. Empty tokens never match.
func (s *Store) UserByToken(token string) (core.User, error) {
	if token == "" {
		return core.User{}, ErrUserNotFound
	}

	var u core.User
	err := s.db.QueryRow(`
		SELECT id, login, display_name, role
		FROM users
		WHERE api_token = ?
	`, token).Scan(&u.ID, &u.Login, &u.DisplayName, &u.Role)
	if err == sql.ErrNoRows {
		return core.User{}, ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("querying user by token: %w", err)
	}
	return u, nil
}

// UserByLogin resolves a login name to a user.
func (s *Store) UserByLogin(login string) (core.User, error) {
	var u core.User
	err := s.db.QueryRow(`
		SELECT id, login, display_name, role
		FROM users
		WHERE login = ?
	`, login).Scan(&u.ID, &u.Login, &u.DisplayName, &u.Role)
	if err == sql.ErrNoRows {
		return core.User{}, ErrUserNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("querying user by login: %w", err)
	}
	return u, nil
}

// ListUserIDs returns the ids of every user, used by the all-users cache
// maintenance action.
func (s *Store) ListUserIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT id FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying user ids: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", err)
		}
	}()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// InsertUser adds a user and returns its id.
func (s *Store) InsertUser(u core.User) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO users (login, display_name, role)
		VALUES (?, ?, ?)
	`, u.Login, u.DisplayName, u.Role)
	if err != nil {
		return 0, fmt.Errorf("inserting user %s: %w", u.Login, err)
	}
	return res.LastInsertId()
}

// SetUserToken stores the API token for the given login.
func (s *Store) SetUserToken(login, token string) error {
	res, err := s.db.Exec(`UPDATE users SET api_token = ? WHERE login = ?`, token, login)
	if err != nil {
		return fmt.Errorf("setting token for %s: %w", login, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
