package menu

import (
	"encoding/json"
	"fmt"

	"github.com/aporotti/dashsearch/pkg/storage"
)

// Cache persists one sanitized menu snapshot per user in the admin database.
type Cache struct {
	store *storage.Store
}

func NewCache(store *storage.Store) *Cache {
	return &Cache{store: store}
}

// Refresh sanitizes the raw menu and stores it for the user, but only writes
// when the sanitized form differs from what is already cached. It reports
// whether the cache changed.
func (c *Cache) Refresh(userID int64, raw RawMenu) (bool, error) {
	snap := Sanitize(raw)

	itemsPayload, err := json.Marshal(snap.Items)
	if err != nil {
		return false, fmt.Errorf("encoding menu items: %w", err)
	}
	subsPayload, err := json.Marshal(snap.Submenus)
	if err != nil {
		return false, fmt.Errorf("encoding submenus: %w", err)
	}

	changed := false
	for _, entry := range []struct {
		kind    string
		payload []byte
	}{
		{storage.MenuKindTop, itemsPayload},
		{storage.MenuKindSub, subsPayload},
	} {
		existing, ok, err := c.store.MenuSnapshot(userID, entry.kind)
		if err != nil {
			return false, err
		}
		if ok && string(existing) == string(entry.payload) {
			continue
		}
		if err := c.store.SaveMenuSnapshot(userID, entry.kind, entry.payload); err != nil {
			return false, err
		}
		changed = true
	}

	return changed, nil
}

// Snapshot loads the cached menu for a user. The second return value is
// false when the user has no cached menu yet.
func (c *Cache) Snapshot(userID int64) (Snapshot, bool, error) {
	itemsPayload, ok, err := c.store.MenuSnapshot(userID, storage.MenuKindTop)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(itemsPayload, &snap.Items); err != nil {
		return Snapshot{}, false, fmt.Errorf("decoding menu items: %w", err)
	}

	subsPayload, ok, err := c.store.MenuSnapshot(userID, storage.MenuKindSub)
	if err != nil {
		return Snapshot{}, false, err
	}
	if ok {
		if err := json.Unmarshal(subsPayload, &snap.Submenus); err != nil {
			return Snapshot{}, false, fmt.Errorf("decoding submenus: %w", err)
		}
	}

	return snap, true, nil
}

// Clear evicts one user's cached menu.
func (c *Cache) Clear(userID int64) error {
	return c.store.DeleteMenuSnapshots(userID)
}

// ClearAll evicts every user's cached menu.
func (c *Cache) ClearAll() error {
	return c.store.DeleteAllMenuSnapshots()
}
