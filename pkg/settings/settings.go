// Package settings is the typed layer over the persisted options store.
// It owns the wire-format quirks (the "none" sentinel for empty sets) so the
// rest of the system only ever sees real Go values.
package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aporotti/dashsearch/pkg/storage"
)

// Option keys in the options table.
const (
	KeyDisabledProviders     = "disabled_providers"
	KeySearchShortcut        = "search_shortcut"
	KeyAdminBarLayout        = "admin_bar_layout"
	KeyShowResultsURL        = "show_results_url"
	KeyDeleteDataOnUninstall = "delete_data_on_uninstall"
)

// NoneSentinel is the persisted stand-in for an empty value. It is kept for
// backward-compatible persistence and translated immediately at the load and
// save boundaries; callers never see it.
const NoneSentinel = "none"

// allKeys drives EnsureDefaults and Wipe.
var allKeys = []string{
	KeyDisabledProviders,
	KeySearchShortcut,
	KeyAdminBarLayout,
	KeyShowResultsURL,
	KeyDeleteDataOnUninstall,
}

type Store struct {
	db *storage.Store
}

func NewStore(db *storage.Store) *Store {
	return &Store{db: db}
}

// EnsureDefaults writes first-install defaults for any option that has never
// been configured. Existing values are left alone.
func (s *Store) EnsureDefaults() error {
	defaults := map[string]string{
		KeyDisabledProviders:     NoneSentinel,
		KeySearchShortcut:        NoneSentinel,
		KeyAdminBarLayout:        "0",
		KeyShowResultsURL:        "0",
		KeyDeleteDataOnUninstall: "0",
	}

	for key, value := range defaults {
		if _, exists, err := s.db.GetOption(key); err != nil {
			return err
		} else if !exists {
			if err := s.db.SetOption(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// DisabledProviders returns the set of provider names the administrator has
// turned off. The sentinel (and a missing option) both mean "none disabled".
func (s *Store) DisabledProviders() ([]string, error) {
	value, exists, err := s.db.GetOption(KeyDisabledProviders)
	if err != nil {
		return nil, err
	}
	if !exists || value == "" || value == NoneSentinel {
		return nil, nil
	}

	var names []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" && name != NoneSentinel {
			names = append(names, name)
		}
	}
	return names, nil
}

// SetDisabledProviders persists the disabled set. An empty set is stored as
// the sentinel so "explicitly cleared" survives round-trips distinguishably
// from "never configured".
func (s *Store) SetDisabledProviders(names []string) error {
	if len(names) == 0 {
		return s.db.SetOption(KeyDisabledProviders, NoneSentinel)
	}
	return s.db.SetOption(KeyDisabledProviders, strings.Join(names, ","))
}

// DisableProvider adds one provider name to the disabled set.
func (s *Store) DisableProvider(name string) error {
	names, err := s.DisabledProviders()
	if err != nil {
		return err
	}
	for _, n := range names {
		if n == name {
			return nil
		}
	}
	return s.SetDisabledProviders(append(names, name))
}

// EnableProvider removes one provider name from the disabled set.
func (s *Store) EnableProvider(name string) error {
	names, err := s.DisabledProviders()
	if err != nil {
		return err
	}
	kept := names[:0]
	for _, n := range names {
		if n != name {
			kept = append(kept, n)
		}
	}
	return s.SetDisabledProviders(kept)
}

// Shortcut returns the stored keyboard shortcut, or "" when none is set.
func (s *Store) Shortcut() (string, error) {
	value, exists, err := s.db.GetOption(KeySearchShortcut)
	if err != nil {
		return "", err
	}
	if !exists || value == NoneSentinel {
		return "", nil
	}
	return value, nil
}

// SetShortcut persists the keyboard shortcut. Empty means "no shortcut".
func (s *Store) SetShortcut(shortcut string) error {
	if shortcut == "" {
		shortcut = NoneSentinel
	}
	return s.db.SetOption(KeySearchShortcut, shortcut)
}

// AdminBarLayout returns the admin-bar layout choice (0 text and icon,
// 1 icon only).
func (s *Store) AdminBarLayout() (int, error) {
	value, exists, err := s.db.GetOption(KeyAdminBarLayout)
	if err != nil || !exists {
		return 0, err
	}
	layout, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", KeyAdminBarLayout, err)
	}
	return layout, nil
}

func (s *Store) SetAdminBarLayout(layout int) error {
	return s.db.SetOption(KeyAdminBarLayout, strconv.Itoa(layout))
}

// ShowResultsURL reports whether the widget should display each result's
// destination under its label.
func (s *Store) ShowResultsURL() (bool, error) {
	return s.boolOption(KeyShowResultsURL)
}

func (s *Store) SetShowResultsURL(show bool) error {
	return s.db.SetOption(KeyShowResultsURL, boolValue(show))
}

// DeleteDataOnUninstall reports whether uninstall should drop the persisted
// configuration.
func (s *Store) DeleteDataOnUninstall() (bool, error) {
	return s.boolOption(KeyDeleteDataOnUninstall)
}

func (s *Store) SetDeleteDataOnUninstall(del bool) error {
	return s.db.SetOption(KeyDeleteDataOnUninstall, boolValue(del))
}

// Wipe removes every configuration entry. Used by uninstall when the
// delete-data flag is set.
func (s *Store) Wipe() error {
	for _, key := range allKeys {
		if err := s.db.DeleteOption(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) boolOption(key string) (bool, error) {
	value, exists, err := s.db.GetOption(key)
	if err != nil || !exists {
		return false, err
	}
	return value == "1" || value == "true", nil
}

func boolValue(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
