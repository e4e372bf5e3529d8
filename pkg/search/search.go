// Package search runs a query across every enabled provider and assembles
// the final result batch.
package search

import (
	"strings"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/log"
	"github.com/aporotti/dashsearch/pkg/settings"
)

// Service is the aggregation engine. It owns no data itself: providers bring
// their own backends, and the enabled set is read from settings on every
// call so toggling a provider takes effect without a restart.
type Service struct {
	registry *core.Registry
	settings *settings.Store
	logger   *log.Logger
}

func NewService(registry *core.Registry, settings *settings.Store) *Service {
	return &Service{
		registry: registry,
		settings: settings,
		logger:   log.ForComponent("search"),
	}
}

// Search runs the query for the given user across the enabled providers in
// registration order and returns the normalized batch.
//
// A provider error is isolated: it is logged and the batch continues with
// the results accumulated so far, so one broken backend degrades to missing
// results instead of a failed request. The returned slice is never nil, and
// a whitespace-only query short-circuits to an empty batch without touching
// any provider.
func (s *Service) Search(user core.User, query string) ([]core.SearchResult, error) {
	results := []core.SearchResult{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}

	disabled, err := s.settings.DisabledProviders()
	if err != nil {
		return results, err
	}

	for _, provider := range s.registry.Enabled(disabled) {
		name := provider.Descriptor().Name

		next, err := provider.Search(user, results, query)
		if err != nil {
			s.logger.Errorf("provider %s failed: %v", name, err)
			continue
		}
		s.logger.Debugf("provider %s: %d results so far", name, len(next))
		results = next
	}

	return s.finalize(results), nil
}

// finalize assigns sequential ids in batch order and applies the default
// icon to results that carry neither an icon class nor a style.
func (s *Service) finalize(results []core.SearchResult) []core.SearchResult {
	for i := range results {
		results[i].ID = i + 1
		if results[i].IconClass == "" && results[i].Style == "" {
			results[i].IconClass = core.FallbackIconClass
		}
	}
	return results
}
