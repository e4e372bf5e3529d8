package search

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/settings"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// stubProvider contributes fixed entries and records whether it was called.
type stubProvider struct {
	name    string
	entries []string
	err     error
	called  bool
}

func (p *stubProvider) Descriptor() core.Descriptor {
	return core.Descriptor{Name: p.name, DisplayName: p.name}
}

func (p *stubProvider) Search(_ core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	p.called = true
	if p.err != nil {
		return results, p.err
	}
	for _, e := range p.entries {
		results = append(results, core.SearchResult{Text: e, IconClass: "icon-test"})
	}
	return results, nil
}

func testService(t *testing.T, providers ...core.Provider) (*Service, *settings.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	reg := core.NewRegistry()
	for _, p := range providers {
		if err := reg.Register(p); err != nil {
			t.Fatalf("failed to register %s: %v", p.Descriptor().Name, err)
		}
	}

	opts := settings.NewStore(store)
	if err := opts.EnsureDefaults(); err != nil {
		t.Fatalf("EnsureDefaults failed: %v", err)
	}

	return NewService(reg, opts), opts
}

func TestSearchMergesInRegistrationOrder(t *testing.T) {
	first := &stubProvider{name: "alpha", entries: []string{"a1", "a2"}}
	second := &stubProvider{name: "beta", entries: []string{"b1"}}
	svc, _ := testService(t, first, second)

	results, err := svc.Search(core.User{ID: 1, Role: core.RoleAdmin}, "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	want := []string{"a1", "a2", "b1"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		if r.Text != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], r.Text)
		}
		if r.ID != i+1 {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, r.ID)
		}
	}
}

func TestSearchSkipsDisabledProviders(t *testing.T) {
	first := &stubProvider{name: "alpha", entries: []string{"a1"}}
	second := &stubProvider{name: "beta", entries: []string{"b1"}}
	svc, opts := testService(t, first, second)

	if err := opts.SetDisabledProviders([]string{"alpha"}); err != nil {
		t.Fatalf("SetDisabledProviders failed: %v", err)
	}

	results, err := svc.Search(core.User{ID: 1}, "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if first.called {
		t.Error("expected disabled provider not to be invoked")
	}
	if len(results) != 1 || results[0].Text != "b1" {
		t.Errorf("unexpected results: %+v", results)
	}
	if results[0].ID != 1 {
		t.Errorf("expected ids to restart at 1, got %d", results[0].ID)
	}
}

func TestSearchEmptyQueryShortCircuits(t *testing.T) {
	p := &stubProvider{name: "alpha", entries: []string{"a1"}}
	svc, _ := testService(t, p)

	for _, query := range []string{"", "   ", "\t\n"} {
		results, err := svc.Search(core.User{ID: 1}, query)
		if err != nil {
			t.Fatalf("Search(%q) failed: %v", query, err)
		}
		if results == nil {
			t.Errorf("Search(%q): expected non-nil empty batch", query)
		}
		if len(results) != 0 {
			t.Errorf("Search(%q): expected empty batch, got %d results", query, len(results))
		}
	}
	if p.called {
		t.Error("expected no provider invocation for blank queries")
	}
}

func TestSearchIsolatesProviderFailure(t *testing.T) {
	first := &stubProvider{name: "alpha", entries: []string{"a1"}}
	broken := &stubProvider{name: "broken", err: errors.New("backend down")}
	third := &stubProvider{name: "gamma", entries: []string{"c1"}}
	svc, _ := testService(t, first, broken, third)

	results, err := svc.Search(core.User{ID: 1}, "query")
	if err != nil {
		t.Fatalf("expected provider failure to be isolated, got error: %v", err)
	}

	want := []string{"a1", "c1"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(results), results)
	}
	for i, r := range results {
		if r.Text != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], r.Text)
		}
		if r.ID != i+1 {
			t.Errorf("position %d: expected id %d, got %d", i, i+1, r.ID)
		}
	}
	if !third.called {
		t.Error("expected providers after the failing one to run")
	}
}

type bareIconProvider struct{}

func (bareIconProvider) Descriptor() core.Descriptor {
	return core.Descriptor{Name: "bare_icon"}
}

func (bareIconProvider) Search(_ core.User, results []core.SearchResult, _ string) ([]core.SearchResult, error) {
	return append(results,
		core.SearchResult{Text: "no icon"},
		core.SearchResult{Text: "styled", Style: "background-image: url('x');"},
	), nil
}

func TestSearchFallbackIconInvariant(t *testing.T) {
	svc, _ := testService(t, bareIconProvider{})

	results, err := svc.Search(core.User{ID: 1}, "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].IconClass != core.FallbackIconClass {
		t.Errorf("expected fallback icon, got %q", results[0].IconClass)
	}
	if results[1].IconClass != "" {
		t.Errorf("expected styled result to keep empty icon class, got %q", results[1].IconClass)
	}
}

func TestSearchIsIdempotent(t *testing.T) {
	p := &stubProvider{name: "alpha", entries: []string{"a1", "a2"}}
	svc, _ := testService(t, p)

	user := core.User{ID: 1}
	first, err := svc.Search(user, "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := svc.Search(user, "query")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected identical batches, got %d and %d results", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
