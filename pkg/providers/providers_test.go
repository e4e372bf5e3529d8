package providers

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/menu"
	"github.com/aporotti/dashsearch/pkg/storage"
)

func testDeps(t *testing.T) Deps {
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

	return Deps{
		Store:    store,
		Menus:    menu.NewCache(store),
		AdminURL: "https://example.com/admin",
		SiteURL:  "https://example.com",
	}
}

func addUser(t *testing.T, deps Deps, login, name, role string) core.User {
	t.Helper()
	u := core.User{Login: login, DisplayName: name, Role: role}
	id, err := deps.Store.InsertUser(u)
	if err != nil {
		t.Fatalf("failed to insert user %s: %v", login, err)
	}
	u.ID = id
	return u
}

func addDocument(t *testing.T, deps Deps, d storage.Document) int64 {
	t.Helper()
	id, err := deps.Store.InsertDocument(d)
	if err != nil {
		t.Fatalf("failed to insert document %q: %v", d.Title, err)
	}
	return id
}

func TestRegisterAllOrder(t *testing.T) {
	deps := testDeps(t)
	reg := core.NewRegistry()

	if err := RegisterAll(reg, deps); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	want := []string{
		"search_admin_menu",
		"search_posts",
		"search_pages",
		"search_users",
		"search_media",
		"search_cpt",
	}
	descriptors := reg.Descriptors()
	if len(descriptors) != len(want) {
		t.Fatalf("expected %d providers, got %d", len(want), len(descriptors))
	}
	for i, d := range descriptors {
		if d.Name != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], d.Name)
		}
	}
}

func TestMenuProviderTopLevelAndSubmenu(t *testing.T) {
	deps := testDeps(t)
	admin := addUser(t, deps, "admin", "Admin", core.RoleAdmin)

	raw := menu.RawMenu{
		Items: []menu.RawMenuItem{
			{Label: "Settings", Route: "options-general.php", Icon: "icon-settings"},
		},
		Submenus: map[string][]menu.RawSubmenuItem{
			"options-general.php": {
				{Label: "Settings Writing", Route: "options-writing.php"},
				{Label: "Permalinks", Route: "options-permalink.php"},
			},
		},
	}
	if _, err := deps.Menus.Refresh(admin.ID, raw); err != nil {
		t.Fatalf("menu refresh failed: %v", err)
	}

	p := NewMenuProvider(deps)
	results, err := p.Search(admin, nil, "settings")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	if results[0].Text != "Settings" {
		t.Errorf("expected top-level item first, got %q", results[0].Text)
	}
	if results[0].LinkURL != "https://example.com/admin/options-general.php" {
		t.Errorf("unexpected top-level link: %q", results[0].LinkURL)
	}
	if results[0].IconClass != "icon-settings" {
		t.Errorf("expected parent icon, got %q", results[0].IconClass)
	}
	if results[1].Text != "Settings / Settings Writing" {
		t.Errorf("expected parent-prefixed submenu label, got %q", results[1].Text)
	}
	if results[1].LinkURL != "https://example.com/admin/options-writing.php" {
		t.Errorf("unexpected submenu link: %q", results[1].LinkURL)
	}
}

func TestMenuProviderSlugRoutes(t *testing.T) {
	deps := testDeps(t)
	admin := addUser(t, deps, "admin", "Admin", core.RoleAdmin)

	raw := menu.RawMenu{
		Items: []menu.RawMenuItem{
			{Label: "Analytics", Route: "analytics-home", Icon: "data:image/svg+xml;base64,abc"},
		},
		Submenus: map[string][]menu.RawSubmenuItem{
			"analytics-home": {{Label: "Analytics Reports", Route: "analytics-reports"}},
		},
	}
	if _, err := deps.Menus.Refresh(admin.ID, raw); err != nil {
		t.Fatalf("menu refresh failed: %v", err)
	}

	p := NewMenuProvider(deps)
	results, err := p.Search(admin, nil, "analytics")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].LinkURL != "https://example.com/admin/admin.php?page=analytics-home" {
		t.Errorf("unexpected slug link: %q", results[0].LinkURL)
	}
	if results[0].Style == "" || results[0].IconClass != "" {
		t.Errorf("expected inline image icon mapped to style, got class=%q style=%q",
			results[0].IconClass, results[0].Style)
	}
	if results[1].LinkURL != "https://example.com/admin/admin.php?page=analytics-reports" {
		t.Errorf("unexpected submenu slug link: %q", results[1].LinkURL)
	}
}

func TestMenuProviderNoSnapshot(t *testing.T) {
	deps := testDeps(t)
	admin := addUser(t, deps, "admin", "Admin", core.RoleAdmin)

	p := NewMenuProvider(deps)
	results, err := p.Search(admin, nil, "anything")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results without a cached menu, got %d", len(results))
	}
}

func TestPostsProviderPermissions(t *testing.T) {
	deps := testDeps(t)
	author := addUser(t, deps, "writer", "Writer", core.RoleAuthor)
	subscriber := addUser(t, deps, "reader", "Reader", core.RoleSubscriber)

	ownID := addDocument(t, deps, storage.Document{
		DocType: storage.DocTypePost, Title: "My launch notes",
		Slug: "launch-notes", Status: storage.StatusDraft, AuthorID: author.ID,
	})
	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypePost, Title: "Team launch plan",
		Slug: "launch-plan", Status: storage.StatusPublish, AuthorID: subscriber.ID + 100,
	})
	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypePost, Title: "Launch retro",
		Slug: "launch-retro", Status: storage.StatusDraft, AuthorID: subscriber.ID + 100,
	})
	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypePost, Title: "Secret launch date",
		Slug: "launch-date", Status: storage.StatusPrivate, AuthorID: subscriber.ID + 100,
	})

	p := NewPostsProvider(deps)

	results, err := p.Search(subscriber, nil, "launch")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for subscriber, got %d", len(results))
	}

	results, err = p.Search(author, nil, "launch")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	// Private post is invisible to authors; the rest remain, ordered by
	// title ascending.
	if len(results) != 3 {
		t.Fatalf("expected 3 results for author, got %d: %+v", len(results), results)
	}
	// A foreign draft is neither editable nor publicly viewable, so it is
	// listed with no destination at all.
	if results[0].Text != "Launch retro (Draft)" || results[0].LinkURL != "" {
		t.Errorf("expected link-less foreign draft first, got %+v", results[0])
	}
	if results[1].Text != "My launch notes (Draft)" {
		t.Errorf("expected draft status suffix, got %q", results[1].Text)
	}
	wantEdit := editLink(deps.AdminURL, ownID)
	if results[1].LinkURL != wantEdit {
		t.Errorf("expected edit link for own draft, got %q", results[1].LinkURL)
	}
	if results[2].LinkURL != "https://example.com/launch-plan" {
		t.Errorf("expected public permalink for foreign post, got %q", results[2].LinkURL)
	}
}

func TestPostsProviderPrivateVisibleToEditors(t *testing.T) {
	deps := testDeps(t)
	editor := addUser(t, deps, "ed", "Ed", core.RoleEditor)

	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypePost, Title: "Quarterly numbers",
		Slug: "quarterly", Status: storage.StatusPrivate, AuthorID: editor.ID + 1,
	})

	p := NewPostsProvider(deps)
	results, err := p.Search(editor, nil, "quarterly")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected private post visible to editor, got %d results", len(results))
	}
	if results[0].Text != "Quarterly numbers (Private)" {
		t.Errorf("unexpected label: %q", results[0].Text)
	}
}

func TestPagesProviderGate(t *testing.T) {
	deps := testDeps(t)
	author := addUser(t, deps, "writer", "Writer", core.RoleAuthor)
	editor := addUser(t, deps, "ed", "Ed", core.RoleEditor)

	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypePage, Title: "Contact",
		Slug: "contact", Status: storage.StatusPublish, AuthorID: editor.ID,
	})

	p := NewPagesProvider(deps)

	results, err := p.Search(author, nil, "contact")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected authors to see no pages, got %d", len(results))
	}

	results, err = p.Search(editor, nil, "contact")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Description != "Page" {
		t.Errorf("unexpected editor results: %+v", results)
	}
}

func TestUsersProvider(t *testing.T) {
	deps := testDeps(t)
	admin := addUser(t, deps, "admin", "Admin", core.RoleAdmin)
	editor := addUser(t, deps, "ed", "Ed", core.RoleEditor)
	target := addUser(t, deps, "jsmith", "Jane Smith", core.RoleAuthor)

	p := NewUsersProvider(deps)

	results, err := p.Search(editor, nil, "jane")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected editors to see no users, got %d", len(results))
	}

	results, err = p.Search(admin, nil, "jane")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Text != "Jane Smith (Username: jsmith)" {
		t.Errorf("unexpected label: %q", results[0].Text)
	}
	if !strings.HasSuffix(results[0].LinkURL, "/user-edit.php?user_id="+strconv.FormatInt(target.ID, 10)) {
		t.Errorf("unexpected link: %q", results[0].LinkURL)
	}
}

func TestUsersProviderMatchesLogin(t *testing.T) {
	deps := testDeps(t)
	admin := addUser(t, deps, "admin", "Admin", core.RoleAdmin)
	addUser(t, deps, "jsmith", "Jane Smith", core.RoleAuthor)

	p := NewUsersProvider(deps)
	results, err := p.Search(admin, nil, "jsmi")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected login substring match, got %d results", len(results))
	}
}

func TestMediaProvider(t *testing.T) {
	deps := testDeps(t)
	author := addUser(t, deps, "writer", "Writer", core.RoleAuthor)
	subscriber := addUser(t, deps, "reader", "Reader", core.RoleSubscriber)

	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypeAttachment, Title: "Beach photo",
		Status: storage.StatusPublish, AuthorID: author.ID,
		ThumbURL: "https://example.com/thumbs/beach.jpg",
	})
	addDocument(t, deps, storage.Document{
		DocType: storage.DocTypeAttachment, Title: "Beach video",
		Status: storage.StatusPublish, AuthorID: author.ID + 100,
	})

	p := NewMediaProvider(deps)

	results, err := p.Search(subscriber, nil, "beach")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no media for subscriber, got %d", len(results))
	}

	results, err = p.Search(author, nil, "beach")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Preview != `<img src="https://example.com/thumbs/beach.jpg">` {
		t.Errorf("unexpected preview: %q", results[0].Preview)
	}
	if results[0].LinkURL == "" {
		t.Error("expected edit link for own attachment")
	}
	// Foreign attachment: no edit permission and no public fallback.
	if results[1].LinkURL != "" {
		t.Errorf("expected no link for foreign attachment, got %q", results[1].LinkURL)
	}
}

func TestContentTypesProvider(t *testing.T) {
	deps := testDeps(t)
	editor := addUser(t, deps, "ed", "Ed", core.RoleEditor)

	if err := deps.Store.UpsertContentType(storage.ContentType{
		Name: "recipe", SingularLabel: "Recipe", Public: true,
	}); err != nil {
		t.Fatalf("failed to register content type: %v", err)
	}
	if err := deps.Store.UpsertContentType(storage.ContentType{
		Name: "event", SingularLabel: "Event", Icon: "icon-calendar", Public: true,
	}); err != nil {
		t.Fatalf("failed to register content type: %v", err)
	}
	if err := deps.Store.UpsertContentType(storage.ContentType{
		Name: "internal_note", SingularLabel: "Note", Public: false,
	}); err != nil {
		t.Fatalf("failed to register content type: %v", err)
	}

	addDocument(t, deps, storage.Document{
		DocType: "recipe", Title: "Summer salad",
		Slug: "summer-salad", Status: storage.StatusPublish, AuthorID: editor.ID,
	})
	addDocument(t, deps, storage.Document{
		DocType: "event", Title: "Summer festival",
		Slug: "summer-festival", Status: storage.StatusPublish, AuthorID: editor.ID,
	})
	addDocument(t, deps, storage.Document{
		DocType: "internal_note", Title: "Summer budget",
		Status: storage.StatusPublish, AuthorID: editor.ID,
	})

	p := NewContentTypesProvider(deps)
	results, err := p.Search(editor, nil, "summer")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	// The non-public type must not contribute.
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	byText := map[string]core.SearchResult{}
	for _, r := range results {
		byText[r.Text] = r
	}
	if r := byText["Summer festival"]; r.Description != "Event" || r.IconClass != "icon-calendar" {
		t.Errorf("unexpected event result: %+v", r)
	}
	if r := byText["Summer salad"]; r.Description != "Recipe" || r.IconClass != "icon-document" {
		t.Errorf("expected icon fallback for recipe, got: %+v", r)
	}
}
