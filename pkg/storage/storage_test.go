package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aporotti/dashsearch/pkg/core"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "admin.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestSearchDocumentsSubstringMatching(t *testing.T) {
	store := testStore(t)

	titles := []string{"Hello World", "hello again", "Goodbye", "Say HELLO twice"}
	for _, title := range titles {
		if _, err := store.InsertDocument(Document{
			DocType: DocTypePost, Title: title, Status: StatusPublish,
		}); err != nil {
			t.Fatalf("failed to insert %q: %v", title, err)
		}
	}

	docs, err := store.SearchDocuments([]string{DocTypePost}, "hello")
	if err != nil {
		t.Fatalf("SearchDocuments failed: %v", err)
	}

	// Case-insensitive containment, ordered by title.
	want := []string{"hello again", "Hello World", "Say HELLO twice"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d documents, got %d", len(want), len(docs))
	}
	for i, doc := range docs {
		if doc.Title != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], doc.Title)
		}
	}
}

func TestSearchDocumentsFiltersTypeAndDeleted(t *testing.T) {
	store := testStore(t)

	if _, err := store.InsertDocument(Document{
		DocType: DocTypePost, Title: "News post", Status: StatusPublish,
	}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	pageID, err := store.InsertDocument(Document{
		DocType: DocTypePage, Title: "News page", Status: StatusPublish,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := store.db.Exec(`UPDATE documents SET deleted_at = CURRENT_TIMESTAMP WHERE id = ?`, pageID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	docs, err := store.SearchDocuments([]string{DocTypePage}, "news")
	if err != nil {
		t.Fatalf("SearchDocuments failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected soft-deleted page excluded, got %d documents", len(docs))
	}

	docs, err = store.SearchDocuments(nil, "news")
	if err != nil {
		t.Fatalf("SearchDocuments failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no documents for empty type list, got %d", len(docs))
	}
}

func TestUserTokenLookup(t *testing.T) {
	store := testStore(t)

	if _, err := store.InsertUser(core.User{Login: "jdoe", DisplayName: "J. Doe", Role: core.RoleEditor}); err != nil {
		t.Fatalf("InsertUser failed: %v", err)
	}
	if err := store.SetUserToken("jdoe", "tok-123"); err != nil {
		t.Fatalf("SetUserToken failed: %v", err)
	}

	u, err := store.UserByToken("tok-123")
	if err != nil {
		t.Fatalf("UserByToken failed: %v", err)
	}
	if u.Login != "jdoe" || u.Role != core.RoleEditor {
		t.Errorf("unexpected user: %+v", u)
	}

	if _, err := store.UserByToken("wrong"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown token, got %v", err)
	}
	// Users without a token have an empty api_token column; an empty bearer
	// token must never match them.
	if _, err := store.UserByToken(""); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for empty token, got %v", err)
	}

	if err := store.SetUserToken("ghost", "tok-456"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown login, got %v", err)
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	store := testStore(t)

	if _, exists, err := store.GetOption("missing"); err != nil || exists {
		t.Errorf("expected missing option, got exists=%v err=%v", exists, err)
	}

	if err := store.SetOption("color", "blue"); err != nil {
		t.Fatalf("SetOption failed: %v", err)
	}
	if err := store.SetOption("color", "green"); err != nil {
		t.Fatalf("SetOption overwrite failed: %v", err)
	}

	value, exists, err := store.GetOption("color")
	if err != nil || !exists {
		t.Fatalf("GetOption failed: exists=%v err=%v", exists, err)
	}
	if value != "green" {
		t.Errorf("expected overwritten value, got %q", value)
	}

	if err := store.DeleteOption("color"); err != nil {
		t.Fatalf("DeleteOption failed: %v", err)
	}
	if _, exists, _ := store.GetOption("color"); exists {
		t.Error("expected option deleted")
	}
}

func TestMenuSnapshots(t *testing.T) {
	store := testStore(t)

	if _, ok, err := store.MenuSnapshot(1, MenuKindTop); err != nil || ok {
		t.Errorf("expected no snapshot, got ok=%v err=%v", ok, err)
	}

	if err := store.SaveMenuSnapshot(1, MenuKindTop, []byte(`["a"]`)); err != nil {
		t.Fatalf("SaveMenuSnapshot failed: %v", err)
	}
	if err := store.SaveMenuSnapshot(1, MenuKindTop, []byte(`["b"]`)); err != nil {
		t.Fatalf("SaveMenuSnapshot overwrite failed: %v", err)
	}

	payload, ok, err := store.MenuSnapshot(1, MenuKindTop)
	if err != nil || !ok {
		t.Fatalf("MenuSnapshot failed: ok=%v err=%v", ok, err)
	}
	if string(payload) != `["b"]` {
		t.Errorf("expected overwritten payload, got %s", payload)
	}

	if err := store.SaveMenuSnapshot(2, MenuKindTop, []byte(`["c"]`)); err != nil {
		t.Fatalf("SaveMenuSnapshot failed: %v", err)
	}
	if err := store.DeleteMenuSnapshots(1); err != nil {
		t.Fatalf("DeleteMenuSnapshots failed: %v", err)
	}
	if _, ok, _ := store.MenuSnapshot(1, MenuKindTop); ok {
		t.Error("expected user 1 snapshot deleted")
	}
	if _, ok, _ := store.MenuSnapshot(2, MenuKindTop); !ok {
		t.Error("expected user 2 snapshot intact")
	}

	if err := store.DeleteAllMenuSnapshots(); err != nil {
		t.Fatalf("DeleteAllMenuSnapshots failed: %v", err)
	}
	if _, ok, _ := store.MenuSnapshot(2, MenuKindTop); ok {
		t.Error("expected all snapshots deleted")
	}
}

func TestCustomContentTypes(t *testing.T) {
	store := testStore(t)

	if err := store.UpsertContentType(ContentType{Name: "recipe", SingularLabel: "Recipe", Public: true}); err != nil {
		t.Fatalf("UpsertContentType failed: %v", err)
	}
	if err := store.UpsertContentType(ContentType{Name: "secret", SingularLabel: "Secret", Public: false}); err != nil {
		t.Fatalf("UpsertContentType failed: %v", err)
	}

	types, err := store.CustomContentTypes()
	if err != nil {
		t.Fatalf("CustomContentTypes failed: %v", err)
	}

	// Builtins (post, page, attachment) and non-public types are excluded.
	if len(types) != 1 || types[0].Name != "recipe" {
		t.Errorf("unexpected content types: %+v", types)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(StatusDraft); got != "Draft" {
		t.Errorf("expected Draft, got %q", got)
	}
	if got := StatusLabel("weird"); got != "weird" {
		t.Errorf("expected unknown status passthrough, got %q", got)
	}
}
