// Package providers contains the built-in search providers and their
// registration entry point. Each provider covers one content category; the
// aggregator invokes them in registration order, so RegisterAll is the single
// place that fixes result-category ordering.
package providers

import (
	"fmt"
	"strings"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/menu"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// Deps carries the shared backends a provider may need. Providers receive it
// at construction; nothing is looked up through globals.
type Deps struct {
	Store    *storage.Store
	Menus    *menu.Cache
	AdminURL string
	SiteURL  string
}

// RegisterAll registers every built-in provider in its canonical order. The
// order is part of the product: result batches always list menu entries
// first, then posts, pages, users, media and custom content types.
func RegisterAll(reg *core.Registry, deps Deps) error {
	providers := []core.Provider{
		NewMenuProvider(deps),
		NewPostsProvider(deps),
		NewPagesProvider(deps),
		NewUsersProvider(deps),
		NewMediaProvider(deps),
		NewContentTypesProvider(deps),
	}

	for _, p := range providers {
		if err := reg.Register(p); err != nil {
			return fmt.Errorf("registering %s: %w", p.Descriptor().Name, err)
		}
	}
	return nil
}

// adminLink builds the destination for an admin menu route. Routes that name
// a screen file link to it directly; plugin page slugs go through admin.php.
func adminLink(adminURL, route string) string {
	if strings.Contains(route, ".php") {
		return adminURL + "/" + route
	}
	return adminURL + "/admin.php?page=" + route
}

// editLink builds the document edit screen URL.
func editLink(adminURL string, docID int64) string {
	return fmt.Sprintf("%s/post.php?post=%d&action=edit", adminURL, docID)
}

// viewLink builds the public permalink for a published document.
func viewLink(siteURL, slug string) string {
	return strings.TrimSuffix(siteURL, "/") + "/" + slug
}

// matchesQuery reports case-insensitive substring containment.
func matchesQuery(label, query string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(query))
}

// documentTitle returns the visible label for a document, substituting the
// placeholder for empty titles and appending the status for anything not yet
// published.
func documentTitle(doc storage.Document) string {
	title := doc.Title
	if title == "" {
		title = core.NoTitlePlaceholder
	}
	if doc.Status != storage.StatusPublish {
		title += " (" + storage.StatusLabel(doc.Status) + ")"
	}
	return title
}

// canEditDocument mirrors the dashboard's ownership rule: editing someone
// else's document needs the edit-others capability.
func canEditDocument(user core.User, doc storage.Document) bool {
	if user.Can(core.CapEditOthersPosts) {
		return true
	}
	return doc.AuthorID == user.ID
}
