package providers

import (
	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// PostsProvider searches post titles. Callers without the edit-posts
// capability get nothing; private posts additionally require the
// read-private capability.
type PostsProvider struct {
	store    *storage.Store
	adminURL string
	siteURL  string
}

func NewPostsProvider(deps Deps) *PostsProvider {
	return &PostsProvider{store: deps.Store, adminURL: deps.AdminURL, siteURL: deps.SiteURL}
}

func (p *PostsProvider) Descriptor() core.Descriptor {
	return core.Descriptor{
		Name:        "search_posts",
		DisplayName: "Posts",
		Description: "Searches post titles",
	}
}

func (p *PostsProvider) Search(user core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	if !user.Can(core.CapEditPosts) {
		return results, nil
	}

	docs, err := p.store.SearchDocuments([]string{storage.DocTypePost}, query)
	if err != nil {
		return results, err
	}

	for _, doc := range docs {
		if doc.Status == storage.StatusPrivate && !user.Can(core.CapReadPrivatePosts) {
			continue
		}
		results = append(results, core.SearchResult{
			Text:        documentTitle(doc),
			Description: "Post",
			LinkURL:     documentLink(user, doc, p.adminURL, p.siteURL),
			IconClass:   "icon-post",
		})
	}

	return results, nil
}

// documentLink prefers the edit screen; callers who cannot edit get the
// public permalink instead, and unpublished documents they cannot edit get
// no link at all.
func documentLink(user core.User, doc storage.Document, adminURL, siteURL string) string {
	if canEditDocument(user, doc) {
		return editLink(adminURL, doc.ID)
	}
	if doc.Status == storage.StatusPublish {
		return viewLink(siteURL, doc.Slug)
	}
	return ""
}
