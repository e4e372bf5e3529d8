package providers

import (
	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// PagesProvider searches page titles, gated on the edit-pages capability.
type PagesProvider struct {
	store    *storage.Store
	adminURL string
	siteURL  string
}

func NewPagesProvider(deps Deps) *PagesProvider {
	return &PagesProvider{store: deps.Store, adminURL: deps.AdminURL, siteURL: deps.SiteURL}
}

func (p *PagesProvider) Descriptor() core.Descriptor {
	return core.Descriptor{
		Name:        "search_pages",
		DisplayName: "Pages",
		Description: "Searches page titles",
	}
}

func (p *PagesProvider) Search(user core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	if !user.Can(core.CapEditPages) {
		return results, nil
	}

	docs, err := p.store.SearchDocuments([]string{storage.DocTypePage}, query)
	if err != nil {
		return results, err
	}

	for _, doc := range docs {
		if doc.Status == storage.StatusPrivate && !user.Can(core.CapReadPrivatePages) {
			continue
		}
		results = append(results, core.SearchResult{
			Text:        documentTitle(doc),
			Description: "Page",
			LinkURL:     documentLink(user, doc, p.adminURL, p.siteURL),
			IconClass:   "icon-page",
		})
	}

	return results, nil
}
