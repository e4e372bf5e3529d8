package providers

import (
	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// ContentTypesProvider searches every registered custom content type in one
// pass. It reads the content-type registry on each call, so a type added at
// runtime is searchable immediately without re-registering providers.
type ContentTypesProvider struct {
	store    *storage.Store
	adminURL string
	siteURL  string
}

func NewContentTypesProvider(deps Deps) *ContentTypesProvider {
	return &ContentTypesProvider{store: deps.Store, adminURL: deps.AdminURL, siteURL: deps.SiteURL}
}

func (p *ContentTypesProvider) Descriptor() core.Descriptor {
	return core.Descriptor{
		Name:        "search_cpt",
		DisplayName: "Custom content types",
		Description: "Searches entries of registered custom content types",
	}
}

func (p *ContentTypesProvider) Search(user core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	if !user.Can(core.CapEditPosts) {
		return results, nil
	}

	types, err := p.store.CustomContentTypes()
	if err != nil {
		return results, err
	}
	if len(types) == 0 {
		return results, nil
	}

	byName := make(map[string]storage.ContentType, len(types))
	names := make([]string, 0, len(types))
	for _, ct := range types {
		byName[ct.Name] = ct
		names = append(names, ct.Name)
	}

	docs, err := p.store.SearchDocuments(names, query)
	if err != nil {
		return results, err
	}

	for _, doc := range docs {
		if doc.Status == storage.StatusPrivate && !user.Can(core.CapReadPrivatePosts) {
			continue
		}

		ct := byName[doc.DocType]
		icon := ct.Icon
		if icon == "" {
			icon = "icon-document"
		}
		results = append(results, core.SearchResult{
			Text:        documentTitle(doc),
			Description: ct.SingularLabel,
			LinkURL:     documentLink(user, doc, p.adminURL, p.siteURL),
			IconClass:   icon,
		})
	}

	return results, nil
}
