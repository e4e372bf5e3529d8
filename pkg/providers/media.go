package providers

import (
	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// MediaProvider searches media library attachments by title. Callers need
// the upload capability; items the caller cannot edit carry no link since
// attachments have no public permalink of their own.
type MediaProvider struct {
	store    *storage.Store
	adminURL string
}

func NewMediaProvider(deps Deps) *MediaProvider {
	return &MediaProvider{store: deps.Store, adminURL: deps.AdminURL}
}

func (p *MediaProvider) Descriptor() core.Descriptor {
	return core.Descriptor{
		Name:        "search_media",
		DisplayName: "Media",
		Description: "Searches media library items",
	}
}

func (p *MediaProvider) Search(user core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	if !user.Can(core.CapUploadFiles) {
		return results, nil
	}

	docs, err := p.store.SearchDocuments([]string{storage.DocTypeAttachment}, query)
	if err != nil {
		return results, err
	}

	for _, doc := range docs {
		title := doc.Title
		if title == "" {
			title = core.NoTitlePlaceholder
		}

		r := core.SearchResult{
			Text:        title,
			Description: "Media",
			IconClass:   "icon-media",
		}
		if canEditDocument(user, doc) {
			r.LinkURL = editLink(p.adminURL, doc.ID)
		}
		if doc.ThumbURL != "" {
			r.Preview = `<img src="` + doc.ThumbURL + `">`
		}
		results = append(results, r)
	}

	return results, nil
}
