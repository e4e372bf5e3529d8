package providers

import (
	"fmt"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// UsersProvider searches user accounts by display name or login. Only
// callers who can manage users see anything.
type UsersProvider struct {
	store    *storage.Store
	adminURL string
}

func NewUsersProvider(deps Deps) *UsersProvider {
	return &UsersProvider{store: deps.Store, adminURL: deps.AdminURL}
}

func (p *UsersProvider) Descriptor() core.Descriptor {
	return core.Descriptor{
		Name:        "search_users",
		DisplayName: "Users",
		Description: "Searches users by display name and username",
	}
}

func (p *UsersProvider) Search(user core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	if !user.Can(core.CapEditUsers) {
		return results, nil
	}

	users, err := p.store.SearchUsers(query)
	if err != nil {
		return results, err
	}

	for _, u := range users {
		results = append(results, core.SearchResult{
			Text:        fmt.Sprintf("%s (Username: %s)", u.DisplayName, u.Login),
			Description: "User",
			LinkURL:     fmt.Sprintf("%s/user-edit.php?user_id=%d", p.adminURL, u.ID),
			IconClass:   "icon-user",
		})
	}

	return results, nil
}
