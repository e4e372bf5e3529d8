package providers

import (
	"sort"
	"strings"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/menu"
)

// MenuProvider searches the caller's cached admin menu. Because the snapshot
// was captured from the menu the dashboard actually rendered for that user,
// permission filtering is already baked in: a user can only ever find menu
// entries they can see.
type MenuProvider struct {
	menus    *menu.Cache
	adminURL string
}

func NewMenuProvider(deps Deps) *MenuProvider {
	return &MenuProvider{menus: deps.Menus, adminURL: deps.AdminURL}
}

func (p *MenuProvider) Descriptor() core.Descriptor {
	return core.Descriptor{
		Name:        "search_admin_menu",
		DisplayName: "Admin menu",
		Description: "Searches the admin menu and submenu entries visible to you",
	}
}

func (p *MenuProvider) Search(user core.User, results []core.SearchResult, query string) ([]core.SearchResult, error) {
	snap, ok, err := p.menus.Snapshot(user.ID)
	if err != nil {
		return results, err
	}
	if !ok {
		return results, nil
	}

	seen := map[string]bool{}
	for _, item := range snap.Items {
		seen[item.Route] = true

		if matchesQuery(item.Label, query) {
			r := core.SearchResult{
				Text:        item.Label,
				Description: "Admin menu item",
				LinkURL:     adminLink(p.adminURL, item.Route),
			}
			r.IconClass, r.Style = menuIcon(item.Icon)
			results = append(results, r)
		}

		results = p.appendSubmenuMatches(results, snap, item, query)
	}

	// Submenu groups whose parent is not in the top-level menu (hidden
	// settings screens and the like) are still searchable, without the
	// parent prefix. Sorted for deterministic batch order.
	var orphans []string
	for parent := range snap.Submenus {
		if !seen[parent] {
			orphans = append(orphans, parent)
		}
	}
	sort.Strings(orphans)
	for _, parent := range orphans {
		for _, child := range snap.Submenus[parent] {
			if !matchesQuery(child.Label, query) {
				continue
			}
			results = append(results, core.SearchResult{
				Text:        child.Label,
				Description: "Admin menu item",
				LinkURL:     submenuLink(p.adminURL, parent, child.Route),
			})
		}
	}

	return results, nil
}

func (p *MenuProvider) appendSubmenuMatches(results []core.SearchResult, snap menu.Snapshot, parent menu.MenuItem, query string) []core.SearchResult {
	for _, child := range snap.Submenus[parent.Route] {
		if !matchesQuery(child.Label, query) {
			continue
		}
		r := core.SearchResult{
			Text:        parent.Label + " / " + child.Label,
			Description: "Admin menu item",
			LinkURL:     submenuLink(p.adminURL, parent.Route, child.Route),
		}
		r.IconClass, r.Style = menuIcon(parent.Icon)
		results = append(results, r)
	}
	return results
}

// submenuLink resolves a child route against its parent. Screen files link
// directly; slugs are routed through the parent screen when the parent is a
// file, otherwise through admin.php.
func submenuLink(adminURL, parentRoute, childRoute string) string {
	if strings.Contains(childRoute, ".php") {
		return adminURL + "/" + childRoute
	}
	if strings.Contains(parentRoute, ".php") {
		return adminURL + "/" + parentRoute + "?page=" + childRoute
	}
	return adminURL + "/admin.php?page=" + childRoute
}

// menuIcon maps a raw menu icon to either an icon class or an inline style.
// Symbolic icon names become classes; inline image data becomes a
// background-image style; anything else falls through to the aggregator's
// default icon.
func menuIcon(icon string) (iconClass, style string) {
	switch {
	case icon == "":
		return "", ""
	case strings.HasPrefix(icon, "data:image"):
		return "", "background-image: url('" + icon + "');"
	default:
		return icon, ""
	}
}
