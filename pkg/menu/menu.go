// Package menu maintains per-user snapshots of the admin navigation menu.
// The dashboard posts the raw menu it rendered for the signed-in user; this
// package sanitizes it and caches the result so the menu search provider can
// answer queries without the dashboard re-sending anything.
package menu

import (
	"html"
	"net/url"
	"strings"
)

// RawMenuItem is one top-level entry exactly as the dashboard renders it,
// markup and all.
type RawMenuItem struct {
	Label string `json:"label"`
	Route string `json:"route"`
	Icon  string `json:"icon"`
	Class string `json:"class"`
}

// RawSubmenuItem is one child entry of a top-level menu item.
type RawSubmenuItem struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// RawMenu is the payload the dashboard posts after rendering the admin menu
// for a user. Submenus are keyed by the parent item's route.
type RawMenu struct {
	Items    []RawMenuItem               `json:"items"`
	Submenus map[string][]RawSubmenuItem `json:"submenus"`
}

// MenuItem is a sanitized top-level entry.
type MenuItem struct {
	Label string `json:"label"`
	Route string `json:"route"`
	Icon  string `json:"icon"`
}

// SubmenuItem is a sanitized child entry.
type SubmenuItem struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// Snapshot is the sanitized, cacheable form of a user's admin menu.
type Snapshot struct {
	Items    []MenuItem               `json:"items"`
	Submenus map[string][]SubmenuItem `json:"submenus"`
}

// Sanitize strips rendering artifacts from a raw menu: separators, markup in
// labels, and transient query parameters in routes. Entries that end up with
// no label are dropped.
func Sanitize(raw RawMenu) Snapshot {
	snap := Snapshot{Submenus: map[string][]SubmenuItem{}}

	for _, item := range raw.Items {
		if strings.Contains(item.Class, "separator") {
			continue
		}
		label := cleanLabel(item.Label)
		if label == "" {
			continue
		}
		snap.Items = append(snap.Items, MenuItem{
			Label: label,
			Route: cleanRoute(item.Route),
			Icon:  item.Icon,
		})
	}

	for parent, children := range raw.Submenus {
		parentRoute := cleanRoute(parent)
		if parentRoute == "" {
			continue
		}
		var items []SubmenuItem
		for _, child := range children {
			label := cleanLabel(child.Label)
			if label == "" {
				continue
			}
			items = append(items, SubmenuItem{
				Label: label,
				Route: cleanRoute(child.Route),
			})
		}
		if len(items) > 0 {
			snap.Submenus[parentRoute] = items
		}
	}

	return snap
}

// cleanLabel cuts the label at the first markup tag and trims whitespace.
// Dashboard menus append update counts and badges as spans after the text.
func cleanLabel(label string) string {
	if i := strings.IndexByte(label, '<'); i >= 0 {
		label = label[:i]
	}
	return strings.TrimSpace(html.UnescapeString(label))
}

// cleanRoute unescapes HTML entities in the route and removes the transient
// "return" redirect parameter some screens append.
func cleanRoute(route string) string {
	route = html.UnescapeString(route)

	path, query, found := strings.Cut(route, "?")
	if !found {
		return route
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return route
	}
	values.Del("return")
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
