package core

// FallbackIconClass is applied during post-processing to any result that
// carries neither an icon class nor an inline style. The front-end widget
// maps it to a generic magnifying-glass glyph.
const FallbackIconClass = "search-result-icon-default"

// NoTitlePlaceholder replaces an empty source title so every result renders
// with visible text.
const NoTitlePlaceholder = "(no title)"

// SearchResult represents one discoverable, navigable item in a search
// response batch.
//
// Results are produced by providers and normalized by the aggregator:
// the ID is assigned sequentially (1..N) in final batch order and carries
// no identity across requests. An empty LinkURL means the caller has no
// permission to open the item (or the item has no destination); the widget
// renders an explanatory message instead of a link.
//
// Exactly one of IconClass and Style should be non-empty. When both are
// empty the aggregator sets IconClass to FallbackIconClass.
type SearchResult struct {
	ID          int    `json:"id"`
	Text        string `json:"text"`
	Description string `json:"description"`
	LinkURL     string `json:"link_url"`
	IconClass   string `json:"icon_class"`
	Style       string `json:"style"`
	Preview     string `json:"preview,omitempty"`
}
