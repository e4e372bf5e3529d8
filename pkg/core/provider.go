package core

// Provider represents a self-contained search source producing results for
// one content category (menu items, documents, users, media, ...).
//
// Providers are pure readers: a Search call may query the provider's backing
// store but must not mutate any shared state. The contract is append-only:
// Search receives the results accumulated by previously invoked providers
// and returns the same slice with zero or more new entries appended, never
// reordering or removing prior entries. Merge order therefore equals
// provider invocation order, which equals registration order.
//
// Matching is case-insensitive substring containment on one or more derived
// label fields. No tokenization, stemming or relevance scoring.
//
// A provider that has nothing to contribute (no permission, empty cache, no
// matches) returns the input slice unchanged with a nil error. Errors are
// reserved for backing-store failures; the aggregator isolates them so one
// failing provider degrades to zero results instead of aborting the batch.
type Provider interface {
	// Descriptor returns the registration record for this provider.
	// Descriptor().Name must be stable: it is persisted in the disabled
	// set and shown (via DisplayName) in the settings UI.
	Descriptor() Descriptor

	// Search appends every item of this provider's category whose label
	// contains query (case-insensitive) and that the given user is allowed
	// to discover.
	Search(user User, results []SearchResult, query string) ([]SearchResult, error)
}

// Descriptor is the registration record for a search provider.
type Descriptor struct {
	// Name is the unique machine key, used for persistence of the
	// disabled state and for dispatch.
	Name string `json:"name"`

	// DisplayName is the label shown in the settings UI.
	DisplayName string `json:"display_name"`

	// Description is a one-line explanation of what the provider searches.
	Description string `json:"description"`
}
