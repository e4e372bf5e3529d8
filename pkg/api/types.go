package api

import (
	"time"

	"github.com/aporotti/dashsearch/pkg/core"
)

// ProviderInfo is a provider descriptor plus its current enabled state.
type ProviderInfo struct {
	core.Descriptor
	Enabled bool `json:"enabled"`
}

type ListProvidersResponse struct {
	Providers []ProviderInfo `json:"providers"`
	Count     int            `json:"count"`
}

// SettingsResponse doubles as the widget bootstrap payload, so it carries
// the read-only minimum query length alongside the stored settings.
type SettingsResponse struct {
	DisabledProviders     []string `json:"disabled_providers"`
	SearchShortcut        string   `json:"search_shortcut"`
	AdminBarLayout        int      `json:"admin_bar_layout"`
	ShowResultsURL        bool     `json:"show_results_url"`
	DeleteDataOnUninstall bool     `json:"delete_data_on_uninstall"`
	MinQueryLength        int      `json:"min_query_length"`
}

// UpdateSettingsRequest carries a partial settings update; absent fields are
// left untouched.
type UpdateSettingsRequest struct {
	DisabledProviders     *[]string `json:"disabled_providers,omitempty"`
	SearchShortcut        *string   `json:"search_shortcut,omitempty"`
	AdminBarLayout        *int      `json:"admin_bar_layout,omitempty"`
	ShowResultsURL        *bool     `json:"show_results_url,omitempty"`
	DeleteDataOnUninstall *bool     `json:"delete_data_on_uninstall,omitempty"`
}

type MenuRefreshResponse struct {
	Changed bool `json:"changed"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
