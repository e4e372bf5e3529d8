package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/menu"
	"github.com/aporotti/dashsearch/pkg/version"
)

// HandleSearch returns the result batch as a bare JSON array; the widget
// consumes it directly.
func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request, user core.User) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	// Queries below the configured minimum return an empty batch rather
	// than an error; the widget fires on every keystroke.
	if len([]rune(query)) < s.minQueryLength {
		s.writeJSON(w, http.StatusOK, []core.SearchResult{})
		return
	}

	results, err := s.searcher.Search(user, query)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Search failed", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) HandleListProviders(w http.ResponseWriter, r *http.Request, user core.User) {
	disabled, err := s.settings.DisabledProviders()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load settings", err.Error())
		return
	}
	disabledSet := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		disabledSet[name] = true
	}

	descriptors := s.registry.Descriptors()
	providers := make([]ProviderInfo, len(descriptors))
	for i, d := range descriptors {
		providers[i] = ProviderInfo{Descriptor: d, Enabled: !disabledSet[d.Name]}
	}

	s.writeJSON(w, http.StatusOK, ListProvidersResponse{
		Providers: providers,
		Count:     len(providers),
	})
}

// HandleGetSettings serves the widget bootstrap data. Any authenticated
// user may read it; only updates are restricted.
func (s *Server) HandleGetSettings(w http.ResponseWriter, r *http.Request, user core.User) {
	response, err := s.settingsResponse()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load settings", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleUpdateSettings(w http.ResponseWriter, r *http.Request, user core.User) {
	if !user.Can(core.CapManageOptions) {
		s.writeError(w, http.StatusForbidden, "Forbidden", "Managing settings requires an administrator account")
		return
	}

	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.DisabledProviders != nil {
		for _, name := range *req.DisabledProviders {
			if _, err := s.registry.Get(name); err != nil {
				s.writeError(w, http.StatusBadRequest, "Unknown provider",
					fmt.Sprintf("Provider '%s' is not registered", name))
				return
			}
		}
		if err := s.settings.SetDisabledProviders(*req.DisabledProviders); err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
			return
		}
	}
	if req.SearchShortcut != nil {
		if err := s.settings.SetShortcut(*req.SearchShortcut); err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
			return
		}
	}
	if req.AdminBarLayout != nil {
		if *req.AdminBarLayout != 0 && *req.AdminBarLayout != 1 {
			s.writeError(w, http.StatusBadRequest, "Invalid layout", "admin_bar_layout must be 0 or 1")
			return
		}
		if err := s.settings.SetAdminBarLayout(*req.AdminBarLayout); err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
			return
		}
	}
	if req.ShowResultsURL != nil {
		if err := s.settings.SetShowResultsURL(*req.ShowResultsURL); err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
			return
		}
	}
	if req.DeleteDataOnUninstall != nil {
		if err := s.settings.SetDeleteDataOnUninstall(*req.DeleteDataOnUninstall); err != nil {
			s.writeError(w, http.StatusInternalServerError, "Failed to save settings", err.Error())
			return
		}
	}

	response, err := s.settingsResponse()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to load settings", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) settingsResponse() (SettingsResponse, error) {
	disabled, err := s.settings.DisabledProviders()
	if err != nil {
		return SettingsResponse{}, err
	}
	if disabled == nil {
		disabled = []string{}
	}
	shortcut, err := s.settings.Shortcut()
	if err != nil {
		return SettingsResponse{}, err
	}
	layout, err := s.settings.AdminBarLayout()
	if err != nil {
		return SettingsResponse{}, err
	}
	showURL, err := s.settings.ShowResultsURL()
	if err != nil {
		return SettingsResponse{}, err
	}
	deleteData, err := s.settings.DeleteDataOnUninstall()
	if err != nil {
		return SettingsResponse{}, err
	}

	return SettingsResponse{
		DisabledProviders:     disabled,
		SearchShortcut:        shortcut,
		AdminBarLayout:        layout,
		ShowResultsURL:        showURL,
		DeleteDataOnUninstall: deleteData,
		MinQueryLength:        s.minQueryLength,
	}, nil
}

// HandleRefreshMenu accepts the admin menu the dashboard just rendered for
// the calling user and refreshes that user's cached snapshot.
func (s *Server) HandleRefreshMenu(w http.ResponseWriter, r *http.Request, user core.User) {
	var raw menu.RawMenu
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	changed, err := s.menus.Refresh(user.ID, raw)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to refresh menu cache", err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, MenuRefreshResponse{Changed: changed})
}

func (s *Server) HandleClearMenu(w http.ResponseWriter, r *http.Request, user core.User) {
	if err := s.menus.Clear(user.ID); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to clear menu cache", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

func (s *Server) HandleClearAllMenus(w http.ResponseWriter, r *http.Request, user core.User) {
	if !user.Can(core.CapManageOptions) {
		s.writeError(w, http.StatusForbidden, "Forbidden", "Clearing all menu caches requires an administrator account")
		return
	}
	if err := s.menus.ClearAll(); err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to clear menu caches", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, StatusResponse{Status: "cleared"})
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version.Version,
	}
	s.writeJSON(w, http.StatusOK, response)
}
