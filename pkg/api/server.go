// Package api exposes the search engine over HTTP: the search endpoint the
// dashboard widget polls, the settings endpoints behind the admin screen,
// and the menu snapshot endpoints the dashboard posts to after rendering.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/log"
	"github.com/aporotti/dashsearch/pkg/menu"
	"github.com/aporotti/dashsearch/pkg/search"
	"github.com/aporotti/dashsearch/pkg/settings"
	"github.com/aporotti/dashsearch/pkg/storage"
)

type Server struct {
	registry       *core.Registry
	store          *storage.Store
	searcher       *search.Service
	settings       *settings.Store
	menus          *menu.Cache
	minQueryLength int
	logger         *log.Logger
}

func NewServer(registry *core.Registry, store *storage.Store, searcher *search.Service, opts *settings.Store, menus *menu.Cache, minQueryLength int) *Server {
	return &Server{
		registry:       registry,
		store:          store,
		searcher:       searcher,
		settings:       opts,
		menus:          menus,
		minQueryLength: minQueryLength,
		logger:         log.ForComponent("api"),
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

// authenticated wraps a handler with bearer-token authentication. The
// resolved user is passed to the handler; requests without a valid token
// get a 401.
func (s *Server) authenticated(next func(w http.ResponseWriter, r *http.Request, user core.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		user, err := s.store.UserByToken(token)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				s.writeError(w, http.StatusUnauthorized, "Unauthorized", "A valid API token is required")
				return
			}
			s.logger.Errorf("resolving API token: %v", err)
			s.writeError(w, http.StatusInternalServerError, "Internal error", "Failed to authenticate request")
			return
		}
		next(w, r, user)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
