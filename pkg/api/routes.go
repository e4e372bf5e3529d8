package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/search", s.authenticated(s.HandleSearch))
	mux.HandleFunc("GET /api/providers", s.authenticated(s.HandleListProviders))
	mux.HandleFunc("GET /api/settings", s.authenticated(s.HandleGetSettings))
	mux.HandleFunc("PUT /api/settings", s.authenticated(s.HandleUpdateSettings))
	mux.HandleFunc("POST /api/menu", s.authenticated(s.HandleRefreshMenu))
	mux.HandleFunc("DELETE /api/menu", s.authenticated(s.HandleClearMenu))
	mux.HandleFunc("DELETE /api/menu/all", s.authenticated(s.HandleClearAllMenus))
	mux.HandleFunc("GET /health", s.HandleHealth)
}
