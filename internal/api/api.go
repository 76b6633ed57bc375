// Package api handles routes and their associated handlers
package api

import (
	"net/http"

	"github.com/YouWantToPinch/pincher-notes/internal/auth"
)

var (
	adminsOnly = []auth.Role{auth.ADMIN}
	anyMember  = []auth.Role{auth.ADMIN, auth.USER}
)

// SetupMux registers every route and wraps the mux in the
// cross-cutting middleware shared by all requests.
func SetupMux(cfg *APIConfig) http.Handler {
	mux := http.NewServeMux()

	// middleware
	mdAuth := cfg.middlewareAuthenticate
	mdRoles := cfg.middlewareRequireRoles

	// REGISTER API HANDLERS
	// ======================

	// Admin & State
	mux.HandleFunc("GET /{$}", cfg.handleReadiness)
	mux.HandleFunc("GET /api/healthz", cfg.handleReadiness)
	mux.HandleFunc("GET /admin/users/count", cfg.handleGetTotalUserCount)
	// User authentication
	mux.HandleFunc("POST /api/auth/register", cfg.handleRegister)
	mux.HandleFunc("POST /api/auth/login", cfg.handleLogin)
	// User profile & role-gated areas
	mux.HandleFunc("PUT /api/user/profile", mdAuth(cfg.handleUpdateProfile))
	mux.HandleFunc("GET /api/user/admin", mdAuth(mdRoles(adminsOnly, cfg.handleAdminArea)))
	mux.HandleFunc("GET /api/user/user", mdAuth(mdRoles(anyMember, cfg.handleUserArea)))
	// Notes
	mux.HandleFunc("POST /api/notes", mdAuth(cfg.handleCreateNote))
	mux.HandleFunc("GET /api/notes", mdAuth(cfg.handleGetNotes))
	mux.HandleFunc("GET /api/notes/{note_id}", mdAuth(cfg.handleGetNote))
	mux.HandleFunc("PUT /api/notes/{note_id}", mdAuth(cfg.handleUpdateNote))
	mux.HandleFunc("DELETE /api/notes/{note_id}", mdAuth(cfg.handleDeleteNote))

	return cfg.middlewareRecover(
		cfg.middlewareLogRequests(
			middlewareSecurityHeaders(
				cfg.middlewareCORS(mux))))
}
