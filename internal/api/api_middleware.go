package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/YouWantToPinch/pincher-notes/internal/auth"
)

// ================= MIDDLEWARE ================= //

type ctxKey string

const ctxIdentity = ctxKey("identity")

// middlewareAuthenticate authenticates JSON Web Tokens
// before passing off requests to another handler.
func (cfg *APIConfig) middlewareAuthenticate(next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := auth.GetBearerToken(r.Header)
		if err != nil {
			respondWithError(w, KindUnauthenticated, "No token provided", err)
			return
		}
		identity, err := auth.ValidateJWT(tokenString, cfg.secret, signingAlgorithm)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			respondWithError(w, KindUnauthenticated, msg, err)
			return
		}
		ctx := context.WithValue(r.Context(), ctxIdentity, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// middlewareRequireRoles rejects callers whose role is not in allowed.
// It must run after middlewareAuthenticate; on rejection next never runs.
func (cfg *APIConfig) middlewareRequireRoles(allowed []auth.Role, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromContext(r.Context())
		if !ok {
			respondWithError(w, KindUnauthenticated, "No identity on request", nil)
			return
		}
		if !slices.Contains(allowed, identity.Role) {
			respondWithError(w, KindForbidden, "Access denied",
				fmt.Errorf("role %q not permitted", identity.Role))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// middlewareCORS allows the configured frontend origin to call the API.
func (cfg *APIConfig) middlewareCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if cfg.frontendURL == "" || cfg.frontendURL == "*" {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Access-Control-Allow-Origin", cfg.frontendURL)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func middlewareSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("X-DNS-Prefetch-Control", "off")
		next.ServeHTTP(w, r)
	})
}

// middlewareRecover turns a handler panic into a 500 response.
func (cfg *APIConfig) middlewareRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				respondWithError(w, KindInternal, "Something went wrong", fmt.Errorf("panic: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (cfg *APIConfig) middlewareLogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		slog.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)))
	})
}

// ============== HELPERS =================

func identityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(ctxIdentity).(auth.Identity)
	if !ok {
		slog.Warn("failed to retrieve identity from context")
		return auth.Identity{}, false
	}
	return identity, true
}
