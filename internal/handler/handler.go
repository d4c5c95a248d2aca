package handler

import (
	"context"
	"net/http"
)

// Pinger reports whether a backing service is reachable.
// *pgxpool.Pool and *notify.NatsNotifier both satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the endpoints shared by every route: health and CORS.
type Handler struct {
	checks      map[string]Pinger
	frontendURL string
}

// New returns a Handler whose health endpoint pings each entry of checks.
func New(frontendURL string, checks map[string]Pinger) *Handler {
	return &Handler{checks: checks, frontendURL: frontendURL}
}

// CORS allows the portfolio frontend to call the API with credentials.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", h.frontendURL)
		header.Set("Vary", "Origin")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		header.Set("Access-Control-Expose-Headers", "X-Request-ID")
		header.Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
