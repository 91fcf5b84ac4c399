// Package health exposes liveness and readiness endpoints for the API.
package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger is satisfied by both storage clients (DynamoDB and Mongo).
type Pinger interface {
	Ping(ctx context.Context) error
}

type status struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// New builds the health check handler. Liveness only reports the process;
// readiness also pings the storage backend within opTimeout.
func New(log *slog.Logger, p Pinger, opTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), opTimeout)
		defer cancel()

		if err := p.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readiness failed", "err", err)
			}
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	return r
}

func writeStatus(w http.ResponseWriter, code int, state string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status{Status: state, Service: "autoquote"})
}
