package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func HealthCheckHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				log.Error("Health check failed", "error", err)
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}
