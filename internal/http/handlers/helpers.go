package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/period"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// readTimeout bounds the store reads behind a single response.
const readTimeout = 10 * time.Second

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// errorResponse is the JSON body of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Unexpected errors are
// logged and reported as 500 without detail.
func writeError(w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, period.ErrInvalidPeriod),
		errors.Is(err, league.ErrInvalidMatch),
		errors.Is(err, league.ErrInvalidPlayer):
		status = http.StatusBadRequest
	case errors.Is(err, league.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, league.ErrNicknameTaken):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		writeJSON(w, status, errorResponse{Error: msg})
		return
	}
	log.Warn(msg, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// queryInt reads a positive integer query parameter, falling back when absent or invalid.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Warn("Invalid query parameter, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

// loadSnapshot reads the registry and the matches of the window.
func loadSnapshot(ctx context.Context, store league.Reader, filter league.MatchFilter) ([]league.Match, []league.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	matches, err := store.ListMatches(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	players, err := store.ListPlayers(ctx, league.PlayerFilter{})
	if err != nil {
		return nil, nil, err
	}
	return matches, players, nil
}

// serveCached writes the cached body for name, or computes, caches and writes it.
// The generation is read before computing so a result that raced with a write
// lands under a generation no reader asks for anymore. Cache failures only
// cost a recomputation.
func serveCached(w http.ResponseWriter, r *http.Request, c cache.Cache, m metrics.Metrics, name string, compute func(ctx context.Context) (any, error)) {
	ctx := r.Context()
	gen, err := c.Generation(ctx)
	cacheable := err == nil
	if err != nil {
		log.Warn("Cache generation read failed", "error", err)
	}
	key := cache.Key(gen, name)
	if cacheable {
		if body, ok, err := c.Get(ctx, key); err != nil {
			log.Warn("Cache read failed", "key", key, "error", err)
		} else if ok {
			m.IncCacheHits()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(body)
			return
		}
	}
	m.IncCacheMisses()

	v, err := compute(ctx)
	if err != nil {
		writeError(w, "Failed to compute ranking", err)
		return
	}
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, "Failed to encode ranking", err)
		return
	}
	if cacheable {
		if err := c.Set(ctx, key, body); err != nil {
			log.Warn("Cache write failed", "key", key, "error", err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(append(body, '\n'))
}

// invalidateAttempts bounds the retries of a failed cache invalidation.
const invalidateAttempts = 3

// invalidate drops cached rankings after a write.
func invalidate(ctx context.Context, c cache.Cache) {
	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		if err = c.Invalidate(ctx); err == nil {
			return
		}
		log.Warn("Failed to invalidate ranking cache", "attempt", attempt, "error", err)
	}
	log.Error("Ranking cache may serve stale results until its TTL expires", "error", err)
}
