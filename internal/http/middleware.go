package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/http/handlers"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/rs/cors"
	"github.com/slack-go/slack"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// timingMiddleware observes the handler duration under the route pattern.
func timingMiddleware(m metrics.Metrics, route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			m.ObserveRequestDuration(route, time.Since(start).Seconds())
		})
	}
}

// slackVerifierMiddleware rejects requests without a valid Slack signature.
// With an empty secret every request passes, which is what local runs use.
func slackVerifierMiddleware(secret string) Middleware {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			log.Warn("SLACK_SIGNING_SECRET not set, slash commands are not verified")
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			verifier, err := slack.NewSecretsVerifier(r.Header, secret)
			if err != nil {
				log.Warn("Invalid Slack signature headers", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			body, err := io.ReadAll(io.TeeReader(r.Body, &verifier))
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			if err := verifier.Ensure(); err != nil {
				log.Warn("Slack signature mismatch", "error", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

func corsHandler(origins []string, next http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
	})
	return c.Handler(next)
}
