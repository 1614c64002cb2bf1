package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/pubsub"
	"github.com/mauv0809/war-scoreboard/internal/scheduler"
)

// pushEnvelope is the body Pub/Sub push subscriptions deliver.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// MaintenancePushHandler runs maintenance for a pushed MaintenanceRequest.
// A non-2xx answer makes Pub/Sub redeliver, which is safe since snapshots are upserts.
func MaintenancePushHandler(job MaintenanceJob, pubsubClient pubsub.PubSubClient, clock period.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received maintenance message", "body", string(bodyBytes))

		var envelope pushEnvelope
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var req pubsub.MaintenanceRequest
		if err := pubsubClient.ProcessMessage(rawData, &req); err != nil {
			log.Error("Failed to decode maintenance request", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}

		anchor := clock.Now()
		if req.Year != 0 || req.Month != 0 {
			if _, err := period.ForMonth(req.Year, req.Month); err != nil {
				// Redelivery would fail the same way, so acknowledge.
				log.Warn("Dropping maintenance request for invalid period", "year", req.Year, "month", req.Month, "error", err)
				w.Write([]byte("OK"))
				return
			}
			anchor = scheduler.AnchorFor(req.Year, req.Month)
		}

		dryRun := req.DryRun || IsDryRunFromContext(r)
		if _, err := job.RunScheduled(r.Context(), anchor, dryRun); err != nil {
			log.Error("Pushed maintenance run failed", "subscription", envelope.Subscription, "error", err)
			http.Error(w, "Maintenance failed", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
