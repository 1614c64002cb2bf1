package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventMatchRecorded        EventType = "war-match-recorded"
	EventMaintenanceRequested EventType = "war-maintenance-requested"
)

// MatchRecorded is published after a match has been stored.
type MatchRecorded struct {
	MatchID        string   `msgpack:"match_id" json:"match_id"`
	Date           string   `msgpack:"date" json:"date"`
	Type           string   `msgpack:"type" json:"type"`
	WinnerID       string   `msgpack:"winner_id" json:"winner_id"`
	ParticipantIDs []string `msgpack:"participant_ids" json:"participant_ids"`
}

// MaintenanceRequest asks for a snapshot. Zero Year and Month mean the
// scheduled run for the previous month.
type MaintenanceRequest struct {
	Year   int  `msgpack:"year" json:"year"`
	Month  int  `msgpack:"month" json:"month"`
	DryRun bool `msgpack:"dry_run" json:"dry_run"`
}
