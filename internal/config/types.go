package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	LogLevel      string
	Turso         TursoConfig
	Slack         SlackConfig
	Redis         RedisConfig
	Inngest       InngestConfig
	ProjectID     string
	CORSOrigins   []string
	Ranking       RankingConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type InngestConfig struct {
	SigningKey string
	EventKey   string
	AppID      string
	Dev        bool
}

// Enabled reports whether the scheduler has credentials or runs against the dev server.
func (c InngestConfig) Enabled() bool {
	return c.Dev || c.SigningKey != ""
}

// RankingConfig holds the tunables of the ranking views.
type RankingConfig struct {
	MinPerformanceMatches int
	AttendanceTop         int
}
