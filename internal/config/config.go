package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return ""
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getOptional("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		LogLevel:      getOptional("LOG_LEVEL", "info"),
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		Slack: SlackConfig{
			Token:         getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID:     getOptional("SLACK_CHANNEL_ID", ""),
			SigningSecret: getOptional("SLACK_SIGNING_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr:     getOptional("REDIS_ADDR", ""),
			Password: getOptional("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
			TTL:      getDuration("CACHE_TTL", 5*time.Minute),
		},
		Inngest: InngestConfig{
			AppID:      getOptional("INNGEST_APP_ID", "war-scoreboard"),
			SigningKey: getOptional("INNGEST_SIGNING_KEY", ""),
			EventKey:   getOptional("INNGEST_EVENT_KEY", ""),
			Dev:        getOptional("INNGEST_DEV", "false") == "true",
		},
		ProjectID:   getOptional("GCP_PROJECT", ""),
		CORSOrigins: splitList(getOptional("CORS_ORIGINS", "*")),
		Ranking: RankingConfig{
			MinPerformanceMatches: getInt("MIN_PERFORMANCE_MATCHES", 3),
			AttendanceTop:         getInt("ATTENDANCE_TOP", 8),
		},
	}
	return cfg
}

func getOptional(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("Invalid integer in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn("Invalid duration in environment, using default", "key", key, "value", raw, "default", fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseLogLevel maps LOG_LEVEL onto a charmbracelet/log level, defaulting to info.
func ParseLogLevel(level string) log.Level {
	l, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return l
}
