package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/war-scoreboard/internal/cache"
	"github.com/mauv0809/war-scoreboard/internal/config"
	"github.com/mauv0809/war-scoreboard/internal/database"
	server "github.com/mauv0809/war-scoreboard/internal/http"
	"github.com/mauv0809/war-scoreboard/internal/league"
	"github.com/mauv0809/war-scoreboard/internal/maintenance"
	"github.com/mauv0809/war-scoreboard/internal/metrics"
	"github.com/mauv0809/war-scoreboard/internal/notifier"
	"github.com/mauv0809/war-scoreboard/internal/notifier/slack"
	"github.com/mauv0809/war-scoreboard/internal/period"
	"github.com/mauv0809/war-scoreboard/internal/pubsub"
	"github.com/mauv0809/war-scoreboard/internal/scheduler"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	log.SetLevel(config.ParseLogLevel(cfg.LogLevel))

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx := context.Background()
	store := league.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	clock := period.SystemClock{}

	var n notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Token != "" {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Warn("SLACK_BOT_TOKEN not set, announcements are only logged")
	}

	pubsubClient, err := pubsub.New(ctx, cfg.ProjectID)
	if err != nil {
		log.Fatalf("Failed to initialize pubsub: %s", err)
	}
	defer pubsubClient.Close()

	var rankingCache cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedis(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to redis: %s", err)
		}
		defer redisCache.Close()
		rankingCache = redisCache
	}

	job := maintenance.New(store, n, metricsSvc)

	var sched scheduler.Scheduler
	if cfg.Inngest.Enabled() {
		inngestClient, err := inngestgo.NewClient(inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
			Dev:        &cfg.Inngest.Dev,
		})
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		sched, err = scheduler.New(inngestClient, job, clock)
		if err != nil {
			log.Fatalf("Failed to register scheduled functions: %s", err)
		}
	} else {
		log.Info("Inngest not configured, monthly maintenance must be triggered manually")
	}

	s := server.NewServer(
		store,
		db,
		metricsSvc,
		metricsHandler,
		cfg,
		n,
		rankingCache,
		job,
		pubsubClient,
		sched,
		clock,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
