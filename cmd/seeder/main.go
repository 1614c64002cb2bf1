package main

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/war-scoreboard/internal/database"
	"github.com/mauv0809/war-scoreboard/internal/league"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "war.db",
		"MIGRATIONS_DIR": "./migrations",
		"SEED_MATCHES":   "200",
	}
	for _, key := range []string{"DB_NAME", "MIGRATIONS_DIR", "SEED_MATCHES", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}
	return config
}

var dummyPlayers = []league.NewPlayer{
	{Name: "Seeder General A", Nickname: "alpha"},
	{Name: "Seeder General B", Nickname: "bravo"},
	{Name: "Seeder General C", Nickname: "charlie"},
	{Name: "Seeder General D", Nickname: "delta"},
	{Name: "Seeder General E", Nickname: "echo"},
	{Name: "Seeder General F", Nickname: "foxtrot"},
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	numMatches, err := strconv.Atoi(cfg["SEED_MATCHES"])
	if err != nil || numMatches <= 0 {
		log.Fatalf("SEED_MATCHES must be a positive integer, got %q", cfg["SEED_MATCHES"])
	}

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	ctx := context.Background()
	store := league.New(db)

	ids := make([]string, 0, len(dummyPlayers))
	for _, np := range dummyPlayers {
		p, err := store.GetPlayerByNickname(ctx, np.Nickname)
		if err != nil {
			p, err = store.RegisterPlayer(ctx, np)
		}
		if err != nil {
			log.Fatalf("Failed to ensure dummy player %s: %s", np.Nickname, err)
		}
		ids = append(ids, p.ID)
	}
	log.Info("Ensured dummy players exist.", "count", len(ids))

	log.Info("Preparing to insert dummy matches...", "total", numMatches)
	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		nm := randomMatch(ids, time.Now())
		if _, err := store.RecordMatch(ctx, nm); err != nil {
			log.Fatalf("Failed to record match %d: %s", i, err)
		}
		if (i+1)%50 == 0 || i+1 == numMatches {
			log.Info("Inserted matches", "completed", i+1, "total", numMatches)
		}
	}

	log.Info("Successfully inserted all dummy matches.", "duration", time.Since(startTime))
}

// randomMatch picks 3 to 6 distinct players and a winner among them, on a day of the past year.
func randomMatch(ids []string, now time.Time) league.NewMatch {
	shuffled := append([]string(nil), ids...)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	size := 3 + rand.Intn(len(shuffled)-2)
	if size > len(shuffled) {
		size = len(shuffled)
	}
	participants := shuffled[:size]

	return league.NewMatch{
		Date:           now.AddDate(0, 0, -rand.Intn(365)).Format(league.DateLayout),
		Type:           league.MatchTypes[rand.Intn(len(league.MatchTypes))],
		WinnerID:       participants[rand.Intn(len(participants))],
		ParticipantIDs: participants,
	}
}
