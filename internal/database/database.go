package database

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// InitDB opens the league database and migrates it to the latest schema.
// With an empty primaryURL the database is a local SQLite file (":memory:" for tests);
// otherwise it is the remote Turso database at primaryURL.
// The returned teardown releases the connection and must be called on shutdown.
func InitDB(dbPath string, primaryURL string, authToken string, migrationsDir string) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryURL == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", localDSN(dbPath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = migrate(db, migrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Warn("Error closing database connection", "error", err)
		}
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func localDSN(dbPath string) string {
	if dbPath == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return "file:" + dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

func migrate(db *sql.DB, migrationsDir string) error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetLogger(gooseLogger{})
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	log.Debug("Migrations completed", "dir", migrationsDir)
	return nil
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Fatalf(format string, v ...interface{}) { log.Fatalf(format, v...) }
func (gooseLogger) Printf(format string, v ...interface{}) { log.Debugf(format, v...) }
