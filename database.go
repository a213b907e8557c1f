package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDB connects to the database named by cfg.DatabaseURL. Postgres URLs get
// a pooled connection; sqlite URLs open a local file.
func openDB(cfg Config) (*gorm.DB, error) {
	dialector, isSQLite, err := dialectorFor(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	if isSQLite {
		// sqlite allows one writer at a time; serialize through one connection
		if err := db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		// a pool of 5 that may overflow by 10 under load
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(15)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// dialectorFor maps a DATABASE_URL onto a gorm dialector. sqlite URLs follow
// the sqlite:///relative and sqlite:////absolute convention. Any other scheme
// is an error rather than a guess.
func dialectorFor(url string) (gorm.Dialector, bool, error) {
	scheme, _, ok := strings.Cut(url, "://")
	if !ok {
		return nil, false, fmt.Errorf("DATABASE_URL %q has no scheme", url)
	}
	switch scheme {
	case "postgres", "postgresql":
		return postgres.Open(url), false, nil
	case "sqlite":
		return sqlite.Open(sqlitePath(url)), true, nil
	default:
		return nil, false, fmt.Errorf("unsupported DATABASE_URL scheme %q", scheme)
	}
}

func sqlitePath(url string) string {
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return strings.TrimPrefix(url, "sqlite:///")
	case strings.HasPrefix(url, "sqlite://"):
		return strings.TrimPrefix(url, "sqlite://")
	default:
		return url
	}
}

// migrate creates or updates the content tables.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}
