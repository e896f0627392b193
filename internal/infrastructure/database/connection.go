package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/eslsoft/repaso/internal/infrastructure/config"
)

// NewConnection opens the configured database and returns the handle with a
// cleanup func.
func NewConnection(cfg *config.Config) (*sqlx.DB, func(), error) {
	driver := cfg.Database.Driver
	switch driver {
	case "sqlite3", "postgres":
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	if driver == "sqlite3" {
		if dir := filepath.Dir(cfg.Database.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	}

	db, err := sqlx.Connect(driver, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("enable foreign keys: %w", err)
		}
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
	}

	cleanup := func() { _ = db.Close() }
	return db, cleanup, nil
}
