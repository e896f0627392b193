package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS study_items (
		id TEXT PRIMARY KEY,
		source_page_id TEXT NOT NULL,
		source_page_title TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		item_type TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		tags TEXT NOT NULL DEFAULT '[]',
		ordinal INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_study_items_page ON study_items (source_page_id, ordinal)`,
	`CREATE TABLE IF NOT EXISTS review_states (
		user_id BIGINT NOT NULL,
		item_id TEXT NOT NULL,
		correct_count INTEGER NOT NULL DEFAULT 0,
		incorrect_count INTEGER NOT NULL DEFAULT 0,
		streak INTEGER NOT NULL DEFAULT 0,
		interval_days INTEGER NOT NULL DEFAULT 1,
		ease_factor REAL NOT NULL DEFAULT 2.5,
		last_reviewed TIMESTAMP,
		next_review TIMESTAMP NOT NULL,
		version BIGINT NOT NULL DEFAULT 1,
		PRIMARY KEY (user_id, item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_states_due ON review_states (user_id, next_review)`,
}

// Migrate creates the schema when it does not exist yet. The DDL sticks to
// the dialect subset shared by sqlite and postgres.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
