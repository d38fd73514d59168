package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order on every open. Statements must be
// idempotent (CREATE ... IF NOT EXISTS).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		avatar_ref TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		role    TEXT NOT NULL CHECK(role IN ('admin','user'))
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		token      TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		priority      TEXT NOT NULL CHECK(priority IN ('urgent','later','done')),
		assignee      TEXT NOT NULL DEFAULT '',
		due_date      TEXT,
		details       TEXT NOT NULL DEFAULT '',
		tags          TEXT NOT NULL DEFAULT '[]',
		created_by    TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS documents (
		id            TEXT PRIMARY KEY,
		file_name     TEXT NOT NULL,
		file_type     TEXT NOT NULL CHECK(file_type IN ('word','pdf')),
		storage_ref   TEXT NOT NULL DEFAULT '',
		uploaded_by   TEXT NOT NULL,
		uploaded_at   TEXT NOT NULL,
		priority      TEXT NOT NULL CHECK(priority IN ('urgent','later','done')),
		display_order INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS members (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		date_of_birth TEXT NOT NULL,
		unit          TEXT NOT NULL,
		team          TEXT NOT NULL DEFAULT '',
		file_name     TEXT NOT NULL DEFAULT '',
		storage_ref   TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_priority ON tasks(priority)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
