package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		is_guest      BOOLEAN NOT NULL DEFAULT FALSE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quit_profiles (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		quit_date           DATE NOT NULL,
		cigarettes_per_day  INTEGER NOT NULL,
		cost_per_pack       DOUBLE PRECISION NOT NULL,
		cigarettes_per_pack INTEGER NOT NULL DEFAULT 20,
		personal_goal       TEXT,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS check_ins (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date              DATE NOT NULL,
		craving_intensity INTEGER NOT NULL,
		mood              TEXT NOT NULL,
		notes             TEXT,
		created_at        TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_user_date ON check_ins (user_id, date DESC)`,
	`CREATE TABLE IF NOT EXISTS email_subscribers (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL UNIQUE,
		consent      BOOLEAN NOT NULL DEFAULT FALSE,
		consented_at TIMESTAMPTZ,
		source       TEXT NOT NULL DEFAULT 'unknown',
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		is_guest      BOOLEAN NOT NULL DEFAULT 0,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quit_profiles (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		quit_date           DATE NOT NULL,
		cigarettes_per_day  INTEGER NOT NULL,
		cost_per_pack       REAL NOT NULL,
		cigarettes_per_pack INTEGER NOT NULL DEFAULT 20,
		personal_goal       TEXT,
		created_at          DATETIME NOT NULL,
		updated_at          DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS check_ins (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		date              DATE NOT NULL,
		craving_intensity INTEGER NOT NULL,
		mood              TEXT NOT NULL,
		notes             TEXT,
		created_at        DATETIME NOT NULL,
		UNIQUE (user_id, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_check_ins_user_date ON check_ins (user_id, date DESC)`,
	`CREATE TABLE IF NOT EXISTS email_subscribers (
		id           TEXT PRIMARY KEY,
		email        TEXT NOT NULL UNIQUE,
		consent      BOOLEAN NOT NULL DEFAULT 0,
		consented_at DATETIME,
		source       TEXT NOT NULL DEFAULT 'unknown',
		created_at   DATETIME NOT NULL,
		updated_at   DATETIME NOT NULL
	)`,
}

// EnsureSchema creates the tables the repositories need if they are missing.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	stmts := postgresSchema
	if isSQLite(db) {
		stmts = sqliteSchema
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("repository: ensure schema: %w", err)
		}
	}
	return nil
}
