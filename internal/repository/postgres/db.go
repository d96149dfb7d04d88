// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables this service needs if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			partition TEXT NOT NULL,
			id        TEXT NOT NULL,
			doc       JSONB NOT NULL,
			PRIMARY KEY (partition, id)
		)`,
		`CREATE TABLE IF NOT EXISTS accounts (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			display_name  TEXT,
			password_hash TEXT NOT NULL,
			roles         TEXT[] NOT NULL DEFAULT '{}',
			last_login    TIMESTAMPTZ,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
