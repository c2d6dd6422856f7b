package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements DDL idempotente de las tablas del gateway.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS dashboard_kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS stock_alerts (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		dedup_key   TEXT NOT NULL,
		severity    TEXT NOT NULL,
		status      TEXT NOT NULL,
		message     TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		duration_ms BIGINT NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`ALTER TABLE stock_alerts ADD COLUMN IF NOT EXISTS total INT NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_stock_alerts_user_created ON stock_alerts (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS stock_alert_items (
		alert_id        TEXT NOT NULL REFERENCES stock_alerts(id) ON DELETE CASCADE,
		position        INT NOT NULL,
		item_id         TEXT NOT NULL,
		name            TEXT NOT NULL,
		status          TEXT NOT NULL,
		available_stock NUMERIC(18,4) NOT NULL,
		observed_at     TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (alert_id, position)
	)`,
}

// EnsureSchema crea las tablas si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
