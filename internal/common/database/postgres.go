// internal/common/database/postgres.go

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"healthquote-funnel/internal/common/config"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the connection used by the lead delivery journal.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens a pool; it does not dial until first use.
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// JournalSchema creates the delivery journal tables. No lead PII is stored.
const JournalSchema = `
CREATE TABLE IF NOT EXISTS lead_deliveries (
	id           UUID PRIMARY KEY,
	lead_id      TEXT NOT NULL UNIQUE,
	arrival_id   TEXT NOT NULL DEFAULT '',
	form_type    TEXT NOT NULL,
	city         TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	status       TEXT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS audit_log (
	id            BIGSERIAL PRIMARY KEY,
	event_type    TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id   TEXT NOT NULL,
	details       JSONB NOT NULL DEFAULT '{}',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// EnsureJournalSchema applies JournalSchema.
func (c *PostgresClient) EnsureJournalSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, JournalSchema); err != nil {
		return fmt.Errorf("ensure journal schema: %w", err)
	}
	return nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
