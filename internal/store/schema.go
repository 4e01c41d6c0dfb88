package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	settingsTable     = "settings"
	explanationsTable = "explanations"
	llmRequestsTable  = "llm_request_events"
)

// builder returns an SQLite-flavoured statement builder.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ` + settingsTable + ` (
		key        TEXT    NOT NULL PRIMARY KEY,
		value      TEXT    NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + explanationsTable + ` (
		key         TEXT    NOT NULL PRIMARY KEY,
		subject_id  TEXT    NOT NULL,
		question_id INTEGER NOT NULL,
		text        TEXT    NOT NULL,
		model       TEXT    NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ` + llmRequestsTable + ` (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose ON ` + llmRequestsTable + ` (purpose)`,
}

// migrate creates missing tables. It is safe to run on every open.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	for _, stmt := range schema {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
