package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schemaVersion é incrementada quando o DDL abaixo muda de forma incompatível.
const schemaVersion = 2

// EnsureSchema roda UMA vez no boot. As versões antigas do serviço faziam
// try/catch de "column does not exist" por request; aqui a checagem de
// versão acontece na subida e o processo se recusa a rodar contra um
// schema mais novo do que ele conhece.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS schema_version (
			version    INT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS leads (
			id             UUID PRIMARY KEY,
			ig_id          TEXT NOT NULL UNIQUE,
			username       TEXT,
			full_name      TEXT,
			first_seen     TIMESTAMPTZ NOT NULL,
			status         TEXT NOT NULL DEFAULT 'NEW',
			is_own_account BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id                   UUID PRIMARY KEY,
			lead_id              UUID NOT NULL REFERENCES leads(id),
			text                 TEXT NOT NULL DEFAULT '',
			timestamp            TIMESTAMPTZ NOT NULL,
			direction            TEXT NOT NULL,
			instagram_message_id TEXT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS messages_lead_ig_msg_uidx
			ON messages (lead_id, instagram_message_id)
			WHERE instagram_message_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS messages_lead_ts_idx
			ON messages (lead_id, timestamp)`,
		`CREATE TABLE IF NOT EXISTS message_templates (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			content    TEXT NOT NULL,
			category   TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("falha ao aplicar schema: %w", err)
		}
	}

	var current sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&current)
	if err != nil {
		return fmt.Errorf("falha ao ler schema_version: %w", err)
	}

	switch {
	case current.Valid && current.Int64 > schemaVersion:
		return fmt.Errorf("schema do banco (v%d) é mais novo que o serviço (v%d)", current.Int64, schemaVersion)
	case current.Valid && current.Int64 == schemaVersion:
		return nil
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO schema_version (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`,
		schemaVersion,
	); err != nil {
		return fmt.Errorf("falha ao registrar schema_version: %w", err)
	}

	log.Printf("✅ Schema v%d aplicado", schemaVersion)
	return nil
}
