package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         TEXT PRIMARY KEY,
			taken_at   TEXT NOT NULL,
			net_worth  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at)`,

		// Latest value of each portfolio at snapshot time
		`CREATE TABLE IF NOT EXISTS snapshot_lines (
			snapshot_id  TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			portfolio_id INTEGER NOT NULL,
			name         TEXT NOT NULL,
			value        TEXT,
			PRIMARY KEY (snapshot_id, portfolio_id)
		)`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
