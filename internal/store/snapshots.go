package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// timeLayout has a fixed-width fraction so taken_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Snapshot is the net worth recorded at one point in time.
type Snapshot struct {
	ID       string          `json:"id"`
	TakenAt  time.Time       `json:"taken_at"`
	NetWorth decimal.Decimal `json:"net_worth"`
	Lines    []SnapshotLine  `json:"lines"`
}

// SnapshotLine is one portfolio's value in a snapshot. A nil Value means the
// portfolio could not be valued at the time.
type SnapshotLine struct {
	PortfolioID int64            `json:"portfolio_id"`
	Name        string           `json:"name"`
	Value       *decimal.Decimal `json:"value"`
}

// Record stores snap, assigning an ID and timestamp when missing.
func (s *Store) Record(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.New().String()
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now().UTC()
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, taken_at, net_worth) VALUES (?, ?, ?)`,
		snap.ID, snap.TakenAt.UTC().Format(timeLayout), snap.NetWorth.String(),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	for _, l := range snap.Lines {
		var value sql.NullString
		if l.Value != nil {
			value = sql.NullString{String: l.Value.String(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_lines (snapshot_id, portfolio_id, name, value) VALUES (?, ?, ?, ?)`,
			snap.ID, l.PortfolioID, l.Name, value,
		); err != nil {
			return fmt.Errorf("insert snapshot line: %w", err)
		}
	}

	return tx.Commit()
}

// List returns up to limit snapshots, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	query := `SELECT id, taken_at, net_worth FROM snapshots ORDER BY taken_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range snaps {
		lines, err := s.lines(ctx, snaps[i].ID)
		if err != nil {
			return nil, err
		}
		snaps[i].Lines = lines
	}
	return snaps, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Snapshot, error) {
	row := s.reader.QueryRowContext(ctx, `SELECT id, taken_at, net_worth FROM snapshots WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	if snap.Lines, err = s.lines(ctx, id); err != nil {
		return nil, err
	}
	return &snap, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(sc scanner) (Snapshot, error) {
	var (
		snap     Snapshot
		takenAt  string
		netWorth string
	)
	if err := sc.Scan(&snap.ID, &takenAt, &netWorth); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return snap, err
		}
		return snap, fmt.Errorf("scan snapshot: %w", err)
	}
	t, err := time.Parse(timeLayout, takenAt)
	if err != nil {
		return snap, fmt.Errorf("parse taken_at: %w", err)
	}
	snap.TakenAt = t
	if snap.NetWorth, err = decimal.NewFromString(netWorth); err != nil {
		return snap, fmt.Errorf("parse net_worth: %w", err)
	}
	return snap, nil
}

func (s *Store) lines(ctx context.Context, id string) ([]SnapshotLine, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT portfolio_id, name, value FROM snapshot_lines WHERE snapshot_id = ? ORDER BY portfolio_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list snapshot lines: %w", err)
	}
	defer rows.Close()

	var lines []SnapshotLine
	for rows.Next() {
		var (
			l     SnapshotLine
			value sql.NullString
		)
		if err := rows.Scan(&l.PortfolioID, &l.Name, &value); err != nil {
			return nil, fmt.Errorf("scan snapshot line: %w", err)
		}
		if value.Valid {
			d, err := decimal.NewFromString(value.String)
			if err != nil {
				return nil, fmt.Errorf("parse line value: %w", err)
			}
			l.Value = &d
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
