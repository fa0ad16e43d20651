package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// readerConns caps the read pool. Readers only list and fetch snapshots for
// the API and the CLI, so a handful of connections is plenty.
const readerConns = 4

// Store is the local journal of net-worth snapshots. Writes go through a
// single connection; reads use a separate query-only pool so an API request
// can never modify the journal.
type Store struct {
	path   string
	writer *sql.DB
	reader *sql.DB
}

// Open opens or creates the journal at dbPath and brings its schema up to date.
func Open(dbPath string) (*Store, error) {
	return OpenContext(context.Background(), dbPath)
}

// OpenContext is Open with a context bounding the schema migration.
func OpenContext(ctx context.Context, dbPath string) (*Store, error) {
	writer, err := sql.Open("sqlite", dsn(dbPath, false))
	if err != nil {
		return nil, fmt.Errorf("open writer: %w", err)
	}
	writer.SetMaxOpenConns(1)

	s := &Store{path: dbPath, writer: writer}

	// The schema must exist before the query-only pool first touches the file.
	if err := s.migrate(ctx); err != nil {
		writer.Close()
		return nil, fmt.Errorf("migrate %s: %w", dbPath, err)
	}

	reader, err := sql.Open("sqlite", dsn(dbPath, true))
	if err != nil {
		writer.Close()
		return nil, fmt.Errorf("open reader: %w", err)
	}
	reader.SetMaxOpenConns(readerConns)
	s.reader = reader

	return s, nil
}

func dsn(path string, queryOnly bool) string {
	d := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)", path)
	if queryOnly {
		d += "&_pragma=query_only(1)"
	}
	return d
}

// Path is the database file the journal lives in.
func (s *Store) Path() string { return s.path }

// Close closes both pools, reporting every failure.
func (s *Store) Close() error {
	var errs []error
	if s.writer != nil {
		errs = append(errs, s.writer.Close())
	}
	if s.reader != nil {
		errs = append(errs, s.reader.Close())
	}
	return errors.Join(errs...)
}
