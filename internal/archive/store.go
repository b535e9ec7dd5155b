package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/tliron/commonlog"
	_ "modernc.org/sqlite"

	"github.com/funvibe/bantam/internal/report"
)

var log = commonlog.GetLogger("bantam.archive")

// ErrNotFound is returned by Load for an unknown run id.
var ErrNotFound = errors.New("run not found")

const schema = `CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	files       TEXT NOT NULL,
	ok          INTEGER NOT NULL,
	error_count INTEGER NOT NULL,
	payload     BLOB NOT NULL
)`

const index = `CREATE INDEX IF NOT EXISTS runs_created_at ON runs (created_at)`

// Run is the summary row of one archived report.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Files      []string
	OK         bool
	ErrorCount int
}

// Store archives analysis reports in a SQLite database.
type Store struct {
	db   *sql.DB
	enc  cbor.EncMode
	path string
}

// Open opens or creates the archive at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	enc, err := encOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor encoder: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	// One writer at a time; the server saves from concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	for _, stmt := range []string{schema, index} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}

	log.Debugf("archive opened at %s", path)
	return &Store{db: db, enc: enc, path: path}, nil
}

func encOptions() cbor.EncOptions {
	opts := cbor.CanonicalEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	return opts
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores r, replacing any earlier run with the same id.
func (s *Store) Save(ctx context.Context, r *report.Report) error {
	payload, err := s.enc.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding report %s: %w", r.RunID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (id, created_at, files, ok, error_count, payload) VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAt.UnixNano(), strings.Join(r.Files, "\n"), r.OK, r.ErrorCount(), payload)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", r.RunID, err)
	}
	log.Debugf("archived run %s (%d diagnostics)", r.RunID, r.ErrorCount())
	return nil
}

// Recent lists up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, files, ok, error_count FROM runs ORDER BY created_at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run   Run
			nanos int64
			files string
		)
		if err := rows.Scan(&run.ID, &nanos, &files, &run.OK, &run.ErrorCount); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.CreatedAt = time.Unix(0, nanos).UTC()
		if files != "" {
			run.Files = strings.Split(files, "\n")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Load returns the full report of run id.
func (s *Store) Load(ctx context.Context, id string) (*report.Report, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM runs WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("loading run %s: %w", id, err)
	}

	var r report.Report
	if err := cbor.Unmarshal(payload, &r); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", id, err)
	}
	return &r, nil
}
