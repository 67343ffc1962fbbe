// Package report keeps a history of ruleset validation runs in SQLite, so
// authors can see when a consistency violation appeared.
package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nathoo/actioncore/engine/actions"
	"github.com/nathoo/actioncore/engine/ruleset"
	"github.com/nathoo/actioncore/loader"
	"github.com/nathoo/actioncore/report/migrations"
)

// ErrNotFound is returned for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Violation is one stored consistency finding.
type Violation struct {
	Action    string
	Result    string
	EnablerID string
	Message   string
}

// Run is the outcome of loading and validating one ruleset directory.
type Run struct {
	ID         string
	Ruleset    string
	Version    string
	Dir        string
	Enablers   int
	Errors     int
	Warnings   int
	LoadError  string // set when no ruleset could be built
	Violations []Violation
	CreatedAt  time.Time
}

// OK reports whether the run found nothing wrong.
func (r Run) OK() bool {
	return r.Errors == 0 && r.LoadError == ""
}

// NewRun summarizes the result of loader.Load(dir).
func NewRun(dir string, rs *ruleset.Ruleset, err error) Run {
	run := Run{
		ID:        uuid.NewString(),
		Ruleset:   filepath.Base(dir),
		Dir:       dir,
		CreatedAt: time.Now().UTC(),
	}
	if rs != nil {
		run.Ruleset = rs.Info.Name
		run.Version = rs.Info.Version
		run.Enablers = rs.EnablerCount()
	}

	var ve *loader.ValidationError
	switch {
	case errors.As(err, &ve):
		run.Errors = len(ve.Errors)
		run.Warnings = len(ve.Warnings)
		for _, v := range ve.Violations {
			name := actions.ResultName(v.Result)
			if rs != nil {
				if a, err := rs.Catalog().ByID(v.Action); err == nil {
					name = a.RuleName
				}
			}
			run.Violations = append(run.Violations, Violation{
				Action:    name,
				Result:    actions.ResultName(v.Result),
				EnablerID: v.EnablerID,
				Message:   v.Message,
			})
		}
		if rs == nil {
			run.LoadError = err.Error()
		}
	case err != nil:
		run.Errors = 1
		run.LoadError = err.Error()
	}
	return run
}

// Store provides SQLite-backed run history.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a report store and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record persists a run and its violations.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, ruleset, version, dir, enablers, errors, warnings, load_error, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		run.ID, run.Ruleset, run.Version, run.Dir, run.Enablers,
		run.Errors, run.Warnings, run.LoadError, run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	for i, v := range run.Violations {
		_, err := tx.ExecContext(ctx, `
INSERT INTO violations (run_id, seq, action, result, enabler_id, message)
VALUES (?, ?, ?, ?, ?, ?)
`, run.ID, i, v.Action, v.Result, v.EnablerID, v.Message)
		if err != nil {
			return fmt.Errorf("record violation %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Runs lists newest-first runs, optionally only those of dir. Violations
// are not loaded.
func (s *Store) Runs(ctx context.Context, dir string, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, ruleset, version, dir, enablers, errors, warnings, load_error, created_at
FROM runs
WHERE ? = '' OR dir = ?
ORDER BY created_at DESC, rowid DESC
LIMIT ?
`, dir, dir, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Get returns a run with its violations.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT id, ruleset, version, dir, enablers, errors, warnings, load_error, created_at
FROM runs WHERE id = ?
`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT action, result, enabler_id, message
FROM violations WHERE run_id = ? ORDER BY seq
`, id)
	if err != nil {
		return Run{}, fmt.Errorf("list violations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var v Violation
		if err := rows.Scan(&v.Action, &v.Result, &v.EnablerID, &v.Message); err != nil {
			return Run{}, fmt.Errorf("scan violation: %w", err)
		}
		run.Violations = append(run.Violations, v)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run     Run
		created int64
	)
	err := sc.Scan(&run.ID, &run.Ruleset, &run.Version, &run.Dir, &run.Enablers,
		&run.Errors, &run.Warnings, &run.LoadError, &created)
	if err != nil {
		return Run{}, err
	}
	run.CreatedAt = time.UnixMilli(created).UTC()
	return run, nil
}
