// Package journal records shift and restore runs in a SQLite database so that
// applied timestamp changes can be listed and undone.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/sandman/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Run kinds
const (
	KindShift   = "shift"
	KindRestore = "restore"
)

var (
	// ErrRunNotFound is returned when no run matches an id or id prefix.
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRunID is returned when an id prefix matches several runs.
	ErrAmbiguousRunID = errors.New("run id prefix is ambiguous")
)

// Run is one recorded shift or restore invocation.
type Run struct {
	ID           string
	Kind         string
	InputDir     string
	Months       int
	Days         int
	Cutoff       string
	Applied      bool
	StartedAt    time.Time
	FinishedAt   *time.Time
	Scanned      int
	Selected     int
	Shifted      int
	Failed       int
	RestoredFrom string
}

// ShiftRecord is the before/after state of one file touched by a run.
type ShiftRecord struct {
	ID       int64
	RunID    string
	Path     string
	OldAtime time.Time
	OldMtime time.Time
	NewMtime time.Time
	Status   string
	Error    string
}

// Store manages the SQLite journal database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates a new Store instance and initializes the database
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the remaining pragmas wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// BeginRun records the start of a shift run and returns its id.
func (s *Store) BeginRun(ctx context.Context, params models.ShiftParams) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, kind, input_dir, months, days, cutoff, applied, started_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, KindShift, params.InputDir, params.Months, params.Days,
		params.Cutoff.Format(models.DateLayout), params.Apply, time.Now().UnixNano())
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// BeginRestore records the start of a restore of source and returns its id.
func (s *Store) BeginRestore(ctx context.Context, source *Run, apply bool) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
INSERT INTO runs (id, kind, input_dir, months, days, cutoff, applied, started_at, restored_from)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, KindRestore, source.InputDir, source.Months, source.Days, source.Cutoff,
		apply, time.Now().UnixNano(), source.ID)
	if err != nil {
		return "", fmt.Errorf("insert restore run: %w", err)
	}
	return id, nil
}

// RecordShift stores the entry's original and new timestamps and returns
// the record id. It is called before the file is modified.
func (s *Store) RecordShift(ctx context.Context, runID string, entry models.ShiftEntry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO shifts (run_id, path, old_atime, old_mtime, new_mtime, status, error)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, entry.Path, entry.Atime.UnixNano(), entry.Mtime.UnixNano(),
		entry.NewTime.UnixNano(), entry.Status, nullString(entry.Error))
	if err != nil {
		return 0, fmt.Errorf("insert shift: %w", err)
	}
	return res.LastInsertId()
}

// SetShiftStatus updates the outcome of a recorded shift.
func (s *Store) SetShiftStatus(ctx context.Context, shiftID int64, status string, errMsg string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE shifts SET status = ?, error = ? WHERE id = ?`,
		status, nullString(errMsg), shiftID)
	if err != nil {
		return fmt.Errorf("update shift %d: %w", shiftID, err)
	}
	return nil
}

// FinishRun stores the final counters of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, summary models.RunSummary) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE runs SET finished_at = ?, scanned = ?, selected = ?, shifted = ?, failed = ?
WHERE id = ?`,
		time.Now().UnixNano(), summary.Scanned, summary.Selected, summary.Shifted,
		summary.Failed, runID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

const runColumns = `id, kind, input_dir, months, days, cutoff, applied, started_at,
finished_at, scanned, selected, shifted, failed, restored_from`

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// GetRun looks a run up by full id or by a unique id prefix.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		id, escapeLike(id)+"%")
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		if run.ID == id {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRunID, id)
	}
}

// ListShifts returns the records of a run in insertion order.
func (s *Store) ListShifts(ctx context.Context, runID string) ([]*ShiftRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, run_id, path, old_atime, old_mtime, new_mtime, status, error
FROM shifts WHERE run_id = ? ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	defer rows.Close()

	var records []*ShiftRecord
	for rows.Next() {
		var (
			rec                          ShiftRecord
			oldAtime, oldMtime, newMtime int64
			errMsg                       sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Path, &oldAtime, &oldMtime, &newMtime, &rec.Status, &errMsg); err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		rec.OldAtime = time.Unix(0, oldAtime)
		rec.OldMtime = time.Unix(0, oldMtime)
		rec.NewMtime = time.Unix(0, newMtime)
		rec.Error = errMsg.String
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shifts: %w", err)
	}

	return records, nil
}

// scanRun reads one row selected with runColumns.
func scanRun(rows *sql.Rows) (*Run, error) {
	var (
		run          Run
		startedAt    int64
		finishedAt   sql.NullInt64
		restoredFrom sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.Kind, &run.InputDir, &run.Months, &run.Days, &run.Cutoff,
		&run.Applied, &startedAt, &finishedAt, &run.Scanned, &run.Selected, &run.Shifted,
		&run.Failed, &restoredFrom); err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt = time.Unix(0, startedAt)
	if finishedAt.Valid {
		t := time.Unix(0, finishedAt.Int64)
		run.FinishedAt = &t
	}
	run.RestoredFrom = restoredFrom.String

	return &run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// escapeLike escapes LIKE wildcards so ids are matched literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
