package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/volsreport/volsreport/internal/model"
)

// DBFile is the database file name inside the database directory.
const DBFile = "volsreport.db"

// HistoryDB provides SQLite-based storage for generation runs.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error
// wrapping os.ErrNotExist is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); err != nil {
			return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw prevents creating a new file when one is required to exist.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Concurrent volsreport processes wait for the writer instead of failing.
	if _, err := db.ExecContext(context.Background(), "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per successful generation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		as_of TEXT NOT NULL,
		input_path TEXT NOT NULL,
		started_at TEXT NOT NULL,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		totals_json TEXT NOT NULL,
		record_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_as_of ON runs(as_of);

	-- Documents written by a run
	CREATE TABLE IF NOT EXISTS artifacts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		path TEXT NOT NULL,
		size INTEGER NOT NULL,
		digest TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_artifacts_run ON artifacts(run_id);
	CREATE INDEX IF NOT EXISTS idx_artifacts_digest ON artifacts(digest);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// StoredRun is a run read back from the database.
type StoredRun struct {
	// ID is the unique identifier of the run in the database.
	ID int64 `json:"id"`

	// AsOf is the reporting date label of the dataset.
	AsOf string `json:"as_of"`

	// InputPath is the dataset file the run read.
	InputPath string `json:"input_path"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Totals are the headline counters of the dataset.
	Totals model.Totals `json:"totals"`

	// Artifacts are the documents the run wrote, in render order.
	Artifacts []model.Artifact `json:"artifacts"`

	// Record is the full dataset. It is only loaded by GetRun and LatestRuns.
	Record *model.Record `json:"record,omitempty"`
}

// SaveRun records a run whose documents have been written.
// It returns the ID of the new run.
func (hdb *HistoryDB) SaveRun(ctx context.Context, run *model.Run) (int64, error) {
	if run.Record == nil || !run.Written {
		return 0, ErrNotWritten
	}

	totalsJSON, err := json.Marshal(run.Record.Totals)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize totals: %w", err)
	}
	recordJSON, err := json.Marshal(run.Record)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize record: %w", err)
	}

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() //nolint:errcheck // no-op after Commit

	res, err := tx.ExecContext(ctx, `
	INSERT INTO runs (as_of, input_path, started_at, totals_json, record_json)
	VALUES (?, ?, ?, ?, ?)
	`,
		run.Record.AsOf,
		run.InputPath,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		string(totalsJSON),
		string(recordJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, a := range run.Artifacts {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO artifacts (run_id, kind, path, size, digest)
		VALUES (?, ?, ?, ?, ?)
		`, id, a.Kind, a.Path, a.Size, a.Digest); err != nil {
			return 0, fmt.Errorf("failed to save artifact %s: %w", a.Kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns all runs, newest first, without their records.
func (hdb *HistoryDB) ListRuns(ctx context.Context) ([]StoredRun, error) {
	return hdb.queryRuns(ctx, false, `
	SELECT id, as_of, input_path, started_at, totals_json, record_json
	FROM runs
	ORDER BY id DESC
	`)
}

// LatestRuns returns up to n runs, newest first, with their records.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, n int) ([]StoredRun, error) {
	return hdb.queryRuns(ctx, true, `
	SELECT id, as_of, input_path, started_at, totals_json, record_json
	FROM runs
	ORDER BY id DESC
	LIMIT ?
	`, n)
}

// GetRun returns the run with the given ID, with its record.
// It returns ErrRunNotFound if the ID does not exist.
func (hdb *HistoryDB) GetRun(ctx context.Context, id int64) (*StoredRun, error) {
	runs, err := hdb.queryRuns(ctx, true, `
	SELECT id, as_of, input_path, started_at, totals_json, record_json
	FROM runs
	WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return &runs[0], nil
}

// FindByDigest returns the IDs of runs that wrote a document with the
// given digest, newest first.
func (hdb *HistoryDB) FindByDigest(ctx context.Context, digest string) ([]int64, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT DISTINCT run_id FROM artifacts
	WHERE digest = ?
	ORDER BY run_id DESC
	`, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to query digest: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// queryRuns runs a runs query and attaches artifacts to each row.
func (hdb *HistoryDB) queryRuns(ctx context.Context, withRecord bool, query string, args ...any) ([]StoredRun, error) {
	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []StoredRun
	for rows.Next() {
		var r StoredRun
		var startedAt, totalsJSON, recordJSON string
		if err := rows.Scan(&r.ID, &r.AsOf, &r.InputPath, &startedAt, &totalsJSON, &recordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = parseTimestamp(startedAt)
		if err := json.Unmarshal([]byte(totalsJSON), &r.Totals); err != nil {
			return nil, fmt.Errorf("failed to parse totals of run %d: %w", r.ID, err)
		}
		if withRecord {
			var rec model.Record
			if err := json.Unmarshal([]byte(recordJSON), &rec); err != nil {
				return nil, fmt.Errorf("failed to parse record of run %d: %w", r.ID, err)
			}
			r.Record = &rec
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Artifacts are loaded after the runs cursor is closed; the pool has a
	// single connection.
	rows.Close()

	for i := range runs {
		artifacts, err := hdb.artifacts(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Artifacts = artifacts
	}
	return runs, nil
}

func (hdb *HistoryDB) artifacts(ctx context.Context, runID int64) ([]model.Artifact, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT kind, path, size, digest FROM artifacts
	WHERE run_id = ?
	ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []model.Artifact
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.Kind, &a.Path, &a.Size, &a.Digest); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, it returns the zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// IsNotExist reports whether err means the database file does not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
