package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS lst_runs (
	id             TEXT PRIMARY KEY,
	label          TEXT NOT NULL DEFAULT '',
	emissivity_b10 REAL NOT NULL,
	emissivity_b11 REAL NOT NULL,
	cwv            REAL NOT NULL,
	subrange       TEXT NOT NULL,
	t10            REAL NOT NULL,
	t11            REAL NOT NULL,
	lst            REAL NOT NULL,
	rmse           REAL NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_lst_runs_label ON lst_runs(label);
CREATE INDEX IF NOT EXISTS idx_lst_runs_created_at ON lst_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a computation run and returns the stored record with its
// generated id and timestamp filled in.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec RunRecord) (*RunRecord, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lst_runs (id, label, emissivity_b10, emissivity_b11, cwv, subrange, t10, t11, lst, rmse, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Label, rec.EmissivityB10, rec.EmissivityB11, rec.CWV,
		rec.Subrange, rec.T10, rec.T11, rec.LST, rec.RMSE, rec.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return &rec, nil
}

// GetRun fetches a single run by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, label, emissivity_b10, emissivity_b11, cwv, subrange, t10, t11, lst, rmse, created_at
		 FROM lst_runs WHERE id = ?`, id)

	var rec RunRecord
	err := row.Scan(&rec.ID, &rec.Label, &rec.EmissivityB10, &rec.EmissivityB11,
		&rec.CWV, &rec.Subrange, &rec.T10, &rec.T11, &rec.LST, &rec.RMSE, &rec.CreatedAt)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Wrapf(err, "sqlite: run %s not found", id)
		}
		return nil, eris.Wrapf(err, "sqlite: get run %s", id)
	}
	return &rec, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, label, emissivity_b10, emissivity_b11, cwv, subrange, t10, t11, lst, rmse, created_at
		 FROM lst_runs ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.EmissivityB10, &rec.EmissivityB11,
			&rec.CWV, &rec.Subrange, &rec.T10, &rec.T11, &rec.LST, &rec.RMSE, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return out, nil
}
