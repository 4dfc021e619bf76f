// Package store persists job descriptions and processed candidates in
// SQLite. Rich documents are kept as JSON payloads; the relational
// columns exist for filtering and ordering only.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"fairhire360/internal/errors"
	"fairhire360/internal/types"

	_ "modernc.org/sqlite"
)

// CandidateCap is the maximum number of candidates per job description.
const CandidateCap = 6

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidConfig, fmt.Sprintf("open database %s", path), err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.NewStoreError(errors.ErrCodeInvalidConfig, "init schema", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS job_descriptions (
			id         TEXT PRIMARY KEY,
			role_title TEXT NOT NULL,
			created_at TEXT NOT NULL,
			data       TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS candidates (
			id           TEXT PRIMARY KEY,
			jd_id        TEXT NOT NULL,
			name         TEXT NOT NULL,
			status       TEXT NOT NULL,
			slot         INTEGER NOT NULL,
			processed_at TEXT NOT NULL,
			data         TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_candidates_jd ON candidates(jd_id);
	`)
	return err
}

// SaveJD inserts or replaces a job description.
func (s *Store) SaveJD(ctx context.Context, jd types.JobDescription) error {
	data, err := json.Marshal(jd)
	if err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidFormat, "encode job description", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO job_descriptions (id, role_title, created_at, data) VALUES (?, ?, ?, ?)`,
		jd.ID, jd.RoleTitle, jd.CreatedAt.UTC().Format(time.RFC3339), string(data),
	)
	if err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidRequest, "save job description", err).WithContext("jd_id", jd.ID)
	}
	return nil
}

// GetJD returns the job description with the given id.
func (s *Store) GetJD(ctx context.Context, id string) (*types.JobDescription, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM job_descriptions WHERE id = ?`, id,
	).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewStoreError(errors.ErrCodeNotFound, fmt.Sprintf("job description %s not found", id), nil)
	}
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidRequest, "load job description", err).WithContext("jd_id", id)
	}

	var jd types.JobDescription
	if err := json.Unmarshal([]byte(data), &jd); err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidFormat, "decode job description", err).WithContext("jd_id", id)
	}
	return &jd, nil
}

// ListJDs returns all job descriptions, newest first.
func (s *Store) ListJDs(ctx context.Context) ([]types.JobDescription, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT data FROM job_descriptions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidRequest, "list job descriptions", err)
	}
	defer rows.Close()

	jds := []types.JobDescription{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.NewStoreError(errors.ErrCodeInvalidRequest, "scan job description", err)
		}
		var jd types.JobDescription
		if err := json.Unmarshal([]byte(data), &jd); err != nil {
			return nil, errors.NewStoreError(errors.ErrCodeInvalidFormat, "decode job description", err)
		}
		jds = append(jds, jd)
	}
	return jds, rows.Err()
}

// CandidateCount returns how many candidates exist for a job description.
// The result doubles as the slot index for the next candidate.
func (s *Store) CandidateCount(ctx context.Context, jdID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE jd_id = ?`, jdID,
	).Scan(&n)
	if err != nil {
		return 0, errors.NewStoreError(errors.ErrCodeInvalidRequest, "count candidates", err).WithContext("jd_id", jdID)
	}
	return n, nil
}

// SaveCandidate stores a processed candidate in the given slot. It fails
// with CANDIDATE_CAP_REACHED once the job description already holds
// CandidateCap candidates.
func (s *Store) SaveCandidate(ctx context.Context, c types.Candidate, slot int) error {
	data, err := json.Marshal(c)
	if err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidFormat, "encode candidate", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidRequest, "begin transaction", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE jd_id = ?`, c.JobDescriptionID,
	).Scan(&n); err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidRequest, "count candidates", err).WithContext("jd_id", c.JobDescriptionID)
	}
	if n >= CandidateCap {
		return errors.NewStoreError(errors.ErrCodeCandidateCap,
			fmt.Sprintf("job description %s already has %d candidates", c.JobDescriptionID, CandidateCap), nil)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO candidates (id, jd_id, name, status, slot, processed_at, data)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.JobDescriptionID, c.Name, string(c.Status), slot,
		c.ProcessedAt.UTC().Format(time.RFC3339), string(data),
	); err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidRequest, "save candidate", err).WithContext("candidate_id", c.ID)
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreError(errors.ErrCodeInvalidRequest, "commit candidate", err)
	}
	return nil
}

// GetCandidate returns the candidate with the given id.
func (s *Store) GetCandidate(ctx context.Context, id string) (*types.Candidate, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM candidates WHERE id = ?`, id,
	).Scan(&data)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewStoreError(errors.ErrCodeNotFound, fmt.Sprintf("candidate %s not found", id), nil)
	}
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidRequest, "load candidate", err).WithContext("candidate_id", id)
	}

	var c types.Candidate
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidFormat, "decode candidate", err).WithContext("candidate_id", id)
	}
	return &c, nil
}

// ListCandidates returns candidates in slot order. Empty jdID or status
// means no filter on that column.
func (s *Store) ListCandidates(ctx context.Context, jdID string, status types.CandidateStatus) ([]types.Candidate, error) {
	query := `SELECT data FROM candidates`
	args := []any{}
	switch {
	case jdID != "" && status != "":
		query += ` WHERE jd_id = ? AND status = ?`
		args = append(args, jdID, string(status))
	case jdID != "":
		query += ` WHERE jd_id = ?`
		args = append(args, jdID)
	case status != "":
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY jd_id, slot`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError(errors.ErrCodeInvalidRequest, "list candidates", err)
	}
	defer rows.Close()

	candidates := []types.Candidate{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, errors.NewStoreError(errors.ErrCodeInvalidRequest, "scan candidate", err)
		}
		var c types.Candidate
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, errors.NewStoreError(errors.ErrCodeInvalidFormat, "decode candidate", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// DeleteCandidates removes all candidates for a job description and
// returns how many were deleted.
func (s *Store) DeleteCandidates(ctx context.Context, jdID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM candidates WHERE jd_id = ?`, jdID)
	if err != nil {
		return 0, errors.NewStoreError(errors.ErrCodeInvalidRequest, "delete candidates", err).WithContext("jd_id", jdID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.NewStoreError(errors.ErrCodeInvalidRequest, "rows affected", err)
	}
	return n, nil
}
