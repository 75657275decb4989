package db

import (
	"database/sql"

	"hourzero/internal/errors"
)

// Run is one saved schedule generation. It stores the inputs and summary
// scalars; schedule rows are recomputed from the inputs on fetch.
type Run struct {
	ID          string
	Name        *string
	Note        *string
	StartMin    int
	EndMin      int
	Days        int
	FinishMode  string
	Rounding    string
	Curve       string
	LengthMin   int
	CollapseMin int
	CreatedAt   int64
}

// InsertRun stores a new run.
func InsertRun(db *sql.DB, r *Run) error {
	query := `
		INSERT INTO runs (
			id, name, note, start_min, end_min, days,
			finish_mode, rounding, curve, length_min, collapse_min, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		r.ID, toNullString(r.Name), toNullString(r.Note),
		r.StartMin, r.EndMin, r.Days,
		r.FinishMode, r.Rounding, r.Curve,
		r.LengthMin, r.CollapseMin, r.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// GetRun retrieves a run by ID. Returns nil (not an error) when absent.
func GetRun(db *sql.DB, id string) (*Run, error) {
	query := `
		SELECT id, name, note, start_min, end_min, days,
		       finish_mode, rounding, curve, length_min, collapse_min, created_at
		FROM runs
		WHERE id = ?
	`

	r, err := scanRun(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return r, nil
}

// ListRuns returns runs ordered newest first, with ties broken by ID so
// pagination is deterministic.
func ListRuns(db *sql.DB, limit, offset int) ([]Run, error) {
	query := `
		SELECT id, name, note, start_min, end_min, days,
		       finish_mode, rounding, curve, length_min, collapse_min, created_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := db.Query(query, limit, offset)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return runs, nil
}

// CountRuns returns the total number of saved runs.
func CountRuns(db *sql.DB) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// DeleteRun removes a run by ID. Returns false when no row matched.
func DeleteRun(db *sql.DB, id string) (bool, error) {
	result, err := db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return false, errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return affected > 0, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run from a row scanner.
func scanRun(s scanner) (*Run, error) {
	var r Run
	var name, note sql.NullString

	err := s.Scan(
		&r.ID, &name, &note, &r.StartMin, &r.EndMin, &r.Days,
		&r.FinishMode, &r.Rounding, &r.Curve,
		&r.LengthMin, &r.CollapseMin, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Name = fromNullString(name)
	r.Note = fromNullString(note)
	return &r, nil
}

// toNullString converts *string to sql.NullString.
func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// fromNullString converts sql.NullString to *string.
func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
