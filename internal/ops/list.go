package ops

import (
	"database/sql"

	"hourzero/internal/db"
	"hourzero/internal/engine"
	"hourzero/internal/errors"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListInput carries pagination parameters. Zero Limit means the default
// page size.
type ListInput struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ListOutput is one page of the saved-run catalog.
type ListOutput struct {
	Runs       []RunView  `json:"runs"`
	Pagination Pagination `json:"pagination"`
}

// List returns saved runs newest first. Each run's summary is recomputed
// from its stored parameters.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if input.Offset < 0 {
		return nil, errors.NewInvalidRequest("offset must not be negative")
	}

	runs, err := db.ListRuns(database, limit, input.Offset)
	if err != nil {
		return nil, err
	}
	total, err := db.CountRuns(database)
	if err != nil {
		return nil, err
	}

	views := make([]RunView, 0, len(runs))
	for i := range runs {
		run := &runs[i]
		sched, err := engine.Generate(runInput(run))
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		views = append(views, runView(run, sched.Summary))
	}

	return &ListOutput{
		Runs:       views,
		Pagination: Pagination{Limit: limit, Offset: input.Offset, Total: total},
	}, nil
}
