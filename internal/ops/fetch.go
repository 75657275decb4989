package ops

import (
	"database/sql"

	"hourzero/internal/db"
	"hourzero/internal/engine"
	"hourzero/internal/errors"
)

// FetchOutput is a saved run with its recomputed schedule rows.
type FetchOutput struct {
	Run  RunView   `json:"run"`
	Rows []RowView `json:"rows"`
}

// Fetch retrieves a saved run and recomputes its schedule from the stored
// parameters. Generation is deterministic, so the rows match what the run
// produced when it was saved.
func Fetch(database *sql.DB, id string) (*FetchOutput, error) {
	run, err := db.GetRun(database, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, errors.NewNotFound(id)
	}

	sched, err := engine.Generate(runInput(run))
	if err != nil {
		// Stored parameters were validated on save; failure here means
		// the row was tampered with or a migration went wrong.
		return nil, errors.NewInternal(err)
	}

	return &FetchOutput{
		Run:  runView(run, sched.Summary),
		Rows: rowViews(sched.Rows),
	}, nil
}
