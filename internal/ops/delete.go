package ops

import (
	"database/sql"

	"hourzero/internal/db"
	"hourzero/internal/errors"
)

// DeleteOutput confirms which run was removed.
type DeleteOutput struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Delete removes a saved run. Deleting a run that does not exist is a
// NOT_FOUND error, not a silent no-op.
func Delete(database *sql.DB, id string) (*DeleteOutput, error) {
	deleted, err := db.DeleteRun(database, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, errors.NewNotFound(id)
	}
	return &DeleteOutput{ID: id, Deleted: true}, nil
}
