package ops

import (
	"database/sql"
	"testing"

	"hourzero/internal/config"
	"hourzero/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

// baseInput is the reference schedule: 09:00-21:00 narrowed over 10 days.
func baseInput() GenerateInput {
	return GenerateInput{
		Start: "09:00",
		End:   "21:00",
		Days:  10,
	}
}

func strPtr(s string) *string {
	return &s
}
