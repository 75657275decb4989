package db

import (
	"database/sql"
	"fmt"
	"testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testRun(id string) *Run {
	name := "evening-window"
	return &Run{
		ID:          id,
		Name:        &name,
		StartMin:    540,
		EndMin:      1260,
		Days:        10,
		FinishMode:  "inclusive",
		Rounding:    "nearest",
		Curve:       "linear",
		LengthMin:   720,
		CollapseMin: 900,
		CreatedAt:   1700000000,
	}
}

func TestInsertRun_GetRun(t *testing.T) {
	database := testDB(t)

	if err := InsertRun(database, testRun("run-1")); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	got, err := GetRun(database, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil for existing run")
	}
	if got.Name == nil || *got.Name != "evening-window" {
		t.Errorf("Name = %v, want evening-window", got.Name)
	}
	if got.StartMin != 540 || got.EndMin != 1260 || got.Days != 10 {
		t.Errorf("params = %d/%d/%d, want 540/1260/10", got.StartMin, got.EndMin, got.Days)
	}
	if got.Note != nil {
		t.Errorf("Note = %v, want nil", got.Note)
	}
}

func TestGetRun_Missing(t *testing.T) {
	database := testDB(t)

	got, err := GetRun(database, "nope")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Errorf("GetRun = %+v, want nil for missing run", got)
	}
}

func TestListRuns_OrderAndPagination(t *testing.T) {
	database := testDB(t)

	for i := 1; i <= 5; i++ {
		r := testRun(fmt.Sprintf("run-%d", i))
		r.CreatedAt = int64(1700000000 + i)
		if err := InsertRun(database, r); err != nil {
			t.Fatalf("InsertRun failed: %v", err)
		}
	}

	runs, err := ListRuns(database, 2, 0)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	// Newest first
	if runs[0].ID != "run-5" || runs[1].ID != "run-4" {
		t.Errorf("order = %s, %s, want run-5, run-4", runs[0].ID, runs[1].ID)
	}

	rest, err := ListRuns(database, 10, 2)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(rest) != 3 {
		t.Errorf("offset page len = %d, want 3", len(rest))
	}
}

func TestCountRuns(t *testing.T) {
	database := testDB(t)

	count, err := CountRuns(database)
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	if err := InsertRun(database, testRun("run-1")); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	count, err = CountRuns(database)
	if err != nil {
		t.Fatalf("CountRuns failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestDeleteRun(t *testing.T) {
	database := testDB(t)

	if err := InsertRun(database, testRun("run-1")); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	deleted, err := DeleteRun(database, "run-1")
	if err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}
	if !deleted {
		t.Error("DeleteRun = false, want true")
	}

	got, err := GetRun(database, "run-1")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got != nil {
		t.Error("run still present after delete")
	}

	deleted, err = DeleteRun(database, "run-1")
	if err != nil {
		t.Fatalf("second DeleteRun failed: %v", err)
	}
	if deleted {
		t.Error("DeleteRun = true for missing run")
	}
}

func TestInsertRun_WithNote(t *testing.T) {
	database := testDB(t)

	r := testRun("run-n")
	note := "## Plan\n\nTighten the window before the release."
	r.Note = &note
	if err := InsertRun(database, r); err != nil {
		t.Fatalf("InsertRun failed: %v", err)
	}

	got, err := GetRun(database, "run-n")
	if err != nil {
		t.Fatalf("GetRun failed: %v", err)
	}
	if got.Note == nil || *got.Note != note {
		t.Errorf("Note = %v, want %q", got.Note, note)
	}
}
