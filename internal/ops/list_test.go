package ops

import (
	"fmt"
	"testing"

	"hourzero/internal/errors"
)

func TestList_Pagination(t *testing.T) {
	database := testDB(t)

	for i := 1; i <= 5; i++ {
		input := baseInput()
		input.Save = true
		input.Name = strPtr(fmt.Sprintf("run-%d", i))
		if _, err := Generate(database, testConfig(), input); err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
	}

	out, err := List(database, ListInput{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(out.Runs))
	}
	if out.Pagination.Total != 5 {
		t.Errorf("total = %d, want 5", out.Pagination.Total)
	}
	if out.Pagination.Limit != 2 || out.Pagination.Offset != 0 {
		t.Errorf("pagination = %+v, want limit 2 offset 0", out.Pagination)
	}
	// Summaries are recomputed for each row.
	if out.Runs[0].Summary.Collapse != "15:00" {
		t.Errorf("collapse = %s, want 15:00", out.Runs[0].Summary.Collapse)
	}

	rest, err := List(database, ListInput{Limit: 10, Offset: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rest.Runs) != 3 {
		t.Errorf("offset page runs = %d, want 3", len(rest.Runs))
	}
}

func TestList_DefaultAndCappedLimit(t *testing.T) {
	database := testDB(t)

	out, err := List(database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Pagination.Limit != defaultListLimit {
		t.Errorf("limit = %d, want default %d", out.Pagination.Limit, defaultListLimit)
	}

	out, err = List(database, ListInput{Limit: 5000})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Pagination.Limit != maxListLimit {
		t.Errorf("limit = %d, want cap %d", out.Pagination.Limit, maxListLimit)
	}
}

func TestList_NegativeOffset(t *testing.T) {
	database := testDB(t)

	_, err := List(database, ListInput{Offset: -1})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestList_Empty(t *testing.T) {
	database := testDB(t)

	out, err := List(database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(out.Runs) != 0 {
		t.Errorf("runs = %d, want 0", len(out.Runs))
	}
	if out.Pagination.Total != 0 {
		t.Errorf("total = %d, want 0", out.Pagination.Total)
	}
}
