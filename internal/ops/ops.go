// Package ops implements the caller-side operations around the narrowing
// engine: generating schedules, managing the saved-run catalog, and CSV
// export. The engine itself stays pure; all state (database, files) lives
// here, passed in explicitly.
package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"hourzero/internal/clock"
	"hourzero/internal/db"
	"hourzero/internal/engine"
)

// RowView is one schedule row with display-formatted times.
type RowView struct {
	Day   int    `json:"day"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// InputView echoes the resolved generation parameters.
type InputView struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Days       int    `json:"days"`
	FinishMode string `json:"finish_mode"`
	Rounding   string `json:"rounding"`
	Curve      string `json:"curve"`
}

// SummaryView carries the derived figures with formatted collapse time.
// Shrink fields are omitted for curves where per-day shrink is non-uniform.
type SummaryView struct {
	LengthMin        int    `json:"length_min"`
	Collapse         string `json:"collapse"`
	DailyShrinkMin   *int   `json:"daily_shrink_min,omitempty"`
	PerSideShrinkMin *int   `json:"per_side_shrink_min,omitempty"`
}

// RunView is the display form of a saved run.
type RunView struct {
	ID        string      `json:"id"`
	Name      *string     `json:"name,omitempty"`
	Note      *string     `json:"note,omitempty"`
	Input     InputView   `json:"input"`
	Summary   SummaryView `json:"summary"`
	CreatedAt int64       `json:"created_at"`
}

// Pagination describes a page of list results.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// newRunID generates a ULID for a saved run.
func newRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// inputView formats an engine input for display.
func inputView(in engine.Input) InputView {
	return InputView{
		Start:      in.Start.Format(),
		End:        in.End.Format(),
		Days:       in.Days,
		FinishMode: string(in.FinishMode),
		Rounding:   string(in.Rounding),
		Curve:      string(in.Curve),
	}
}

// rowViews formats engine rows for display.
func rowViews(rows []engine.Row) []RowView {
	views := make([]RowView, len(rows))
	for i, r := range rows {
		views[i] = RowView{Day: r.Day, Start: r.Start.Format(), End: r.End.Format()}
	}
	return views
}

// summaryView formats an engine summary for display.
func summaryView(s engine.Summary) SummaryView {
	return SummaryView{
		LengthMin:        s.Length,
		Collapse:         s.Collapse.Format(),
		DailyShrinkMin:   s.DailyShrink,
		PerSideShrinkMin: s.PerSideShrink,
	}
}

// runInput reconstructs the engine input of a saved run.
func runInput(r *db.Run) engine.Input {
	return engine.Input{
		Start:      clock.Minute(r.StartMin),
		End:        clock.Minute(r.EndMin),
		Days:       r.Days,
		FinishMode: engine.FinishMode(r.FinishMode),
		Rounding:   engine.Rounding(r.Rounding),
		Curve:      engine.Curve(r.Curve),
	}
}

// runView builds the display form of a saved run from its stored fields and
// recomputed summary.
func runView(r *db.Run, summary engine.Summary) RunView {
	return RunView{
		ID:        r.ID,
		Name:      r.Name,
		Note:      r.Note,
		Input:     inputView(runInput(r)),
		Summary:   summaryView(summary),
		CreatedAt: r.CreatedAt,
	}
}
