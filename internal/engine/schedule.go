package engine

import (
	"hourzero/internal/clock"
)

// Input carries the already-validated parameters of one schedule generation.
// Start and end are minute-of-day values; callers own text parsing and
// date-range-to-day-count conversion.
type Input struct {
	Start      clock.Minute `json:"start_min"`
	End        clock.Minute `json:"end_min"`
	Days       int          `json:"days"`
	FinishMode FinishMode   `json:"finish_mode"`
	Rounding   Rounding     `json:"rounding"`
	Curve      Curve        `json:"curve"`
}

// Row is one day of the schedule. Day IDs are 1-based and sequential.
// On the collapse row under FinishInclusive, Start and End are rounded
// independently and may differ by a small residual even though they
// represent the same instant.
type Row struct {
	Day   int          `json:"day"`
	Start clock.Minute `json:"start_min"`
	End   clock.Minute `json:"end_min"`
}

// Summary carries the derived figures of a schedule. DailyShrink and
// PerSideShrink are meaningful only for the linear curve, where narrowing is
// uniform day to day; for other curves they are nil (not applicable).
type Summary struct {
	Length        int          `json:"length_min"`
	Collapse      clock.Minute `json:"collapse_min"`
	DailyShrink   *int         `json:"daily_shrink_min,omitempty"`
	PerSideShrink *int         `json:"per_side_shrink_min,omitempty"`
}

// Schedule is the full result of one generation.
type Schedule struct {
	Input   Input   `json:"input"`
	Rows    []Row   `json:"rows"`
	Summary Summary `json:"summary"`
}

// Generate computes the full narrowing schedule for the given input. Each
// day's start and end are rounded independently from the raw offset values,
// then normalized onto the canonical clock.
func Generate(in Input) (*Schedule, error) {
	offs, err := Offsets(in.Start, in.End, in.Days, in.FinishMode, in.Curve)
	if err != nil {
		return nil, err
	}

	round, err := roundFunc(in.Rounding)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(offs))
	for i, off := range offs {
		rows[i] = Row{
			Day:   i + 1,
			Start: clock.Normalize(round(float64(in.Start) + off)),
			End:   clock.Normalize(round(float64(in.End) - off)),
		}
	}

	return &Schedule{
		Input:   in,
		Rows:    rows,
		Summary: summarize(in, rows),
	}, nil
}

// summarize derives the summary figures. The theoretical collapse instant is
// the midpoint of the original window on the circular clock; for the linear
// curve under FinishInclusive the displayed collapse is recomputed from the
// rounded final row, so it may differ from the theoretical value by a minute.
func summarize(in Input, rows []Row) Summary {
	length := clock.WindowLength(in.Start, in.End)

	s := Summary{
		Length:   length,
		Collapse: clock.Normalize(roundHalfAwayFromZero(float64(in.Start) + float64(length)/2)),
	}

	if in.Curve != CurveLinear {
		return s
	}

	if in.FinishMode == FinishInclusive && len(rows) > 0 {
		last := rows[len(rows)-1]
		s.Collapse = clock.CircularMidpoint(last.Start, last.End)
	}

	// Inputs were validated by Offsets, so DailyStep cannot fail here.
	step, err := DailyStep(in.Start, in.End, in.Days, in.FinishMode)
	if err != nil {
		return s
	}

	daily := roundHalfAwayFromZero(step * 2)
	perSide := roundHalfAwayFromZero(step)
	if daily < 0 {
		daily = 0
	}
	if perSide < 0 {
		perSide = 0
	}
	s.DailyShrink = &daily
	s.PerSideShrink = &perSide

	return s
}
