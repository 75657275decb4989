// Package engine computes day-by-day narrowing schedules for a time window
// on the circular 24-hour clock.
//
// Given window endpoints, a day count, a finish mode, and a narrowing curve,
// the engine produces one row per day in which the window shrinks
// symmetrically from both ends until it collapses to a single instant on the
// final day. Generate is a pure function: it reads only its arguments,
// allocates only its output, and may be called concurrently from independent
// call sites without coordination.
package engine

// MaxDays is the ceiling on accepted day counts. Worst-case cost of a
// generation is O(days), so every call is trivially bounded.
const MaxDays = 1000

// Curve selects the per-day offset function.
type Curve string

const (
	// CurveLinear narrows by a constant amount per side per day.
	CurveLinear Curve = "linear"
	// CurvePercentage shrinks a fixed fraction of the remaining window each
	// day, forcing exact collapse on the final day.
	CurvePercentage Curve = "percentage"
	// CurveLogistic shapes offsets with a normalized logistic curve.
	CurveLogistic Curve = "logistic"
	// CurveSinusoidal eases in and out: slow narrowing at the edges, fast in
	// the middle.
	CurveSinusoidal Curve = "sinusoidal"
)

// Curves lists all supported curve names.
var Curves = []Curve{CurveLinear, CurvePercentage, CurveLogistic, CurveSinusoidal}

// FinishMode controls the interpretation of the day count for the linear
// curve. Other curves always collapse exactly on the final requested day.
type FinishMode string

const (
	// FinishInclusive collapses ON day N (today counted as day 1).
	FinishInclusive FinishMode = "inclusive"
	// FinishAfterSteps performs exactly N narrowing steps; collapse happens
	// the day after.
	FinishAfterSteps FinishMode = "after-steps"
)

// FinishModes lists all supported finish mode names.
var FinishModes = []FinishMode{FinishInclusive, FinishAfterSteps}

// Rounding selects how raw fractional minute values become whole minutes.
type Rounding string

const (
	// RoundNearest rounds to the nearest minute with halves away from zero.
	// Pinned explicitly rather than left to a platform default so exported
	// schedules are reproducible everywhere.
	RoundNearest Rounding = "nearest"
	// RoundFloor rounds toward negative infinity.
	RoundFloor Rounding = "floor"
	// RoundCeil rounds toward positive infinity.
	RoundCeil Rounding = "ceil"
)

// Roundings lists all supported rounding names.
var Roundings = []Rounding{RoundNearest, RoundFloor, RoundCeil}
