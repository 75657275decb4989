package engine

import (
	"fmt"

	"hourzero/internal/clock"
	"hourzero/internal/errors"
)

// DailyStep computes the per-side narrowing amount m (in minutes) for the
// linear curve.
//
// Under FinishInclusive the window must collapse on day N, so N-1 steps each
// advance one side by L/(2(N-1)); a one-day schedule is already at collapse
// and steps by 0. Under FinishAfterSteps exactly N steps are performed and
// collapse lands the day after, giving L/(2N).
func DailyStep(start, end clock.Minute, days int, mode FinishMode) (float64, error) {
	if days <= 0 || days > MaxDays {
		return 0, errors.NewInvalidDays(days, MaxDays)
	}

	length := clock.WindowLength(start, end)
	if length == 0 {
		return 0, errors.NewEmptyWindow()
	}

	switch mode {
	case FinishInclusive:
		if days == 1 {
			return 0, nil
		}
		return float64(length) / (2 * float64(days-1)), nil
	case FinishAfterSteps:
		return float64(length) / (2 * float64(days)), nil
	default:
		return 0, errors.NewInvalidRequest(fmt.Sprintf("finish mode must be %q or %q, got %q", FinishInclusive, FinishAfterSteps, mode))
	}
}
