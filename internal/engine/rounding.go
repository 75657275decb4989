package engine

import (
	"math"

	"hourzero/internal/errors"
)

// roundHalfAwayFromZero rounds to the nearest integer with halves going away
// from zero (0.5 -> 1, -0.5 -> -1). This is the pinned tie-breaking rule for
// RoundNearest; it must not drift with the platform.
func roundHalfAwayFromZero(x float64) int {
	if x >= 0 {
		return int(math.Floor(x + 0.5))
	}
	return int(math.Ceil(x - 0.5))
}

// roundFunc maps a Rounding to its pure rounding function via exhaustive
// dispatch, so an unrecognized value is an explicit error rather than a
// silent fallback.
func roundFunc(r Rounding) (func(float64) int, error) {
	switch r {
	case RoundNearest:
		return roundHalfAwayFromZero, nil
	case RoundFloor:
		return func(x float64) int { return int(math.Floor(x)) }, nil
	case RoundCeil:
		return func(x float64) int { return int(math.Ceil(x)) }, nil
	default:
		return nil, errors.NewUnsupportedRounding(string(r))
	}
}
