package engine

import (
	"math"

	"hourzero/internal/clock"
	"hourzero/internal/errors"
)

// shrinkFraction is the share of the remaining window the percentage curve
// removes each day.
const shrinkFraction = 0.05

// logisticSteepness is the k parameter of the logistic curve.
const logisticSteepness = 6.0

// Offsets computes the per-side inward offset (in minutes) for each day
// 1..days. Day 1 always has offset 0: the window starts at its full declared
// size. For every curve except linear under FinishAfterSteps, the final
// day's offset is exactly L/2 (full collapse) before rounding.
//
// A one-day schedule never narrows and returns [0] for every curve; the
// days == 1 case is intercepted here before any curve divides by days-1.
func Offsets(start, end clock.Minute, days int, mode FinishMode, curve Curve) ([]float64, error) {
	if days <= 0 || days > MaxDays {
		return nil, errors.NewInvalidDays(days, MaxDays)
	}

	length := float64(clock.WindowLength(start, end))
	if length == 0 {
		return nil, errors.NewEmptyWindow()
	}

	switch curve {
	case CurveLinear:
		step, err := DailyStep(start, end, days, mode)
		if err != nil {
			return nil, err
		}
		offs := make([]float64, days)
		for d := 1; d <= days; d++ {
			offs[d-1] = float64(d-1) * step
		}
		return offs, nil
	case CurvePercentage:
		return percentageOffsets(length, days), nil
	case CurveLogistic:
		return logisticOffsets(length, days), nil
	case CurveSinusoidal:
		return sinusoidalOffsets(length, days), nil
	default:
		return nil, errors.NewUnsupportedCurve(string(curve))
	}
}

// percentageOffsets shrinks shrinkFraction of the current remaining length
// each day, emitting the cumulative offset before that day's shrink. The
// geometric decay never reaches zero on its own, so the final day is forced
// to exactly L/2.
func percentageOffsets(length float64, days int) []float64 {
	if days == 1 {
		return []float64{0}
	}

	offs := make([]float64, days)
	currentLen := length
	cumulative := 0.0
	for d := 1; d <= days; d++ {
		if d == days {
			cumulative = length / 2
		}
		offs[d-1] = cumulative
		if d < days {
			shrink := currentLen * shrinkFraction
			cumulative += shrink / 2
			currentLen -= shrink
		}
	}
	return offs
}

// logisticOffsets shapes offsets with a logistic curve over t in [0,1],
// renormalized so that offset(day 1) == 0 and offset(day N) == L/2 exactly
// (the raw logistic never quite reaches 0 or 1).
func logisticOffsets(length float64, days int) []float64 {
	if days == 1 {
		return []float64{0}
	}

	logistic := func(x float64) float64 {
		return 1 / (1 + math.Exp(-logisticSteepness*(x-0.5)))
	}
	lo := logistic(0)
	hi := logistic(1)

	offs := make([]float64, days)
	for d := 1; d <= days; d++ {
		t := float64(d-1) / float64(days-1)
		frac := (logistic(t) - lo) / (hi - lo)
		offs[d-1] = length / 2 * frac
	}
	return offs
}

// sinusoidalOffsets uses frac = (1 - cos(pi*t))/2, an ease-in/ease-out shape
// that hits 0 at day 1 and 1 at day N without renormalization.
func sinusoidalOffsets(length float64, days int) []float64 {
	if days == 1 {
		return []float64{0}
	}

	offs := make([]float64, days)
	for d := 1; d <= days; d++ {
		t := float64(d-1) / float64(days-1)
		frac := (1 - math.Cos(math.Pi*t)) / 2
		offs[d-1] = length / 2 * frac
	}
	return offs
}
