package engine

import (
	"math"
	"testing"

	"hourzero/internal/clock"
	"hourzero/internal/errors"
)

func TestOffsets_FirstDayAlwaysZero(t *testing.T) {
	for _, curve := range Curves {
		offs, err := Offsets(540, 1260, 10, FinishInclusive, curve)
		if err != nil {
			t.Fatalf("%s: Offsets failed: %v", curve, err)
		}
		if offs[0] != 0 {
			t.Errorf("%s: offset(day 1) = %v, want exactly 0", curve, offs[0])
		}
	}
}

func TestOffsets_LastDayIsHalfLength(t *testing.T) {
	// Non-linear curves collapse exactly on the final day before rounding.
	const halfLength = 360.0 // window 09:00 -> 21:00
	for _, curve := range []Curve{CurvePercentage, CurveLogistic, CurveSinusoidal} {
		for _, days := range []int{2, 3, 7, 10, 365} {
			offs, err := Offsets(540, 1260, days, FinishInclusive, curve)
			if err != nil {
				t.Fatalf("%s days=%d: Offsets failed: %v", curve, days, err)
			}
			if offs[days-1] != halfLength {
				t.Errorf("%s days=%d: offset(day N) = %v, want exactly %v", curve, days, offs[days-1], halfLength)
			}
		}
	}
}

func TestOffsets_SingleDay(t *testing.T) {
	// A one-day schedule never narrows, regardless of curve or finish mode.
	for _, curve := range Curves {
		for _, mode := range FinishModes {
			offs, err := Offsets(540, 1260, 1, mode, curve)
			if err != nil {
				t.Fatalf("%s/%s: Offsets failed: %v", curve, mode, err)
			}
			if len(offs) != 1 || offs[0] != 0 {
				t.Errorf("%s/%s: Offsets = %v, want [0]", curve, mode, offs)
			}
		}
	}
}

func TestOffsets_NonDecreasing(t *testing.T) {
	// Offsets never shrink day to day, so the window is monotonically
	// non-growing under every curve.
	windows := []struct{ start, end clock.Minute }{
		{540, 1260},
		{1350, 315}, // crosses midnight
		{0, 1439},
	}
	for _, w := range windows {
		for _, curve := range Curves {
			offs, err := Offsets(w.start, w.end, 30, FinishInclusive, curve)
			if err != nil {
				t.Fatalf("%s: Offsets failed: %v", curve, err)
			}
			for i := 1; i < len(offs); i++ {
				if offs[i] < offs[i-1] {
					t.Errorf("%s window %d->%d: offset decreased at day %d: %v < %v",
						curve, w.start, w.end, i+1, offs[i], offs[i-1])
				}
			}
		}
	}
}

func TestOffsets_Linear(t *testing.T) {
	offs, err := Offsets(540, 1260, 10, FinishInclusive, CurveLinear)
	if err != nil {
		t.Fatalf("Offsets failed: %v", err)
	}
	// step = 40, so day d carries (d-1)*40
	for d := 1; d <= 10; d++ {
		want := float64(d-1) * 40
		if offs[d-1] != want {
			t.Errorf("day %d: offset = %v, want %v", d, offs[d-1], want)
		}
	}
}

func TestOffsets_Percentage(t *testing.T) {
	offs, err := Offsets(540, 1260, 5, FinishInclusive, CurvePercentage)
	if err != nil {
		t.Fatalf("Offsets failed: %v", err)
	}

	// L = 720. Day 2: first shrink is 720*0.05 = 36, split across both
	// sides, so the cumulative per-side offset is 18.
	if offs[1] != 18 {
		t.Errorf("day 2: offset = %v, want 18", offs[1])
	}
	// Day 3 shrinks 5% of the remaining 684: cumulative 18 + 684*0.05/2.
	want := 18 + 684*0.05/2
	if math.Abs(offs[2]-want) > 1e-9 {
		t.Errorf("day 3: offset = %v, want %v", offs[2], want)
	}
	// Finish mode is ignored: after-steps gives identical offsets.
	after, err := Offsets(540, 1260, 5, FinishAfterSteps, CurvePercentage)
	if err != nil {
		t.Fatalf("Offsets failed: %v", err)
	}
	for i := range offs {
		if offs[i] != after[i] {
			t.Errorf("day %d: finish mode changed percentage offsets: %v != %v", i+1, offs[i], after[i])
		}
	}
}

func TestOffsets_Sinusoidal(t *testing.T) {
	// days=3 puts the middle day at t=0.5, where frac = (1-cos(pi/2))/2 = 0.5,
	// so the offset is L/4.
	offs, err := Offsets(540, 1260, 3, FinishInclusive, CurveSinusoidal)
	if err != nil {
		t.Fatalf("Offsets failed: %v", err)
	}
	if math.Abs(offs[1]-180) > 1e-9 {
		t.Errorf("middle day offset = %v, want 180", offs[1])
	}
}

func TestOffsets_Logistic(t *testing.T) {
	offs, err := Offsets(540, 1260, 11, FinishInclusive, CurveLogistic)
	if err != nil {
		t.Fatalf("Offsets failed: %v", err)
	}
	// The normalized logistic is symmetric about its midpoint, so the
	// middle day (t=0.5) sits at exactly half the collapse offset.
	if math.Abs(offs[5]-180) > 1e-9 {
		t.Errorf("middle day offset = %v, want 180", offs[5])
	}
	// Slow at the edges: the first step is smaller than the middle step.
	firstStep := offs[1] - offs[0]
	midStep := offs[5] - offs[4]
	if firstStep >= midStep {
		t.Errorf("logistic should be steepest in the middle: first step %v >= mid step %v", firstStep, midStep)
	}
}

func TestOffsets_TwoDays(t *testing.T) {
	// days == 2 exercises t = (d-1)/(days-1) at its 0 and 1 endpoints.
	for _, curve := range []Curve{CurveLogistic, CurveSinusoidal} {
		offs, err := Offsets(540, 1260, 2, FinishInclusive, curve)
		if err != nil {
			t.Fatalf("%s: Offsets failed: %v", curve, err)
		}
		if offs[0] != 0 || offs[1] != 360 {
			t.Errorf("%s: Offsets = %v, want [0 360]", curve, offs)
		}
	}
}

func TestOffsets_UnsupportedCurve(t *testing.T) {
	_, err := Offsets(540, 1260, 10, FinishInclusive, Curve("spline"))
	if !errors.Is(err, errors.ErrUnsupportedCurve) {
		t.Errorf("error = %v, want UNSUPPORTED_CURVE", err)
	}
}

func TestOffsets_InvalidInputs(t *testing.T) {
	if _, err := Offsets(540, 1260, 0, FinishInclusive, CurveSinusoidal); !errors.Is(err, errors.ErrInvalidDays) {
		t.Errorf("days=0: error = %v, want INVALID_DAYS", err)
	}
	if _, err := Offsets(300, 300, 5, FinishInclusive, CurveLogistic); !errors.Is(err, errors.ErrEmptyWindow) {
		t.Errorf("empty window: error = %v, want EMPTY_WINDOW", err)
	}
}
