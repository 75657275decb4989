// Package clock implements minute-of-day arithmetic on a circular 24-hour
// clock.
//
// All values are naive clock-of-day minutes with no timezone or calendar
// attached. Arithmetic is taken modulo 1440 and normalized into [0, 1440),
// so windows may legitimately cross midnight: a window from 22:30 to 05:15
// has length 390, read in the start-to-end direction.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hourzero/internal/errors"
)

// DayMinutes is the number of minutes in one day.
const DayMinutes = 24 * 60

// Minute is a minute-of-day value on the circular clock.
// Canonical range [0, DayMinutes).
type Minute int

// Normalize maps any integer minute count into the canonical range
// [0, DayMinutes). Correct for negative inputs.
func Normalize(m int) Minute {
	return Minute(((m % DayMinutes) + DayMinutes) % DayMinutes)
}

// Parse converts "HH:MM" text into a Minute. Hours and minutes may be
// unpadded ("9:05" and "09:05" are both accepted). Returns a FORMAT error
// for text that is not two colon-separated numeric parts, and a RANGE error
// for hours outside 00-23 or minutes outside 00-59.
func Parse(text string) (Minute, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 2 {
		return 0, errors.NewFormat(text)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, errors.NewFormat(text)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, errors.NewFormat(text)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, errors.NewRange(text)
	}
	return Minute(h*60 + m), nil
}

// Format renders a minute count as zero-padded "HH:MM", wrapping around 24h.
// Format is a left inverse of Parse: Parse(Format(m)) == Normalize(int(m)).
func (m Minute) Format() string {
	n := Normalize(int(m))
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

// WindowLength returns the length of the window read from start to end,
// always in [0, DayMinutes). A length of 0 means start and end coincide.
func WindowLength(start, end Minute) int {
	return (int(end) - int(start) + DayMinutes) % DayMinutes
}

// CircularMidpoint returns the midpoint between two clock times along the
// shorter arc of the circle. Naive averaging is wrong when the short arc
// crosses midnight: the midpoint of 23:30 and 00:30 is 00:00, not 12:00.
func CircularMidpoint(a, b Minute) Minute {
	diff := (int(b) - int(a) + DayMinutes) % DayMinutes
	if diff > DayMinutes/2 {
		diff -= DayMinutes
	}
	return Normalize(int(a) + diff/2)
}

// DaysBetween converts a calendar date range into an inclusive day count:
// floor((to-from)/24h) + 1. Both dates are taken at face value with no
// timezone interpretation. Returns INVALID_REQUEST when to precedes from.
func DaysBetween(from, to time.Time) (int, error) {
	if to.Before(from) {
		return 0, errors.NewInvalidRequest("end date must not precede start date")
	}
	const dayMillis = 86400000
	return int(to.Sub(from).Milliseconds()/dayMillis) + 1, nil
}
