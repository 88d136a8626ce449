package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
)

// Now is the clock used by the application. Tests replace it.
var Now = time.Now

// ParseClock parses a time-of-day string in the standard format (HH:MM).
func ParseClock(clock string) (hour, minute int, err error) {
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(clock string) bool {
	_, _, err := ParseClock(clock)
	return err == nil
}

// ComposeOnDate places an HH:MM time of day onto the calendar date of day,
// in day's location. It returns nil when clock is nil or malformed.
func ComposeOnDate(clock *string, day time.Time) *time.Time {
	if clock == nil {
		return nil
	}
	h, m, err := ParseClock(*clock)
	if err != nil {
		return nil
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
	return &t
}

// FormatClock renders the time-of-day portion of t as HH:MM.
func FormatClock(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// StartOfDay returns local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar date.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// SameDay reports whether a and b fall on the same calendar date in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayDiff returns the number of calendar days from `from` to `to`, both truncated to
// midnight in to's location. Date-based arithmetic avoids DST drift.
func DayDiff(from, to time.Time) int {
	from = from.In(to.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// FormatDate renders t's calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}
