package utils

import "time"

// IsDue reports whether an n-day recurrence whose most recent occurrence fell on
// last is due again on today. Intervals below one are treated as daily.
func IsDue(last, today time.Time, intervalDays int) bool {
	if intervalDays < 1 {
		intervalDays = 1
	}
	return DayDiff(last, today) >= intervalDays
}
