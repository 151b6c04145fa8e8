// Package derive implements the read-only derivation layer over a user
// document: canonical date keys, trailing date windows, per-day completion
// percentages, streaks, and weekly/monthly aggregates.
//
// Every function here is pure and total: it takes the current time as an
// argument, never panics, and treats missing map entries as "no data".
package derive

import "time"

// dayKeyLayout is the canonical YYYY-MM-DD date-key format.
const dayKeyLayout = "2006-01-02"

// Window sizes for the aggregation engine.
const (
	WeeklyWindow  = 7
	MonthlyWindow = 30
)

// DayKey formats a time as its local calendar-day key.
// All date keys in the system come from this one function, so the seed paths
// and the derivation paths can never disagree about timezone handling.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// TodayKey returns the date key for the calendar day containing now.
func TodayKey(now time.Time) string {
	return DayKey(now)
}

// LastNDates returns the date keys of the n trailing calendar days ending at
// now's day, oldest first. The result always has length n for n >= 1; n < 1
// yields an empty slice.
func LastNDates(now time.Time, n int) []string {
	if n < 1 {
		return nil
	}
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = DayKey(now.AddDate(0, 0, i-(n-1)))
	}
	return keys
}

// ParseDayKey parses a YYYY-MM-DD key back into a local-midnight time.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.Local)
}
