package derive

import (
	"math"
	"time"

	"github.com/habitloop/habitloop-server/internal/domain"
)

// WeeklySeries returns the completion percentage for each of the 7 trailing
// days ending at now's day, oldest first. Days without a history entry
// contribute 0.
func WeeklySeries(history map[string]domain.HistoryEntry, habits []domain.Habit, now time.Time) []int {
	keys := LastNDates(now, WeeklyWindow)
	series := make([]int, len(keys))
	for i, key := range keys {
		series[i] = PercentForDay(history[key].Habits, habits)
	}
	return series
}

// WeeklyAverage returns the rounded mean of a percentage series, or 0 for an
// empty series.
func WeeklyAverage(series []int) int {
	if len(series) == 0 {
		return 0
	}
	sum := 0
	for _, p := range series {
		sum += p
	}
	return int(math.Round(float64(sum) / float64(len(series))))
}

// WeeklyPerfectDays counts the days in a series at exactly 100%.
func WeeklyPerfectDays(series []int) int {
	count := 0
	for _, p := range series {
		if p == 100 {
			count++
		}
	}
	return count
}
