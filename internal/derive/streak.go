package derive

import (
	"time"

	"github.com/habitloop/habitloop-server/internal/domain"
)

// Streak counts consecutive fully-completed days ending at now's day.
//
// The walk starts at today and moves backward one day at a time. A day
// counts only if a history entry exists for it and every current habit is
// completed (100%). The first day with no entry or with partial completion
// ends the walk, so today itself must be perfect for the streak to reach 1.
func Streak(history map[string]domain.HistoryEntry, habits []domain.Habit, now time.Time) int {
	streak := 0
	for day := now; ; day = day.AddDate(0, 0, -1) {
		entry, ok := history[DayKey(day)]
		if !ok {
			break
		}
		if PercentForDay(entry.Habits, habits) != 100 {
			break
		}
		streak++
	}
	return streak
}
