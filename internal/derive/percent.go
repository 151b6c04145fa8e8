package derive

import (
	"math"

	"github.com/habitloop/habitloop-server/internal/domain"
)

// PercentForDay returns the completion percentage (0..100) for one day.
//
// Only habits present in the current habit list count toward the total;
// stale ids left behind in the day map by deleted habits are ignored. A nil
// map, a missing key, and an explicit false are all "not completed". The
// total is clamped to at least 1 so an empty habit list yields 0 rather
// than dividing by zero.
func PercentForDay(dayHabits map[string]bool, habits []domain.Habit) int {
	total := len(habits)
	if total < 1 {
		total = 1
	}
	completed := 0
	for _, h := range habits {
		if dayHabits[h.ID] {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
