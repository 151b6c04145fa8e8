package derive

import (
	"time"

	"github.com/habitloop/habitloop-server/internal/domain"
)

// Insight names the strongest and weakest habits over the monthly window.
// Best and Worst are nil when the habit list is empty.
type Insight struct {
	Best   *domain.Habit  `json:"best,omitempty"`
	Worst  *domain.Habit  `json:"worst,omitempty"`
	Counts map[string]int `json:"counts"`
}

// MonthlyInsight accumulates per-habit completion counts over the 30
// trailing days ending at now's day and picks the best and worst habits.
//
// Days without a history entry contribute nothing to any habit. Ties are
// broken by habit-list order: the reduction scans left to right and only
// replaces the incumbent on strict improvement, so the first habit with the
// top (or bottom) count wins.
func MonthlyInsight(history map[string]domain.HistoryEntry, habits []domain.Habit, now time.Time) Insight {
	counts := make(map[string]int, len(habits))
	for _, h := range habits {
		counts[h.ID] = 0
	}
	for _, key := range LastNDates(now, MonthlyWindow) {
		entry, ok := history[key]
		if !ok {
			continue
		}
		for _, h := range habits {
			if entry.Habits[h.ID] {
				counts[h.ID]++
			}
		}
	}

	insight := Insight{Counts: counts}
	if len(habits) == 0 {
		return insight
	}

	best, worst := habits[0], habits[0]
	for _, h := range habits[1:] {
		if counts[h.ID] > counts[best.ID] {
			best = h
		}
		if counts[h.ID] < counts[worst.ID] {
			worst = h
		}
	}
	insight.Best = &best
	insight.Worst = &worst
	return insight
}
