package service

import (
	"context"
	"time"

	"github.com/habitloop/habitloop-server/internal/derive"
	"github.com/habitloop/habitloop-server/internal/domain"
)

// Stats is the full derived view over one document, computed server-side so
// thin clients can render the dashboard without the whole history blob.
type Stats struct {
	Date          string         `json:"date"`
	TodayPercent  int            `json:"today_percent"`
	Streak        int            `json:"streak"`
	WeeklySeries  []int          `json:"weekly_series"`
	WeeklyAverage int            `json:"weekly_average"`
	PerfectDays   int            `json:"perfect_days"`
	BestHabit     *domain.Habit  `json:"best_habit"`
	WorstHabit    *domain.Habit  `json:"worst_habit"`
	HabitTotals   map[string]int `json:"habit_totals"`
}

// StatsService computes read-only derived views.
type StatsService struct {
	docs *DocumentService
	now  func() time.Time
}

// NewStatsService creates a stats service. nowFn may be nil to use the
// runtime clock.
func NewStatsService(docs *DocumentService, nowFn func() time.Time) *StatsService {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &StatsService{docs: docs, now: nowFn}
}

// Stats derives the dashboard numbers for the identity's document.
func (s *StatsService) Stats(ctx context.Context, identity string) (*Stats, error) {
	doc, err := s.docs.Document(ctx, identity)
	if err != nil {
		return nil, err
	}
	return Derive(doc, s.now()), nil
}

// Derive computes all dashboard numbers from one snapshot at one instant.
// Pure; exposed for reuse by handlers that already hold a document.
func Derive(doc *domain.Document, now time.Time) *Stats {
	todayEntry := doc.History[derive.TodayKey(now)]
	series := derive.WeeklySeries(doc.History, doc.Habits, now)
	insight := derive.MonthlyInsight(doc.History, doc.Habits, now)

	return &Stats{
		Date:          derive.TodayKey(now),
		TodayPercent:  derive.PercentForDay(todayEntry.Habits, doc.Habits),
		Streak:        derive.Streak(doc.History, doc.Habits, now),
		WeeklySeries:  series,
		WeeklyAverage: derive.WeeklyAverage(series),
		PerfectDays:   derive.WeeklyPerfectDays(series),
		BestHabit:     insight.Best,
		WorstHabit:    insight.Worst,
		HabitTotals:   insight.Counts,
	}
}
