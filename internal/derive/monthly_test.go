package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/domain"
)

// historyWithCounts builds entries so each habit id is completed on the
// given number of trailing days.
func historyWithCounts(now time.Time, counts map[string]int) map[string]domain.HistoryEntry {
	history := make(map[string]domain.HistoryEntry)
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	for i := 0; i < max; i++ {
		day := map[string]bool{}
		for id, c := range counts {
			day[id] = i < c
		}
		history[DayKey(now.AddDate(0, 0, -i))] = domain.HistoryEntry{Habits: day}
	}
	return history
}

func TestMonthlyInsight_BestAndWorst(t *testing.T) {
	habits := habitList("a", "b", "c")
	history := historyWithCounts(noon, map[string]int{"a": 5, "b": 12, "c": 1})

	insight := MonthlyInsight(history, habits, noon)
	require.NotNil(t, insight.Best)
	require.NotNil(t, insight.Worst)
	assert.Equal(t, "b", insight.Best.ID)
	assert.Equal(t, "c", insight.Worst.ID)
	assert.Equal(t, map[string]int{"a": 5, "b": 12, "c": 1}, insight.Counts)
}

func TestMonthlyInsight_FirstHabitWinsTies(t *testing.T) {
	habits := habitList("a", "b")
	history := historyWithCounts(noon, map[string]int{"a": 4, "b": 4})

	insight := MonthlyInsight(history, habits, noon)
	require.NotNil(t, insight.Best)
	require.NotNil(t, insight.Worst)
	assert.Equal(t, "a", insight.Best.ID, "full tie: first listed habit wins best")
	assert.Equal(t, "a", insight.Worst.ID, "full tie: first listed habit wins worst")
}

func TestMonthlyInsight_DaysOutsideWindowIgnored(t *testing.T) {
	habits := habitList("a")
	history := map[string]domain.HistoryEntry{
		// 31 days back is outside the 30-day window.
		DayKey(noon.AddDate(0, 0, -(MonthlyWindow))): {Habits: map[string]bool{"a": true}},
	}

	insight := MonthlyInsight(history, habits, noon)
	assert.Equal(t, 0, insight.Counts["a"])
}

func TestMonthlyInsight_EmptyHabits(t *testing.T) {
	insight := MonthlyInsight(nil, nil, noon)
	assert.Nil(t, insight.Best)
	assert.Nil(t, insight.Worst)
	assert.Empty(t, insight.Counts)
}
