package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/domain"
)

func TestWeeklySeries(t *testing.T) {
	habits := habitList("a", "b")
	history := map[string]domain.HistoryEntry{
		DayKey(noon):                  {Habits: map[string]bool{"a": true, "b": true}},
		DayKey(noon.AddDate(0, 0, -1)): {Habits: map[string]bool{"a": true}},
		// Day -2 has no entry at all.
		DayKey(noon.AddDate(0, 0, -3)): {Habits: map[string]bool{"a": false, "b": false}},
	}

	series := WeeklySeries(history, habits, noon)
	require.Len(t, series, WeeklyWindow)
	// Oldest first: days -6..-4 missing, -3 at 0%, -2 missing, -1 at 50%, today 100%.
	assert.Equal(t, []int{0, 0, 0, 0, 0, 50, 100}, series)
}

func TestWeeklyAverage(t *testing.T) {
	tests := []struct {
		name   string
		series []int
		want   int
	}{
		{"rounds 600/7 to 86", []int{100, 100, 0, 100, 100, 100, 100}, 86},
		{"all zero", []int{0, 0, 0, 0, 0, 0, 0}, 0},
		{"all perfect", []int{100, 100, 100, 100, 100, 100, 100}, 100},
		{"empty series", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeeklyAverage(tt.series))
		})
	}
}

func TestWeeklyPerfectDays(t *testing.T) {
	assert.Equal(t, 6, WeeklyPerfectDays([]int{100, 100, 0, 100, 100, 100, 100}))
	assert.Equal(t, 0, WeeklyPerfectDays([]int{99, 0, 50}))
	assert.Equal(t, 0, WeeklyPerfectDays(nil))
}
