package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitloop/habitloop-server/internal/derive"
)

func TestStats_FreshDocument(t *testing.T) {
	f := newFixture(t)

	stats, err := f.stats.Stats(context.Background(), testIdentity)
	require.NoError(t, err)

	assert.Equal(t, derive.TodayKey(testNow), stats.Date)
	assert.Equal(t, 0, stats.TodayPercent)
	assert.Equal(t, 0, stats.Streak)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, stats.WeeklySeries)
	assert.Equal(t, 0, stats.WeeklyAverage)
	assert.Equal(t, 0, stats.PerfectDays)
	assert.Nil(t, stats.BestHabit)
	assert.Nil(t, stats.WorstHabit)
	assert.Len(t, stats.HabitTotals, 7, "every habit gets a zero total")
}

func TestStats_ReflectsCompletions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := derive.TodayKey(testNow)

	// Complete every habit today.
	doc, err := f.docs.Document(ctx, testIdentity)
	require.NoError(t, err)
	for _, h := range doc.Habits {
		_, err := f.docs.SetHabitDone(ctx, testIdentity, today, h.ID, true)
		require.NoError(t, err)
	}

	stats, err := f.stats.Stats(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.TodayPercent)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, stats.PerfectDays)
	assert.Equal(t, 100, stats.WeeklySeries[6], "today is the last point of the series")

	require.NotNil(t, stats.BestHabit)
	assert.Equal(t, 1, stats.HabitTotals[stats.BestHabit.ID])
}
