package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2025, 3, 15, 12, 30, 0, 0, time.Local)

func TestDayKey(t *testing.T) {
	assert.Equal(t, "2025-03-15", DayKey(noon))
	assert.Equal(t, "2025-01-01", DayKey(time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)))
}

func TestLastNDates(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		first string
		last  string
	}{
		{"single day", 1, "2025-03-15", "2025-03-15"},
		{"week", 7, "2025-03-09", "2025-03-15"},
		{"month crosses boundary", 30, "2025-02-14", "2025-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := LastNDates(noon, tt.n)
			require.Len(t, keys, tt.n)
			assert.Equal(t, tt.first, keys[0])
			assert.Equal(t, tt.last, keys[len(keys)-1])
			assert.Equal(t, TodayKey(noon), keys[len(keys)-1])
			assert.True(t, sortedAscending(keys))
		})
	}
}

func TestLastNDates_NonPositive(t *testing.T) {
	assert.Empty(t, LastNDates(noon, 0))
	assert.Empty(t, LastNDates(noon, -3))
}

func TestParseDayKey_RoundTrip(t *testing.T) {
	parsed, err := ParseDayKey("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", DayKey(parsed))

	_, err = ParseDayKey("not-a-date")
	assert.Error(t, err)
}

func sortedAscending(keys []string) bool {
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			return false
		}
	}
	return true
}
