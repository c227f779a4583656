package fortune

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var kst = time.FixedZone("KST", 9*60*60)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, kst)
}

func TestCalendarKey(t *testing.T) {
	cal := DefaultCalendar()

	tests := []struct {
		name   string
		period Period
		now    time.Time
		want   string
	}{
		{"daily", Daily, at(2024, 3, 5, 15, 30), "2024-03-05"},
		{"daily from UTC evening", Daily, time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC), "2024-03-06"},
		{"daily just before midnight", Daily, at(2024, 3, 5, 23, 59), "2024-03-05"},
		{"weekly monday", Weekly, at(2024, 1, 8, 10, 0), "2024-W01-08"},
		{"weekly sunday night", Weekly, at(2024, 1, 14, 23, 59), "2024-W01-08"},
		{"weekly next monday", Weekly, at(2024, 1, 15, 0, 0), "2024-W01-15"},
		{"weekly across year end", Weekly, at(2025, 1, 1, 9, 0), "2024-W12-30"},
		{"weekly sunday before year end", Weekly, at(2024, 12, 29, 12, 0), "2024-W12-23"},
		{"monthly", Monthly, at(2024, 2, 29, 23, 0), "2024-02"},
		{"yearly", Yearly, at(2024, 12, 31, 23, 59), "2024"},
		{"yearly from UTC new year's eve", Yearly, time.Date(2024, 12, 31, 16, 0, 0, 0, time.UTC), "2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cal.Key(tt.period, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalendarKey_WeeklyStableAcrossEveryDayOfTheWeek(t *testing.T) {
	cal := DefaultCalendar()
	monday := at(2024, 12, 30, 0, 0)

	want, err := cal.Key(Weekly, monday)
	require.NoError(t, err)

	for h := 0; h < 7*24; h++ {
		got, err := cal.Key(Weekly, monday.Add(time.Duration(h)*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, want, got, "hour %d", h)
	}

	next, err := cal.Key(Weekly, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.NotEqual(t, want, next)
}

func TestCalendarKey_InvalidPeriod(t *testing.T) {
	_, err := DefaultCalendar().Key(Period("hourly"), time.Now())
	require.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = DefaultCalendar().Boundary(Period(""), time.Now())
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestCalendarBoundary(t *testing.T) {
	cal := DefaultCalendar()

	tests := []struct {
		period Period
		now    time.Time
		want   time.Time
	}{
		{Daily, at(2024, 3, 5, 15, 30), at(2024, 3, 6, 0, 0)},
		{Daily, at(2024, 2, 29, 1, 0), at(2024, 3, 1, 0, 0)},
		{Weekly, at(2024, 1, 8, 10, 0), at(2024, 1, 15, 0, 0)},
		{Weekly, at(2024, 1, 14, 23, 59), at(2024, 1, 15, 0, 0)},
		{Weekly, at(2024, 12, 31, 8, 0), at(2025, 1, 6, 0, 0)},
		{Monthly, at(2024, 12, 15, 0, 0), at(2025, 1, 1, 0, 0)},
		{Yearly, at(2024, 6, 1, 0, 0), at(2025, 1, 1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			got, err := cal.Boundary(tt.period, tt.now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
		})
	}
}

func TestParsePeriod(t *testing.T) {
	for _, p := range Periods {
		got, err := ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParsePeriod("decade")
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestLoadCalendar_UnknownZone(t *testing.T) {
	_, err := LoadCalendar("Nowhere/Atlantis")
	require.Error(t, err)
}
