package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_DaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"same day", NewDate(2026, 10, 14), NewDate(2026, 10, 14), 0},
		{"next day", NewDate(2026, 10, 14), NewDate(2026, 10, 15), 1},
		{"month boundary", NewDate(2026, 10, 31), NewDate(2026, 11, 2), 2},
		{"year boundary", NewDate(2026, 12, 31), NewDate(2027, 1, 1), 1},
		{"leap day", NewDate(2028, 2, 28), NewDate(2028, 3, 1), 2},
		{"backwards", NewDate(2026, 10, 14), NewDate(2026, 10, 11), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.DaysUntil(tt.to))
		})
	}
}

func TestDaysBetween_DSTAndClamp(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}

	// Clocks go back on 2026-10-25 in Berlin: that day has 25 hours.
	before := time.Date(2026, 10, 24, 23, 30, 0, 0, berlin)
	after := time.Date(2026, 10, 26, 0, 15, 0, 0, berlin)
	assert.Equal(t, 2, DaysBetween(before, after, berlin))

	assert.Equal(t, 0, DaysBetween(after, before, berlin))
}

func TestIsSameDay_UsesLocation(t *testing.T) {
	tz := time.FixedZone("UTC+5", 5*60*60)
	a := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC) // 01:00 on the 15th in UTC+5
	b := time.Date(2026, 10, 15, 3, 0, 0, 0, time.UTC)

	assert.False(t, IsSameDay(a, b, time.UTC))
	assert.True(t, IsSameDay(a, b, tz))
}

func TestDate_TextRoundTrip(t *testing.T) {
	d := NewDate(2026, 10, 14)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-14"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, d, decoded)

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.True(t, empty.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"14.10.2026"`), &decoded))
}

func TestWeekKey(t *testing.T) {
	assert.Equal(t, "2026-W42", WeekKey(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)))
	// 2027-01-01 is a Friday and belongs to the last ISO week of 2026.
	assert.Equal(t, "2026-W53", WeekKey(time.Date(2027, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	clock := NewFixedClock(start)

	assert.Equal(t, start, clock.Now())
	clock.AdvanceDays(2)
	assert.Equal(t, NewDate(2026, 10, 16), DateOf(clock.Now()))
	clock.Advance(time.Hour)
	assert.Equal(t, 10, clock.Now().Hour())
}

func TestValidClockTime(t *testing.T) {
	assert.True(t, ValidClockTime("08:30"))
	assert.False(t, ValidClockTime("8.30"))
	assert.False(t, ValidClockTime("25:00"))
}
