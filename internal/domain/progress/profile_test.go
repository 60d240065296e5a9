package progress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

func TestProfile_JSONRoundTrip(t *testing.T) {
	p := NewProfile()
	p.Name = "Ada"
	p.Currency = 640
	p.Level = 3
	p.CurrentStreak = 4
	p.LongestStreak = 9
	p.TotalTasksCompleted = 17
	p.NotesWritten = 3
	p.EarnedBadgeIDs = NewBadgeSet("first_light", "week_one", "blooming")
	p.Situation = SituationExhausted
	p.Goal = GoalFindBalance
	p.OnboardingCompleted = true
	p.CategoryCompletions[catalog.CategoryBreathe] = 6
	p.LastActiveDate = nil

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"lastActiveDate":null`)

	var decoded Profile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *p, decoded)
}

func TestProfile_JSONRoundTripWithDates(t *testing.T) {
	p := NewProfile()
	d := timeutil.NewDate(2026, 10, 14)
	p.LastActiveDate = &d
	p.LastAllDoneDate = &d

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded Profile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *p, decoded)
}

func TestProfile_MissingFieldsTakeDefaults(t *testing.T) {
	var decoded Profile
	require.NoError(t, json.Unmarshal([]byte(`{"currency": 250, "earnedBadgeIds": ["a", "a", "b"]}`), &decoded))

	assert.Equal(t, 250, decoded.Currency)
	assert.Equal(t, PaceSteady, decoded.Pace)
	assert.True(t, decoded.StreakFreezeAvailable)
	assert.True(t, decoded.Notifications.DailyReminders)
	assert.True(t, decoded.Notifications.StreakAlerts)
	assert.Nil(t, decoded.LastActiveDate)
	assert.Equal(t, []string{"a", "b"}, decoded.EarnedBadgeIDs.IDs())

	decoded.Normalize(catalog.DefaultLevelTable())
	assert.Equal(t, 2, decoded.Level)
}

func TestProfile_NormalizeRepairsStaleLevel(t *testing.T) {
	p := NewProfile()
	p.Currency = 8100
	p.Level = 2
	p.Pace = "sprint"
	p.CurrentStreak = 5
	p.LongestStreak = 2

	p.Normalize(catalog.DefaultLevelTable())

	assert.Equal(t, 8, p.Level)
	assert.Equal(t, PaceSteady, p.Pace)
	assert.Equal(t, 5, p.LongestStreak)
}

func TestProfile_CloneIsDeep(t *testing.T) {
	p := NewProfile()
	d := timeutil.NewDate(2026, 10, 14)
	p.LastActiveDate = &d
	p.EarnedBadgeIDs.Add("first_light")
	p.CategoryCompletions[catalog.CategoryMove] = 1

	c := p.Clone()
	c.EarnedBadgeIDs.Add("week_one")
	c.CategoryCompletions[catalog.CategoryMove] = 5
	*c.LastActiveDate = d.AddDays(1)

	assert.Equal(t, 1, p.EarnedBadgeIDs.Len())
	assert.Equal(t, 1, p.CategoryCompletions[catalog.CategoryMove])
	assert.Equal(t, d, *p.LastActiveDate)
}

func TestPace(t *testing.T) {
	assert.Equal(t, 1, PaceGentle.DailyTaskCount())
	assert.Equal(t, 2, PaceSteady.DailyTaskCount())
	assert.Equal(t, 3, PaceActive.DailyTaskCount())

	p, err := ParsePace(" Active ")
	require.NoError(t, err)
	assert.Equal(t, PaceActive, p)

	_, err = ParsePace("turbo")
	assert.Error(t, err)
}

func TestNotificationPrefs_Validate(t *testing.T) {
	assert.NoError(t, NotificationPrefs{ReminderTime: "20:30"}.Validate())
	assert.NoError(t, NotificationPrefs{}.Validate())
	assert.Error(t, NotificationPrefs{ReminderTime: "8pm"}.Validate())
}
