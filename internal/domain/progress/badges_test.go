package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
)

func completionAt(hour int) *Completion {
	return &Completion{
		TaskID:      "t",
		Category:    catalog.CategoryReflect,
		CompletedAt: time.Date(2026, 10, 14, hour, 15, 0, 0, time.UTC),
	}
}

func TestEvaluate_FirstLightOnce(t *testing.T) {
	ev := NewEvaluator(nil)
	p := NewProfile()
	p.TotalTasksCompleted = 1

	badge := ev.EvaluateAndAward(p, completionAt(12))
	require.NotNil(t, badge)
	assert.Equal(t, "first_light", badge.ID)

	// Condition still holds but the badge is never re-fired or re-added.
	for i := 0; i < 3; i++ {
		assert.Nil(t, ev.Evaluate(p, completionAt(12)))
	}
	assert.Equal(t, []string{"first_light"}, p.EarnedBadgeIDs.IDs())

	assert.False(t, ev.Award(p, *badge))
	assert.Equal(t, 1, p.EarnedBadgeIDs.Len())
}

func TestEvaluate_AtMostOnePerCall(t *testing.T) {
	ev := NewEvaluator(nil)
	p := NewProfile()
	p.TotalTasksCompleted = 1

	// first_light and night_owl are both satisfied; definition order wins.
	first := ev.EvaluateAndAward(p, completionAt(22))
	require.NotNil(t, first)
	assert.Equal(t, "first_light", first.ID)

	second := ev.EvaluateAndAward(p, completionAt(22))
	require.NotNil(t, second)
	assert.Equal(t, "night_owl", second.ID)

	assert.Nil(t, ev.EvaluateAndAward(p, completionAt(22)))
}

func TestEvaluate_Conditions(t *testing.T) {
	tests := []struct {
		name   string
		badge  string
		setup  func(p *Profile)
		last   *Completion
		expect bool
	}{
		{"week one", "week_one", func(p *Profile) { p.CurrentStreak = 7 }, nil, true},
		{"week one short", "week_one", func(p *Profile) { p.CurrentStreak = 6 }, nil, false},
		{"night owl at 21", "night_owl", nil, completionAt(21), true},
		{"night owl at 20", "night_owl", nil, completionAt(20), false},
		{"night owl without completion", "night_owl", nil, nil, false},
		{"early bird at 6", "early_bird", nil, completionAt(6), true},
		{"early bird at 7", "early_bird", nil, completionAt(7), false},
		{"storyteller", "storyteller", func(p *Profile) { p.NotesWritten = 10 }, nil, true},
		{"zen mind", "zen_mind", func(p *Profile) { p.CategoryCompletions[catalog.CategoryBreathe] = 10 }, nil, true},
		{"zen mind other category", "zen_mind", func(p *Profile) { p.CategoryCompletions[catalog.CategoryMove] = 10 }, nil, false},
		{"resilient", "resilient", func(p *Profile) { p.StreakRecoveries = 1 }, nil, true},
		{"focused", "focused", func(p *Profile) { p.AllDoneStreak = 5 }, nil, true},
		{"blooming", "blooming", func(p *Profile) { p.Level = 3 }, nil, true},
		{"collector", "collector", func(p *Profile) {
			p.EarnedBadgeIDs = NewBadgeSet("a", "b", "c", "d", "e")
		}, nil, true},
		{"balanced", "balanced", func(p *Profile) {
			for _, c := range catalog.AllCategories() {
				p.CategoryCompletions[c] = 1
			}
		}, nil, true},
		{"self aware", "self_aware", func(p *Profile) { p.AssessmentsCompleted = 4 }, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := catalog.FindBadge(catalog.DefaultBadges(), tt.badge)
			require.True(t, ok)
			ev := NewEvaluator([]catalog.BadgeDefinition{def})

			p := NewProfile()
			if tt.setup != nil {
				tt.setup(p)
			}

			got := ev.Evaluate(p, tt.last)
			if tt.expect {
				require.NotNil(t, got)
				assert.Equal(t, tt.badge, got.ID)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestEvaluate_UnknownConditionNeverFires(t *testing.T) {
	ev := NewEvaluator([]catalog.BadgeDefinition{{ID: "mystery", Condition: "moonPhase", Value: 0}})
	assert.Nil(t, ev.Evaluate(NewProfile(), completionAt(12)))
}
