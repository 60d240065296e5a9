package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/internal/domain/shared"
)

func uniform(exhaustion, cynicism, efficacy int) map[int]int {
	return map[int]int{
		1: exhaustion, 2: exhaustion, 3: exhaustion,
		4: cynicism, 5: cynicism, 6: cynicism,
		7: efficacy, 8: efficacy, 9: efficacy,
	}
}

func TestScoreAssessment(t *testing.T) {
	tests := []struct {
		name    string
		answers map[int]int
		total   int
		pace    Pace
		burnout BurnoutLevel
	}{
		{"thriving", uniform(0, 0, 6), 0, PaceActive, BurnoutMild},
		{"just below moderate", map[int]int{1: 6, 2: 6, 3: 5, 7: 6, 8: 6, 9: 6}, 17, PaceActive, BurnoutMild},
		{"moderate boundary", map[int]int{1: 6, 2: 6, 3: 6, 7: 6, 8: 6, 9: 6}, 18, PaceSteady, BurnoutModerate},
		{"severe boundary", uniform(4, 4, 2), 36, PaceGentle, BurnoutSevere},
		{"worst case", uniform(6, 6, 0), 54, PaceGentle, BurnoutSevere},
		{"unknown question ignored", map[int]int{1: 3, 42: 6}, 3, PaceActive, BurnoutMild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ScoreAssessment(tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.total, s.Total)
			assert.Equal(t, tt.pace, s.Pace)
			assert.Equal(t, tt.burnout, s.Burnout)
		})
	}
}

func TestScoreAssessment_EfficacyReversed(t *testing.T) {
	s, err := ScoreAssessment(map[int]int{7: 1, 8: 2, 9: 3})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Exhaustion)
	assert.Equal(t, 5+4+3, s.Efficacy)
}

func TestScoreAssessment_RejectsOutOfRange(t *testing.T) {
	_, err := ScoreAssessment(map[int]int{1: 7})
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)

	_, err = ScoreAssessment(map[int]int{2: -1})
	assert.True(t, shared.IsValidation(err))
}

func TestBurnoutLevel_Title(t *testing.T) {
	assert.Equal(t, "Mild Signs", BurnoutMild.Title())
	assert.Equal(t, "Moderate Signs", BurnoutModerate.Title())
	assert.Equal(t, "Strong Signs", BurnoutSevere.Title())
}
