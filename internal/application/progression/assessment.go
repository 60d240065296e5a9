package progression

import (
	"context"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSESSMENT
// ══════════════════════════════════════════════════════════════════════════════

// AssessmentResult is the outcome of a scored questionnaire.
type AssessmentResult struct {
	Score progress.Score

	Pace    progress.Pace
	Burnout progress.BurnoutLevel
	Total   int

	// RewardGranted is zero for the first assessment.
	RewardGranted int
	LeveledUp     *catalog.LevelEntry
	NewBadge      *catalog.BadgeDefinition
}

// RecordAssessment scores the answers (question id to answer index) and
// applies the recommended pace. The pace takes effect with the next daily
// generation; today's set is kept.
func (s *Service) RecordAssessment(ctx context.Context, answers map[int]int) (*AssessmentResult, error) {
	const op = "RecordAssessment"

	score, err := progress.ScoreAssessment(answers)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	profile := s.profile.Clone()
	events := &shared.EventCollector{}
	levels := &levelTracker{from: profile.Level}

	result := &AssessmentResult{
		Score:   score,
		Pace:    score.Pace,
		Burnout: score.Burnout,
		Total:   score.Total,
	}

	first := profile.AssessmentsCompleted == 0
	profile.Pace = score.Pace
	profile.AssessmentCompleted = true
	profile.AssessmentsCompleted++

	if !first {
		if err := s.grant(profile, catalog.AssessmentReward, shared.RewardSourceAssessment, "", levels, events, now); err != nil {
			return nil, shared.WrapError("progression", op, shared.ErrInvalidInput, "assessment reward rejected", err)
		}
		result.RewardGranted = catalog.AssessmentReward
	}

	result.NewBadge = s.evaluator.EvaluateAndAward(profile, nil)
	result.LeveledUp = levels.highest

	events.Record(shared.AssessmentRecordedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventAssessmentDone, now),
		Total:     score.Total,
		Pace:      string(score.Pace),
		Burnout:   string(score.Burnout),
	})
	levels.record(events, now)
	if result.NewBadge != nil {
		events.Record(badgeEvent(result.NewBadge, now))
	}

	if err := s.commitLocked(ctx, op, profile, nil, false, events); err != nil {
		return nil, err
	}

	s.log.Info("assessment recorded",
		logger.Int("total", score.Total),
		logger.String("pace", string(score.Pace)),
		logger.String("burnout", string(score.Burnout)),
		logger.Amount(result.RewardGranted),
	)
	return result, nil
}
