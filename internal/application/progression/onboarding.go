package progression

import (
	"context"
	"strings"

	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// RecordOnboarding stores the onboarding answers.
func (s *Service) RecordOnboarding(ctx context.Context, name string, situation progress.Situation, goal progress.Goal) error {
	const op = "RecordOnboarding"

	if !situation.IsValid() {
		return shared.ErrInvalidSituation
	}
	if !goal.IsValid() {
		return shared.ErrInvalidGoal
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profile.Clone()
	profile.Name = strings.TrimSpace(name)
	profile.Situation = situation
	profile.Goal = goal
	profile.OnboardingCompleted = true

	events := &shared.EventCollector{}
	events.Record(shared.OnboardingRecordedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventOnboardingRecorded, s.clock.Now()),
		Situation: string(situation),
		Goal:      string(goal),
	})

	if err := s.commitLocked(ctx, op, profile, nil, false, events); err != nil {
		return err
	}

	s.log.Info("onboarding recorded",
		logger.String("situation", string(situation)),
		logger.String("goal", string(goal)),
	)
	return nil
}
