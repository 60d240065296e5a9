package progression

import (
	"context"
	"strings"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE TASK
// ══════════════════════════════════════════════════════════════════════════════

// CompletionResult describes everything a completion changed.
type CompletionResult struct {
	TaskID string

	// RewardGranted is the task reward.
	RewardGranted int
	// BonusGranted is the all-done bonus, zero if not granted by this call.
	BonusGranted int

	// LeveledUp is the highest level crossed during the call.
	LeveledUp *catalog.LevelEntry
	NewBadge  *catalog.BadgeDefinition

	Streak        progress.StreakOutcome
	CurrentStreak int
	AllCompleted  bool
	Currency      int
}

// CompleteTask marks one of today's tasks completed and applies rewards,
// the streak transition and badge awards in a single commit.
func (s *Service) CompleteTask(ctx context.Context, taskID string, selectedOptionIDs []string, note *string) (*CompletionResult, error) {
	const op = "CompleteTask"

	s.mu.Lock()
	defer s.mu.Unlock()

	taskID = strings.TrimSpace(taskID)
	now := s.clock.Now()

	set := s.today.Clone()
	inst, ok := set.Find(taskID)
	if !ok {
		return nil, shared.ErrTaskNotInToday
	}
	if err := inst.Complete(now, selectedOptionIDs, note); err != nil {
		return nil, err
	}
	def := inst.Definition

	profile := s.profile.Clone()
	events := &shared.EventCollector{}
	levels := &levelTracker{from: profile.Level}

	completion := progress.Completion{
		TaskID:      def.ID,
		Category:    def.Category,
		CompletedAt: now,
	}
	progress.RecordCompletion(profile, completion, note)

	allCompleted := set.AllCompleted()
	events.Record(shared.TaskCompletedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventTaskCompleted, now),
		TaskID:    def.ID,
		Category:  string(def.Category),
		Reward:    def.Reward,
		HasNote:   note != nil && strings.TrimSpace(*note) != "",
		AllDone:   allCompleted,
	})

	if err := s.grant(profile, def.Reward, shared.RewardSourceTask, def.ID, levels, events, now); err != nil {
		return nil, shared.WrapError("progression", op, shared.ErrInvalidInput, "task reward rejected", err)
	}

	result := &CompletionResult{
		TaskID:        def.ID,
		RewardGranted: def.Reward,
		AllCompleted:  allCompleted,
	}

	allDoneGranted := s.allDoneGranted()
	if result.AllCompleted && !allDoneGranted {
		if err := s.grant(profile, catalog.AllDoneBonus, shared.RewardSourceAllDone, "", levels, events, now); err != nil {
			return nil, shared.WrapError("progression", op, shared.ErrInvalidInput, "all-done bonus rejected", err)
		}
		progress.RecordAllDone(profile, s.date)
		allDoneGranted = true
		result.BonusGranted = catalog.AllDoneBonus
	}

	progress.RollFreezeCycle(profile, timeutil.WeekKey(now))
	transition := progress.NextStreak(profile.StreakState(), timeutil.DateOf(now))
	profile.ApplyStreak(transition.State)
	progress.TrackRecovery(profile, transition)
	result.Streak = transition.Outcome
	result.CurrentStreak = profile.CurrentStreak

	result.NewBadge = s.evaluator.EvaluateAndAward(profile, &completion)
	result.LeveledUp = levels.highest
	result.Currency = profile.Currency

	levels.record(events, now)
	if result.NewBadge != nil {
		events.Record(badgeEvent(result.NewBadge, now))
	}
	events.Record(shared.StreakUpdatedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventStreakUpdated, now),
		Outcome:   string(transition.Outcome),
		Current:   profile.CurrentStreak,
		Longest:   profile.LongestStreak,
	})

	if err := s.commitLocked(ctx, op, profile, &set, allDoneGranted, events); err != nil {
		return nil, err
	}

	s.log.Info("task completed",
		logger.TaskID(def.ID),
		logger.Amount(result.RewardGranted+result.BonusGranted),
		logger.Streak(result.CurrentStreak),
		logger.Bool("all_done", result.AllCompleted),
	)
	if result.LeveledUp != nil {
		s.log.Info("level up", logger.LevelNo(result.LeveledUp.Level), logger.String("name", result.LeveledUp.Name))
	}
	if result.NewBadge != nil {
		s.log.Info("badge earned", logger.BadgeID(result.NewBadge.ID))
	}

	return result, nil
}

// allDoneGranted reports whether today's all-done bonus has been paid.
func (s *Service) allDoneGranted() bool {
	return s.record != nil && s.record.Date == s.date && s.record.AllDoneGranted
}
