package progression

import (
	"context"

	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAILY REFRESH
// ══════════════════════════════════════════════════════════════════════════════

// RefreshDailyTasksIfStale replaces today's set when it was made on another
// day. It reports whether a new set was generated. A degraded catalog yields
// an empty set without an error.
func (s *Service) RefreshDailyTasksIfStale(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Service) refreshLocked(ctx context.Context) (bool, error) {
	const op = "RefreshDailyTasks"

	now := s.clock.Now()
	today := timeutil.DateOf(now)
	if s.date == today && s.today.Len() > 0 {
		return false, nil
	}

	selection := s.selector.SelectForToday(s.catalog, s.profile.Pace, today, s.record)
	if selection.Set.Len() == 0 {
		s.today = selection.Set
		s.date = today
		s.log.Warn("no tasks available for today", logger.String("date", today.String()), logger.Int("catalog_tasks", s.catalog.Len()))
		return false, nil
	}

	if !selection.Fresh {
		s.today = selection.Set
		s.date = today
		s.log.Debug("reusing today's generation",
			logger.String("date", today.String()),
			logger.Int("tasks", selection.Set.Len()),
			logger.Int("completed", selection.Set.CompletedCount()),
		)
		return false, nil
	}

	events := &shared.EventCollector{}
	events.Record(shared.DailyGeneratedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventDailyGenerated, now),
		Date:      today.String(),
		Pace:      string(s.profile.Pace),
		TaskIDs:   selection.Set.TaskIDs(),
	})

	previousDate := s.date
	s.date = today
	set := selection.Set
	if err := s.commitLocked(ctx, op, nil, &set, false, events); err != nil {
		// The unsaved set stays usable in memory and is written by the
		// next successful commit.
		s.today = set
		return true, err
	}

	s.log.Info("daily tasks generated",
		logger.String("date", today.String()),
		logger.String("previous", previousDate.String()),
		logger.String("pace", string(s.profile.Pace)),
		logger.Int("tasks", set.Len()),
	)
	return true, nil
}
