package progression

import (
	"context"

	"github.com/rolandbiro/Ember/internal/domain/daily"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// RequestBonusTask appends one more task to a fully completed day.
// Counters and currency are unchanged until the bonus is completed.
func (s *Service) RequestBonusTask(ctx context.Context) (daily.Instance, error) {
	const op = "RequestBonusTask"

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.today.AllCompleted() {
		return daily.Instance{}, shared.ErrTasksNotFinished
	}

	def, ok := s.selector.DrawBonus(s.catalog, s.today)
	if !ok {
		return daily.Instance{}, shared.ErrNoBonusAvailable
	}

	inst := daily.NewInstance(def)
	inst.Bonus = true

	set := s.today.Clone()
	set.Append(inst)

	now := s.clock.Now()
	events := &shared.EventCollector{}
	events.Record(shared.BonusTaskAddedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventBonusTaskAdded, now),
		TaskID:    def.ID,
	})

	if err := s.commitLocked(ctx, op, nil, &set, s.allDoneGranted(), events); err != nil {
		return daily.Instance{}, err
	}

	s.log.Info("bonus task added", logger.TaskID(def.ID))
	return inst.Clone(), nil
}
