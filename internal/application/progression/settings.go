package progression

import (
	"context"

	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// SettingsUpdate holds optional changes. Nil fields are left as they are.
type SettingsUpdate struct {
	Pace          *progress.Pace
	Notifications *progress.NotificationPrefs
}

// UpdateSettings changes pace and notification preferences. A new pace
// applies from the next daily generation.
func (s *Service) UpdateSettings(ctx context.Context, update SettingsUpdate) (progress.Profile, error) {
	const op = "UpdateSettings"

	if update.Pace != nil && !update.Pace.IsValid() {
		return progress.Profile{}, shared.ErrInvalidPace
	}
	if update.Notifications != nil {
		if err := update.Notifications.Validate(); err != nil {
			return progress.Profile{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile := s.profile.Clone()
	if update.Pace != nil {
		profile.Pace = *update.Pace
	}
	if update.Notifications != nil {
		profile.Notifications = *update.Notifications
	}

	events := &shared.EventCollector{}
	events.Record(shared.SettingsUpdatedEvent{
		BaseEvent:      shared.NewBaseEvent(shared.EventSettingsUpdated, s.clock.Now()),
		Pace:           string(profile.Pace),
		DailyReminders: profile.Notifications.DailyReminders,
		StreakAlerts:   profile.Notifications.StreakAlerts,
	})

	if err := s.commitLocked(ctx, op, profile, nil, false, events); err != nil {
		return progress.Profile{}, err
	}

	s.log.Info("settings updated", logger.String("pace", string(profile.Pace)))
	return *profile.Clone(), nil
}
