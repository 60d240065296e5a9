package eventhandler

import (
	"fmt"

	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON STREAK UPDATED HANDLER
// Сообщает о заморозке, сбросе и круглых значениях серии.
// ══════════════════════════════════════════════════════════════════════════════

// StreakConfig - настройки обработчика серии.
type StreakConfig struct {
	// Milestones - длины серии, о которых стоит сказать.
	Milestones []int
}

// DefaultStreakConfig возвращает настройки по умолчанию.
func DefaultStreakConfig() StreakConfig {
	return StreakConfig{Milestones: []int{3, 7, 14, 30, 60, 100}}
}

// OnStreakUpdatedHandler обрабатывает переход серии.
type OnStreakUpdatedHandler struct {
	feed   *Feed
	logger *logger.Logger
	config StreakConfig
}

// NewOnStreakUpdatedHandler создаёт обработчик.
func NewOnStreakUpdatedHandler(feed *Feed, log *logger.Logger, config StreakConfig) *OnStreakUpdatedHandler {
	return &OnStreakUpdatedHandler{
		feed:   feed,
		logger: log.With(logger.String("handler", "on_streak_updated")),
		config: config,
	}
}

// Handle реализует shared.EventHandler.
func (h *OnStreakUpdatedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.StreakUpdatedEvent)
	if !ok {
		return nil
	}

	outcome := progress.StreakOutcome(e.Outcome)
	h.logger.Debug("streak updated",
		logger.String("outcome", e.Outcome),
		logger.Streak(e.Current),
	)

	var c *Celebration
	switch outcome {
	case progress.StreakFrozen:
		c = &Celebration{
			Title:  "Streak freeze used",
			Detail: fmt.Sprintf("One missed day was forgiven. Streak: %d days.", e.Current),
		}
	case progress.StreakReset:
		c = &Celebration{
			Title:  "A fresh start",
			Detail: "Every day you show up counts. Day 1 starts now.",
		}
	case progress.StreakExtended:
		if h.isMilestone(e.Current) {
			h.logger.Info("milestone: streak", logger.Streak(e.Current))
			c = &Celebration{
				Title:  fmt.Sprintf("%d-day streak", e.Current),
				Detail: fmt.Sprintf("Longest so far: %d days.", e.Longest),
			}
		}
	}

	if c != nil {
		c.Kind = KindStreak
		c.At = e.OccurredAt()
		h.feed.Push(*c)
	}
	return nil
}

func (h *OnStreakUpdatedHandler) isMilestone(days int) bool {
	for _, m := range h.config.Milestones {
		if m == days {
			return true
		}
	}
	return false
}
