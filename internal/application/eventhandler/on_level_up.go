package eventhandler

import (
	"fmt"

	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON LEVEL UP / BADGE EARNED HANDLERS
// Поздравления с новым уровнем и значком.
// ══════════════════════════════════════════════════════════════════════════════

// OnLevelUpHandler обрабатывает повышение уровня.
type OnLevelUpHandler struct {
	feed   *Feed
	logger *logger.Logger
}

// NewOnLevelUpHandler создаёт обработчик.
func NewOnLevelUpHandler(feed *Feed, log *logger.Logger) *OnLevelUpHandler {
	return &OnLevelUpHandler{
		feed:   feed,
		logger: log.With(logger.String("handler", "on_level_up")),
	}
}

// Handle реализует shared.EventHandler.
func (h *OnLevelUpHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.LevelUpEvent)
	if !ok {
		return nil
	}

	h.logger.Info("milestone: level reached",
		logger.LevelNo(e.NewLevel),
		logger.Int("old_level", e.OldLevel),
		logger.String("name", e.Name),
	)

	h.feed.Push(Celebration{
		Kind:   KindLevelUp,
		Title:  fmt.Sprintf("Level %d: %s", e.NewLevel, e.Name),
		Detail: levelUpDetail(e.OldLevel, e.NewLevel),
		At:     e.OccurredAt(),
	})
	return nil
}

func levelUpDetail(from, to int) string {
	if to-from > 1 {
		return fmt.Sprintf("Your ember grew %d levels at once.", to-from)
	}
	return "Your ember burns a little brighter."
}

// OnBadgeEarnedHandler обрабатывает получение значка.
type OnBadgeEarnedHandler struct {
	feed   *Feed
	logger *logger.Logger
}

// NewOnBadgeEarnedHandler создаёт обработчик.
func NewOnBadgeEarnedHandler(feed *Feed, log *logger.Logger) *OnBadgeEarnedHandler {
	return &OnBadgeEarnedHandler{
		feed:   feed,
		logger: log.With(logger.String("handler", "on_badge_earned")),
	}
}

// Handle реализует shared.EventHandler.
func (h *OnBadgeEarnedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.BadgeEarnedEvent)
	if !ok {
		return nil
	}

	h.logger.Info("milestone: badge earned", logger.BadgeID(e.BadgeID))

	h.feed.Push(Celebration{
		Kind:   KindBadge,
		Title:  "New badge: " + e.Name,
		At:     e.OccurredAt(),
		Detail: e.BadgeID,
	})
	return nil
}
