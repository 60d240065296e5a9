package eventhandler

import (
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON TASK COMPLETED HANDLER
// Поздравляет, когда выполнены все задачи дня.
// ══════════════════════════════════════════════════════════════════════════════

// OnTaskCompletedHandler обрабатывает событие выполнения задачи.
type OnTaskCompletedHandler struct {
	feed   *Feed
	logger *logger.Logger
}

// NewOnTaskCompletedHandler создаёт обработчик.
func NewOnTaskCompletedHandler(feed *Feed, log *logger.Logger) *OnTaskCompletedHandler {
	return &OnTaskCompletedHandler{
		feed:   feed,
		logger: log.With(logger.String("handler", "on_task_completed")),
	}
}

// Handle реализует shared.EventHandler.
func (h *OnTaskCompletedHandler) Handle(event shared.Event) error {
	e, ok := event.(shared.TaskCompletedEvent)
	if !ok {
		h.logger.Warn("unexpected event", logger.String("event_type", string(event.EventType())))
		return nil
	}

	h.logger.Debug("task completed",
		logger.TaskID(e.TaskID),
		logger.String("category", e.Category),
		logger.Amount(e.Reward),
	)

	if !e.AllDone {
		return nil
	}

	h.feed.Push(Celebration{
		Kind:   KindAllDone,
		Title:  "All done for today",
		Detail: "Every task on today's list is complete. Rest is progress too.",
		At:     e.OccurredAt(),
	})
	return nil
}
