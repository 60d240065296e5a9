// Package eventhandler содержит обработчики доменных событий Ember.
//
// Обработчики превращают зафиксированные изменения прогресса в поздравления
// для слоя показа и пишут их в лог. Состояние профиля они не меняют.
package eventhandler

import (
	"sync"
	"time"

	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CELEBRATION FEED
// Очередь поздравлений, которую показывает CLI после команды.
// ══════════════════════════════════════════════════════════════════════════════

// CelebrationKind - вид поздравления.
type CelebrationKind string

const (
	KindAllDone CelebrationKind = "all_done"
	KindLevelUp CelebrationKind = "level_up"
	KindBadge   CelebrationKind = "badge"
	KindStreak  CelebrationKind = "streak"
)

// Celebration - одно сообщение для пользователя.
type Celebration struct {
	Kind   CelebrationKind
	Title  string
	Detail string
	At     time.Time
}

// Feed накапливает поздравления. Безопасен для конкурентного использования.
type Feed struct {
	mu    sync.Mutex
	items []Celebration
}

// NewFeed создаёт пустую очередь.
func NewFeed() *Feed {
	return &Feed{}
}

// Push добавляет поздравление.
func (f *Feed) Push(c Celebration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, c)
}

// Drain возвращает накопленные поздравления и очищает очередь.
func (f *Feed) Drain() []Celebration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	return out
}

// Len возвращает количество ожидающих поздравлений.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRATION
// ══════════════════════════════════════════════════════════════════════════════

// Register подписывает все обработчики на шину.
func Register(bus shared.EventSubscriber, feed *Feed, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	subscriptions := []struct {
		eventType shared.EventType
		handler   shared.EventHandler
	}{
		{shared.EventTaskCompleted, NewOnTaskCompletedHandler(feed, log).Handle},
		{shared.EventLevelUp, NewOnLevelUpHandler(feed, log).Handle},
		{shared.EventBadgeEarned, NewOnBadgeEarnedHandler(feed, log).Handle},
		{shared.EventStreakUpdated, NewOnStreakUpdatedHandler(feed, log, DefaultStreakConfig()).Handle},
	}

	for _, s := range subscriptions {
		if err := bus.Subscribe(s.eventType, s.handler); err != nil {
			return err
		}
	}
	return nil
}
