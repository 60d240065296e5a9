package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Events are emitted only after the change they
// describe has been committed.
const (
	// Progress events
	EventTaskCompleted  EventType = "progress.task_completed"
	EventRewardGranted  EventType = "progress.reward_granted"
	EventLevelUp        EventType = "progress.level_up"
	EventBadgeEarned    EventType = "progress.badge_earned"
	EventStreakUpdated  EventType = "progress.streak_updated"
	EventAssessmentDone EventType = "progress.assessment_recorded"

	// Daily rotation events
	EventDailyGenerated EventType = "daily.generated"
	EventBonusTaskAdded EventType = "daily.bonus_added"

	// Profile events
	EventOnboardingRecorded EventType = "profile.onboarding_recorded"
	EventSettingsUpdated    EventType = "profile.settings_updated"
)

// ProfileAggregateID identifies the single per-installation profile.
const ProfileAggregateID = "profile"

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Version     int       `json:"version"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event for the profile aggregate at the given instant.
func NewBaseEvent(eventType EventType, at time.Time) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   at,
		AggregateId: ProfileAggregateID,
		Version:     1,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Progress Events
// ═══════════════════════════════════════════════════════════════════════════

// TaskCompletedEvent is emitted when one of today's tasks is completed.
type TaskCompletedEvent struct {
	BaseEvent
	TaskID   string `json:"task_id"`
	Category string `json:"category"`
	Reward   int    `json:"reward"`
	HasNote  bool   `json:"has_note"`
	AllDone  bool   `json:"all_done"`
}

// Payload implements Event interface.
func (e TaskCompletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"task_id":  e.TaskID,
		"category": e.Category,
		"reward":   e.Reward,
		"has_note": e.HasNote,
		"all_done": e.AllDone,
	}
}

// Reward sources.
const (
	RewardSourceTask       = "task"
	RewardSourceAllDone    = "all_done"
	RewardSourceAssessment = "assessment"
)

// RewardGrantedEvent is emitted for every currency credit.
type RewardGrantedEvent struct {
	BaseEvent
	Amount   int    `json:"amount"`
	NewTotal int    `json:"new_total"`
	Source   string `json:"source"`
	TaskID   string `json:"task_id,omitempty"`
}

// Payload implements Event interface.
func (e RewardGrantedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"amount":    e.Amount,
		"new_total": e.NewTotal,
		"source":    e.Source,
		"task_id":   e.TaskID,
	}
}

// LevelUpEvent is emitted when the level implied by currency increases.
type LevelUpEvent struct {
	BaseEvent
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Name     string `json:"name"`
}

// Payload implements Event interface.
func (e LevelUpEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"old_level": e.OldLevel,
		"new_level": e.NewLevel,
		"name":      e.Name,
	}
}

// BadgeEarnedEvent is emitted once per newly earned badge.
type BadgeEarnedEvent struct {
	BaseEvent
	BadgeID string `json:"badge_id"`
	Name    string `json:"name"`
}

// Payload implements Event interface.
func (e BadgeEarnedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"badge_id": e.BadgeID,
		"name":     e.Name,
	}
}

// StreakUpdatedEvent is emitted after each streak transition.
type StreakUpdatedEvent struct {
	BaseEvent
	Outcome string `json:"outcome"`
	Current int    `json:"current"`
	Longest int    `json:"longest"`
}

// Payload implements Event interface.
func (e StreakUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"outcome": e.Outcome,
		"current": e.Current,
		"longest": e.Longest,
	}
}

// AssessmentRecordedEvent is emitted when a questionnaire is scored.
type AssessmentRecordedEvent struct {
	BaseEvent
	Total   int    `json:"total"`
	Pace    string `json:"pace"`
	Burnout string `json:"burnout"`
}

// Payload implements Event interface.
func (e AssessmentRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"total":   e.Total,
		"pace":    e.Pace,
		"burnout": e.Burnout,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Daily Rotation Events
// ═══════════════════════════════════════════════════════════════════════════

// DailyGeneratedEvent is emitted when a fresh daily set is generated.
type DailyGeneratedEvent struct {
	BaseEvent
	Date    string   `json:"date"`
	Pace    string   `json:"pace"`
	TaskIDs []string `json:"task_ids"`
}

// Payload implements Event interface.
func (e DailyGeneratedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"date":     e.Date,
		"pace":     e.Pace,
		"task_ids": e.TaskIDs,
	}
}

// BonusTaskAddedEvent is emitted when an extra task is appended to today's set.
type BonusTaskAddedEvent struct {
	BaseEvent
	TaskID string `json:"task_id"`
}

// Payload implements Event interface.
func (e BonusTaskAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"task_id": e.TaskID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Profile Events
// ═══════════════════════════════════════════════════════════════════════════

// OnboardingRecordedEvent is emitted when onboarding answers are stored.
type OnboardingRecordedEvent struct {
	BaseEvent
	Situation string `json:"situation"`
	Goal      string `json:"goal"`
}

// Payload implements Event interface.
func (e OnboardingRecordedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"situation": e.Situation,
		"goal":      e.Goal,
	}
}

// SettingsUpdatedEvent is emitted when pace or notification preferences change.
type SettingsUpdatedEvent struct {
	BaseEvent
	Pace           string `json:"pace"`
	DailyReminders bool   `json:"daily_reminders"`
	StreakAlerts   bool   `json:"streak_alerts"`
}

// Payload implements Event interface.
func (e SettingsUpdatedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"pace":            e.Pace,
		"daily_reminders": e.DailyReminders,
		"streak_alerts":   e.StreakAlerts,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Publishing
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}

// EventCollector accumulates events produced while computing a change,
// so they can be published after the change has been committed.
type EventCollector struct {
	events []Event
}

// Record appends an event.
func (c *EventCollector) Record(e Event) {
	c.events = append(c.events, e)
}

// Events returns the recorded events in order.
func (c *EventCollector) Events() []Event {
	return c.events
}

// PublishAll sends every recorded event and returns the first error.
// A nil publisher is a no-op.
func (c *EventCollector) PublishAll(p EventPublisher) error {
	if p == nil {
		return nil
	}
	var first error
	for _, e := range c.events {
		if err := p.Publish(e); err != nil && first == nil {
			first = err
		}
	}
	return first
}
