package catalog

import (
	"fmt"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATEGORY (Категория задачи)
// ══════════════════════════════════════════════════════════════════════════════

// Category - категория восстановительной активности. Закрытое множество.
type Category string

const (
	CategoryBreathe   Category = "breathe"
	CategoryReflect   Category = "reflect"
	CategoryGratitude Category = "gratitude"
	CategoryMove      Category = "move"
	CategoryMindful   Category = "mindful"
)

// AllCategories возвращает все категории в каноническом порядке.
func AllCategories() []Category {
	return []Category{
		CategoryBreathe,
		CategoryReflect,
		CategoryGratitude,
		CategoryMove,
		CategoryMindful,
	}
}

// IsValid проверяет, что категория входит в закрытое множество.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBreathe, CategoryReflect, CategoryGratitude, CategoryMove, CategoryMindful:
		return true
	}
	return false
}

// DisplayName возвращает название категории для показа.
func (c Category) DisplayName() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ══════════════════════════════════════════════════════════════════════════════
// UI KIND (Тип взаимодействия)
// ══════════════════════════════════════════════════════════════════════════════

// UIKind определяет, как задача собирает ответ пользователя.
type UIKind string

const (
	UISimpleChoice   UIKind = "simple_choice"
	UIMultiSelect    UIKind = "multi_select"
	UISliderChoice   UIKind = "slider_choice"
	UITimedActivity  UIKind = "timed_activity"
	UIChoiceWithNote UIKind = "choice_with_note"
)

// IsValid проверяет тип взаимодействия.
func (k UIKind) IsValid() bool {
	switch k {
	case UISimpleChoice, UIMultiSelect, UISliderChoice, UITimedActivity, UIChoiceWithNote:
		return true
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// TASK DEFINITION
// ══════════════════════════════════════════════════════════════════════════════

// Option - вариант ответа.
type Option struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Slider - границы шкалы для slider_choice.
type Slider struct {
	Min      int    `json:"min" yaml:"min"`
	Max      int    `json:"max" yaml:"max"`
	Step     int    `json:"step,omitempty" yaml:"step,omitempty"`
	MinLabel string `json:"minLabel,omitempty" yaml:"minLabel,omitempty"`
	MaxLabel string `json:"maxLabel,omitempty" yaml:"maxLabel,omitempty"`
}

// TaskDefinition - неизменяемое описание задачи из каталога.
// Награда фиксирована для задачи и не рандомизируется во время работы.
type TaskDefinition struct {
	ID          string
	Category    Category
	Title       string
	Description string
	UIKind      UIKind
	Reward      int

	// DurationSeconds - длительность для timed_activity (0 - не задана).
	DurationSeconds int

	Options    []Option
	Slider     *Slider
	FollowUp   string
	NotePrompt string
}

// TaskDefinitionError описывает причину, по которой задача отклонена.
type TaskDefinitionError struct {
	TaskID string
	Reason string
}

func (e *TaskDefinitionError) Error() string {
	if e.TaskID == "" {
		return "task: " + e.Reason
	}
	return fmt.Sprintf("task %q: %s", e.TaskID, e.Reason)
}

// Validate проверяет инварианты определения задачи.
func (t TaskDefinition) Validate() error {
	invalid := func(format string, args ...any) error {
		return &TaskDefinitionError{TaskID: t.ID, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(t.ID) == "" {
		return invalid("id is required")
	}
	if !t.Category.IsValid() {
		return invalid("unknown category %q", t.Category)
	}
	if !t.UIKind.IsValid() {
		return invalid("unknown ui kind %q", t.UIKind)
	}
	if t.Reward < 0 {
		return invalid("reward must be non-negative, got %d", t.Reward)
	}
	if t.DurationSeconds < 0 {
		return invalid("duration must be non-negative, got %d", t.DurationSeconds)
	}
	if t.UIKind == UITimedActivity && t.DurationSeconds == 0 {
		return invalid("timed activity requires a duration")
	}

	seen := make(map[string]struct{}, len(t.Options))
	for _, opt := range t.Options {
		if opt.ID == "" {
			return invalid("option id is required")
		}
		if _, dup := seen[opt.ID]; dup {
			return invalid("duplicate option id %q", opt.ID)
		}
		seen[opt.ID] = struct{}{}
	}

	if t.Slider != nil && t.Slider.Min >= t.Slider.Max {
		return invalid("slider min %d must be below max %d", t.Slider.Min, t.Slider.Max)
	}

	return nil
}

// HasOption проверяет, есть ли у задачи вариант с данным id.
func (t TaskDefinition) HasOption(id string) bool {
	for _, opt := range t.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}
