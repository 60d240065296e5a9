package progress

import (
	"time"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGE EVALUATOR (Проверка значков)
// ══════════════════════════════════════════════════════════════════════════════

// Completion - последнее событие выполнения задачи.
type Completion struct {
	TaskID      string
	Category    catalog.Category
	CompletedAt time.Time
}

// Evaluator проверяет значки в фиксированном порядке списка.
type Evaluator struct {
	badges []catalog.BadgeDefinition
}

// NewEvaluator создаёт evaluator. nil означает встроенные значки.
func NewEvaluator(badges []catalog.BadgeDefinition) *Evaluator {
	if badges == nil {
		badges = catalog.DefaultBadges()
	}
	return &Evaluator{badges: badges}
}

// Badges возвращает список определений.
func (e *Evaluator) Badges() []catalog.BadgeDefinition {
	return e.badges
}

// Evaluate возвращает первый ещё не полученный значок, условие которого
// выполнено, или nil. Выдаётся не больше одного значка за вызов: остальные
// будут найдены при следующей проверке, так как условия вычисляются по
// сохранённому состоянию. Повторный вызов безопасен.
func (e *Evaluator) Evaluate(p *Profile, last *Completion) *catalog.BadgeDefinition {
	for i := range e.badges {
		b := e.badges[i]
		if p.EarnedBadgeIDs.Contains(b.ID) {
			continue
		}
		if satisfied(b, p, last) {
			return &b
		}
	}
	return nil
}

// Award добавляет значок в профиль. Повтор ничего не меняет.
func (e *Evaluator) Award(p *Profile, b catalog.BadgeDefinition) bool {
	return p.EarnedBadgeIDs.Add(b.ID)
}

// EvaluateAndAward проверяет и сразу выдаёт найденный значок.
func (e *Evaluator) EvaluateAndAward(p *Profile, last *Completion) *catalog.BadgeDefinition {
	b := e.Evaluate(p, last)
	if b == nil {
		return nil
	}
	e.Award(p, *b)
	return b
}

func satisfied(b catalog.BadgeDefinition, p *Profile, last *Completion) bool {
	switch b.Condition {
	case catalog.ConditionFirstTask:
		return p.TotalTasksCompleted >= b.Value
	case catalog.ConditionStreakDays:
		return p.CurrentStreak >= b.Value
	case catalog.ConditionTaskAfterHour:
		return last != nil && last.CompletedAt.Hour() >= b.Value
	case catalog.ConditionTaskBeforeHour:
		return last != nil && last.CompletedAt.Hour() < b.Value
	case catalog.ConditionNotesWritten:
		return p.NotesWritten >= b.Value
	case catalog.ConditionLevelReached:
		return p.Level >= b.Value
	case catalog.ConditionBadgesEarned:
		return p.EarnedBadgeIDs.Len() >= b.Value
	case catalog.ConditionCategoryTasks:
		return p.CategoryCompletions[b.Category] >= b.Value
	case catalog.ConditionStreakRecovered:
		return p.StreakRecoveries >= b.Value
	case catalog.ConditionAllTasksDays:
		return p.AllDoneStreak >= b.Value
	case catalog.ConditionAllCategories:
		return p.CategoriesCompleted() >= b.Value
	case catalog.ConditionAssessments:
		return p.AssessmentsCompleted >= b.Value
	default:
		return false
	}
}
