package catalog

// ══════════════════════════════════════════════════════════════════════════════
// BADGES (Значки)
// ══════════════════════════════════════════════════════════════════════════════

// ConditionType - тип условия получения значка.
type ConditionType string

const (
	// ConditionFirstTask - выполнено не менее N задач.
	ConditionFirstTask ConditionType = "firstTask"
	// ConditionStreakDays - текущая серия не менее N дней.
	ConditionStreakDays ConditionType = "streakDays"
	// ConditionTaskAfterHour - последняя задача выполнена в час >= N.
	ConditionTaskAfterHour ConditionType = "taskAfterHour"
	// ConditionTaskBeforeHour - последняя задача выполнена в час < N.
	ConditionTaskBeforeHour ConditionType = "taskBeforeHour"
	// ConditionNotesWritten - написано не менее N заметок.
	ConditionNotesWritten ConditionType = "notesWritten"
	// ConditionLevelReached - достигнут уровень N.
	ConditionLevelReached ConditionType = "levelReached"
	// ConditionBadgesEarned - получено не менее N значков.
	ConditionBadgesEarned ConditionType = "badgesEarned"
	// ConditionCategoryTasks - выполнено N задач категории значка.
	ConditionCategoryTasks ConditionType = "categoryTasks"
	// ConditionStreakRecovered - серия восстановлена после сброса N раз.
	ConditionStreakRecovered ConditionType = "streakRecovered"
	// ConditionAllTasksDays - все задачи дня выполнены N дней подряд.
	ConditionAllTasksDays ConditionType = "allTasksDays"
	// ConditionAllCategories - задачи выполнены в N разных категориях.
	ConditionAllCategories ConditionType = "allCategories"
	// ConditionAssessments - пройдено N оценок состояния.
	ConditionAssessments ConditionType = "assessments"
)

// BadgeDefinition - неизменяемое описание значка.
type BadgeDefinition struct {
	ID          string
	Name        string
	Description string
	Condition   ConditionType
	Value       int

	// Category используется только условием categoryTasks.
	Category Category
}

// DefaultBadges возвращает 15 встроенных значков в порядке проверки.
// Порядок значим: при одновременном выполнении нескольких условий
// выдаётся первый по списку.
func DefaultBadges() []BadgeDefinition {
	return []BadgeDefinition{
		{ID: "first_light", Name: "First Light", Description: "Complete your first task", Condition: ConditionFirstTask, Value: 1},
		{ID: "week_one", Name: "Week One", Description: "Maintain a 7-day streak", Condition: ConditionStreakDays, Value: 7},
		{ID: "night_owl", Name: "Night Owl", Description: "Complete a task after 9 PM", Condition: ConditionTaskAfterHour, Value: 21},
		{ID: "early_bird", Name: "Early Bird", Description: "Complete a task before 7 AM", Condition: ConditionTaskBeforeHour, Value: 7},
		{ID: "storyteller", Name: "Storyteller", Description: "Write 10 optional notes", Condition: ConditionNotesWritten, Value: 10},
		{ID: "zen_mind", Name: "Zen Mind", Description: "Complete 10 breathing tasks", Condition: ConditionCategoryTasks, Value: 10, Category: CategoryBreathe},
		{ID: "resilient", Name: "Resilient", Description: "Recover from a lost streak", Condition: ConditionStreakRecovered, Value: 1},
		{ID: "focused", Name: "Focused", Description: "Complete all tasks 5 days in a row", Condition: ConditionAllTasksDays, Value: 5},
		{ID: "blooming", Name: "Blooming", Description: "Reach Level 3", Condition: ConditionLevelReached, Value: 3},
		{ID: "rising_star", Name: "Rising Star", Description: "Reach Level 5", Condition: ConditionLevelReached, Value: 5},
		{ID: "ember_master", Name: "Ember Master", Description: "Reach Level 8", Condition: ConditionLevelReached, Value: 8},
		{ID: "monthly_hero", Name: "Monthly Hero", Description: "Maintain a 30-day streak", Condition: ConditionStreakDays, Value: 30},
		{ID: "collector", Name: "Collector", Description: "Earn 5 badges", Condition: ConditionBadgesEarned, Value: 5},
		{ID: "balanced", Name: "Balanced", Description: "Complete tasks in all 5 categories", Condition: ConditionAllCategories, Value: 5},
		{ID: "self_aware", Name: "Self-Aware", Description: "Complete 4 weekly assessments", Condition: ConditionAssessments, Value: 4},
	}
}

// FindBadge ищет значок по id в списке.
func FindBadge(badges []BadgeDefinition, id string) (BadgeDefinition, bool) {
	for _, b := range badges {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}
