package progress

import (
	"encoding/json"
	"strings"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// PACE (Темп)
// ══════════════════════════════════════════════════════════════════════════════

// Pace - выбранная пользователем интенсивность дня.
type Pace string

const (
	PaceGentle Pace = "gentle"
	PaceSteady Pace = "steady"
	PaceActive Pace = "active"
)

// DefaultPace - темп нового профиля.
const DefaultPace = PaceSteady

// ParsePace разбирает строку в темп.
func ParsePace(s string) (Pace, error) {
	p := Pace(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", shared.ErrInvalidPace
	}
	return p, nil
}

// IsValid проверяет темп.
func (p Pace) IsValid() bool {
	switch p {
	case PaceGentle, PaceSteady, PaceActive:
		return true
	}
	return false
}

// DailyTaskCount возвращает количество задач в день для темпа.
func (p Pace) DailyTaskCount() int {
	switch p {
	case PaceGentle:
		return 1
	case PaceActive:
		return 3
	default:
		return 2
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ONBOARDING (Ответы онбординга)
// ══════════════════════════════════════════════════════════════════════════════

// Situation - как пользователь описывает своё состояние.
type Situation string

const (
	SituationOverwhelmed    Situation = "overwhelmed"
	SituationExhausted      Situation = "exhausted"
	SituationLostMotivation Situation = "lost_motivation"
	SituationAlwaysTired    Situation = "always_tired"
	SituationPrevention     Situation = "prevention"
)

// IsValid проверяет ситуацию.
func (s Situation) IsValid() bool {
	switch s {
	case SituationOverwhelmed, SituationExhausted, SituationLostMotivation,
		SituationAlwaysTired, SituationPrevention:
		return true
	}
	return false
}

// Goal - цель пользователя.
type Goal string

const (
	GoalRecoverEnergy Goal = "recover_energy"
	GoalFindBalance   Goal = "find_balance"
	GoalFeelMyself    Goal = "feel_myself"
	GoalHealthyHabits Goal = "healthy_habits"
)

// IsValid проверяет цель.
func (g Goal) IsValid() bool {
	switch g {
	case GoalRecoverEnergy, GoalFindBalance, GoalFeelMyself, GoalHealthyHabits:
		return true
	}
	return false
}

// NotificationPrefs - настройки напоминаний. Само планирование уведомлений
// выполняет внешний слой.
type NotificationPrefs struct {
	DailyReminders bool   `json:"dailyReminders"`
	StreakAlerts   bool   `json:"streakAlerts"`
	ReminderTime   string `json:"reminderTime,omitempty"`
}

// DefaultNotificationPrefs - напоминания включены, время не выбрано.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{DailyReminders: true, StreakAlerts: true}
}

// Validate проверяет формат времени напоминания.
func (n NotificationPrefs) Validate() error {
	if n.ReminderTime != "" && !timeutil.ValidClockTime(n.ReminderTime) {
		return shared.ErrInvalidReminder
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGE SET (Множество значков)
// ══════════════════════════════════════════════════════════════════════════════

// BadgeSet - множество id полученных значков без повторов.
// Порядок получения сохраняется только для показа.
type BadgeSet struct {
	ids []string
}

// NewBadgeSet создаёт множество из id, отбрасывая повторы.
func NewBadgeSet(ids ...string) BadgeSet {
	var s BadgeSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add добавляет id. Повторное добавление ничего не меняет.
func (s *BadgeSet) Add(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Contains проверяет наличие id.
func (s BadgeSet) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len возвращает количество значков.
func (s BadgeSet) Len() int {
	return len(s.ids)
}

// IDs возвращает копию id в порядке получения.
func (s BadgeSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// MarshalJSON кодирует множество как массив.
func (s BadgeSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON декодирует массив, отбрасывая повторы.
func (s *BadgeSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewBadgeSet(ids...)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFILE (Профиль пользователя)
// ══════════════════════════════════════════════════════════════════════════════

// Profile - единственный профиль установки. Изменяется только через
// ProgressionService.
type Profile struct {
	Name string `json:"name"`

	// Currency - накопленная звёздная пыль.
	Currency int `json:"currency"`
	// Level всегда соответствует Currency по таблице уровней.
	Level int `json:"level"`

	CurrentStreak             int            `json:"currentStreak"`
	LongestStreak             int            `json:"longestStreak"`
	StreakFreezeAvailable     bool           `json:"streakFreezeAvailable"`
	StreakFreezeUsedThisCycle bool           `json:"streakFreezeUsedThisCycle"`
	FreezeCycle               string         `json:"freezeCycle,omitempty"`
	LastActiveDate            *timeutil.Date `json:"lastActiveDate"`

	TotalTasksCompleted int      `json:"totalTasksCompleted"`
	NotesWritten        int      `json:"notesWritten"`
	EarnedBadgeIDs      BadgeSet `json:"earnedBadgeIds"`

	Pace                Pace      `json:"pace"`
	Situation           Situation `json:"situation,omitempty"`
	Goal                Goal      `json:"goal,omitempty"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	AssessmentCompleted bool      `json:"assessmentCompleted"`

	Notifications NotificationPrefs `json:"notifications"`

	// Счётчики для условий значков.
	CategoryCompletions  map[catalog.Category]int `json:"categoryCompletions,omitempty"`
	StreakRecoveries     int                      `json:"streakRecoveries"`
	StreakBroken         bool                     `json:"streakBroken"`
	AllDoneStreak        int                      `json:"allDoneStreak"`
	LastAllDoneDate      *timeutil.Date           `json:"lastAllDoneDate"`
	AssessmentsCompleted int                      `json:"assessmentsCompleted"`
}

// NewProfile создаёт профиль со значениями по умолчанию.
func NewProfile() *Profile {
	return &Profile{
		Level:                 1,
		StreakFreezeAvailable: true,
		Pace:                  DefaultPace,
		Notifications:         DefaultNotificationPrefs(),
		CategoryCompletions:   make(map[catalog.Category]int),
	}
}

// UnmarshalJSON декодирует профиль поверх значений по умолчанию, так что
// отсутствующие поля получают документированные значения.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	decoded := plain(*NewProfile())
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Profile(decoded)
	return nil
}

// Clone возвращает глубокую копию профиля.
func (p *Profile) Clone() *Profile {
	c := *p
	c.EarnedBadgeIDs = NewBadgeSet(p.EarnedBadgeIDs.ids...)
	if p.LastActiveDate != nil {
		d := *p.LastActiveDate
		c.LastActiveDate = &d
	}
	if p.LastAllDoneDate != nil {
		d := *p.LastAllDoneDate
		c.LastAllDoneDate = &d
	}
	c.CategoryCompletions = make(map[catalog.Category]int, len(p.CategoryCompletions))
	for k, v := range p.CategoryCompletions {
		c.CategoryCompletions[k] = v
	}
	return &c
}

// Normalize восстанавливает инварианты после чтения из хранилища:
// неотрицательные счётчики, известный темп и уровень, вычисленный по валюте.
func (p *Profile) Normalize(levels catalog.LevelTable) {
	if p.Currency < 0 {
		p.Currency = 0
	}
	if p.CurrentStreak < 0 {
		p.CurrentStreak = 0
	}
	if p.LongestStreak < p.CurrentStreak {
		p.LongestStreak = p.CurrentStreak
	}
	if !p.Pace.IsValid() {
		p.Pace = DefaultPace
	}
	if p.CategoryCompletions == nil {
		p.CategoryCompletions = make(map[catalog.Category]int)
	}
	if levels.Len() > 0 {
		p.Level = levels.For(p.Currency).Level
	}
}

// StreakState возвращает срез профиля, нужный для перехода серии.
func (p *Profile) StreakState() StreakState {
	return StreakState{
		LastActive:          p.LastActiveDate,
		Current:             p.CurrentStreak,
		Longest:             p.LongestStreak,
		FreezeAvailable:     p.StreakFreezeAvailable,
		FreezeUsedThisCycle: p.StreakFreezeUsedThisCycle,
	}
}

// ApplyStreak записывает новое состояние серии в профиль.
func (p *Profile) ApplyStreak(s StreakState) {
	p.LastActiveDate = s.LastActive
	p.CurrentStreak = s.Current
	p.LongestStreak = s.Longest
	p.StreakFreezeAvailable = s.FreezeAvailable
	p.StreakFreezeUsedThisCycle = s.FreezeUsedThisCycle
}

// CategoriesCompleted возвращает число категорий хотя бы с одним выполнением.
func (p *Profile) CategoriesCompleted() int {
	n := 0
	for _, count := range p.CategoryCompletions {
		if count > 0 {
			n++
		}
	}
	return n
}
