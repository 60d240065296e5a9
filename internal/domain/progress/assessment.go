package progress

import (
	"sort"

	"github.com/rolandbiro/Ember/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ASSESSMENT (Оценка выгорания)
// ══════════════════════════════════════════════════════════════════════════════

// Dimension - шкала вопроса.
type Dimension string

const (
	DimensionExhaustion Dimension = "exhaustion"
	DimensionCynicism   Dimension = "cynicism"
	DimensionEfficacy   Dimension = "efficacy"
)

// Question - вопрос анкеты. Текст вопросов принадлежит слою показа.
type Question struct {
	ID        int
	Dimension Dimension
}

// Questions - 9 вопросов по три на шкалу.
var Questions = []Question{
	{1, DimensionExhaustion}, {2, DimensionExhaustion}, {3, DimensionExhaustion},
	{4, DimensionCynicism}, {5, DimensionCynicism}, {6, DimensionCynicism},
	{7, DimensionEfficacy}, {8, DimensionEfficacy}, {9, DimensionEfficacy},
}

// MaxAnswer - индекс последнего варианта ответа ("Every day").
const MaxAnswer = 6

// Пороги суммарного балла.
const (
	SevereThreshold   = 36
	ModerateThreshold = 18
)

// BurnoutLevel - степень признаков выгорания.
type BurnoutLevel string

const (
	BurnoutMild     BurnoutLevel = "mild"
	BurnoutModerate BurnoutLevel = "moderate"
	BurnoutSevere   BurnoutLevel = "severe"
)

// Title возвращает заголовок уровня для показа.
func (b BurnoutLevel) Title() string {
	switch b {
	case BurnoutSevere:
		return "Strong Signs"
	case BurnoutModerate:
		return "Moderate Signs"
	default:
		return "Mild Signs"
	}
}

// Score - результат подсчёта анкеты.
type Score struct {
	Exhaustion int
	Cynicism   int
	Efficacy   int
	Total      int
	Pace       Pace
	Burnout    BurnoutLevel
}

// ScoreAssessment считает баллы по ответам (id вопроса -> индекс 0..6).
// Шкала efficacy считается обратно. Неизвестные вопросы игнорируются.
func ScoreAssessment(answers map[int]int) (Score, error) {
	byID := make(map[int]Dimension, len(Questions))
	for _, q := range Questions {
		byID[q.ID] = q.Dimension
	}

	// Детерминированный порядок для воспроизводимых ошибок.
	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var s Score
	for _, id := range ids {
		dim, ok := byID[id]
		if !ok {
			continue
		}
		answer := answers[id]
		if answer < 0 || answer > MaxAnswer {
			return Score{}, shared.ErrInvalidAnswer
		}
		switch dim {
		case DimensionExhaustion:
			s.Exhaustion += answer
		case DimensionCynicism:
			s.Cynicism += answer
		case DimensionEfficacy:
			s.Efficacy += MaxAnswer - answer
		}
	}

	s.Total = s.Exhaustion + s.Cynicism + s.Efficacy
	switch {
	case s.Total >= SevereThreshold:
		s.Pace, s.Burnout = PaceGentle, BurnoutSevere
	case s.Total >= ModerateThreshold:
		s.Pace, s.Burnout = PaceSteady, BurnoutModerate
	default:
		s.Pace, s.Burnout = PaceActive, BurnoutMild
	}
	return s, nil
}
