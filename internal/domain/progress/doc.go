// Package progress содержит правила прогрессии пользователя Ember.
//
// Пакет определяет:
//
//   - Profile - единственный профиль установки и его значения по умолчанию
//   - Ledger - начисление звёздной пыли и вычисление уровня
//   - NextStreak - чистый переход серии активных дней с недельной заморозкой
//   - Evaluator - проверка значков, не больше одного за вызов
//   - ScoreAssessment - подсчёт анкеты выгорания и рекомендуемый темп
//
// Все функции работают с копией профиля; сохранение и сериализацию
// выполняет ProgressionService одной записью.
//
//	credit, err := ledger.Grant(working, task.Reward)
//	tr := progress.NextStreak(working.StreakState(), today)
//	working.ApplyStreak(tr.State)
//	badge := evaluator.EvaluateAndAward(working, &completion)
//
// Нулевые внешние зависимости - только стандартная библиотека Go.
package progress
