// Package daily содержит ротацию задач дня Ember.
//
// Selector выбирает набор задач по темпу пользователя, стараясь покрыть
// как можно больше разных категорий. Набор кэшируется записью Generation:
// повторный выбор в тот же календарный день возвращает те же задачи вместе
// с состоянием выполнения.
//
//	sel := daily.NewSelector(rand.New(rand.NewSource(seed)))
//	selection := sel.SelectForToday(cat, profile.Pace, today, previous)
//	record := selection.Set.Generation(today, false)
package daily
