// Package catalog содержит неизменяемые справочные данные Ember.
//
// Пакет определяет:
//
//   - TaskDefinition и Catalog - библиотека восстановительных задач
//   - BadgeDefinition и DefaultBadges - 15 встроенных значков
//   - LevelTable и DefaultLevelTable - 8 уровней с порогами звёздной пыли
//
// Каталог задач загружается один раз при старте из внешнего документа
// (см. internal/infrastructure/catalogfile). Некорректные записи
// отбрасываются с диагностикой, остальные загружаются:
//
//	cat, rejected := catalog.New(version, tasks)
//	for _, r := range rejected {
//	    log.Warn("catalog entry skipped", logger.Err(r))
//	}
//
// Таблицы значков и уровней встроены в код и не настраиваются.
//
// Нулевые внешние зависимости - только стандартная библиотека Go.
package catalog
