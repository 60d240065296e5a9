package progress

import (
	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REWARD LEDGER (Начисление звёздной пыли)
// ══════════════════════════════════════════════════════════════════════════════

// Ledger начисляет валюту и вычисляет уровень по таблице.
type Ledger struct {
	levels catalog.LevelTable
}

// NewLedger создаёт ledger. Пустая таблица заменяется встроенной.
func NewLedger(levels catalog.LevelTable) *Ledger {
	if levels.Len() == 0 {
		levels = catalog.DefaultLevelTable()
	}
	return &Ledger{levels: levels}
}

// Credit - результат начисления.
type Credit struct {
	Currency int
	Level    catalog.LevelEntry
	// LevelUp заполнен, если новый уровень выше previousLevel.
	LevelUp *catalog.LevelEntry
}

// Add прибавляет amount к currency. Предыдущий уровень передаёт вызывающий,
// ledger не хранит состояния.
func (l *Ledger) Add(currency, amount, previousLevel int) (Credit, error) {
	if amount < 0 {
		return Credit{}, shared.ErrNegativeAmount
	}

	total := currency + amount
	entry := l.levels.For(total)

	credit := Credit{Currency: total, Level: entry}
	if entry.Level > previousLevel {
		up := entry
		credit.LevelUp = &up
	}
	return credit, nil
}

// Grant начисляет amount прямо в профиль и обновляет его уровень.
func (l *Ledger) Grant(p *Profile, amount int) (Credit, error) {
	credit, err := l.Add(p.Currency, amount, p.Level)
	if err != nil {
		return Credit{}, err
	}
	p.Currency = credit.Currency
	p.Level = credit.Level.Level
	return credit, nil
}

// LevelFor возвращает уровень для данного количества валюты.
func (l *Ledger) LevelFor(currency int) catalog.LevelEntry {
	return l.levels.For(currency)
}

// ProgressFor возвращает прогресс к следующему уровню в [0, 1].
func (l *Ledger) ProgressFor(currency int) float64 {
	return l.levels.Progress(currency)
}

// Levels возвращает таблицу уровней.
func (l *Ledger) Levels() catalog.LevelTable {
	return l.levels
}
