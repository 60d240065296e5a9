package catalog

import (
	"errors"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEVEL TABLE (Таблица уровней)
// ══════════════════════════════════════════════════════════════════════════════

// LevelEntry - уровень и требуемое количество звёздной пыли.
type LevelEntry struct {
	Level    int
	Name     string
	Required int
}

// LevelTable - упорядоченная таблица уровней со строго растущими порогами.
type LevelTable struct {
	entries []LevelEntry
}

// Reward constants.
const (
	// AllDoneBonus начисляется один раз, когда выполнены все задачи дня.
	AllDoneBonus = 50
	// AssessmentReward начисляется за повторную оценку состояния.
	AssessmentReward = 100
	// MinTaskReward и MaxTaskReward - рекомендуемый диапазон наград в каталоге.
	MinTaskReward = 30
	MaxTaskReward = 75
)

// DefaultLevelTable возвращает встроенные 8 уровней.
func DefaultLevelTable() LevelTable {
	return LevelTable{entries: []LevelEntry{
		{Level: 1, Name: "Spark", Required: 0},
		{Level: 2, Name: "Flicker", Required: 200},
		{Level: 3, Name: "Glow", Required: 500},
		{Level: 4, Name: "Warmth", Required: 1000},
		{Level: 5, Name: "Radiance", Required: 2000},
		{Level: 6, Name: "Blaze", Required: 3500},
		{Level: 7, Name: "Brilliance", Required: 5500},
		{Level: 8, Name: "Ember Master", Required: 8000},
	}}
}

// NewLevelTable проверяет и создаёт таблицу уровней.
func NewLevelTable(entries []LevelEntry) (LevelTable, error) {
	if len(entries) == 0 {
		return LevelTable{}, errors.New("level table is empty")
	}
	if entries[0].Required != 0 {
		return LevelTable{}, fmt.Errorf("first level must require 0, got %d", entries[0].Required)
	}
	for i, e := range entries {
		if e.Level != i+1 {
			return LevelTable{}, fmt.Errorf("level at position %d must be %d, got %d", i, i+1, e.Level)
		}
		if i > 0 && e.Required <= entries[i-1].Required {
			return LevelTable{}, fmt.Errorf("level %d requirement %d must exceed %d", e.Level, e.Required, entries[i-1].Required)
		}
	}
	copied := make([]LevelEntry, len(entries))
	copy(copied, entries)
	return LevelTable{entries: copied}, nil
}

// Entries возвращает копию записей таблицы.
func (t LevelTable) Entries() []LevelEntry {
	out := make([]LevelEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len возвращает количество уровней.
func (t LevelTable) Len() int {
	return len(t.entries)
}

// Max возвращает последний уровень таблицы.
func (t LevelTable) Max() LevelEntry {
	return t.entries[len(t.entries)-1]
}

// For возвращает последнюю запись, порог которой не превышает currency.
// Ступенчатая функция: отрицательное значение даёт первый уровень.
func (t LevelTable) For(currency int) LevelEntry {
	result := t.entries[0]
	for _, e := range t.entries {
		if currency < e.Required {
			break
		}
		result = e
	}
	return result
}

// Entry возвращает запись по номеру уровня.
func (t LevelTable) Entry(level int) (LevelEntry, bool) {
	if level < 1 || level > len(t.entries) {
		return LevelEntry{}, false
	}
	return t.entries[level-1], true
}

// Next возвращает следующий уровень после данного.
func (t LevelTable) Next(level int) (LevelEntry, bool) {
	return t.Entry(level + 1)
}

// Progress возвращает долю пути к следующему уровню в [0, 1].
// На максимальном уровне всегда 1.0.
func (t LevelTable) Progress(currency int) float64 {
	current := t.For(currency)
	next, ok := t.Next(current.Level)
	if !ok {
		return 1.0
	}

	p := float64(currency-current.Required) / float64(next.Required-current.Required)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
