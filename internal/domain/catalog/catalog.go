package catalog

import (
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG (Библиотека задач)
// ══════════════════════════════════════════════════════════════════════════════

// EntryError - диагностика по отклонённой записи каталога.
type EntryError struct {
	// Index - позиция записи в исходном документе.
	Index int
	// TaskID - id записи, если его удалось прочитать.
	TaskID string
	Err    error
}

func (e EntryError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("entry %d (%s): %v", e.Index, e.TaskID, e.Err)
	}
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }

// Catalog - неизменяемая библиотека задач. Порядок задач сохраняется.
type Catalog struct {
	version string
	tasks   []TaskDefinition
	byID    map[string]int
}

// New создаёт каталог, отбрасывая некорректные записи и повторяющиеся id.
// Отброшенные записи возвращаются как диагностика, а не как ошибка.
func New(version string, tasks []TaskDefinition) (*Catalog, []EntryError) {
	c := &Catalog{
		version: version,
		tasks:   make([]TaskDefinition, 0, len(tasks)),
		byID:    make(map[string]int, len(tasks)),
	}

	var rejected []EntryError
	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			rejected = append(rejected, EntryError{Index: i, TaskID: t.ID, Err: err})
			continue
		}
		if _, dup := c.byID[t.ID]; dup {
			rejected = append(rejected, EntryError{
				Index:  i,
				TaskID: t.ID,
				Err:    &TaskDefinitionError{TaskID: t.ID, Reason: "duplicate id"},
			})
			continue
		}
		c.byID[t.ID] = len(c.tasks)
		c.tasks = append(c.tasks, t)
	}

	return c, rejected
}

// Empty возвращает пустой каталог (деградированный режим).
func Empty() *Catalog {
	c, _ := New("", nil)
	return c
}

// Version возвращает версию исходного документа.
func (c *Catalog) Version() string {
	return c.version
}

// Len возвращает количество задач.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tasks)
}

// IsEmpty сообщает, что задач нет.
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Tasks возвращает копию списка задач в исходном порядке.
func (c *Catalog) Tasks() []TaskDefinition {
	if c == nil {
		return nil
	}
	out := make([]TaskDefinition, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Task ищет задачу по id.
func (c *Catalog) Task(id string) (TaskDefinition, bool) {
	if c == nil {
		return TaskDefinition{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return TaskDefinition{}, false
	}
	return c.tasks[i], true
}

// Categories возвращает различные категории, представленные в каталоге,
// в порядке первого появления.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	seen := make(map[Category]struct{})
	var out []Category
	for _, t := range c.tasks {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		out = append(out, t.Category)
	}
	return out
}
