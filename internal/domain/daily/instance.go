package daily

import (
	"time"

	"github.com/google/uuid"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAILY TASK INSTANCE (Задача дня)
// ══════════════════════════════════════════════════════════════════════════════

// Instance - задача, выбранная на сегодня, и её состояние выполнения.
// Переходит в выполненное состояние ровно один раз.
type Instance struct {
	ID         string
	Definition catalog.TaskDefinition

	Completed         bool
	CompletedAt       time.Time
	SelectedOptionIDs []string
	Note              *string

	// Bonus - задача добавлена по запросу "ещё одну".
	Bonus bool
}

// NewInstance создаёт невыполненную задачу дня.
func NewInstance(def catalog.TaskDefinition) Instance {
	return Instance{
		ID:         uuid.NewString(),
		Definition: def,
	}
}

// TaskID возвращает id определения задачи.
func (i Instance) TaskID() string {
	return i.Definition.ID
}

// Complete отмечает задачу выполненной.
func (i *Instance) Complete(at time.Time, options []string, note *string) error {
	if i.Completed {
		return shared.ErrTaskAlreadyCompleted
	}
	i.Completed = true
	i.CompletedAt = at
	i.SelectedOptionIDs = append([]string(nil), options...)
	if note != nil {
		n := *note
		i.Note = &n
	}
	return nil
}

// Clone возвращает независимую копию.
func (i Instance) Clone() Instance {
	c := i
	c.SelectedOptionIDs = append([]string(nil), i.SelectedOptionIDs...)
	if i.Note != nil {
		n := *i.Note
		c.Note = &n
	}
	return c
}

// ══════════════════════════════════════════════════════════════════════════════
// SET (Набор задач дня)
// ══════════════════════════════════════════════════════════════════════════════

// Set - упорядоченный набор задач дня.
type Set struct {
	instances []Instance
}

// NewSet создаёт набор из задач.
func NewSet(instances ...Instance) Set {
	return Set{instances: instances}
}

// Len возвращает количество задач.
func (s Set) Len() int {
	return len(s.instances)
}

// Instances возвращает копии задач.
func (s Set) Instances() []Instance {
	out := make([]Instance, len(s.instances))
	for i, inst := range s.instances {
		out[i] = inst.Clone()
	}
	return out
}

// Find ищет задачу по id определения.
func (s *Set) Find(taskID string) (*Instance, bool) {
	for i := range s.instances {
		if s.instances[i].Definition.ID == taskID {
			return &s.instances[i], true
		}
	}
	return nil, false
}

// Contains проверяет, есть ли задача в наборе.
func (s Set) Contains(taskID string) bool {
	_, ok := s.Find(taskID)
	return ok
}

// TaskIDs возвращает id определений в порядке набора.
func (s Set) TaskIDs() []string {
	ids := make([]string, len(s.instances))
	for i, inst := range s.instances {
		ids[i] = inst.Definition.ID
	}
	return ids
}

// CompletedCount возвращает количество выполненных задач.
func (s Set) CompletedCount() int {
	n := 0
	for _, inst := range s.instances {
		if inst.Completed {
			n++
		}
	}
	return n
}

// AllCompleted сообщает, что набор непуст и все задачи выполнены.
func (s Set) AllCompleted() bool {
	return len(s.instances) > 0 && s.CompletedCount() == len(s.instances)
}

// Append добавляет задачу в конец набора.
func (s *Set) Append(inst Instance) {
	s.instances = append(s.instances, inst)
}

// Clone возвращает глубокую копию набора.
func (s Set) Clone() Set {
	return Set{instances: s.Instances()}
}

// Generation сворачивает набор в сохраняемую запись генерации.
func (s Set) Generation(date timeutil.Date, allDoneGranted bool) Generation {
	g := Generation{
		Date:           date,
		TaskIDs:        s.TaskIDs(),
		AllDoneGranted: allDoneGranted,
	}
	for _, inst := range s.instances {
		if inst.Bonus {
			g.BonusTaskIDs = append(g.BonusTaskIDs, inst.Definition.ID)
		}
		if !inst.Completed {
			continue
		}
		g.Completions = append(g.Completions, CompletionRecord{
			TaskID:            inst.Definition.ID,
			CompletedAt:       inst.CompletedAt,
			SelectedOptionIDs: append([]string(nil), inst.SelectedOptionIDs...),
			Note:              inst.Note,
		})
	}
	return g
}
