package daily

import (
	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SELECTOR (Выбор задач дня)
// ══════════════════════════════════════════════════════════════════════════════

// Shuffler - источник случайности. *math/rand.Rand подходит напрямую.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Selector выбирает и кэширует набор задач дня.
type Selector struct {
	rng Shuffler
}

// NewSelector создаёт селектор с данным источником случайности.
func NewSelector(rng Shuffler) *Selector {
	return &Selector{rng: rng}
}

// Selection - результат выбора.
type Selection struct {
	Set Set
	// Fresh - набор сгенерирован заново, а не восстановлен из кэша.
	Fresh bool
	// AllDoneGranted переносится из восстановленной записи.
	AllDoneGranted bool
}

// SelectForToday возвращает набор на день today. Если previous сделана
// сегодня и из неё восстанавливается хотя бы одна задача, набор
// восстанавливается вместе с состоянием выполнения. Иначе генерируется новый.
func (s *Selector) SelectForToday(cat *catalog.Catalog, pace progress.Pace, today timeutil.Date, previous *Generation) Selection {
	if previous.IsFor(today) {
		if set := Restore(cat, previous); set.Len() > 0 {
			return Selection{Set: set, AllDoneGranted: previous.AllDoneGranted}
		}
	}
	return Selection{Set: s.Generate(cat, pace.DailyTaskCount()), Fresh: true}
}

// Restore восстанавливает набор из записи генерации. Задачи, которых
// больше нет в каталоге, пропускаются.
func Restore(cat *catalog.Catalog, g *Generation) Set {
	var set Set
	for _, id := range g.TaskIDs {
		def, ok := cat.Task(id)
		if !ok || set.Contains(id) {
			continue
		}
		inst := NewInstance(def)
		inst.Bonus = g.isBonus(id)
		if rec, done := g.completion(id); done {
			inst.Completed = true
			inst.CompletedAt = rec.CompletedAt
			inst.SelectedOptionIDs = append([]string(nil), rec.SelectedOptionIDs...)
			inst.Note = rec.Note
		}
		set.Append(inst)
	}
	return set
}

// Generate перемешивает каталог и жадно берёт задачи из ещё не занятых
// категорий. Если категорий не хватает, добирает из остатка без повторов id.
func (s *Selector) Generate(cat *catalog.Catalog, count int) Set {
	pool := s.shuffled(cat.Tasks())

	picked := make([]catalog.TaskDefinition, 0, count)
	used := make(map[string]struct{}, count)
	categories := make(map[catalog.Category]struct{}, count)

	for _, t := range pool {
		if len(picked) >= count {
			break
		}
		if _, taken := categories[t.Category]; taken {
			continue
		}
		picked = append(picked, t)
		used[t.ID] = struct{}{}
		categories[t.Category] = struct{}{}
	}

	for _, t := range pool {
		if len(picked) >= count {
			break
		}
		if _, taken := used[t.ID]; taken {
			continue
		}
		picked = append(picked, t)
		used[t.ID] = struct{}{}
	}

	var set Set
	for _, def := range picked {
		set.Append(NewInstance(def))
	}
	return set
}

// DrawBonus выбирает случайную задачу, которой ещё нет в наборе.
func (s *Selector) DrawBonus(cat *catalog.Catalog, current Set) (catalog.TaskDefinition, bool) {
	var available []catalog.TaskDefinition
	for _, t := range cat.Tasks() {
		if !current.Contains(t.ID) {
			available = append(available, t)
		}
	}
	if len(available) == 0 {
		return catalog.TaskDefinition{}, false
	}
	return s.shuffled(available)[0], true
}

func (s *Selector) shuffled(tasks []catalog.TaskDefinition) []catalog.TaskDefinition {
	if s.rng != nil {
		s.rng.Shuffle(len(tasks), func(i, j int) {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		})
	}
	return tasks
}
