package progress

import (
	"strings"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// RecordCompletion обновляет счётчики профиля для выполненной задачи.
// Заметка засчитывается, только если она не пустая.
func RecordCompletion(p *Profile, c Completion, note *string) {
	p.TotalTasksCompleted++
	if note != nil && strings.TrimSpace(*note) != "" {
		p.NotesWritten++
	}
	if p.CategoryCompletions == nil {
		p.CategoryCompletions = make(map[catalog.Category]int)
	}
	p.CategoryCompletions[c.Category]++
}

// RecordAllDone продвигает серию дней, в которые выполнены все задачи.
// Повтор в тот же день ничего не меняет.
func RecordAllDone(p *Profile, day timeutil.Date) {
	d := day
	switch {
	case p.LastAllDoneDate == nil:
		p.AllDoneStreak = 1
	case p.LastAllDoneDate.DaysUntil(day) == 0:
		return
	case p.LastAllDoneDate.DaysUntil(day) == 1:
		p.AllDoneStreak++
	default:
		p.AllDoneStreak = 1
	}
	p.LastAllDoneDate = &d
}
