package daily

import (
	"time"

	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// Generation - сохраняемая запись о наборе дня. Содержит выбранные id и
// состояние выполнения, поэтому переживает перезапуск в течение дня.
type Generation struct {
	Date           timeutil.Date      `json:"generationDate"`
	TaskIDs        []string           `json:"selectedTaskIds"`
	BonusTaskIDs   []string           `json:"bonusTaskIds,omitempty"`
	Completions    []CompletionRecord `json:"completions,omitempty"`
	AllDoneGranted bool               `json:"allDoneBonusGranted"`
}

// CompletionRecord - выполнение задачи дня.
type CompletionRecord struct {
	TaskID            string    `json:"taskId"`
	CompletedAt       time.Time `json:"completedAt"`
	SelectedOptionIDs []string  `json:"selectedOptionIds,omitempty"`
	Note              *string   `json:"note,omitempty"`
}

// IsFor сообщает, что запись сделана в день today и не пуста.
func (g *Generation) IsFor(today timeutil.Date) bool {
	return g != nil && g.Date == today && len(g.TaskIDs) > 0
}

func (g *Generation) completion(taskID string) (CompletionRecord, bool) {
	for _, c := range g.Completions {
		if c.TaskID == taskID {
			return c, true
		}
	}
	return CompletionRecord{}, false
}

func (g *Generation) isBonus(taskID string) bool {
	for _, id := range g.BonusTaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
