package progress

import (
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// STREAK (Серия активных дней)
// ══════════════════════════════════════════════════════════════════════════════

// StreakState - входные и выходные данные перехода серии.
type StreakState struct {
	LastActive          *timeutil.Date
	Current             int
	Longest             int
	FreezeAvailable     bool
	FreezeUsedThisCycle bool
}

// StreakOutcome - что произошло с серией.
type StreakOutcome string

const (
	// StreakStarted - первая активность.
	StreakStarted StreakOutcome = "started"
	// StreakUnchanged - активность в тот же день.
	StreakUnchanged StreakOutcome = "unchanged"
	// StreakExtended - активность на следующий день.
	StreakExtended StreakOutcome = "extended"
	// StreakFrozen - один пропущенный день прощён заморозкой.
	StreakFrozen StreakOutcome = "frozen"
	// StreakReset - серия начата заново.
	StreakReset StreakOutcome = "reset"
)

// StreakTransition - результат перехода.
type StreakTransition struct {
	State   StreakState
	Outcome StreakOutcome
	// Previous - длина серии до перехода.
	Previous int
}

// StreakRecoveryDays - сколько дней нужно набрать после сброса, чтобы
// серия считалась восстановленной.
const StreakRecoveryDays = 3

// NextStreak вычисляет следующее состояние серии для активности в день today.
// Чистая функция. Разрыв вычисляется между календарными датами;
// отрицательный разрыв считается нулевым.
func NextStreak(s StreakState, today timeutil.Date) StreakTransition {
	next := s
	tr := StreakTransition{Previous: s.Current}

	day := today
	setToday := func() { next.LastActive = &day }
	raiseLongest := func() {
		if next.Current > next.Longest {
			next.Longest = next.Current
		}
	}

	if s.LastActive == nil || s.LastActive.IsZero() {
		next.Current = 1
		setToday()
		raiseLongest()
		tr.State, tr.Outcome = next, StreakStarted
		return tr
	}

	gap := s.LastActive.DaysUntil(today)
	if gap < 0 {
		gap = 0
	}

	switch {
	case gap == 0:
		tr.Outcome = StreakUnchanged
	case gap == 1:
		next.Current++
		setToday()
		raiseLongest()
		tr.Outcome = StreakExtended
	case gap == 2 && s.FreezeAvailable && !s.FreezeUsedThisCycle:
		next.FreezeUsedThisCycle = true
		next.Current++
		setToday()
		raiseLongest()
		tr.Outcome = StreakFrozen
	default:
		next.Current = 1
		setToday()
		raiseLongest()
		tr.Outcome = StreakReset
	}

	tr.State = next
	return tr
}

// RollFreezeCycle сбрасывает флаг использованной заморозки при смене
// недельного цикла. Возвращает true, если цикл сменился.
func RollFreezeCycle(p *Profile, cycleKey string) bool {
	if p.FreezeCycle == cycleKey {
		return false
	}
	p.FreezeCycle = cycleKey
	p.StreakFreezeUsedThisCycle = false
	return true
}

// TrackRecovery обновляет счётчики восстановления серии после перехода.
// Сброс серии длиной от двух дней помечает её сломанной; набор
// StreakRecoveryDays дней после этого засчитывается как восстановление.
func TrackRecovery(p *Profile, tr StreakTransition) {
	if tr.Outcome == StreakReset && tr.Previous >= 2 {
		p.StreakBroken = true
		return
	}
	if p.StreakBroken && p.CurrentStreak >= StreakRecoveryDays {
		p.StreakBroken = false
		p.StreakRecoveries++
	}
}
