package availability

import (
	"fmt"
	"slices"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// IsDateAvailable возвращает true, если на дату действует хотя бы одно правило:
// еженедельное по дню недели или правило на конкретную дату. Правила складываются
func IsDateAvailable(date time.Time, rules domain.RuleSet) bool {
	for _, r := range rules.Weekly {
		if r.AppliesTo(date) {
			return true
		}
	}
	for _, r := range rules.Dates {
		if r.AppliesTo(date) {
			return true
		}
	}
	return false
}

// ResolveSlots генерирует слоты на дату по всем применимым правилам
//
// Каждое правило проходится шагом SlotStepMinutes от начала (округлённого вверх до границы шага).
// Слот попадает в результат, только если начинается строго раньше конца правила:
// 09:00-10:30 даёт 09:00, 09:30, 10:00; правило до 10:15 даёт 10:00, но не 10:30.
// Слоты нескольких правил объединяются без дублей по возрастанию.
// Некорректное время в применимом правиле - ошибка domain.ErrInvalidRule, правило не пропускается
func ResolveSlots(date time.Time, rules domain.RuleSet) ([]types.TimeString, error) {
	starts := make(map[int]struct{})

	for _, r := range rules.Weekly {
		if !r.AppliesTo(date) {
			continue
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("weekly rule id=%d: %w", r.ID, err)
		}
		if err := collectSlots(starts, r.StartTime, r.EndTime); err != nil {
			return nil, err
		}
	}

	for _, r := range rules.Dates {
		if !r.AppliesTo(date) {
			continue
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("date rule id=%d: %w", r.ID, err)
		}
		if err := collectSlots(starts, r.StartTime, r.EndTime); err != nil {
			return nil, err
		}
	}

	minutes := make([]int, 0, len(starts))
	for m := range starts {
		minutes = append(minutes, m)
	}
	slices.Sort(minutes)

	slots := make([]types.TimeString, 0, len(minutes))
	for _, m := range minutes {
		slot, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRule, err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// collectSlots добавляет в starts начала слотов интервала [start, end)
func collectSlots(starts map[int]struct{}, start, end types.TimeString) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRule, err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRule, err)
	}

	first := alignUp(startMin, domain.SlotStepMinutes)
	for m := first; m < endMin; m += domain.SlotStepMinutes {
		starts[m] = struct{}{}
	}
	return nil
}

// alignUp округляет минуты вверх до ближайшей границы шага
func alignUp(minutes, step int) int {
	return (minutes + step - 1) / step * step
}

// AvailableDates возвращает даты в диапазоне [from, to], на которые действует хотя бы одно правило
func AvailableDates(from, to time.Time, rules domain.RuleSet) []time.Time {
	dates := make([]time.Time, 0)
	if rules.IsEmpty() {
		return dates
	}

	for d := domain.DateOnly(from); !d.After(domain.DateOnly(to)); d = d.AddDate(0, 0, 1) {
		if IsDateAvailable(d, rules) {
			dates = append(dates, d)
		}
	}
	return dates
}

// ContainsSlot проверяет, что время входит в список слотов
func ContainsSlot(slots []types.TimeString, slot types.TimeString) bool {
	return slices.Contains(slots, slot)
}
