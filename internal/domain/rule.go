package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// WeeklyRule еженедельное правило доступности хоста
type WeeklyRule struct {
	ID        int64
	HostID    int64
	DayOfWeek int // 0 = воскресенье ... 6 = суббота
	StartTime types.TimeString
	EndTime   types.TimeString
}

// DateRule правило доступности на конкретную дату
type DateRule struct {
	ID        int64
	HostID    int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// RuleSet согласованный снимок всех правил хоста
type RuleSet struct {
	Weekly []WeeklyRule
	Dates  []DateRule
}

// IsEmpty возвращает true, если у хоста нет ни одного правила
func (rs RuleSet) IsEmpty() bool {
	return len(rs.Weekly) == 0 && len(rs.Dates) == 0
}

// AppliesTo возвращает true, если правило действует в указанную дату
func (r WeeklyRule) AppliesTo(date time.Time) bool {
	return int(date.Weekday()) == r.DayOfWeek
}

// Validate проверяет день недели и интервал времени
func (r WeeklyRule) Validate() error {
	if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek %d is out of range 0..6", ErrInvalidRule, r.DayOfWeek)
	}
	return validateInterval(r.StartTime, r.EndTime)
}

// AppliesTo возвращает true, если правило задано на эту же календарную дату
func (r DateRule) AppliesTo(date time.Time) bool {
	return SameDay(r.Date, date)
}

// Validate проверяет дату и интервал времени
func (r DateRule) Validate() error {
	if r.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidRule)
	}
	return validateInterval(r.StartTime, r.EndTime)
}

// validateInterval start == end допустим (пустой интервал), start > end - нет
func validateInterval(start, end types.TimeString) error {
	startMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRule, err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidRule, err)
	}
	if startMin > endMin {
		return fmt.Errorf("%w: startTime %s is after endTime %s", ErrInvalidRule, start, end)
	}
	return nil
}

// SameDay проверяет, что две даты относятся к одному и тому же дню
func SameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время, оставляя календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
