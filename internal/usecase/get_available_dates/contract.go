package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// RulesProvider источник правил доступности хоста
type RulesProvider interface {
	GetRules(ctx context.Context, hostID int64) (domain.RuleSet, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
