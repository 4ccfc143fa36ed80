package availability

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// RuleRepository источник правил доступности
type RuleRepository interface {
	GetRuleSet(ctx context.Context, hostID int64) (domain.RuleSet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
