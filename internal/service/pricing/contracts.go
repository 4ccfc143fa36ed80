package pricing

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// TierRepository интерфейс для работы с тарифами хостов
type TierRepository interface {
	GetByHost(ctx context.Context, hostID int64) ([]domain.PricingTier, error)
	Upsert(ctx context.Context, tiers []domain.PricingTier) error
}

// SettingsProvider источник настроек платформы
type SettingsProvider interface {
	Get(ctx context.Context) (domain.PlatformSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счётчики доменных событий
type MetricsRecorder interface {
	ObserveCapacityRejection()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
