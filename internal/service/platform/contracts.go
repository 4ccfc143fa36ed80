package platform

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек платформы
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.PlatformSettings, error)
	Save(ctx context.Context, settings *domain.PlatformSettings) (*domain.PlatformSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
