package charges

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// SettingsProvider источник настроек платформы (ставки, цены услуг)
type SettingsProvider interface {
	Get(ctx context.Context) (domain.PlatformSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
