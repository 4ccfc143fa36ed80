package open_booking

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
)

// RulesProvider источник правил доступности хоста
type RulesProvider interface {
	GetRules(ctx context.Context, hostID int64) (domain.RuleSet, error)
}

// CatalogLoader источник тарифов хоста
type CatalogLoader interface {
	LoadCatalog(ctx context.Context, hostID int64) (*pricing.Catalog, error)
	FreeCallDuration() int
}

// SettingsProvider источник настроек платформы
type SettingsProvider interface {
	Get(ctx context.Context) (domain.PlatformSettings, error)
}

// FlowRegistry реестр открытых процессов бронирования
type FlowRegistry interface {
	Register(w *workflow.Workflow)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
