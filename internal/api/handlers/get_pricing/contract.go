package get_pricing

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
)

type PricingService interface {
	GetCatalog(ctx context.Context, hostID int64) (*models.CatalogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
