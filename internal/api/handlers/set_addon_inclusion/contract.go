package set_addon_inclusion

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
)

type PricingService interface {
	SetAddOnInclusion(ctx context.Context, userID, hostID int64, addOn domain.AddOn, included bool) (*models.CatalogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
