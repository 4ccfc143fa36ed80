package activate_tier

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing/models"
)

type PricingService interface {
	Activate(ctx context.Context, userID, hostID int64, req *models.ActivateTierRequest) (*models.TierResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
