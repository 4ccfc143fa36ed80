package update_platform_settings

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/service/platform/models"
)

type PlatformService interface {
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
