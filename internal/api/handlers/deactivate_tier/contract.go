package deactivate_tier

import "context"

type PricingService interface {
	Deactivate(ctx context.Context, userID, hostID int64, durationMinutes int) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
