package open_booking_flow

import (
	"context"

	openBooking "github.com/m04kA/SMC-SessionBooking/internal/usecase/open_booking"
)

type OpenBookingUseCase interface {
	Execute(ctx context.Context, req *openBooking.Request) (*openBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
