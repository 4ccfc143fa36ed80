package completion

import (
	"context"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

// BookingRepository сохранение оплаченных бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// Notifier отправка уведомления о подтверждённом бронировании
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking domain.Booking) error
}

// MetricsRecorder метрики завершённых бронирований
type MetricsRecorder interface {
	ObserveCompletion()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
