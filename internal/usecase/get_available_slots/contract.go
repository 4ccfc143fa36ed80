package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// SlotsProvider источник слотов хоста на дату
type SlotsProvider interface {
	GetSlots(ctx context.Context, hostID int64, date time.Time) ([]types.TimeString, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByHostWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
