package workflow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/integrations/payments"
	"github.com/m04kA/SMC-SessionBooking/internal/service/charges"
)

// Pricer рассчитывает актуальную стоимость выбора
type Pricer interface {
	Quote(ctx context.Context, req charges.QuoteRequest) (domain.ChargeBreakdown, error)
}

// PaymentGateway платёжный провайдер
type PaymentGateway interface {
	Capture(ctx context.Context, req payments.CaptureRequest) (*payments.CaptureResult, error)
}

// Publisher получатель события о завершённом бронировании
type Publisher interface {
	Publish(ctx context.Context, booking domain.Booking) error
}

// Observer метрики переходов и оплат
type Observer interface {
	ObserveTransition(from, to string)
	ObservePayment(success bool)
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

type nopObserver struct{}

func (nopObserver) ObserveTransition(from, to string) {}
func (nopObserver) ObservePayment(success bool)       {}
