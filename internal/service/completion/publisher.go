package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/booking"
)

// Publisher обрабатывает событие о завершённом бронировании:
// сохраняет бронирование и уведомляет участников
type Publisher struct {
	bookingRepo BookingRepository
	notifier    Notifier
	metrics     MetricsRecorder
	logger      Logger
}

// NewPublisher создает новый экземпляр Publisher
func NewPublisher(bookingRepo BookingRepository, notifier Notifier, metrics MetricsRecorder, logger Logger) *Publisher {
	return &Publisher{
		bookingRepo: bookingRepo,
		notifier:    notifier,
		metrics:     metrics,
		logger:      logger,
	}
}

// Publish сохраняет оплаченное бронирование и отправляет уведомление
// Повторное событие с тем же reference игнорируется. Ошибка уведомления только логируется
func (p *Publisher) Publish(ctx context.Context, booking domain.Booking) error {
	p.logger.Info("Publish: booking=%s host=%d client=%d date=%s time=%s",
		booking.Reference, booking.HostID, booking.ClientID,
		booking.SessionDate.Format(domain.DateFormat), booking.StartTime)

	// 1. Сохраняем бронирование
	saved, err := p.bookingRepo.Create(ctx, &booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateReference) {
			p.logger.Warn("Publish: booking=%s already persisted, skipping", booking.Reference)
			return nil
		}
		p.logger.Error("Publish: failed to persist booking=%s: %v", booking.Reference, err)
		return fmt.Errorf("%w: %s: %v", ErrPersistFailed, booking.Reference, err)
	}
	p.metrics.ObserveCompletion()

	// 2. Уведомляем участников
	if err := p.notifier.NotifyBookingConfirmed(ctx, *saved); err != nil {
		p.logger.Warn("Publish: notification failed for booking=%s: %v", booking.Reference, err)
	}

	p.logger.Info("Publish: booking=%s persisted with id=%d", saved.Reference, saved.ID)
	return nil
}
