package get_available_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/pkg/types"
)

// UseCase use case для получения доступных слотов хоста
type UseCase struct {
	slots           SlotsProvider
	bookingRepo     BookingRepository
	timeProvider    TimeProvider
	hideBookedSlots bool
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// При hideBookedSlots слоты, пересекающиеся с подтверждёнными бронированиями, скрываются
func NewUseCase(
	slots SlotsProvider,
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	hideBookedSlots bool,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		slots:           slots,
		bookingRepo:     bookingRepo,
		timeProvider:    timeProvider,
		hideBookedSlots: hideBookedSlots,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, host=%d, date=%s",
		req.UserID, req.HostID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	resp := &Response{Date: date, HostID: req.HostID, Slots: []types.TimeString{}}

	// 2. Прошедшие даты не бронируются
	today := domain.DateOnly(uc.timeProvider.Now())
	if date.Before(today) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", date.Format(domain.DateFormat))
		return resp, nil
	}

	// 3. Разворачиваем правила хоста в слоты
	slots, err := uc.slots.GetSlots(ctx, req.HostID, date)
	if err != nil {
		return nil, err
	}

	// 4. Скрываем занятые слоты
	if uc.hideBookedSlots && len(slots) > 0 {
		slots, err = uc.filterBooked(ctx, req, date, slots)
		if err != nil {
			return nil, err
		}
	}

	uc.logger.Info("GetAvailableSlots: %d slots for host=%d, date=%s",
		len(slots), req.HostID, date.Format(domain.DateFormat))

	resp.Slots = slots
	return resp, nil
}

func (uc *UseCase) filterBooked(ctx context.Context, req *Request, date time.Time, slots []types.TimeString) ([]types.TimeString, error) {
	bookings, err := uc.bookingRepo.GetByHostWithFilter(ctx, domain.BookingsFilter{
		HostID:    req.HostID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = domain.SlotStepMinutes
	}

	free := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !overlapsAny(slot, duration, bookings) {
			free = append(free, slot)
		}
	}
	return free, nil
}

// overlapsAny граничащие интервалы не считаются пересечением
func overlapsAny(slot types.TimeString, duration int, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if booking.IsActive() && booking.Overlaps(slot, duration) {
			return true
		}
	}
	return false
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 || req.DurationMinutes > domain.MaxTierDurationMinutes {
		return fmt.Errorf("%w: duration must be within 0..%d minutes", ErrInvalidInput, domain.MaxTierDurationMinutes)
	}
	return nil
}
