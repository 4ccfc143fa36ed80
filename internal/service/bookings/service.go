package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SessionBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SessionBooking/internal/service/bookings/models"
)

// Service сервис для работы с оплаченными бронированиями
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByReference получает бронирование по публичному идентификатору
// Бронирование видят только клиент и хост
func (s *Service) GetByReference(ctx context.Context, reference string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking ref=%s for user=%d", reference, userID)

	booking, err := s.getBooking(ctx, "GetByReference", reference)
	if err != nil {
		return nil, err
	}

	if booking.ClientID != userID && booking.HostID != userID {
		s.logger.Warn("GetByReference: access denied for user=%d to booking ref=%s", userID, reference)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetClientBookings получает историю бронирований клиента
// Пользователь видит только свои бронирования
func (s *Service) GetClientBookings(ctx context.Context, req *models.GetClientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetClientBookings: fetching bookings for client=%d, user=%d", req.ClientID, req.UserID)

	if req.UserID != req.ClientID {
		s.logger.Warn("GetClientBookings: user=%d is not client=%d", req.UserID, req.ClientID)
		return nil, ErrAccessDenied
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientBookings: fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetHostBookings получает бронирования хоста с фильтрацией по периоду и статусу
// Доступно только самому хосту
func (s *Service) GetHostBookings(ctx context.Context, req *models.GetHostBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetHostBookings: fetching bookings for host=%d, user=%d", req.HostID, req.UserID)

	if req.UserID != req.HostID {
		s.logger.Warn("GetHostBookings: user=%d is not host=%d", req.UserID, req.HostID)
		return nil, ErrAccessDenied
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetHostBookings: invalid filter for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: invalid filter: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.GetByHostWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetHostBookings: repository error for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: GetHostBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHostBookings: fetched %d bookings for host=%d", len(bookings), req.HostID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus меняет статус бронирования
// Доступно только хосту, менять можно только подтверждённое бронирование
func (s *Service) UpdateStatus(ctx context.Context, reference string, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking ref=%s to status=%s by user=%d", reference, req.Status, req.UserID)

	// 1. Валидируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	// 2. Проверяем права
	booking, err := s.getBooking(ctx, "UpdateStatus", reference)
	if err != nil {
		return nil, err
	}
	if booking.HostID != req.UserID {
		s.logger.Warn("UpdateStatus: user=%d is not host of booking ref=%s", req.UserID, reference)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем переход
	if booking.Status != domain.StatusConfirmed || newStatus == domain.StatusConfirmed {
		s.logger.Warn("UpdateStatus: cannot change booking ref=%s from %s to %s", reference, booking.Status, newStatus)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusChange, booking.Status, newStatus)
	}

	// 4. Сохраняем
	if err := s.bookingRepo.UpdateStatus(ctx, reference, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	s.logger.Info("UpdateStatus: booking ref=%s is now %s", reference, newStatus)
	return models.FromDomainBooking(booking), nil
}

func (s *Service) getBooking(ctx context.Context, op, reference string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking ref=%s not found", op, reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking ref=%s: %v", op, reference, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
