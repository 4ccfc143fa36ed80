package get_available_dates

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/availability"
)

// UseCase use case для календаря хоста: даты, на которые есть хотя бы одно правило
type UseCase struct {
	rules        RulesProvider
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(rules RulesProvider, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute возвращает доступные даты в периоде [From, To]
// Прошедшие даты отбрасываются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: host=%d, from=%s, to=%s",
		req.HostID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	from := domain.DateOnly(req.From)
	to := domain.DateOnly(req.To)
	resp := &Response{HostID: req.HostID, From: from, To: to, Dates: []time.Time{}}

	today := domain.DateOnly(uc.timeProvider.Now())
	if from.Before(today) {
		from = today
	}
	if to.Before(from) {
		return resp, nil
	}

	rules, err := uc.rules.GetRules(ctx, req.HostID)
	if err != nil {
		return nil, err
	}

	resp.Dates = availability.AvailableDates(from, to, rules)
	uc.logger.Info("GetAvailableDates: %d dates for host=%d", len(resp.Dates), req.HostID)
	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	from := domain.DateOnly(req.From)
	to := domain.DateOnly(req.To)
	if to.Before(from) {
		return fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}
	if days := int(to.Sub(from).Hours() / 24); days > domain.MaxAvailableDatesRange {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooLarge, days, domain.MaxAvailableDatesRange)
	}
	return nil
}
