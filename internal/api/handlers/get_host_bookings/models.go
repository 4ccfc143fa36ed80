package get_host_bookings

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/service/bookings/models"
)

var errDateWithPeriod = errors.New("date cannot be combined with from/to")

// QueryParams сырые query параметры запроса
type QueryParams struct {
	Status          string
	Date            string
	From            string
	To              string
	IncludeInactive string
}

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(hostID, userID int64, params QueryParams) (*models.GetHostBookingsRequest, error) {
	req := &models.GetHostBookingsRequest{
		UserID:          userID,
		HostID:          hostID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if params.Status != "" {
		req.Status = &params.Status
	}

	// date - сокращение для периода из одного дня
	if params.Date != "" {
		if params.From != "" || params.To != "" {
			return nil, errDateWithPeriod
		}
		date, err := handlers.ParseDate(params.Date)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	}

	if params.From != "" {
		from, err := handlers.ParseDate(params.From)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if params.To != "" {
		to, err := handlers.ParseDate(params.To)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if params.IncludeInactive != "" {
		includeInactive, err := strconv.ParseBool(params.IncludeInactive)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
