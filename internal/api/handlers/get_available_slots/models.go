package get_available_slots

import (
	"errors"
	"strconv"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_slots"
)

var errInvalidDuration = errors.New("invalid duration")

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date   string   `json:"date"`
	HostID int64    `json:"hostId"`
	Slots  []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		Date:   resp.Date.Format(domain.DateFormat),
		HostID: resp.HostID,
		Slots:  slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID, hostID int64, dateStr, durationStr string) (*getAvailableSlots.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	duration := 0
	if durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil || duration <= 0 {
			return nil, errInvalidDuration
		}
	}

	return &getAvailableSlots.Request{
		UserID:          userID,
		HostID:          hostID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}
