package get_available_dates

import (
	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	getAvailableDates "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	HostID int64    `json:"hostId"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Dates  []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, len(resp.Dates))
	for i, d := range resp.Dates {
		dates[i] = d.Format(domain.DateFormat)
	}

	return &AvailableDatesResponse{
		HostID: resp.HostID,
		From:   resp.From.Format(domain.DateFormat),
		To:     resp.To.Format(domain.DateFormat),
		Dates:  dates,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(hostID int64, fromStr, toStr string) (*getAvailableDates.Request, error) {
	from, err := handlers.ParseDate(fromStr)
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseDate(toStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableDates.Request{
		HostID: hostID,
		From:   from,
		To:     to,
	}, nil
}
