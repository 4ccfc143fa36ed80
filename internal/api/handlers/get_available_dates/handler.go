package get_available_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_dates"
)

const (
	msgInvalidHostID = "некорректный ID хоста"
	msgInvalidPeriod = "параметры from и to обязательны, формат YYYY-MM-DD"
	msgRangeTooLarge = "слишком большой период"
	msgInvalidRange  = "некорректный период"
)

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/available-dates
// Query params: from, to (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/available-dates - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	query := r.URL.Query()
	useCaseReq, err := ToUseCaseRequest(hostID, query.Get("from"), query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/available-dates - Invalid period: host_id=%d, error=%v", hostID, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableDates.ErrRangeTooLarge):
			h.logger.Warn("GET /hosts/{id}/available-dates - Range too large: host_id=%d", hostID)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, getAvailableDates.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/available-dates - Invalid range: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("GET /hosts/{id}/available-dates - Failed to get dates: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("GET /hosts/{id}/available-dates - Failed to get dates: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/available-dates - Dates retrieved successfully: host_id=%d, dates_count=%d",
		hostID, len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
