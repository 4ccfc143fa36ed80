package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	getAvailableSlots "github.com/m04kA/SMC-SessionBooking/internal/usecase/get_available_slots"
)

const (
	msgInvalidHostID   = "некорректный ID хоста"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/available-slots
// Query params: date (required, YYYY-MM-DD), duration (optional, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/available-slots - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /hosts/{id}/available-slots - Missing date: host_id=%d", hostID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	// Формируем запрос к use case (с парсингом даты и длительности)
	useCaseReq, err := ToUseCaseRequest(userID, hostID, dateStr, query.Get("duration"))
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/available-slots - Invalid query: host_id=%d, error=%v", hostID, err)
		if errors.Is(err, errInvalidDuration) {
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/available-slots - Invalid request: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("GET /hosts/{id}/available-slots - Failed to get slots: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("GET /hosts/{id}/available-slots - Failed to get slots: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/available-slots - Slots retrieved successfully: host_id=%d, date=%s, slots_count=%d",
		hostID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
