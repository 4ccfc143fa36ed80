package get_host_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/service/bookings"
)

const (
	msgInvalidHostID = "некорректный ID хоста"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/bookings
// Query params: status, date | from + to, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/bookings - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /hosts/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(hostID, userID, QueryParams{
		Status:          query.Get("status"),
		Date:            query.Get("date"),
		From:            query.Get("from"),
		To:              query.Get("to"),
		IncludeInactive: query.Get("includeInactive"),
	})
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что запрашивает сам хост
	result, err := h.service.GetHostBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /hosts/{id}/bookings - Access denied: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid parameters: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("GET /hosts/{id}/bookings - Failed to get bookings: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("GET /hosts/{id}/bookings - Failed to get bookings: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/bookings - Bookings retrieved successfully: host_id=%d, count=%d",
		hostID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
