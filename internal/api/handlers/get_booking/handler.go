package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/service/bookings"
)

const (
	msgMissingReference = "идентификатор бронирования обязателен"
	msgNotFound         = "бронирование не найдено"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/bookings/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference := mux.Vars(r)["reference"]
	if reference == "" {
		h.logger.Warn("GET /bookings/{reference} - Missing reference")
		handlers.RespondBadRequest(w, msgMissingReference)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{reference} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем бронирование (сервис сам проверит права доступа)
	booking, err := h.service.GetByReference(r.Context(), reference, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference} - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{reference} - Access denied: reference=%s, user_id=%d", reference, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("GET /bookings/{reference} - Failed to get booking: reference=%s, error=%v", reference, err)
				return
			}
			h.logger.Error("GET /bookings/{reference} - Failed to get booking: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{reference} - Booking retrieved successfully: reference=%s, user_id=%d",
		reference, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
