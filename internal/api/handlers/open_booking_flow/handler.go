package open_booking_flow

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers/flowview"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	openBooking "github.com/m04kA/SMC-SessionBooking/internal/usecase/open_booking"
)

const (
	msgInvalidHostID  = "некорректный ID хоста"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidRequest = "некорректные параметры запроса"
)

type Handler struct {
	useCase OpenBookingUseCase
	logger  Logger
}

func NewHandler(useCase OpenBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/hosts/{hostId}/booking-flows
// Открывает новый процесс бронирования; предыдущий процесс клиента у этого хоста закрывается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("POST /hosts/{id}/booking-flows - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /hosts/{id}/booking-flows - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &openBooking.Request{ClientID: userID, HostID: hostID})
	if err != nil {
		switch {
		case errors.Is(err, openBooking.ErrInvalidInput):
			h.logger.Warn("POST /hosts/{id}/booking-flows - Invalid request: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("POST /hosts/{id}/booking-flows - Failed to open flow: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("POST /hosts/{id}/booking-flows - Failed to open flow: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /hosts/{id}/booking-flows - Flow opened: flow_id=%s, host_id=%d, user_id=%d",
		result.View.ID, hostID, userID)
	handlers.RespondJSON(w, http.StatusCreated, flowview.FromView(result.View))
}
