package close_booking_flow

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers/flowview"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

type Handler struct {
	registry FlowRegistry
	logger   Logger
}

func NewHandler(registry FlowRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

// Handle DELETE /api/v1/booking-flows/{flowId}
// Закрывает процесс из любого состояния; результат оплаты, пришедший позже, отбрасывается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /booking-flows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.registry.Close(flowID, userID); err != nil {
		if flowview.RespondError(w, err) {
			h.logger.Error("DELETE /booking-flows/{id} - Failed to close: flow_id=%s, error=%v", flowID, err)
			return
		}
		h.logger.Warn("DELETE /booking-flows/{id} - Close rejected: flow_id=%s, user_id=%d, error=%v", flowID, userID, err)
		return
	}

	h.logger.Info("DELETE /booking-flows/{id} - Flow closed: flow_id=%s, user_id=%d", flowID, userID)
	handlers.RespondNoContent(w)
}
