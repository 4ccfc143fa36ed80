package cancel_booking_flow

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers/flowview"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/workflow"
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

// Handle POST /api/v1/booking-flows/{flowId}/cancel
// На шаге payment возвращает к выбору услуг, на остальных шагах закрывает процесс
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-flows/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	flow, err := h.registry.Get(flowID, userID)
	if err == nil {
		err = flow.Cancel()
	}
	if err != nil {
		if flowview.RespondError(w, err) {
			h.logger.Error("POST /booking-flows/{id}/cancel - Failed to cancel: flow_id=%s, error=%v", flowID, err)
			return
		}
		h.logger.Warn("POST /booking-flows/{id}/cancel - Cancel rejected: flow_id=%s, user_id=%d, error=%v", flowID, userID, err)
		return
	}

	resp := flowview.Render(r.Context(), flow)
	if flow.State() == workflow.StateClosed {
		// закрытый процесс больше не нужен реестру
		if err := h.registry.Close(flowID, userID); err != nil {
			h.logger.Warn("POST /booking-flows/{id}/cancel - Failed to release flow: flow_id=%s, error=%v", flowID, err)
		}
	}

	h.logger.Info("POST /booking-flows/{id}/cancel - Flow cancelled: flow_id=%s, state=%s", flowID, resp.State)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
