package retreat_booking_flow

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

// Handle POST /api/v1/booking-flows/{flowId}/retreat
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /booking-flows/{id}/retreat - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	flow, err := h.registry.Get(flowID, userID)
	if err == nil {
		err = flow.Retreat()
	}
	if err != nil {
		if flowview.RespondError(w, err) {
			h.logger.Error("POST /booking-flows/{id}/retreat - Failed to retreat: flow_id=%s, error=%v", flowID, err)
			return
		}
		h.logger.Warn("POST /booking-flows/{id}/retreat - Retreat rejected: flow_id=%s, user_id=%d, error=%v", flowID, userID, err)
		return
	}

	resp := flowview.Render(r.Context(), flow)
	h.logger.Info("POST /booking-flows/{id}/retreat - Flow moved back: flow_id=%s, state=%s", flowID, resp.State)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
