package get_booking_flow

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

// Handle GET /api/v1/booking-flows/{flowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /booking-flows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	flow, err := h.registry.Get(flowID, userID)
	if err != nil {
		if flowview.RespondError(w, err) {
			h.logger.Error("GET /booking-flows/{id} - Failed to get flow: flow_id=%s, error=%v", flowID, err)
			return
		}
		h.logger.Warn("GET /booking-flows/{id} - Failed to get flow: flow_id=%s, user_id=%d, error=%v", flowID, userID, err)
		return
	}

	resp := flowview.Render(r.Context(), flow)
	h.logger.Info("GET /booking-flows/{id} - Flow retrieved: flow_id=%s, state=%s", flowID, resp.State)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
