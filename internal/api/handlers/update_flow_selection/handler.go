package update_flow_selection

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers/flowview"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEmptySelection     = "не передано ни одного изменения"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

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

// Handle PATCH /api/v1/booking-flows/{flowId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /booking-flows/{id}/selection - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /booking-flows/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.IsEmpty() {
		handlers.RespondBadRequest(w, msgEmptySelection)
		return
	}

	flow, err := h.registry.Get(flowID, userID)
	if err != nil {
		if flowview.RespondError(w, err) {
			h.logger.Error("PATCH /booking-flows/{id}/selection - Failed to get flow: flow_id=%s, error=%v", flowID, err)
			return
		}
		h.logger.Warn("PATCH /booking-flows/{id}/selection - Flow unavailable: flow_id=%s, user_id=%d, error=%v", flowID, userID, err)
		return
	}

	if err := req.Apply(flow); err != nil {
		if errors.Is(err, handlers.ErrInvalidParam) {
			h.logger.Warn("PATCH /booking-flows/{id}/selection - Invalid date: flow_id=%s, error=%v", flowID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		if flowview.RespondError(w, err) {
			h.logger.Error("PATCH /booking-flows/{id}/selection - Failed to update selection: flow_id=%s, error=%v", flowID, err)
			return
		}
		h.logger.Warn("PATCH /booking-flows/{id}/selection - Selection rejected: flow_id=%s, error=%v", flowID, err)
		return
	}

	resp := flowview.Render(r.Context(), flow)
	h.logger.Info("PATCH /booking-flows/{id}/selection - Selection updated: flow_id=%s, state=%s", flowID, resp.State)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
