package set_addon_inclusion

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/domain"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing"
)

const (
	msgInvalidHostID      = "некорректный ID хоста"
	msgUnknownAddOn       = "неизвестная услуга"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgAddOnDisabled      = "услуга отключена на платформе"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/hosts/{hostId}/pricing/add-ons/{addOn}
// Включает или выключает услугу сразу во всех активных тарифах хоста
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	addOn, err := domain.ParseAddOn(mux.Vars(r)["addOn"])
	if err != nil {
		h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Unknown add-on: %v", err)
		handlers.RespondBadRequest(w, msgUnknownAddOn)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetInclusionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	catalog, err := h.service.SetAddOnInclusion(r.Context(), userID, hostID, addOn, *req.Included)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrAccessDenied):
			h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Access denied: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, pricing.ErrAddOnDisabled):
			h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Add-on disabled: host_id=%d, add_on=%s", hostID, addOn)
			handlers.RespondForbidden(w, msgAddOnDisabled)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("PUT /hosts/{id}/pricing/add-ons/{addOn} - Failed to update: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("PUT /hosts/{id}/pricing/add-ons/{addOn} - Failed to update: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /hosts/{id}/pricing/add-ons/{addOn} - Add-on inclusion updated: host_id=%d, add_on=%s, included=%t",
		hostID, addOn, *req.Included)
	handlers.RespondJSON(w, http.StatusOK, catalog)
}
