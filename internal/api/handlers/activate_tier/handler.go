package activate_tier

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing"
)

const (
	msgInvalidHostID      = "некорректный ID хоста"
	msgInvalidDuration    = "некорректная длительность тарифа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgTooManyTiers       = "превышено максимальное количество активных тарифов"
	msgFreeCallsDisabled  = "бесплатные звонки отключены на платформе"
	msgPriceRequired      = "для нового тарифа необходимо указать цену"
	msgInvalidTier        = "некорректные параметры тарифа"
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

// Handle PUT /api/v1/hosts/{hostId}/pricing/tiers/{duration}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	duration, err := handlers.PathInt(r, "duration")
	if err != nil {
		h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ActivateTierRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tier, err := h.service.Activate(r.Context(), userID, hostID, req.ToServiceRequest(duration))
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrAccessDenied):
			h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Access denied: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, pricing.ErrTooManyActiveTiers):
			h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Too many active tiers: host_id=%d", hostID)
			handlers.RespondConflict(w, msgTooManyTiers)

		case errors.Is(err, pricing.ErrFreeCallsDisabled):
			h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Free calls disabled: host_id=%d", hostID)
			handlers.RespondForbidden(w, msgFreeCallsDisabled)

		case errors.Is(err, pricing.ErrPriceRequired):
			h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Price required: host_id=%d, duration=%d", hostID, duration)
			handlers.RespondBadRequest(w, msgPriceRequired)

		case errors.Is(err, pricing.ErrInvalidTier):
			h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Invalid tier: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidTier)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("PUT /hosts/{id}/pricing/tiers/{duration} - Failed to activate: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("PUT /hosts/{id}/pricing/tiers/{duration} - Failed to activate: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /hosts/{id}/pricing/tiers/{duration} - Tier activated: host_id=%d, duration=%d, user_id=%d",
		hostID, duration, userID)
	handlers.RespondJSON(w, http.StatusOK, tier)
}
