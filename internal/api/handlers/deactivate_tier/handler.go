package deactivate_tier

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/service/pricing"
)

const (
	msgInvalidHostID   = "некорректный ID хоста"
	msgInvalidDuration = "некорректная длительность тарифа"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "доступ запрещен"
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

// Handle DELETE /api/v1/hosts/{hostId}/pricing/tiers/{duration}
// Цена выключенного тарифа сохраняется для повторной активации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("DELETE /hosts/{id}/pricing/tiers/{duration} - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	duration, err := handlers.PathInt(r, "duration")
	if err != nil {
		h.logger.Warn("DELETE /hosts/{id}/pricing/tiers/{duration} - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /hosts/{id}/pricing/tiers/{duration} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Deactivate(r.Context(), userID, hostID, duration); err != nil {
		switch {
		case errors.Is(err, pricing.ErrAccessDenied):
			h.logger.Warn("DELETE /hosts/{id}/pricing/tiers/{duration} - Access denied: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("DELETE /hosts/{id}/pricing/tiers/{duration} - Failed to deactivate: host_id=%d, error=%v", hostID, err)
				return
			}
			h.logger.Error("DELETE /hosts/{id}/pricing/tiers/{duration} - Failed to deactivate: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /hosts/{id}/pricing/tiers/{duration} - Tier deactivated: host_id=%d, duration=%d", hostID, duration)
	handlers.RespondNoContent(w)
}
