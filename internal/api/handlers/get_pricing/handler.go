package get_pricing

import (
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
)

const msgInvalidHostID = "некорректный ID хоста"

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

// Handle GET /api/v1/hosts/{hostId}/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	hostID, err := handlers.PathInt64(r, "hostId")
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/pricing - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	catalog, err := h.service.GetCatalog(r.Context(), hostID)
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /hosts/{id}/pricing - Failed to get pricing: host_id=%d, error=%v", hostID, err)
			return
		}
		h.logger.Error("GET /hosts/{id}/pricing - Failed to get pricing: host_id=%d, error=%v", hostID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /hosts/{id}/pricing - Pricing retrieved successfully: host_id=%d, active=%d",
		hostID, catalog.ActiveCount)
	handlers.RespondJSON(w, http.StatusOK, catalog)
}
