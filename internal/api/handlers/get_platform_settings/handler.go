package get_platform_settings

import (
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
)

type Handler struct {
	service PlatformService
	logger  Logger
}

func NewHandler(service PlatformService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/platform/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings(r.Context())
	if err != nil {
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("GET /platform/settings - Failed to get settings: %v", err)
			return
		}
		h.logger.Error("GET /platform/settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /platform/settings - Settings retrieved successfully: is_default=%t", settings.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
