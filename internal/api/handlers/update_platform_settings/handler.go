package update_platform_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SessionBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SessionBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SessionBooking/internal/service/platform"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять настройки платформы может только администратор"
	msgInvalidSettings    = "некорректные значения настроек"
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

// Handle PUT /api/v1/platform/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /platform/settings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /platform/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	settings, err := h.service.Update(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, platform.ErrAccessDenied):
			h.logger.Warn("PUT /platform/settings - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, platform.ErrInvalidInput):
			h.logger.Warn("PUT /platform/settings - Invalid settings: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			if handlers.RespondDomainError(w, err) {
				h.logger.Warn("PUT /platform/settings - Failed to update settings: user_id=%d, error=%v", userID, err)
				return
			}
			h.logger.Error("PUT /platform/settings - Failed to update settings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /platform/settings - Settings updated successfully: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, settings)
}
