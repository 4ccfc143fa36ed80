package platform

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SessionBooking/internal/domain"
)

var (
	// ErrAccessDenied возвращается, когда пользователь не является администратором платформы
	ErrAccessDenied = errors.New("platform: access denied")

	// ErrInvalidInput возвращается при некорректных значениях настроек
	ErrInvalidInput = fmt.Errorf("%w: platform: invalid settings", domain.ErrValidation)

	// ErrSettingsUnavailable возвращается, когда настройки не удалось прочитать или сохранить
	ErrSettingsUnavailable = fmt.Errorf("%w: platform settings unavailable", domain.ErrExternalOperation)
)
