package platform

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда строка настроек ещё не создана
	ErrSettingsNotFound = errors.New("platform.repository: settings not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("platform.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("platform.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("platform.repository: failed to scan row")
)
