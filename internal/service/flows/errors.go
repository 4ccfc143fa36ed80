package flows

import "errors"

var (
	// ErrFlowNotFound возвращается, когда процесс бронирования не найден или уже удалён
	ErrFlowNotFound = errors.New("flows: booking flow not found")

	// ErrAccessDenied возвращается, когда процесс принадлежит другому клиенту
	ErrAccessDenied = errors.New("flows: access denied")
)
