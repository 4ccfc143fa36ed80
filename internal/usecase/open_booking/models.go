package open_booking

import "github.com/m04kA/SMC-SessionBooking/internal/workflow"

// Request модель запроса на открытие процесса бронирования
type Request struct {
	ClientID int64
	HostID   int64
}

// Response открытый процесс и его начальное состояние
type Response struct {
	Flow *workflow.Workflow
	View workflow.View
}
