package retreat_booking_flow

import "github.com/m04kA/SMC-SessionBooking/internal/workflow"

type FlowRegistry interface {
	Get(flowID string, userID int64) (*workflow.Workflow, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
