package attendance

import (
	"fmt"

	"axiapac.com/attendance/utils"
)

// InconsistentStateError is returned when a record matches no known state.
type InconsistentStateError struct {
	Record Record
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("inconsistent attendance record: attributeId=%s breakId=%d inTime=%q outTime=%q",
		utils.Format(e.Record.AttributeID), e.Record.BreakID, utils.Format(e.Record.InTime), utils.Format(e.Record.OutTime))
}

// LocationRequiredError aborts a transition when no location reading could be taken.
type LocationRequiredError struct {
	Err error
}

func (e *LocationRequiredError) Error() string {
	return fmt.Sprintf("location required: %v", e.Err)
}

func (e *LocationRequiredError) Unwrap() error { return e.Err }

// ServiceError wraps a failed call to the attendance service. Message is the
// backend's message, passed through for display.
type ServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("attendance service %s failed: %s", e.Op, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

type TransitionInProgressError struct {
	EmployeeID int64
}

func (e *TransitionInProgressError) Error() string {
	return fmt.Sprintf("a transition is already in progress for employee %d", e.EmployeeID)
}

type ActionNotAllowedError struct {
	Action Action
	State  State
}

func (e *ActionNotAllowedError) Error() string {
	return fmt.Sprintf("%s is not available while %s", e.Action, e.State)
}

type UnknownStateError struct {
	Value string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown attendance state %q", e.Value)
}
