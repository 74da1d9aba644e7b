package types

import "fmt"

// ValidationError reports malformed or missing input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PermissionError reports an identity acting outside its role or on a
// resource it does not own.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// NotFoundError reports a referenced entity that does not exist or is not
// visible to the acting identity.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// InvalidStateError reports an action that is not legal in the booking's
// current status. The booking is never mutated when this is returned.
type InvalidStateError struct {
	Message string
}

func (e *InvalidStateError) Error() string {
	return e.Message
}

// NotificationError wraps a failure from the notification collaborator.
// It is logged and surfaced as a warning, never as a request failure.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return "notification failed: " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
