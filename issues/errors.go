package issues

import "fmt"

// ValidationError reports a malformed or missing field. The operation
// is aborted with no partial state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation targeting an issue that does not
// exist. Delete and blind updates treat a miss as a no-op instead;
// this error is only returned from targeted reads and transitions.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("issue %d not found", e.ID)
}

// PermissionError reports a transition the actor's role, ownership, or
// the issue's current status does not permit. The service rejects
// these even when the caller's UI already hid the affordance.
type PermissionError struct {
	Actor  string
	Action string
	Reason string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s may not %s: %s", e.Actor, e.Action, e.Reason)
}
