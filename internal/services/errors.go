package services

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")

	// ErrPublishFailed means the database write committed but the broker
	// never acknowledged the event: the stored state and the announced
	// state have diverged. Callers must be able to tell this apart from an
	// ordinary internal failure.
	ErrPublishFailed = errors.New("member saved but event publish failed")
)

// ConflictError reports which unique field would collide with an active
// member.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " is already in use"
}
