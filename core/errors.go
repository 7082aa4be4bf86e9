package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionNotFound is returned when an operation names a session id
	// that is not registered in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound is returned when a user id cannot be resolved.
	ErrUserNotFound = errors.New("user not found")

	// ErrGroupNotFound is returned when a group id cannot be resolved.
	ErrGroupNotFound = errors.New("group not found")
)

// CapacityError reports an attempt to grow a group past its configured
// member limit. Membership is left unchanged when it is returned.
type CapacityError struct {
	GroupID    string
	MaxMembers int
}

// Error implements the error interface.
func (e *CapacityError) Error() string {
	return fmt.Sprintf("group %s is full (max %d members)", e.GroupID, e.MaxMembers)
}
