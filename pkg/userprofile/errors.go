package userprofile

import "errors"

var (
	// ErrStorePanic wraps a panic recovered from a store implementation.
	ErrStorePanic = errors.New("user profile store panicked")

	// ErrNilProfile is returned when Save is called with a nil profile.
	ErrNilProfile = errors.New("nil user profile")

	// ErrEmptyUserID is returned when a profile has no user id to key on.
	ErrEmptyUserID = errors.New("empty user id")
)
