package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNoActiveSession       = errors.New("no active session")
	ErrMatchInProgress       = errors.New("match already in progress")
	ErrStaleSession          = errors.New("session changed while request was in flight")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
