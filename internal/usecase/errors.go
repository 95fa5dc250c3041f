package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrServiceUpdating marks the upstream game's recalculation window
	// (HTTP 503). It is recoverable and distinct from a hard failure.
	ErrServiceUpdating = errors.New("upstream service is updating")
)
