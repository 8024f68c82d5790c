package services

import "errors"

// Errors returned by the services. Handlers map them to HTTP status codes.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("invalid email or password")
	ErrForbidden    = errors.New("permission denied")
	ErrNotFound     = errors.New("not found")
)
