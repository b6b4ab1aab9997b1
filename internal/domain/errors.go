package domain

import "errors"

// Error classes. Every error a service returns to a handler either wraps one
// of these or is treated as an internal failure.
var (
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)
