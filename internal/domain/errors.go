package domain

import "errors"

// Sentinel errors shared by stores, services and handlers. Handlers map
// these to HTTP statuses with errors.Is.
var (
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)
