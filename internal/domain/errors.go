package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAmountTooSmall     = errors.New("amount below minimum")
	ErrValidation         = errors.New("invalid input")
	ErrUnavailable        = errors.New("service unavailable")
)
