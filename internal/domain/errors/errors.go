package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrNotFound           = errors.New("employee not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid employee ID or password")
	ErrInactiveAccount    = errors.New("employee account is not active")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrExpiredOTP         = errors.New("OTP has expired")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrAccountLocked      = errors.New("account temporarily locked")
)
