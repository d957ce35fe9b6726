package handlers

// API error codes returned in JSON { "error": "...", "code": "..." } for stable client handling.
const (
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeInactiveAccount    = "inactive_account"
	ErrCodeInvalidOTP         = "invalid_otp"
	ErrCodeExpiredOTP         = "expired_otp"
	ErrCodeAccountLocked      = "account_locked"
	ErrCodeInvalidToken       = "invalid_token"
	ErrCodeUnauthorized       = "unauthorized"
	ErrCodeForbidden          = "forbidden"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeInvalidRequest     = "invalid_request"
	ErrCodeInternal           = "internal_error"
)
