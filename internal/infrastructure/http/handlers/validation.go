package handlers

import "strings"

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
)

// SanitizeEmail trims and lowercases email; returns empty if over max length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// SanitizePassword trims password; returns empty if over max length.
func SanitizePassword(password string) string {
	s := strings.TrimSpace(password)
	if len(s) > MaxPasswordLength {
		return ""
	}
	return s
}

// SanitizeEmployeeID trims surrounding whitespace and uppercases the
// identifier, matching the format the generator emits.
func SanitizeEmployeeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
