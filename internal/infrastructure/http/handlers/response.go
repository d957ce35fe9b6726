package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeAccountLocked
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps a domain sentinel to its HTTP status and stable code.
// Returns false for errors that are not domain sentinels; the caller logs
// those and answers 500.
func writeDomainErr(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, domerrors.ErrInactiveAccount):
		writeErr(w, http.StatusForbidden, ErrCodeInactiveAccount, err.Error())
	case errors.Is(err, domerrors.ErrInvalidOTP):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidOTP, err.Error())
	case errors.Is(err, domerrors.ErrExpiredOTP):
		writeErr(w, http.StatusUnauthorized, ErrCodeExpiredOTP, err.Error())
	case errors.Is(err, domerrors.ErrAccountLocked):
		writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, err.Error())
	case errors.Is(err, domerrors.ErrInvalidToken):
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, err.Error())
	case errors.Is(err, domerrors.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domerrors.ErrEmailExists):
		writeErr(w, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		return false
	}
	return true
}
