package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/auth"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	login         *auth.Login
	requestOTP    *auth.RequestOTP
	resetPassword *auth.ResetPassword
	validate      *validator.Validate
	log           zerolog.Logger
}

func NewAuthHandler(login *auth.Login, requestOTP *auth.RequestOTP, resetPassword *auth.ResetPassword, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		login:         login,
		requestOTP:    requestOTP,
		resetPassword: resetPassword,
		validate:      validator.New(),
		log:           log,
	}
}

// Login handles both round trips of the login flow. Without an otp_code it
// either completes (200) or answers 202 with a challenge pending; with one it
// re-verifies credentials and the code and completes.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID string `json:"employee_id" validate:"required,max=32"`
		Password   string `json:"password" validate:"required,max=128"`
		OTPCode    string `json:"otp_code" validate:"omitempty,len=6,numeric"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	employeeID := SanitizeEmployeeID(body.EmployeeID)
	password := SanitizePassword(body.Password)
	if employeeID == "" || password == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid employee ID or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		EmployeeID: employeeID,
		Password:   password,
		OTPCode:    body.OTPCode,
	})
	if err != nil {
		AuditLog(h.log, r, "auth.login", employeeID, false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	if result.ChallengeIssued {
		AuditLog(h.log, r, "auth.login.challenge", employeeID, true, "")
		middleware.RecordAuthAttempt("login_challenge", true)
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"otp_required": true,
			"message":      "verification code sent to registered contact",
		})
		return
	}
	AuditLog(h.log, r, "auth.login", employeeID, true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": result.AccessToken,
		"token_type":   "bearer",
		"expires_in":   result.ExpiresIn,
		"employee":     toEmployeeResponse(result.Employee),
	})
}

// RequestOTP issues a fresh challenge for a known employee, for any role.
// An unknown identifier is a 404 here; the identifier is the explicit
// subject of the request, not a credential being probed.
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID string `json:"employee_id" validate:"required,max=32"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	employeeID := SanitizeEmployeeID(body.EmployeeID)
	err := h.requestOTP.Execute(r.Context(), auth.RequestOTPInput{EmployeeID: employeeID})
	if err != nil {
		AuditLog(h.log, r, "auth.request_otp", employeeID, false, err.Error())
		middleware.RecordAuthAttempt("request_otp", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("request otp failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "auth.request_otp", employeeID, true, "")
	middleware.RecordAuthAttempt("request_otp", true)
	writeJSON(w, http.StatusOK, map[string]string{"message": "verification code sent to registered contact"})
}

// ResetPassword rotates the password after verifying the pending OTP.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EmployeeID  string `json:"employee_id" validate:"required,max=32"`
		OTPCode     string `json:"otp_code" validate:"required,len=6,numeric"`
		NewPassword string `json:"new_password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}
	employeeID := SanitizeEmployeeID(body.EmployeeID)
	password := SanitizePassword(body.NewPassword)
	if password == "" {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid password length")
		return
	}
	err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		EmployeeID:  employeeID,
		OTPCode:     body.OTPCode,
		NewPassword: password,
	})
	if err != nil {
		AuditLog(h.log, r, "auth.reset_password", employeeID, false, err.Error())
		middleware.RecordAuthAttempt("reset_password", false)
		if writeDomainErr(w, err) {
			return
		}
		h.log.Error().Err(err).Msg("reset password failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "auth.reset_password", employeeID, true, "")
	middleware.RecordAuthAttempt("reset_password", true)
	writeJSON(w, http.StatusOK, map[string]string{"message": "password has been reset"})
}
