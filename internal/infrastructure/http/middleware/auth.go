package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
)

// AuthValidator validates the bearer token and loads the employee it names
// into the context (see PrincipalFromContext). The employee is reloaded on
// every request so role and status changes take effect without waiting for
// the token to expire.
type AuthValidator struct {
	issuer ports.TokenIssuer
	repo   ports.EmployeeRepository
}

func NewAuthValidator(issuer ports.TokenIssuer, repo ports.EmployeeRepository) *AuthValidator {
	return &AuthValidator{issuer: issuer, repo: repo}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			denyJSON(w, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		employeeID, err := m.issuer.Verify(tokenString)
		if err != nil {
			denyJSON(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		employee, err := m.repo.FindByEmployeeID(r.Context(), employeeID)
		if err != nil {
			denyJSON(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		if employee == nil {
			denyJSON(w, http.StatusNotFound, "not_found", "employee not found")
			return
		}
		if employee.Status != domain.StatusActive {
			denyJSON(w, http.StatusForbidden, "inactive_account", "account is not active")
			return
		}
		ctx := WithPrincipal(r.Context(), employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func denyJSON(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}
