package middleware

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
)

type contextKey string

const principalContextKey contextKey = "principal"

// WithPrincipal injects the authenticated employee into the context.
func WithPrincipal(ctx context.Context, e *domain.Employee) context.Context {
	return context.WithValue(ctx, principalContextKey, e)
}

// PrincipalFromContext returns the authenticated employee, or nil.
func PrincipalFromContext(ctx context.Context) *domain.Employee {
	v := ctx.Value(principalContextKey)
	if v == nil {
		return nil
	}
	e, _ := v.(*domain.Employee)
	return e
}
