// Package authz centralizes role-based access decisions as named policy
// predicates built from a single role table, so individual endpoints never
// carry their own inline role lists.
package authz

import (
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// privilege assigns each role its place in the fixed hierarchy. Higher means
// more privileged; the numbers are internal ordering only and never exposed.
var privilege = map[domain.Role]int{
	domain.RoleIntern:     0,
	domain.RoleTech:       1,
	domain.RoleFinance:    2,
	domain.RoleHR:         3,
	domain.RoleAdmin:      4,
	domain.RoleSuperAdmin: 5,
}

// IsPrivileged reports whether the role may operate on the employee
// directory beyond its own department: hr, admin, super_admin.
func IsPrivileged(role domain.Role) bool {
	return role == domain.RoleHR || IsAdmin(role)
}

// IsAdmin reports admin or super_admin.
func IsAdmin(role domain.Role) bool {
	return role == domain.RoleAdmin || role == domain.RoleSuperAdmin
}

// IsSuperAdmin reports super_admin exactly.
func IsSuperAdmin(role domain.Role) bool {
	return role == domain.RoleSuperAdmin
}

// CanView allows privileged roles, the employee themselves, and colleagues
// in the same department.
func CanView(requester, target *domain.Employee) error {
	if requester == nil {
		return domerrors.ErrUnauthenticated
	}
	if IsPrivileged(requester.Role) {
		return nil
	}
	if requester.Key == target.Key {
		return nil
	}
	if requester.Department == target.Department {
		return nil
	}
	return domerrors.ErrForbidden
}

// CanModify allows hr, admin and super_admin to change directory records.
func CanModify(requester *domain.Employee) error {
	if requester == nil {
		return domerrors.ErrUnauthenticated
	}
	if !IsPrivileged(requester.Role) {
		return domerrors.ErrForbidden
	}
	return nil
}

// CanDestroy allows only super_admin to perform destructive account operations.
func CanDestroy(requester *domain.Employee) error {
	if requester == nil {
		return domerrors.ErrUnauthenticated
	}
	if !IsSuperAdmin(requester.Role) {
		return domerrors.ErrForbidden
	}
	return nil
}

// Outranks reports whether a holds strictly more privilege than b. Unknown
// roles rank lowest.
func Outranks(a, b domain.Role) bool {
	return privilege[a] > privilege[b]
}
