package domain

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeKey is a value object for the internal employee identity.
type EmployeeKey struct{ uuid.UUID }

// NewEmployeeKey creates a new EmployeeKey from uuid.
func NewEmployeeKey(id uuid.UUID) EmployeeKey { return EmployeeKey{UUID: id} }

// String returns the canonical string form.
func (k EmployeeKey) String() string { return k.UUID.String() }

// Role is the closed set of employee roles, ordered by privilege.
type Role string

const (
	RoleIntern     Role = "intern"
	RoleHR         Role = "hr"
	RoleTech       Role = "tech"
	RoleFinance    Role = "finance"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleIntern, RoleHR, RoleTech, RoleFinance, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Status is the employee lifecycle status.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

// Employee is the authenticating principal and directory record.
// EmployeeID is the stable external identifier used for login and as the
// token subject; Key is the internal primary key used for hierarchy edges.
type Employee struct {
	Key           EmployeeKey
	EmployeeID    string
	Email         string
	FullName      string
	PasswordHash  string
	PhoneNumber   string
	Role          Role
	Department    string
	Designation   string
	Status        Status
	ManagerKey    *EmployeeKey
	TeamLeaderKey *EmployeeKey
	HireDate      time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Pending OTP challenge. Both fields are nil, or both are set; the
	// store writes and clears them as a single unit.
	OTPCode      *string
	OTPExpiresAt *time.Time
}

// Active reports whether the account may authenticate and act.
func (e *Employee) Active() bool { return e.Status == StatusActive }
