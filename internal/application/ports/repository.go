package ports

import (
	"context"
	"time"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
)

// ListFilter narrows directory listings. Zero values mean "no filter".
type ListFilter struct {
	Department string
	Role       domain.Role
	Status     domain.Status
	Limit      int
	Offset     int
}

// EmployeeRepository defines persistence for employees.
//
// SetOTP, ClearOTP and ResetSecret are single-statement updates: the OTP code
// and its expiry are written or cleared together, never one without the other,
// and ResetSecret replaces the password hash and clears the OTP pair in the
// same statement. Concurrent callers are serialized by the row update itself.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	FindByKey(ctx context.Context, key domain.EmployeeKey) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	SetStatus(ctx context.Context, key domain.EmployeeKey, status domain.Status) error

	SetOTP(ctx context.Context, employeeID, code string, expiresAt time.Time) error
	ClearOTP(ctx context.Context, employeeID string) error
	ResetSecret(ctx context.Context, employeeID, passwordHash string) error

	// Subordinates returns employees whose manager or team leader edge points
	// at key (explicit reverse-index query, no object-graph traversal).
	Subordinates(ctx context.Context, key domain.EmployeeKey) ([]*domain.Employee, error)
	Departments(ctx context.Context) ([]string, error)
}
