// Package memory provides an in-memory EmployeeRepository for tests and
// local development without Postgres. Single-process only.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
)

// EmployeeRepository stores employees in a map guarded by a mutex. The OTP
// and secret operations mutate code+expiry (and hash) under one lock
// acquisition, matching the atomicity contract of the Postgres repository.
type EmployeeRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Employee // keyed by external employee ID
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{byID: make(map[string]*domain.Employee)}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.byID[e.EmployeeID] = &cp
	return nil
}

func (r *EmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[employeeID]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *EmployeeRepository) FindByKey(ctx context.Context, key domain.EmployeeKey) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.byID {
		if e.Key == key {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.byID {
		if e.Email == email {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Employee
	for _, e := range r.byID {
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Role != "" && e.Role != filter.Role {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.byID[e.EmployeeID]
	if !ok {
		return nil
	}
	cp := *e
	// OTP fields are owned by SetOTP/ClearOTP/ResetSecret, not Update.
	cp.OTPCode = cur.OTPCode
	cp.OTPExpiresAt = cur.OTPExpiresAt
	cp.PasswordHash = cur.PasswordHash
	cp.UpdatedAt = time.Now()
	r.byID[e.EmployeeID] = &cp
	return nil
}

func (r *EmployeeRepository) SetStatus(ctx context.Context, key domain.EmployeeKey, status domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.Key == key {
			e.Status = status
			e.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (r *EmployeeRepository) SetOTP(ctx context.Context, employeeID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[employeeID]; ok {
		c := code
		t := expiresAt
		e.OTPCode = &c
		e.OTPExpiresAt = &t
	}
	return nil
}

func (r *EmployeeRepository) ClearOTP(ctx context.Context, employeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[employeeID]; ok {
		e.OTPCode = nil
		e.OTPExpiresAt = nil
	}
	return nil
}

func (r *EmployeeRepository) ResetSecret(ctx context.Context, employeeID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.byID[employeeID]; ok {
		e.PasswordHash = passwordHash
		e.OTPCode = nil
		e.OTPExpiresAt = nil
		e.UpdatedAt = time.Now()
	}
	return nil
}

func (r *EmployeeRepository) Subordinates(ctx context.Context, key domain.EmployeeKey) ([]*domain.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Employee
	for _, e := range r.byID {
		if (e.ManagerKey != nil && *e.ManagerKey == key) || (e.TeamLeaderKey != nil && *e.TeamLeaderKey == key) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeID < out[j].EmployeeID })
	return out, nil
}

func (r *EmployeeRepository) Departments(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.byID {
		if !seen[e.Department] {
			seen[e.Department] = true
			out = append(out, e.Department)
		}
	}
	sort.Strings(out)
	return out, nil
}

var _ ports.EmployeeRepository = (*EmployeeRepository)(nil)
