package employee

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/authz"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// UpdateInput is a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Email         *string
	FullName      *string
	PhoneNumber   *string
	Role          *domain.Role
	Department    *string
	Designation   *string
	ManagerKey    *domain.EmployeeKey
	TeamLeaderKey *domain.EmployeeKey
	Status        *domain.Status
}

// Update applies a partial update to a directory record (hr/admin/super_admin).
type Update struct {
	repo ports.EmployeeRepository
}

func NewUpdate(repo ports.EmployeeRepository) *Update {
	return &Update{repo: repo}
}

func (uc *Update) Execute(ctx context.Context, requester *domain.Employee, key domain.EmployeeKey, input UpdateInput) (*domain.Employee, error) {
	if err := authz.CanModify(requester); err != nil {
		return nil, err
	}
	e, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domerrors.ErrNotFound
	}

	if input.Email != nil {
		other, err := uc.repo.FindByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.Key != e.Key {
			return nil, domerrors.ErrEmailExists
		}
		e.Email = *input.Email
	}
	if input.FullName != nil {
		e.FullName = *input.FullName
	}
	if input.PhoneNumber != nil {
		e.PhoneNumber = *input.PhoneNumber
	}
	if input.Role != nil {
		e.Role = *input.Role
	}
	if input.Department != nil {
		e.Department = *input.Department
	}
	if input.Designation != nil {
		e.Designation = *input.Designation
	}
	if input.ManagerKey != nil {
		e.ManagerKey = input.ManagerKey
	}
	if input.TeamLeaderKey != nil {
		e.TeamLeaderKey = input.TeamLeaderKey
	}
	if input.Status != nil {
		e.Status = *input.Status
	}

	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return uc.repo.FindByKey(ctx, key)
}

// SetStatus changes only the lifecycle status (hr/admin/super_admin).
type SetStatus struct {
	repo ports.EmployeeRepository
}

func NewSetStatus(repo ports.EmployeeRepository) *SetStatus {
	return &SetStatus{repo: repo}
}

func (uc *SetStatus) Execute(ctx context.Context, requester *domain.Employee, key domain.EmployeeKey, status domain.Status) error {
	if err := authz.CanModify(requester); err != nil {
		return err
	}
	e, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	if e == nil {
		return domerrors.ErrNotFound
	}
	return uc.repo.SetStatus(ctx, key, status)
}

// Deactivate is the destructive account operation: super_admin only, and a
// soft delete — the record stays, its status flips to inactive.
type Deactivate struct {
	repo ports.EmployeeRepository
}

func NewDeactivate(repo ports.EmployeeRepository) *Deactivate {
	return &Deactivate{repo: repo}
}

func (uc *Deactivate) Execute(ctx context.Context, requester *domain.Employee, key domain.EmployeeKey) error {
	if err := authz.CanDestroy(requester); err != nil {
		return err
	}
	e, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return err
	}
	if e == nil {
		return domerrors.ErrNotFound
	}
	return uc.repo.SetStatus(ctx, key, domain.StatusInactive)
}
