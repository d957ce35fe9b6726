package employee

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/authz"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// Directory bundles the read-side operations over the employee record store.
type Directory struct {
	repo ports.EmployeeRepository
}

func NewDirectory(repo ports.EmployeeRepository) *Directory {
	return &Directory{repo: repo}
}

// List returns directory records matching the filter. Non-privileged
// requesters are scoped to their own department regardless of the filter.
func (d *Directory) List(ctx context.Context, requester *domain.Employee, filter ports.ListFilter) ([]*domain.Employee, error) {
	if requester == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	if !authz.IsPrivileged(requester.Role) {
		filter.Department = requester.Department
	}
	return d.repo.List(ctx, filter)
}

// Get returns a single record, subject to CanView.
func (d *Directory) Get(ctx context.Context, requester *domain.Employee, key domain.EmployeeKey) (*domain.Employee, error) {
	e, err := d.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domerrors.ErrNotFound
	}
	if err := authz.CanView(requester, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Departments lists the distinct departments on file.
func (d *Directory) Departments(ctx context.Context, requester *domain.Employee) ([]string, error) {
	if requester == nil {
		return nil, domerrors.ErrUnauthenticated
	}
	return d.repo.Departments(ctx)
}

// HierarchyResult is the explicit neighborhood of one employee in the
// reporting graph: the two outgoing edges (manager, team leader) and the
// reverse-index subordinates query.
type HierarchyResult struct {
	Employee     *domain.Employee
	Manager      *domain.Employee
	TeamLeader   *domain.Employee
	Subordinates []*domain.Employee
}

// Hierarchy resolves the reporting neighborhood of the given employee,
// subject to CanView on the employee themselves.
func (d *Directory) Hierarchy(ctx context.Context, requester *domain.Employee, key domain.EmployeeKey) (*HierarchyResult, error) {
	e, err := d.Get(ctx, requester, key)
	if err != nil {
		return nil, err
	}
	res := &HierarchyResult{Employee: e}
	if e.ManagerKey != nil {
		if res.Manager, err = d.repo.FindByKey(ctx, *e.ManagerKey); err != nil {
			return nil, err
		}
	}
	if e.TeamLeaderKey != nil {
		if res.TeamLeader, err = d.repo.FindByKey(ctx, *e.TeamLeaderKey); err != nil {
			return nil, err
		}
	}
	if res.Subordinates, err = d.repo.Subordinates(ctx, key); err != nil {
		return nil, err
	}
	return res, nil
}
