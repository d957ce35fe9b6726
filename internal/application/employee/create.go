package employee

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/authz"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

const generatedPasswordLength = 12

// CreateInput describes a new directory record. Password is optional; a
// random one is generated when absent. Either way the credentials are mailed
// to the new employee, never returned to the caller.
type CreateInput struct {
	Email         string
	FullName      string
	PhoneNumber   string
	Role          domain.Role
	Department    string
	Designation   string
	ManagerKey    *domain.EmployeeKey
	TeamLeaderKey *domain.EmployeeKey
	Password      string
}

// Create onboards an employee: generates the employee ID and initial
// password, hashes the secret, persists the record, and mails the
// credentials fire-and-forget.
type Create struct {
	repo     ports.EmployeeRepository
	hasher   ports.PasswordHasher
	gen      ports.CredentialGenerator
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewCreate(repo ports.EmployeeRepository, hasher ports.PasswordHasher, gen ports.CredentialGenerator, notifier ports.Notifier, log zerolog.Logger) *Create {
	return &Create{repo: repo, hasher: hasher, gen: gen, notifier: notifier, log: log}
}

func (uc *Create) Execute(ctx context.Context, requester *domain.Employee, input CreateInput) (*domain.Employee, error) {
	if err := authz.CanModify(requester); err != nil {
		return nil, err
	}
	existing, err := uc.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrEmailExists
	}

	employeeID, err := uc.uniqueEmployeeID(ctx, input.Department)
	if err != nil {
		return nil, err
	}
	password := input.Password
	if password == "" {
		password, err = uc.gen.RandomPassword(generatedPasswordLength)
		if err != nil {
			return nil, err
		}
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	e := &domain.Employee{
		Key:           domain.NewEmployeeKey(uuid.New()),
		EmployeeID:    employeeID,
		Email:         input.Email,
		FullName:      input.FullName,
		PasswordHash:  hash,
		PhoneNumber:   input.PhoneNumber,
		Role:          input.Role,
		Department:    input.Department,
		Designation:   input.Designation,
		Status:        domain.StatusActive,
		ManagerKey:    input.ManagerKey,
		TeamLeaderKey: input.TeamLeaderKey,
		HireDate:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	if err := uc.notifier.DeliverCredentials(ctx, e.Email, e.EmployeeID, password, e.FullName); err != nil {
		uc.log.Warn().Err(err).Str("employee_id", e.EmployeeID).Msg("welcome credentials delivery failed")
	}
	return e, nil
}

func (uc *Create) uniqueEmployeeID(ctx context.Context, department string) (string, error) {
	for {
		id, err := GenerateEmployeeID(department)
		if err != nil {
			return "", err
		}
		existing, err := uc.repo.FindByEmployeeID(ctx, id)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return id, nil
		}
	}
}
