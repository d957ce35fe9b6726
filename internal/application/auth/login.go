package auth

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// LoginInput carries the credentials and, on the second round trip of a
// step-up login, the OTP code.
type LoginInput struct {
	EmployeeID string
	Password   string
	OTPCode    string
}

// LoginResult is either a completed login (token set) or a pending step-up
// challenge (ChallengeIssued set, no token).
type LoginResult struct {
	AccessToken     string
	ExpiresIn       int64
	Employee        *domain.Employee
	ChallengeIssued bool
}

// Login runs the credential + optional OTP state machine and issues the
// session token.
type Login struct {
	repo    ports.EmployeeRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	stepUp  *StepUp
	lockout ports.LoginLockoutStore
}

// NewLogin builds the use case. lockout may be nil to disable lockout.
func NewLogin(repo ports.EmployeeRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, stepUp *StepUp, lockout ports.LoginLockoutStore) *Login {
	return &Login{
		repo:    repo,
		hasher:  hasher,
		issuer:  issuer,
		stepUp:  stepUp,
		lockout: lockout,
	}
}

// Execute performs one round trip of the login flow.
//
// An unknown identifier and a wrong password both collapse to
// ErrInvalidCredentials; the status check runs only after the password has
// been proven, so ErrInactiveAccount surfaces distinctly. Every round trip
// re-verifies credentials, including the one that carries the OTP code.
func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if uc.lockout != nil {
		if locked, _ := uc.lockout.IsLocked(ctx, input.EmployeeID); locked {
			return nil, domerrors.ErrAccountLocked
		}
	}

	e, err := uc.repo.FindByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return nil, err
	}
	if e == nil || !uc.hasher.Verify(input.Password, e.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, input.EmployeeID)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if !e.Active() {
		return nil, domerrors.ErrInactiveAccount
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, input.EmployeeID)
	}

	if uc.stepUp.ChallengeRequired(e) {
		if input.OTPCode == "" {
			if err := uc.stepUp.IssueChallenge(ctx, e); err != nil {
				return nil, err
			}
			return &LoginResult{ChallengeIssued: true, Employee: e}, nil
		}
		if err := uc.stepUp.VerifyChallenge(ctx, e, input.OTPCode); err != nil {
			return nil, err
		}
	}

	token, expiresIn, err := uc.issuer.Issue(e.EmployeeID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		Employee:    e,
	}, nil
}
