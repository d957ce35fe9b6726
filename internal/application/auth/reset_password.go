package auth

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// ResetPasswordInput carries the identifier, the OTP from request-otp, and
// the new password.
type ResetPasswordInput struct {
	EmployeeID  string
	OTPCode     string
	NewPassword string
}

// ResetPassword verifies the pending challenge with the same checks as the
// login step-up, then overwrites the password hash. The hash update and the
// OTP clear happen in one atomic store operation; a reset never succeeds
// without a currently valid, matching, unexpired code.
type ResetPassword struct {
	repo   ports.EmployeeRepository
	hasher ports.PasswordHasher
	stepUp *StepUp
}

func NewResetPassword(repo ports.EmployeeRepository, hasher ports.PasswordHasher, stepUp *StepUp) *ResetPassword {
	return &ResetPassword{repo: repo, hasher: hasher, stepUp: stepUp}
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) error {
	e, err := uc.repo.FindByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return err
	}
	if e == nil {
		return domerrors.ErrNotFound
	}
	if err := uc.stepUp.VerifyChallenge(ctx, e, input.OTPCode); err != nil {
		return err
	}
	newHash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	return uc.repo.ResetSecret(ctx, e.EmployeeID, newHash)
}
