package auth

import (
	"context"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// RequestOTPInput asks for a challenge for a known employee ID.
type RequestOTPInput struct {
	EmployeeID string
}

// RequestOTP issues an OTP challenge unconditionally, independent of role.
// The identifier is the explicit input here, so an unknown one surfaces as
// ErrNotFound rather than being merged into a generic credential error.
type RequestOTP struct {
	repo   ports.EmployeeRepository
	stepUp *StepUp
}

func NewRequestOTP(repo ports.EmployeeRepository, stepUp *StepUp) *RequestOTP {
	return &RequestOTP{repo: repo, stepUp: stepUp}
}

func (uc *RequestOTP) Execute(ctx context.Context, input RequestOTPInput) error {
	e, err := uc.repo.FindByEmployeeID(ctx, input.EmployeeID)
	if err != nil {
		return err
	}
	if e == nil {
		return domerrors.ErrNotFound
	}
	return uc.stepUp.IssueChallenge(ctx, e)
}
