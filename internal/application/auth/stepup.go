package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// DefaultOTPExpiryMinutes is the challenge window.
const DefaultOTPExpiryMinutes = 10

// DefaultStepUpRoles are the roles that require a second factor at login.
var DefaultStepUpRoles = []domain.Role{domain.RoleAdmin, domain.RoleSuperAdmin, domain.RoleFinance}

// StepUp decides whether a login needs a second factor and owns the OTP
// lifecycle: issue (store then deliver), verify, clear.
type StepUp struct {
	repo     ports.EmployeeRepository
	gen      ports.CredentialGenerator
	notifier ports.Notifier
	log      zerolog.Logger
	ttl      time.Duration
	required map[domain.Role]bool
}

// NewStepUp builds the controller. roles nil means DefaultStepUpRoles;
// ttlMinutes <= 0 means DefaultOTPExpiryMinutes.
func NewStepUp(repo ports.EmployeeRepository, gen ports.CredentialGenerator, notifier ports.Notifier, log zerolog.Logger, ttlMinutes int64, roles []domain.Role) *StepUp {
	if ttlMinutes <= 0 {
		ttlMinutes = DefaultOTPExpiryMinutes
	}
	if len(roles) == 0 {
		roles = DefaultStepUpRoles
	}
	required := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		required[r] = true
	}
	return &StepUp{
		repo:     repo,
		gen:      gen,
		notifier: notifier,
		log:      log,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
		required: required,
	}
}

// ChallengeRequired reports whether the employee's role demands a second factor.
func (s *StepUp) ChallengeRequired(e *domain.Employee) bool {
	return s.required[e.Role]
}

// IssueChallenge generates a fresh OTP, stores it with its expiry in a single
// write (overwriting any pending code), then triggers delivery on every
// configured channel. Delivery failures are logged and never roll back the
// stored code; the operator resends, the user can still retry verification.
func (s *StepUp) IssueChallenge(ctx context.Context, e *domain.Employee) error {
	code, err := s.gen.RandomOTP()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.ttl)
	if err := s.repo.SetOTP(ctx, e.EmployeeID, code, expiresAt); err != nil {
		return err
	}
	e.OTPCode = &code
	e.OTPExpiresAt = &expiresAt

	if err := s.notifier.DeliverOTPEmail(ctx, e.Email, code, e.FullName); err != nil {
		s.log.Warn().Err(err).Str("employee_id", e.EmployeeID).Msg("OTP email delivery failed")
	}
	if e.PhoneNumber != "" {
		if err := s.notifier.DeliverOTPSMS(ctx, e.PhoneNumber, code); err != nil {
			s.log.Warn().Err(err).Str("employee_id", e.EmployeeID).Msg("OTP SMS delivery failed")
		}
	}
	return nil
}

// VerifyChallenge checks the submitted code against the pending one. No
// pending code or a mismatch yields ErrInvalidOTP; a matching but expired
// code yields ErrExpiredOTP. On success both OTP fields are cleared in a
// single write before returning, so the code cannot be replayed.
func (s *StepUp) VerifyChallenge(ctx context.Context, e *domain.Employee, submitted string) error {
	if e.OTPCode == nil || e.OTPExpiresAt == nil || submitted == "" || *e.OTPCode != submitted {
		return domerrors.ErrInvalidOTP
	}
	if e.OTPExpiresAt.Before(time.Now()) {
		return domerrors.ErrExpiredOTP
	}
	if err := s.repo.ClearOTP(ctx, e.EmployeeID); err != nil {
		return err
	}
	e.OTPCode = nil
	e.OTPExpiresAt = nil
	return nil
}
