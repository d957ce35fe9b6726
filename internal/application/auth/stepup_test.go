package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
)

func TestChallengeRequiredRoleSet(t *testing.T) {
	env := newTestEnv()
	required := map[domain.Role]bool{
		domain.RoleAdmin:      true,
		domain.RoleSuperAdmin: true,
		domain.RoleFinance:    true,
		domain.RoleIntern:     false,
		domain.RoleHR:         false,
		domain.RoleTech:       false,
	}
	for role, want := range required {
		if got := env.stepUp.ChallengeRequired(newTestEmployee("X", role, "")); got != want {
			t.Errorf("ChallengeRequired(%s) = %v, want %v", role, got, want)
		}
	}
}

func TestIssueChallengeStoresBeforeDelivery(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	e := newTestEmployee("ADM26010001", domain.RoleAdmin, "+15550100")
	_ = env.repo.Create(ctx, e)

	before := time.Now()
	if err := env.stepUp.IssueChallenge(ctx, e); err != nil {
		t.Fatalf("IssueChallenge error: %v", err)
	}
	code, expiresAt, ok := env.pendingOTP("ADM26010001")
	if !ok {
		t.Fatal("challenge not stored")
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	window := expiresAt.Sub(before)
	if window < 9*time.Minute || window > 11*time.Minute {
		t.Fatalf("expiry window %v, want ~10m", window)
	}
}

func TestIssueChallengeDeliveryFailureDoesNotRollBack(t *testing.T) {
	env := newTestEnv()
	env.notifier.failEmail = true
	env.notifier.failSMS = true
	ctx := context.Background()
	e := newTestEmployee("FIN26020007", domain.RoleFinance, "+15550100")
	_ = env.repo.Create(ctx, e)

	if err := env.stepUp.IssueChallenge(ctx, e); err != nil {
		t.Fatalf("delivery failure must not fail the challenge: %v", err)
	}
	code, _, ok := env.pendingOTP("FIN26020007")
	if !ok {
		t.Fatal("code must stay stored despite failed delivery")
	}
	// The user can still verify the stored code.
	fresh, _ := env.repo.FindByEmployeeID(ctx, "FIN26020007")
	if err := env.stepUp.VerifyChallenge(ctx, fresh, code); err != nil {
		t.Fatalf("VerifyChallenge after failed delivery: %v", err)
	}
}

func TestIssueChallengeSkipsSMSWithoutPhone(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	e := newTestEmployee("ADM26010001", domain.RoleAdmin, "")
	_ = env.repo.Create(ctx, e)

	if err := env.stepUp.IssueChallenge(ctx, e); err != nil {
		t.Fatalf("IssueChallenge error: %v", err)
	}
	if len(env.notifier.emails) != 1 {
		t.Fatalf("expected one email delivery, got %d", len(env.notifier.emails))
	}
	if len(env.notifier.sms) != 0 {
		t.Fatalf("no phone on file, expected no SMS, got %d", len(env.notifier.sms))
	}
}

func TestStepUpConfigOverrides(t *testing.T) {
	env := newTestEnv()
	s := NewStepUp(env.repo, &seqGenerator{}, env.notifier, zerolog.Nop(), 5, []domain.Role{domain.RoleHR})
	if !s.ChallengeRequired(newTestEmployee("X", domain.RoleHR, "")) {
		t.Error("configured role set not honored")
	}
	if s.ChallengeRequired(newTestEmployee("X", domain.RoleAdmin, "")) {
		t.Error("admin should not require step-up under the overridden set")
	}
}
