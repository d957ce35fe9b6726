package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/lockout"
)

func TestLoginWithoutStepUp(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_ = env.repo.Create(ctx, newTestEmployee("TEC26010001", domain.RoleTech, ""))

	res, err := env.login.Execute(ctx, LoginInput{EmployeeID: "TEC26010001", Password: "correct-password"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.ChallengeIssued {
		t.Fatal("tech role must not require a challenge")
	}
	if res.AccessToken != "token-for-TEC26010001" {
		t.Fatalf("unexpected token %q", res.AccessToken)
	}
	if _, _, ok := env.pendingOTP("TEC26010001"); ok {
		t.Fatal("no OTP should ever be generated for a non-step-up login")
	}
}

func TestLoginUnknownAndWrongPasswordAreIndistinguishable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_ = env.repo.Create(ctx, newTestEmployee("TEC26010001", domain.RoleTech, ""))

	_, errUnknown := env.login.Execute(ctx, LoginInput{EmployeeID: "NOPE000000", Password: "whatever"})
	_, errWrongPw := env.login.Execute(ctx, LoginInput{EmployeeID: "TEC26010001", Password: "wrong"})
	if !errors.Is(errUnknown, domerrors.ErrInvalidCredentials) {
		t.Fatalf("unknown id: got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, domerrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", errWrongPw)
	}
}

func TestLoginInactiveAfterProvenPassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	e := newTestEmployee("TEC26010001", domain.RoleTech, "")
	e.Status = domain.StatusSuspended
	_ = env.repo.Create(ctx, e)

	// Correct password: the status surfaces distinctly.
	_, err := env.login.Execute(ctx, LoginInput{EmployeeID: "TEC26010001", Password: "correct-password"})
	if !errors.Is(err, domerrors.ErrInactiveAccount) {
		t.Fatalf("got %v, want ErrInactiveAccount", err)
	}
	// Wrong password: still the generic error, status not leaked.
	_, err = env.login.Execute(ctx, LoginInput{EmployeeID: "TEC26010001", Password: "wrong"})
	if !errors.Is(err, domerrors.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestStepUpLoginFullFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_ = env.repo.Create(ctx, newTestEmployee("FIN26020007", domain.RoleFinance, "+15550100"))

	// First round trip: challenge issued, no token.
	res, err := env.login.Execute(ctx, LoginInput{EmployeeID: "FIN26020007", Password: "correct-password"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.ChallengeIssued || res.AccessToken != "" {
		t.Fatalf("expected pending challenge without token, got %+v", res)
	}
	code, _, ok := env.pendingOTP("FIN26020007")
	if !ok {
		t.Fatal("challenge not stored")
	}
	if len(env.notifier.emails) != 1 || env.notifier.emails[0] != code {
		t.Fatalf("stored code %q not delivered by email: %v", code, env.notifier.emails)
	}
	if len(env.notifier.sms) != 1 || env.notifier.sms[0] != code {
		t.Fatalf("phone on file, expected SMS delivery of %q: %v", code, env.notifier.sms)
	}

	// Second round trip with the code: token issued, OTP cleared.
	res, err = env.login.Execute(ctx, LoginInput{EmployeeID: "FIN26020007", Password: "correct-password", OTPCode: code})
	if err != nil {
		t.Fatalf("Execute with code error: %v", err)
	}
	if res.AccessToken != "token-for-FIN26020007" {
		t.Fatalf("unexpected token %q", res.AccessToken)
	}
	if _, _, ok := env.pendingOTP("FIN26020007"); ok {
		t.Fatal("OTP fields must be cleared after successful verification")
	}

	// Replay of the consumed code.
	_, err = env.login.Execute(ctx, LoginInput{EmployeeID: "FIN26020007", Password: "correct-password", OTPCode: code})
	if !errors.Is(err, domerrors.ErrInvalidOTP) {
		t.Fatalf("replayed code: got %v, want ErrInvalidOTP", err)
	}
}

func TestStepUpLoginWrongAndExpiredCode(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_ = env.repo.Create(ctx, newTestEmployee("ADM26010001", domain.RoleAdmin, ""))

	res, err := env.login.Execute(ctx, LoginInput{EmployeeID: "ADM26010001", Password: "correct-password"})
	if err != nil || !res.ChallengeIssued {
		t.Fatalf("expected challenge, got %+v err %v", res, err)
	}
	code, _, _ := env.pendingOTP("ADM26010001")

	_, err = env.login.Execute(ctx, LoginInput{EmployeeID: "ADM26010001", Password: "correct-password", OTPCode: "000000"})
	if !errors.Is(err, domerrors.ErrInvalidOTP) {
		t.Fatalf("wrong code: got %v, want ErrInvalidOTP", err)
	}

	// Age the stored code past its window (11 minutes).
	_ = env.repo.SetOTP(ctx, "ADM26010001", code, time.Now().Add(-time.Minute))
	_, err = env.login.Execute(ctx, LoginInput{EmployeeID: "ADM26010001", Password: "correct-password", OTPCode: code})
	if !errors.Is(err, domerrors.ErrExpiredOTP) {
		t.Fatalf("expired code: got %v, want ErrExpiredOTP", err)
	}
}

func TestStepUpReissueOverwritesPendingCode(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_ = env.repo.Create(ctx, newTestEmployee("FIN26020007", domain.RoleFinance, ""))

	if _, err := env.login.Execute(ctx, LoginInput{EmployeeID: "FIN26020007", Password: "correct-password"}); err != nil {
		t.Fatalf("first challenge: %v", err)
	}
	first, _, _ := env.pendingOTP("FIN26020007")
	if _, err := env.login.Execute(ctx, LoginInput{EmployeeID: "FIN26020007", Password: "correct-password"}); err != nil {
		t.Fatalf("second challenge: %v", err)
	}
	second, _, _ := env.pendingOTP("FIN26020007")
	if first == second {
		t.Fatal("reissue must overwrite with a fresh code")
	}

	// The superseded code no longer verifies.
	_, err := env.login.Execute(ctx, LoginInput{EmployeeID: "FIN26020007", Password: "correct-password", OTPCode: first})
	if !errors.Is(err, domerrors.ErrInvalidOTP) {
		t.Fatalf("stale code: got %v, want ErrInvalidOTP", err)
	}
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_ = env.repo.Create(ctx, newTestEmployee("TEC26010001", domain.RoleTech, ""))
	login := NewLogin(env.repo, fakeHasher{}, fakeIssuer{}, env.stepUp, lockout.NewMemoryStore(3, 900))

	for i := 0; i < 3; i++ {
		if _, err := login.Execute(ctx, LoginInput{EmployeeID: "TEC26010001", Password: "wrong"}); !errors.Is(err, domerrors.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v", i, err)
		}
	}
	// Locked now, even with the correct password.
	if _, err := login.Execute(ctx, LoginInput{EmployeeID: "TEC26010001", Password: "correct-password"}); !errors.Is(err, domerrors.ErrAccountLocked) {
		t.Fatalf("got %v, want ErrAccountLocked", err)
	}
}
