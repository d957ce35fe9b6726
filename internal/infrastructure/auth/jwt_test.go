package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), "empdash", 30)
	token, expiresIn, err := issuer.Issue("TEC26090042")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if expiresIn != 30*60 {
		t.Fatalf("expected 1800s lifetime, got %d", expiresIn)
	}
	sub, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if sub != "TEC26090042" {
		t.Fatalf("expected subject TEC26090042, got %q", sub)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	a := NewTokenIssuer([]byte("secret-a"), "empdash", 30)
	b := NewTokenIssuer([]byte("secret-b"), "empdash", 30)
	token, _, err := a.Issue("HR26010001")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := b.Verify(token); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	secret := []byte("test-secret")
	claims := jwt.RegisteredClaims{
		Issuer:    "empdash",
		Subject:   "FIN26020007",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	issuer := NewTokenIssuer(secret, "empdash", 30)
	if _, err := issuer.Verify(token); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	// alg=none must never verify, even with a syntactically valid payload.
	claims := jwt.RegisteredClaims{
		Subject:   "ADM26010001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	issuer := NewTokenIssuer([]byte("test-secret"), "empdash", 30)
	if _, err := issuer.Verify(token); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), "empdash", 30)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(tok); !errors.Is(err, domerrors.ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}
