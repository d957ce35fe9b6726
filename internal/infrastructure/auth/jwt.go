package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domerrors "github.com/AbhishekReddys07/EmployeeDashboard/internal/domain/errors"
)

// TokenIssuer implements ports.TokenIssuer with HS256 and a process-wide
// signing secret. Tokens are self-contained bearer credentials: subject is
// the employee ID, expiry is absolute, and there is no revocation list.
type TokenIssuer struct {
	secret []byte
	issuer string
	expiry time.Duration
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

// NewTokenIssuer creates an issuer. expiryMinutes is the default session TTL.
func NewTokenIssuer(secret []byte, issuer string, expiryMinutes int64) *TokenIssuer {
	if expiryMinutes <= 0 {
		expiryMinutes = 30
	}
	return &TokenIssuer{
		secret: secret,
		issuer: issuer,
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

// Issue signs a token for the given employee ID and returns it along with
// its lifetime in seconds.
func (t *TokenIssuer) Issue(employeeID string) (string, int64, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(t.expiry.Seconds()), nil
}

// Verify parses and validates the token and returns its subject. Any failure
// (bad signature, wrong algorithm, malformed payload, past expiry) collapses
// to ErrInvalidToken so callers cannot distinguish why it failed.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domerrors.ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return "", domerrors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", domerrors.ErrInvalidToken
	}
	return claims.Subject, nil
}
