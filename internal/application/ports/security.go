package ports

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// CredentialGenerator produces cryptographically random secrets.
type CredentialGenerator interface {
	// RandomPassword returns a password of the given length drawn from
	// upper/lower/digits/symbols.
	RandomPassword(length int) (string, error)
	// RandomOTP returns a uniformly distributed 6-digit decimal code,
	// leading zeros preserved.
	RandomOTP() (string, error)
}

// TokenIssuer signs and verifies session tokens (HS256). Verify returns the
// token subject (employee ID) or errors.ErrInvalidToken; no further detail
// about why verification failed is recoverable.
type TokenIssuer interface {
	Issue(employeeID string) (token string, expiresIn int64, err error)
	Verify(token string) (employeeID string, err error)
}
