package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

const otpLength = 6

// Generator implements ports.CredentialGenerator on crypto/rand.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// RandomPassword returns a password of the given length drawn uniformly from
// the full alphabet (upper, lower, digits, symbols).
func (g *Generator) RandomPassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	var b strings.Builder
	b.Grow(length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// RandomOTP returns a 6-digit decimal code. Each digit is drawn independently,
// so leading zeros are as likely as any other digit.
func (g *Generator) RandomOTP() (string, error) {
	var b strings.Builder
	b.Grow(otpLength)
	ten := big.NewInt(10)
	for i := 0; i < otpLength; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
