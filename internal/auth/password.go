// Package auth handles credentials: bcrypt password hashes and the signed
// session tokens handed out on login.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/tbourn/go-qa-backend/internal/apperr"
)

// HashPassword returns the bcrypt hash of password at the default cost.
// Passwords over 72 bytes, which bcrypt cannot hash, are a Parse error.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperr.ParseError("password", err)
	}
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. A mismatch is
// (false, nil); a hash that cannot be decoded is CredentialDecode.
func VerifyPassword(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, apperr.CredentialDecode(err)
	}
}
