// Package secrets hashes and verifies wallet keys.
package secrets

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	dErrors "prover/pkg/domain-errors"
)

// Hash creates a bcrypt hash of a wallet key for storage next to the wallet record.
func Hash(key string) (string, error) {
	if key == "" {
		return "", dErrors.New(dErrors.CodeValidation, "key cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "key is too long")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not hash key")
	}
	return string(hashed), nil
}

// Verify checks a plaintext key against its bcrypt hash.
func Verify(key, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid wallet key")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not verify key")
	}
	return nil
}
