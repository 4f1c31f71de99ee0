package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used for all stored credentials.
const DefaultCost = bcrypt.DefaultCost

// ErrInvalidPassword is returned when a password fails verification, so
// callers can map it to a generic credential error without leaking whether
// the hash or the input was at fault.
var ErrInvalidPassword = errors.New("invalid password")

// Hash hashes a plaintext password with bcrypt.
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(bytes), nil
}

// Verify compares a plaintext password against a bcrypt hash. A mismatch
// yields ErrInvalidPassword; any other bcrypt failure is wrapped.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}
