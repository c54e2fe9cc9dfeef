package auth

import (
	"golang.org/x/crypto/bcrypt"

	"tfl_backend/pkg/apperrors"
)

// MinPasswordLength applies to registration, password change and reset
const MinPasswordLength = 8

// HashCost is the bcrypt work factor for stored passwords
const HashCost = 10

// HashPassword creates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	return string(bytes), err
}

// CheckPasswordHash compares a password against a stored hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword checks password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.ErrWeakPassword
	}
	return nil
}
