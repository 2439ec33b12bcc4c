package services

import (
	"fmt"
	"strings"
)

// Password requirements
const (
	// MinPasswordLength is enforced on signup and account creation
	MinPasswordLength = 8
	// MaxPasswordBytes is the most bcrypt will hash
	MaxPasswordBytes = 72
)

// ValidatePassword checks a new password against the account policy:
//   - at least MinPasswordLength characters
//   - at most MaxPasswordBytes bytes
//   - not only whitespace
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len([]rune(password)) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, MaxPasswordBytes)
	}
	return nil
}
