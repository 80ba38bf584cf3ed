package domain

import (
	"fmt"
	"unicode"
)

const minPasswordLength = 8

// ValidatePassword enforces the registration password policy: at least
// eight characters with one uppercase letter, one lowercase letter, one
// digit and one symbol. Failures wrap ErrWeakPassword so callers can map
// them to a dedicated error code.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper {
		return fmt.Errorf("%w: must contain an uppercase letter", ErrWeakPassword)
	}
	if !lower {
		return fmt.Errorf("%w: must contain a lowercase letter", ErrWeakPassword)
	}
	if !digit {
		return fmt.Errorf("%w: must contain a digit", ErrWeakPassword)
	}
	if !symbol {
		return fmt.Errorf("%w: must contain a symbol", ErrWeakPassword)
	}
	return nil
}
