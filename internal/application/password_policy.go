package application

import "unicode"

const minPasswordLength = 8

// ValidatePasswordStrength requires at least 8 characters with one letter and one digit.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return &PasswordPolicyError{Reason: ReasonTooShort}
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return &PasswordPolicyError{Reason: ReasonLettersAndNumbers}
	}
	return nil
}
