package entity

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidEmailFormat is returned when an address does not look like local@domain.tld.
var ErrInvalidEmailFormat = errors.New("invalid email format")

var emailPattern = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// Email is a normalized (trimmed, lower-cased) address.
// The zero value is not a valid Email; build one with NewEmail.
type Email struct {
	value string
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func NewEmail(raw string) (Email, error) {
	v := NormalizeEmail(raw)
	if !emailPattern.MatchString(v) {
		return Email{}, ErrInvalidEmailFormat
	}
	return Email{value: v}, nil
}

// MustEmail is NewEmail for trusted input such as rows read back from storage.
func MustEmail(raw string) Email {
	e, err := NewEmail(raw)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }
