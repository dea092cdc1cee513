package validate

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidPhone signals the phone number fails the shape rule after normalization.
	ErrInvalidPhone = errors.New("validate: numéro de téléphone invalide")
	// ErrInvalidEmail signals the email address fails the shape rules.
	ErrInvalidEmail = errors.New("validate: adresse e-mail invalide")
)

// 8 to 15 digits total, optional leading +, first digit 1-9.
var phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{7,14}$`)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizePhone strips whitespace, hyphens and parentheses.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '-', '(', ')':
			return -1
		}
		return r
	}, phone)
}

// CheckPhone normalizes the number and validates its shape. It returns the
// normalized form on success.
func CheckPhone(phone string) (string, error) {
	normalized := NormalizePhone(phone)
	if !phoneRe.MatchString(normalized) {
		return "", ErrInvalidPhone
	}
	return normalized, nil
}

const maxEmailLength = 254

// CheckEmail validates a local@domain.tld address: max length 254, exactly
// one @, no whitespace, no consecutive dots, and no leading or trailing dot
// in either the local part or the domain.
func CheckEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}
	if strings.Count(email, "@") != 1 {
		return ErrInvalidEmail
	}
	if strings.Contains(email, "..") {
		return ErrInvalidEmail
	}
	if !emailRe.MatchString(email) {
		return ErrInvalidEmail
	}

	at := strings.IndexByte(email, '@')
	local, domain := email[:at], email[at+1:]
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") {
		return ErrInvalidEmail
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return ErrInvalidEmail
	}

	return nil
}
