package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RegistrationInput is the raw payload checked before creating an account.
type RegistrationInput struct {
	Nom       string
	Prenom    string
	Email     string
	Telephone string
	Password  string
}

// RegistrationError reports the first failing field category. The Errors list
// holds every failed rule within that category (the password check aggregates
// all of its own rules); Assessment is set only when the password failed.
type RegistrationError struct {
	Field      string
	Errors     []string
	Assessment *PasswordAssessment
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("validate: %s: %s", e.Field, strings.Join(e.Errors, "; "))
}

const (
	minNameLength = 2
	maxNameLength = 50
)

// CheckRegistration validates a registration payload one field category at a
// time and stops at the first failing category. On success it returns the
// input with names trimmed and the phone number normalized.
func CheckRegistration(in RegistrationInput) (RegistrationInput, *RegistrationError) {
	in.Nom = strings.TrimSpace(in.Nom)
	in.Prenom = strings.TrimSpace(in.Prenom)
	in.Email = strings.TrimSpace(in.Email)

	if err := checkName("nom", in.Nom); err != nil {
		return in, err
	}
	if err := checkName("prenom", in.Prenom); err != nil {
		return in, err
	}
	if err := CheckEmail(in.Email); err != nil {
		return in, &RegistrationError{Field: "email", Errors: []string{"adresse e-mail invalide"}}
	}

	assessment := AssessPassword(in.Password)
	if !assessment.Valid {
		return in, &RegistrationError{Field: "password", Errors: assessment.Errors, Assessment: &assessment}
	}

	normalized, err := CheckPhone(in.Telephone)
	if err != nil {
		return in, &RegistrationError{Field: "telephone", Errors: []string{"numéro de téléphone invalide"}}
	}
	in.Telephone = normalized

	return in, nil
}

func checkName(field, value string) *RegistrationError {
	if value == "" {
		return &RegistrationError{Field: field, Errors: []string{fmt.Sprintf("le champ %s est requis", field)}}
	}
	if n := utf8.RuneCountInString(value); n < minNameLength || n > maxNameLength {
		return &RegistrationError{
			Field:  field,
			Errors: []string{fmt.Sprintf("le champ %s doit contenir entre %d et %d caractères", field, minNameLength, maxNameLength)},
		}
	}
	return nil
}
