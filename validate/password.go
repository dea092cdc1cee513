// Package validate holds the pure request-validation rules: password strength
// scoring, phone and email shape checks, and the composite registration check.
// Everything here operates on a single input string and keeps no state.
package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// Strength tiers, ordered weakest to strongest.
const (
	TierTresFaible = "très faible"
	TierFaible     = "faible"
	TierMoyen      = "moyen"
	TierFort       = "fort"
	TierTresFort   = "très fort"
)

// PasswordAssessment is the outcome of scoring a candidate password.
// Valid is true iff Errors is empty; Warnings never affect validity.
type PasswordAssessment struct {
	Valid    bool     `json:"valid"`
	Score    int      `json:"score"`
	Strength string   `json:"strength"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

const specialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// commonSubstrings trigger a warning only; keyboardSequences are hard errors.
var (
	commonSubstrings  = []string{"123", "abc", "qwe", "asd", "zxc", "password", "admin", "user"}
	keyboardSequences = []string{"qwerty", "azerty", "123456", "654321"}
)

// AssessPassword scores a candidate password against the account policy.
func AssessPassword(password string) PasswordAssessment {
	if password == "" {
		return PasswordAssessment{
			Strength: TierTresFaible,
			Errors:   []string{"le mot de passe est requis"},
		}
	}

	var (
		errs  []string
		warns []string
		score int
	)

	runes := []rune(password)
	switch n := len(runes); {
	case n < 8:
		errs = append(errs, "le mot de passe doit contenir au moins 8 caractères")
	case n < 10:
		score += 10
	case n < 12:
		score += 15
	default:
		score += 20
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range runes {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case strings.ContainsRune(specialChars, ch):
			hasSpecial = true
		}
	}
	if hasUpper {
		score += 10
	} else {
		errs = append(errs, "au moins une lettre majuscule est requise")
	}
	if hasLower {
		score += 10
	} else {
		errs = append(errs, "au moins une lettre minuscule est requise")
	}
	if hasDigit {
		score += 10
	} else {
		errs = append(errs, "au moins un chiffre est requis")
	}
	if hasSpecial {
		score += 15
	} else {
		errs = append(errs, "au moins un caractère spécial est requis")
	}

	lower := strings.ToLower(password)
	for _, seq := range keyboardSequences {
		if strings.Contains(lower, seq) {
			errs = append(errs, fmt.Sprintf("séquence de clavier interdite: %s", seq))
			break
		}
	}
	for _, sub := range commonSubstrings {
		if strings.Contains(lower, sub) {
			warns = append(warns, fmt.Sprintf("contient un motif trop courant: %s", sub))
			break
		}
	}

	if hasRepeatedRun(runes, 3) {
		warns = append(warns, "contient un caractère répété plus de deux fois de suite")
	}

	distinct := make(map[rune]struct{}, len(runes))
	for _, ch := range runes {
		distinct[ch] = struct{}{}
	}
	ratio := float64(len(distinct)) / float64(len(runes))
	switch {
	case ratio < 0.5:
		warns = append(warns, "faible variété de caractères")
	case ratio > 0.8:
		score += 5
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return PasswordAssessment{
		Valid:    len(errs) == 0,
		Score:    score,
		Strength: tierFor(score),
		Errors:   errs,
		Warnings: warns,
	}
}

func tierFor(score int) string {
	switch {
	case score < 30:
		return TierTresFaible
	case score < 50:
		return TierFaible
	case score < 70:
		return TierMoyen
	case score < 90:
		return TierFort
	default:
		return TierTresFort
	}
}

// hasRepeatedRun reports whether any rune appears at least n times consecutively.
func hasRepeatedRun(runes []rune, n int) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
