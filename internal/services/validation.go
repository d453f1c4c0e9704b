package services

import (
	"regexp"
	"strings"
)

const MinMobileDigits = 10

var (
	emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)
	nonDigits    = regexp.MustCompile(`[^0-9]`)
)

// RegistrationInput is the raw name/email/mobile triple from either entry point.
type RegistrationInput struct {
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	Mobile string `json:"mobile" form:"mobile"`
}

// Draft is a validated, normalized registration ready to persist.
type Draft struct {
	Name         string
	Email        string
	Mobile       string
	MobileDigits string
}

// Validate checks and normalizes in. It never touches the store. On failure
// the error is ValidationErrors listing every rejected field.
func Validate(in RegistrationInput) (Draft, error) {
	var errs ValidationErrors

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, &ValidationError{Field: "name", Missing: true, Message: "Name is required"})
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs = append(errs, &ValidationError{Field: "email", Missing: true, Message: "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, &ValidationError{Field: "email", Message: "Please enter a valid email address"})
	}

	mobile := strings.TrimSpace(in.Mobile)
	digits := DigitsOnly(mobile)
	switch {
	case mobile == "":
		errs = append(errs, &ValidationError{Field: "mobile", Missing: true, Message: "Mobile number is required"})
	case len(digits) < MinMobileDigits:
		errs = append(errs, &ValidationError{Field: "mobile", Message: "Mobile number must be at least 10 digits"})
	}

	if len(errs) > 0 {
		return Draft{}, errs
	}

	return Draft{
		Name:         name,
		Email:        strings.ToLower(email),
		Mobile:       mobile,
		MobileDigits: digits,
	}, nil
}

// DigitsOnly strips every character that is not 0-9.
func DigitsOnly(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidEmail reports whether s has the minimal local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
