package services

import (
	"errors"
	"strings"
)

// Registration error kinds. Store failures are returned as *StoreError
// wrapping one of the store kinds.
var (
	ErrValidation     = errors.New("invalid registration")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrConfiguration  = errors.New("store not provisioned")
	ErrPermission     = errors.New("store permission denied")
	ErrTransientStore = errors.New("store unavailable")
)

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string
	Missing bool
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ValidationErrors holds every rejected field in name, email, mobile order.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error { return ErrValidation }

// Field returns the error for field, or nil.
func (v ValidationErrors) Field(field string) *ValidationError {
	for _, e := range v {
		if e.Field == field {
			return e
		}
	}
	return nil
}

// AnyMissing reports whether a required field was empty.
func (v ValidationErrors) AnyMissing() bool {
	for _, e := range v {
		if e.Missing {
			return true
		}
	}
	return false
}

// Store operations, recorded on StoreError.
const (
	OpCheck  = "check"
	OpInsert = "insert"
	OpList   = "list"
)

// StoreError is a classified store failure. errors.Is matches both the kind
// and the underlying driver error.
type StoreError struct {
	Kind error
	Op   string
	Code string
	Err  error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// KindName returns a stable label for logs and metrics.
func KindName(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrTransientStore):
		return "transient_store"
	default:
		return "internal"
	}
}
