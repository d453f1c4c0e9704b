package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Infrastructure facts reported by candidate stores. Services translate these
// into user-facing error kinds.
var (
	ErrNotConfigured    = errors.New("store not configured")
	ErrUndefinedTable   = errors.New("store schema not provisioned")
	ErrPermissionDenied = errors.New("store permission denied")
	ErrUniqueViolation  = errors.New("unique constraint violation")
)

// PostgreSQL SQLSTATE codes the store distinguishes.
const (
	CodeUniqueViolation       = "23505"
	CodeInsufficientPrivilege = "42501"
	CodeUndefinedTable        = "42P01"
	CodeInvalidSchemaName     = "3F000"
)

// Error wraps a driver failure together with its classification.
type Error struct {
	Fact error
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Fact == nil {
		return e.Err.Error()
	}
	return e.Fact.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() []error {
	if e.Fact == nil {
		return []error{e.Err}
	}
	return []error{e.Fact, e.Err}
}

// Code returns the SQLSTATE attached to err, if any.
func Code(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify maps a driver error onto one of the store sentinels. Errors that
// match none of them are returned wrapped with a nil Fact.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var code string
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code = pgErr.Code
	}

	var fact error
	switch {
	case code == CodeUniqueViolation, errors.Is(err, gorm.ErrDuplicatedKey):
		fact = ErrUniqueViolation
	case code == CodeInsufficientPrivilege:
		fact = ErrPermissionDenied
	case code == CodeUndefinedTable, code == CodeInvalidSchemaName:
		fact = ErrUndefinedTable
	case code == "":
		fact = classifyMessage(err.Error())
	}

	return &Error{Fact: fact, Code: code, Err: err}
}

// classifyMessage is the fallback for errors that carry no SQLSTATE, such as
// those surfaced by proxies in front of the database.
func classifyMessage(msg string) error {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "duplicate key"):
		return ErrUniqueViolation
	case strings.Contains(msg, "permission denied"), strings.Contains(msg, "row-level security"):
		return ErrPermissionDenied
	case strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
		return ErrUndefinedTable
	}
	return nil
}
