package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Kind is a stable, serializable error identifier suitable for client-side branching.
type Kind string

const (
	KindInvalidInput          Kind = "INVALID_INPUT"
	KindDuplicateEmail        Kind = "DUPLICATE_EMAIL"
	KindDuplicateDocument     Kind = "DUPLICATE_DOCUMENT_NUMBER"
	KindHigherPermission      Kind = "HIGHER_PERMISSION"
	KindEmployeeNotFound      Kind = "EMPLOYEE_NOT_FOUND"
	KindEmployeeHasNoPhones   Kind = "EMPLOYEE_HAS_NO_PHONES"
	KindInvalidCredentials    Kind = "INVALID_CREDENTIALS"
	KindUserUnauthorized      Kind = "USER_UNAUTHORIZED"
	KindCannotDeleteRootAdmin Kind = "CANNOT_DELETE_ROOT_ADMIN"
	KindInternal              Kind = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(kind Kind, message string) *DomainError {
	return &DomainError{Kind: kind, Message: message}
}

// NewFieldError constructs a validation failure bound to a single field.
func NewFieldError(kind Kind, field, message string) *DomainError {
	return &DomainError{Kind: kind, Field: field, Message: message}
}

func NewInternalError(err error) *DomainError {
	return &DomainError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// HTTPStatus maps the error kind to its transport status code.
func (e *DomainError) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput, KindDuplicateEmail, KindDuplicateDocument, KindCannotDeleteRootAdmin:
		return http.StatusBadRequest
	case KindHigherPermission:
		return http.StatusForbidden
	case KindEmployeeNotFound, KindEmployeeHasNoPhones:
		return http.StatusNotFound
	case KindInvalidCredentials, KindUserUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ToDomainError converts generic errors to DomainError. A raw no-rows error
// can escape on write paths where the target vanished between validation and
// the statement; that is a missing employee, not an internal fault.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewDomainError(KindEmployeeNotFound, "Employee not found.")
	}
	return NewInternalError(err)
}

// KindOf extracts the kind from any error, defaulting to INTERNAL_ERROR.
func KindOf(err error) Kind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}
