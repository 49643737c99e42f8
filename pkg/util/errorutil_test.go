package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind   Kind
		status int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindDuplicateEmail, http.StatusBadRequest},
		{KindDuplicateDocument, http.StatusBadRequest},
		{KindCannotDeleteRootAdmin, http.StatusBadRequest},
		{KindHigherPermission, http.StatusForbidden},
		{KindEmployeeNotFound, http.StatusNotFound},
		{KindEmployeeHasNoPhones, http.StatusNotFound},
		{KindInvalidCredentials, http.StatusUnauthorized},
		{KindUserUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, NewDomainError(tc.kind, "x").HTTPStatus(), string(tc.kind))
	}
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	fieldErr := NewFieldError(KindInvalidInput, "email", "Email is required.")
	assert.Same(t, fieldErr, ToDomainError(fieldErr))

	wrapped := ToDomainError(errors.New("pg down"))
	assert.Equal(t, KindInternal, wrapped.Kind)
	assert.NotNil(t, wrapped.Err)
}

func TestToDomainErrorNoRows(t *testing.T) {
	converted := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, KindEmployeeNotFound, converted.Kind)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus())

	wrapped := ToDomainError(fmt.Errorf("update employee: %w", pgx.ErrNoRows))
	assert.Equal(t, KindEmployeeNotFound, wrapped.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindDuplicateEmail, KindOf(NewDomainError(KindDuplicateEmail, "dup")))
	assert.Equal(t, KindInternal, KindOf(errors.New("anything")))
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "cause")
}
