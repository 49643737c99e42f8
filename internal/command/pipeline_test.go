package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/internal/domain"
	"github.com/spec-kit/employee-directory/pkg/util"
)

type pingCommand struct {
	Caller auth.Identity
}

func (c pingCommand) WithIdentity(identity auth.Identity) pingCommand {
	c.Caller = identity
	return c
}

type pingResult struct {
	Success      bool
	CallerID     int64
	ErrorKind    util.Kind
	ErrorMessage string
}

func (pingResult) Fail(kind util.Kind, message string) pingResult {
	return pingResult{ErrorKind: kind, ErrorMessage: message}
}

type openCommand struct{}

type openResult struct {
	Success      bool
	ErrorKind    util.Kind
	ErrorMessage string
}

func (openResult) Fail(kind util.Kind, message string) openResult {
	return openResult{ErrorKind: kind, ErrorMessage: message}
}

func identityContext(role domain.Role, id int64) context.Context {
	return auth.ContextWithIdentity(context.Background(),
		auth.Identity{Role: role, EmployeeID: id})
}

func TestDispatchRejectsMissingIdentity(t *testing.T) {
	handlerCalled := false
	handle := func(ctx context.Context, cmd pingCommand) (pingResult, error) {
		handlerCalled = true
		return pingResult{Success: true}, nil
	}

	result, err := Dispatch(context.Background(), pingCommand{}, nil, handle)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, util.KindUserUnauthorized, result.ErrorKind)
	assert.Equal(t, "User is not authenticated.", result.ErrorMessage)
	assert.False(t, handlerCalled, "body must not run without a resolved identity")
}

func TestDispatchRejectsSentinelIdentity(t *testing.T) {
	validatorCalled := false
	validate := func(ctx context.Context, cmd pingCommand) error {
		validatorCalled = true
		return nil
	}
	handle := func(ctx context.Context, cmd pingCommand) (pingResult, error) {
		return pingResult{Success: true}, nil
	}

	// The lowest-tier role is the unauthenticated sentinel.
	result, err := Dispatch(identityContext(domain.RoleUser, 7), pingCommand{}, validate, handle)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, util.KindUserUnauthorized, result.ErrorKind)
	assert.False(t, validatorCalled, "validation must not run without a resolved identity")
}

func TestDispatchEnrichesCommandWithIdentity(t *testing.T) {
	handle := func(ctx context.Context, cmd pingCommand) (pingResult, error) {
		return pingResult{Success: true, CallerID: cmd.Caller.EmployeeID}, nil
	}

	result, err := Dispatch(identityContext(domain.RoleAdmin, 42), pingCommand{}, nil, handle)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, int64(42), result.CallerID)
}

func TestDispatchValidationShortCircuits(t *testing.T) {
	wantErr := util.NewFieldError(util.KindInvalidInput, "firstName", "First name is required.")
	handlerCalled := false

	validate := func(ctx context.Context, cmd pingCommand) error { return wantErr }
	handle := func(ctx context.Context, cmd pingCommand) (pingResult, error) {
		handlerCalled = true
		return pingResult{Success: true}, nil
	}

	_, err := Dispatch(identityContext(domain.RoleAdmin, 1), pingCommand{}, validate, handle)
	require.ErrorIs(t, err, wantErr)
	assert.False(t, handlerCalled, "body must not run after a validation failure")
}

func TestDispatchSkipsAuthorizationForOpenCommands(t *testing.T) {
	handle := func(ctx context.Context, cmd openCommand) (openResult, error) {
		return openResult{Success: true}, nil
	}

	result, err := Dispatch(context.Background(), openCommand{}, nil, handle)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	wantErr := errors.New("storage down")
	handle := func(ctx context.Context, cmd openCommand) (openResult, error) {
		return openResult{}, wantErr
	}

	_, err := Dispatch(context.Background(), openCommand{}, nil, handle)
	assert.ErrorIs(t, err, wantErr)
}
