// Package command implements the two-stage pipeline every inbound operation
// passes through: an authorization stage that attaches the caller identity
// (or short-circuits), then a validation stage of ordered business rules.
// Only after both stages succeed does the operation body run.
package command

import (
	"context"

	"github.com/spec-kit/employee-directory/internal/auth"
	"github.com/spec-kit/employee-directory/pkg/util"
)

// Failer is the polymorphic result-factory capability: every result type can
// construct its own failure shape. The authorization stage uses it to
// synthesize failures generically, without reflection.
type Failer[R any] interface {
	Fail(kind util.Kind, message string) R
}

// IdentityAware marks commands that require a resolved caller identity
// before their body may run. WithIdentity returns an enriched copy of the
// command; the original value is never mutated.
type IdentityAware[C any] interface {
	WithIdentity(identity auth.Identity) C
}

// ValidatorFunc runs the ordered business rules for a command. The first
// failing rule aborts evaluation and is reported alone.
type ValidatorFunc[C any] func(ctx context.Context, cmd C) error

// HandlerFunc is the operation body invoked after both stages pass.
type HandlerFunc[C any, R Failer[R]] func(ctx context.Context, cmd C) (R, error)

// Dispatch wraps the operation body with the authorization and validation
// stages. Stage order is fixed. An identity-aware command whose caller
// cannot be resolved never reaches validation or the body: the pipeline
// returns a failure result in the operation's own shape instead.
func Dispatch[C any, R Failer[R]](ctx context.Context, cmd C, validate ValidatorFunc[C], handle HandlerFunc[C, R]) (R, error) {
	var zero R

	if aware, ok := any(cmd).(IdentityAware[C]); ok {
		identity, found := auth.IdentityFromContext(ctx)
		if !found || !identity.Resolved() {
			return zero.Fail(util.KindUserUnauthorized, "User is not authenticated."), nil
		}
		cmd = aware.WithIdentity(identity)
	}

	if validate != nil {
		if err := validate(ctx, cmd); err != nil {
			return zero, err
		}
	}

	return handle(ctx, cmd)
}
