package auth

import (
	"context"

	"github.com/spec-kit/employee-directory/internal/domain"
)

type contextKey struct{}

// Identity is the authenticated caller's role and numeric id, resolved once
// per inbound operation from verified token claims. It is immutable for the
// lifetime of the operation.
type Identity struct {
	Role       domain.Role
	EmployeeID int64
}

// Resolved reports whether the identity carries a usable role and subject id.
// RoleUser is the zero-value sentinel: an unresolvable role claim falls back
// to it, so it is treated the same as an absent identity.
func (id Identity) Resolved() bool {
	return id.Role != RoleSentinel && id.EmployeeID != 0
}

// RoleSentinel is the unset/lowest role treated as "not authenticated".
const RoleSentinel = domain.RoleUser

// ContextWithIdentity attaches the resolved identity to the request context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext retrieves the caller identity, if one was resolved.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
