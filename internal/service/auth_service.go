package service

import (
	"context"

	"github.com/spec-kit/employee-directory/internal/auth"
)

// AuthService handles session concerns around the access token itself.
// Credential verification lives in EmployeeService; this service only
// revokes issued tokens.
type AuthService struct {
	tokens   *auth.TokenManager
	denylist *auth.Denylist
}

// NewAuthService builds the service.
func NewAuthService(tokens *auth.TokenManager, denylist *auth.Denylist) *AuthService {
	return &AuthService{tokens: tokens, denylist: denylist}
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		// An unparseable token cannot be replayed; nothing to revoke.
		return nil
	}
	return s.denylist.Revoke(ctx, token, claims.ExpiresAt.Time)
}
