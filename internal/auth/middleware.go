package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Middleware resolves the caller identity from the Authorization header and
// attaches it to the request context. Resolution is best-effort: requests
// without a usable token simply proceed without an identity, and the command
// pipeline rejects identity-aware operations downstream. Absent and
// unparseable credentials are treated identically.
type Middleware struct {
	tokens   *TokenManager
	denylist *Denylist
	logger   *zap.Logger
}

// NewMiddleware constructs the identity-resolution middleware.
func NewMiddleware(tokens *TokenManager, denylist *Denylist, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, denylist: denylist, logger: logger}
}

// Handle resolves claims into an Identity on the user context.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get("Authorization"))
	if !ok {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err))
		return c.Next()
	}

	if m.denylist != nil {
		revoked, err := m.denylist.IsRevoked(c.UserContext(), token)
		if err != nil {
			m.logger.Warn("denylist lookup failed", zap.Error(err))
		}
		if revoked {
			return c.Next()
		}
	}

	identity := claims.Identity()
	c.SetUserContext(ContextWithIdentity(c.UserContext(), identity))
	c.Locals(rawTokenKey, token)
	return c.Next()
}

const rawTokenKey = "auth_raw_token"

// RawTokenFromRequest returns the bearer token the identity was resolved
// from, for flows that need to act on the credential itself (logout).
func RawTokenFromRequest(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(rawTokenKey).(string)
	return token, ok && token != ""
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
