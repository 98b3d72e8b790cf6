package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller attached to the request
// context for downstream handlers.
type Principal struct {
	UserID string
	Role   domain.Role
	Email  string
}

// Actor projects the principal into a policy actor.
func (p *Principal) Actor() Actor {
	return Actor{ID: p.UserID, Role: p.Role}
}

// AuthMiddleware validates bearer tokens and re-validates subjects against
// the credential store on every request. The re-fetch exists because a token
// stays cryptographically valid after its holder is deactivated.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewAuthMiddleware constructs the guard.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		m.logger.Warn("token verification failed", zap.Error(err))
		return apperrors.NewUnauthorized("access denied: invalid or expired token")
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		m.logger.Warn("token carries unknown role", zap.String("role", claims.Role))
		return apperrors.NewUnauthorized("access denied: invalid or expired token")
	}

	user, err := m.users.GetByID(c.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("access denied: user not found or inactive")
		}
		return apperrors.NewInternalError(err)
	}
	if !user.Active {
		return apperrors.NewUnauthorized("access denied: user not found or inactive")
	}

	c.Locals(principalKey, &Principal{UserID: claims.Subject, Role: role, Email: claims.Email})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// RequireOperation enforces a policy decision where the resource owner is the
// caller itself or irrelevant (admin-only operations).
func RequireOperation(op Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("access denied: no token provided")
		}
		if !Allow(principal.Actor(), principal.UserID, op) {
			return apperrors.NewForbidden("access denied: admin privileges required")
		}
		return c.Next()
	}
}
