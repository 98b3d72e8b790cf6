package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/service"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

// UsersHandler exposes admin-only account management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users. Admin-only via route policy.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var roleFilter *domain.Role
	if roleParam := c.Query("role"); roleParam != "" {
		role, ok := domain.ParseRole(roleParam)
		if !ok {
			return apperrors.NewValidationError("invalid role", map[string]any{"role": roleParam})
		}
		roleFilter = &role
	}

	users, err := h.users.List(c.Context(), roleFilter)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, dto.NewUserResponses(users), "")
}

// Delete handles DELETE /users/:id. Soft delete: the account is deactivated,
// never removed, so attendance history keeps resolving.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	id := c.Params("id")
	if err := h.users.Deactivate(c.Context(), principal.Actor(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}
	return dto.Success(c, http.StatusOK, nil, "User deactivated")
}
