package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/attendance-service/internal/api/dto"
	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/service"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and account self-service.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, meta, err := h.auth.Login(c.Context(), req.Identifier, req.Password, req.IsAdmin)
	if err != nil {
		return err
	}

	return dto.Success(c, http.StatusOK, fiber.Map{
		"user": dto.NewUserResponse(user),
		"auth": dto.AuthResponse{Token: token, ExpiresAt: meta.ExpiresAt},
	}, "Login successful")
}

// Register handles POST /auth/register. Admin-only; the route carries the
// policy check.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	role, _ := domain.ParseRole(req.Role)
	input := service.RegisterInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Role:               role,
		RegistrationNumber: req.RegistrationNumber,
		AdminID:            req.AdminID,
		Department:         req.Department,
		Year:               req.Year,
	}
	switch role {
	case domain.RoleStudent:
		if req.RegistrationNumber == nil || *req.RegistrationNumber == "" {
			return apperrors.NewValidationError("registrationNumber is required for students", nil)
		}
	case domain.RoleAdmin:
		if req.AdminID == nil || *req.AdminID == "" {
			return apperrors.NewValidationError("adminId is required for admins", nil)
		}
		if req.AdminLevel != nil {
			level := domain.AdminLevel(*req.AdminLevel)
			input.AdminLevel = &level
		}
	}

	user, err := h.auth.Register(c.Context(), principal.Actor(), input)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusCreated, dto.NewUserResponse(user), "User registered")
}

// Profile handles GET /auth/profile.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}
	user, err := h.auth.Profile(c.Context(), principal.UserID)
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, dto.NewUserResponse(user), "")
}

// UpdateProfile handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.UpdateProfile(c.Context(), principal.UserID, service.ProfileUpdateInput{
		Name:       req.Name,
		Department: req.Department,
		Year:       req.Year,
	})
	if err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, dto.NewUserResponse(user), "Profile updated")
}

// ChangePassword handles PUT /auth/change-password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("access denied: no token provided")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return dto.Success(c, http.StatusOK, nil, "Password changed")
}
