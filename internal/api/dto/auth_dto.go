package dto

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// LoginRequest payload. Identifier is the registration number for students
// and the admin id for admins.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	IsAdmin    bool   `json:"isAdmin"`
}

// RegisterRequest payload for the admin-only registration endpoint.
type RegisterRequest struct {
	Name               string  `json:"name" validate:"required"`
	Email              string  `json:"email" validate:"required,email"`
	Password           string  `json:"password" validate:"required,min=6"`
	Role               string  `json:"role" validate:"required,oneof=student admin"`
	RegistrationNumber *string `json:"registrationNumber"`
	AdminID            *string `json:"adminId"`
	AdminLevel         *string `json:"adminLevel" validate:"omitempty,oneof=super regular"`
	Department         *string `json:"department"`
	Year               *string `json:"year"`
}

// ProfileUpdateRequest payload for self-service profile edits.
type ProfileUpdateRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Year       *string `json:"year"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UserResponse projects a user outward. The password hash never appears here.
type UserResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Role               string  `json:"role"`
	RegistrationNumber *string `json:"registrationNumber,omitempty"`
	AdminID            *string `json:"adminId,omitempty"`
	AdminLevel         *string `json:"adminLevel,omitempty"`
	Department         *string `json:"department,omitempty"`
	Year               *string `json:"year,omitempty"`
	Active             bool    `json:"active"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               string(user.Role),
		RegistrationNumber: user.RegistrationNumber,
		AdminID:            user.AdminID,
		Department:         user.Department,
		Year:               user.Year,
		Active:             user.Active,
	}
	if user.AdminLevel != nil {
		level := string(*user.AdminLevel)
		resp.AdminLevel = &level
	}
	return resp
}

// NewUserResponses converts a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	result := make([]UserResponse, len(users))
	for i := range users {
		result[i] = NewUserResponse(&users[i])
	}
	return result
}
