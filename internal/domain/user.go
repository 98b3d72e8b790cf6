package domain

import "time"

// Role enumerates the closed set of caller roles.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleStudent:
		return RoleStudent, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// AdminLevel differentiates super admins from regular ones.
type AdminLevel string

const (
	AdminLevelSuper   AdminLevel = "super"
	AdminLevelRegular AdminLevel = "regular"
)

// User models a student or administrator account.
// PasswordHash must never be serialized outward; handlers project users
// through DTOs that omit it.
type User struct {
	ID                 string
	Name               string
	Email              string
	RegistrationNumber *string
	AdminID            *string
	PasswordHash       string
	Role               Role
	AdminLevel         *AdminLevel
	Department         *string
	Year               *string
	Active             bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
