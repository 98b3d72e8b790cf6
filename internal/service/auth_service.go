package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/config"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

// AuthService coordinates login, registration and account maintenance flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes an admin-created account.
type RegisterInput struct {
	Name               string
	Email              string
	Password           string
	Role               domain.Role
	RegistrationNumber *string
	AdminID            *string
	AdminLevel         *domain.AdminLevel
	Department         *string
	Year               *string
}

// ProfileUpdateInput carries the self-service editable fields.
type ProfileUpdateInput struct {
	Name       *string
	Department *string
	Year       *string
}

// Login authenticates by registration number (students) or admin id (admins).
// Unknown identifier, wrong password and deactivated account all surface the
// same message so nothing leaks about which check failed.
func (s *AuthService) Login(ctx context.Context, identifier, password string, isAdmin bool) (*domain.User, string, domain.TokenMetadata, error) {
	user, err := s.users.GetByCredentials(ctx, identifier, isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", domain.TokenMetadata{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", domain.TokenMetadata{}, err
	}
	if !user.Active {
		return nil, "", domain.TokenMetadata{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, "", domain.TokenMetadata{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, meta, err := s.tokenMgr.Issue(user)
	if err != nil {
		return nil, "", domain.TokenMetadata{}, err
	}
	return user, token, meta, nil
}

// Register creates a new student or admin account. Authorization (admin only)
// is enforced at the handler before this runs.
func (s *AuthService) Register(ctx context.Context, actor auth.Actor, input RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": input.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       hash,
		Role:               input.Role,
		RegistrationNumber: input.RegistrationNumber,
		AdminID:            input.AdminID,
		Department:         input.Department,
		Year:               input.Year,
		Active:             true,
	}
	if input.Role == domain.RoleAdmin {
		level := domain.AdminLevelRegular
		if input.AdminLevel != nil {
			level = *input.AdminLevel
		}
		user.AdminLevel = &level
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserRegistered,
		SubjectID: user.ID,
		Actor:     events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload:   events.UserRegisteredPayload{UserID: user.ID, Role: user.Role},
	})
	return user, nil
}

// Profile returns the caller's own account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies self-service edits.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input ProfileUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Department != nil {
		user.Department = input.Department
	}
	if input.Year != nil {
		user.Year = input.Year
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(currentPassword, user.PasswordHash) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}
