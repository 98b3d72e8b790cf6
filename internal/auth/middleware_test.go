package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/domain"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

// fakeUserStore is an in-memory UserRepository for middleware tests.
type fakeUserStore struct {
	users map[string]*domain.User
}

func (f *fakeUserStore) Create(_ context.Context, user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) GetByCredentials(_ context.Context, identifier string, isAdmin bool) (*domain.User, error) {
	for _, user := range f.users {
		if isAdmin && user.AdminID != nil && *user.AdminID == identifier && user.Role == domain.RoleAdmin {
			copied := *user
			return &copied, nil
		}
		if !isAdmin && user.RegistrationNumber != nil && *user.RegistrationNumber == identifier && user.Role == domain.RoleStudent {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserStore) List(_ context.Context, role *domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if role == nil || user.Role == *role {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f *fakeUserStore) Deactivate(_ context.Context, id string) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Active = false
	return nil
}

func newGuardedApp(t *testing.T, store *fakeUserStore, tokens *TokenManager) *fiber.App {
	t.Helper()

	middleware := NewAuthMiddleware(tokens, store, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) {
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"success": false, "message": domainErr.Message})
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	})
	app.Get("/whoami", middleware.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"userId": principal.UserID, "role": principal.Role})
	})
	return app
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	app := newGuardedApp(t, store, NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	app := newGuardedApp(t, store, NewTokenManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareDeactivatedUser(t *testing.T) {
	user := testUser()
	user.Active = false
	store := &fakeUserStore{users: map[string]*domain.User{user.ID: user}}
	tokens := NewTokenManager("test-secret", time.Hour)
	app := newGuardedApp(t, store, tokens)

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareUnknownSubject(t *testing.T) {
	store := &fakeUserStore{users: map[string]*domain.User{}}
	tokens := NewTokenManager("test-secret", time.Hour)
	app := newGuardedApp(t, store, tokens)

	token, _, err := tokens.Issue(testUser())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareAttachesPrincipal(t *testing.T) {
	user := testUser()
	store := &fakeUserStore{users: map[string]*domain.User{user.ID: user}}
	tokens := NewTokenManager("test-secret", time.Hour)
	app := newGuardedApp(t, store, tokens)

	token, _, err := tokens.Issue(user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
