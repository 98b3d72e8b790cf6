package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/attendance-service/internal/auth"
	"github.com/spec-kit/attendance-service/internal/config"
	"github.com/spec-kit/attendance-service/internal/domain"
	apperrors "github.com/spec-kit/attendance-service/pkg/util/errorutil"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByCredentials(_ context.Context, identifier string, isAdmin bool) (*domain.User, error) {
	for _, user := range f.users {
		if isAdmin && user.Role == domain.RoleAdmin && user.AdminID != nil && *user.AdminID == identifier {
			copied := *user
			return &copied, nil
		}
		if !isAdmin && user.Role == domain.RoleStudent && user.RegistrationNumber != nil && *user.RegistrationNumber == identifier {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, role *domain.Role) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if role == nil || user.Role == *role {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Active = false
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTLMS: 3600000,
			BcryptCost: 4,
		},
	}
}

func seedStudent(t *testing.T, repo *fakeUserRepo, regNumber, password string) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	require.NoError(t, err)
	user := &domain.User{
		Name:               "Asha Iyer",
		Email:              regNumber + "@example.edu",
		RegistrationNumber: &regNumber,
		PasswordHash:       hash,
		Role:               domain.RoleStudent,
		Active:             true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func requireUnauthorized(t *testing.T, err error) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	require.Equal(t, "invalid credentials", domainErr.Message)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := newFakeUserRepo()
	student := seedStudent(t, repo, "REG-100", "s3cret-pw")
	svc := NewAuthService(testConfig(), repo, nil)

	user, token, meta, err := svc.Login(context.Background(), "REG-100", "s3cret-pw", false)
	require.NoError(t, err)
	require.Equal(t, student.ID, user.ID)
	require.Equal(t, student.ID, meta.SubjectID)

	claims, err := svc.TokenManager().Verify(token)
	require.NoError(t, err)
	require.Equal(t, student.ID, claims.Subject)
	require.Equal(t, string(domain.RoleStudent), claims.Role)
}

func TestLoginFailuresShareOneMessage(t *testing.T) {
	repo := newFakeUserRepo()
	student := seedStudent(t, repo, "REG-100", "s3cret-pw")
	svc := NewAuthService(testConfig(), repo, nil)
	ctx := context.Background()

	_, _, _, err := svc.Login(ctx, "REG-999", "s3cret-pw", false)
	requireUnauthorized(t, err)

	_, _, _, err = svc.Login(ctx, "REG-100", "wrong-pw", false)
	requireUnauthorized(t, err)

	// the registration number does not work through the admin path
	_, _, _, err = svc.Login(ctx, "REG-100", "s3cret-pw", true)
	requireUnauthorized(t, err)

	require.NoError(t, repo.Deactivate(ctx, student.ID))
	_, _, _, err = svc.Login(ctx, "REG-100", "s3cret-pw", false)
	requireUnauthorized(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedStudent(t, repo, "REG-100", "s3cret-pw")
	svc := NewAuthService(testConfig(), repo, nil)

	reg := "REG-200"
	_, err := svc.Register(context.Background(), auth.Actor{ID: "admin-1", Role: domain.RoleAdmin}, RegisterInput{
		Name:               "Dup E. Mail",
		Email:              "REG-100@example.edu",
		Password:           "another-pw",
		Role:               domain.RoleStudent,
		RegistrationNumber: &reg,
	})
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	require.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestRegisterAdminDefaultsToRegularLevel(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testConfig(), repo, nil)

	adminID := "ADM-1"
	user, err := svc.Register(context.Background(), auth.Actor{ID: "admin-0", Role: domain.RoleAdmin}, RegisterInput{
		Name:     "New Admin",
		Email:    "new.admin@example.edu",
		Password: "admin-pw",
		Role:     domain.RoleAdmin,
		AdminID:  &adminID,
	})
	require.NoError(t, err)
	require.NotNil(t, user.AdminLevel)
	require.Equal(t, domain.AdminLevelRegular, *user.AdminLevel)
	require.True(t, user.Active)
	require.True(t, auth.VerifyPassword("admin-pw", user.PasswordHash))
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	repo := newFakeUserRepo()
	student := seedStudent(t, repo, "REG-100", "old-pw")
	svc := NewAuthService(testConfig(), repo, nil)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, student.ID, "wrong-pw", "new-pw")
	requireUnauthorized(t, err)

	require.NoError(t, svc.ChangePassword(ctx, student.ID, "old-pw", "new-pw"))

	_, _, _, err = svc.Login(ctx, "REG-100", "old-pw", false)
	requireUnauthorized(t, err)
	_, _, _, err = svc.Login(ctx, "REG-100", "new-pw", false)
	require.NoError(t, err)
}

func TestUpdateProfileAppliesPartialEdits(t *testing.T) {
	repo := newFakeUserRepo()
	student := seedStudent(t, repo, "REG-100", "s3cret-pw")
	svc := NewAuthService(testConfig(), repo, nil)

	dept := "Physics"
	updated, err := svc.UpdateProfile(context.Background(), student.ID, ProfileUpdateInput{Department: &dept})
	require.NoError(t, err)
	require.Equal(t, student.Name, updated.Name)
	require.NotNil(t, updated.Department)
	require.Equal(t, "Physics", *updated.Department)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := NewAuthService(testConfig(), newFakeUserRepo(), nil)

	_, err := svc.Profile(context.Background(), "missing")
	require.True(t, errors.Is(err, pgx.ErrNoRows))
}
