package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	listFn       func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Email: "alice@example.com", Role: models.RoleUser}, nil
		},
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		listFn:       func(context.Context, int, int) ([]models.User, error) { return nil, nil },
	}
}

const testSecret = "test-secret-key-for-unit-tests"

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeUnauthorized, appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestAuthService_SignUp(t *testing.T) {
	t.Run("Missing fields", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), testSecret)
		_, err := svc.SignUp(context.Background(), SignUpInput{Username: "alice"})
		assertValidationError(t, err)
	})

	t.Run("Weak password", func(t *testing.T) {
		svc := NewAuthService(noopUserRepo(), testSecret)
		_, err := svc.SignUp(context.Background(), SignUpInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "short",
		})
		assertValidationError(t, err)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByEmailFn = func(context.Context, string) (*models.User, error) {
			return &models.User{ID: 1, Email: "alice@example.com"}, nil
		}
		svc := NewAuthService(repo, testSecret)
		_, err := svc.SignUp(context.Background(), SignUpInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Sup3rSecret",
		})
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeConflict, appErr.Code)
	})

	t.Run("Success hashes password and forces USER role", func(t *testing.T) {
		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 42
			created = u
			return nil
		}
		svc := NewAuthService(repo, testSecret)
		user, err := svc.SignUp(context.Background(), SignUpInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Sup3rSecret",
		})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(42), user.ID)
		assert.Equal(t, models.RoleUser, created.Role)
		assert.NotEqual(t, "Sup3rSecret", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Sup3rSecret")))
	})
}

func TestAuthService_SignIn(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Sup3rSecret"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 7, Username: "alice", Email: "alice@example.com", Password: string(hashed), Role: models.RoleUser}

	t.Run("Unknown email", func(t *testing.T) {
		repo := noopUserRepo()
		svc := NewAuthService(repo, testSecret)
		token, _, err := svc.SignIn(context.Background(), SignInInput{Email: "nobody@example.com", Password: "Sup3rSecret"})
		assertUnauthorizedError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByEmailFn = func(context.Context, string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(repo, testSecret)
		token, _, err := svc.SignIn(context.Background(), SignInInput{Email: "alice@example.com", Password: "wrong-password"})
		assertUnauthorizedError(t, err)
		assert.Empty(t, token)
	})

	t.Run("Success issues token with identity claims", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByEmailFn = func(context.Context, string) (*models.User, error) { return stored, nil }
		svc := NewAuthService(repo, testSecret)
		token, user, err := svc.SignIn(context.Background(), SignInInput{Email: "alice@example.com", Password: "Sup3rSecret"})
		require.NoError(t, err)
		assert.Equal(t, stored.ID, user.ID)

		parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte(testSecret), nil })
		require.NoError(t, err)
		claims, ok := parsed.Claims.(jwt.MapClaims)
		require.True(t, ok)
		assert.Equal(t, "7", claims["sub"])
		assert.Equal(t, "alice@example.com", claims["email"])
		assert.Equal(t, "alice", claims["username"])
		assert.Equal(t, "USER", claims["role"])
		assert.Equal(t, TokenIssuer, claims["iss"])
		assert.Equal(t, TokenAudience, claims["aud"])
		assert.NotEmpty(t, claims["jti"])
	})
}
