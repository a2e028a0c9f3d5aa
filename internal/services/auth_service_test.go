package services

import (
	"context"
	"testing"
	"time"

	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/auth"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/maryrl/loja-fullstack/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(repo *MockUserRepository) (*AuthService, *auth.TokenService) {
	ts := auth.NewTokenService("test-secret", 30*time.Minute)
	return NewAuthService(repo, ts, "admin@urbanthreads.com", zap.NewNop()), ts
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - issues a token for the new user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, ts := newAuthService(repo)

		repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "ana@example.com" && !u.IsAdmin && auth.CheckPassword(u.PasswordHash, "secret1")
		})).Return(nil).Once()

		resp, err := svc.Register(ctx, models.RegisterRequest{Email: "ana@example.com", Name: "Ana", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)

		claims, err := ts.ValidateToken(resp.AccessToken, auth.TokenTypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", claims.Email)
		repo.AssertExpectations(t)
	})

	t.Run("Admin email is granted admin", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newAuthService(repo)

		repo.On("FindByEmail", ctx, "admin@urbanthreads.com").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool { return u.IsAdmin })).Return(nil).Once()

		_, err := svc.Register(ctx, models.RegisterRequest{Email: "admin@urbanthreads.com", Name: "Admin", Password: "secret1"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Failure - email already registered", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newAuthService(repo)

		repo.On("FindByEmail", ctx, "ana@example.com").Return(&models.User{Email: "ana@example.com"}, nil).Once()

		_, err := svc.Register(ctx, models.RegisterRequest{Email: "ana@example.com", Name: "Ana", Password: "secret1"})
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure - concurrent registration hits the unique index", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newAuthService(repo)

		repo.On("FindByEmail", ctx, "ana@example.com").Return(nil, repository.ErrNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate).Once()

		_, err := svc.Register(ctx, models.RegisterRequest{Email: "ana@example.com", Name: "Ana", Password: "secret1"})
		assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
	})
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	user := &models.User{ID: "u-1", Email: "ana@example.com", Name: "Ana", PasswordHash: hash}

	t.Run("Success - token resolves back to the user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newAuthService(repo)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(user, nil)

		resp, err := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secret1"})
		require.NoError(t, err)

		got, err := svc.Authenticate(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "u-1", got.ID)
	})

	t.Run("Failure - wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newAuthService(repo)
		repo.On("FindByEmail", ctx, "ana@example.com").Return(user, nil).Once()

		_, err := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failure - unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newAuthService(repo)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Login(ctx, models.LoginRequest{Email: "ghost@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failure - garbage token", func(t *testing.T) {
		svc, _ := newAuthService(new(MockUserRepository))
		_, err := svc.Authenticate(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("Failure - user deleted after token was issued", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, ts := newAuthService(repo)
		token, err := ts.GenerateAccessToken("u-2", "gone@example.com")
		require.NoError(t, err)
		repo.On("FindByEmail", ctx, "gone@example.com").Return(nil, repository.ErrNotFound).Once()

		_, err = svc.Authenticate(ctx, token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
