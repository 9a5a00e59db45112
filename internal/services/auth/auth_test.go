package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/jwt"
	"github.com/magabrotheeeer/venue-cashdesk/internal/lib/password"
	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
	"github.com/magabrotheeeer/venue-cashdesk/internal/storage/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func newService(repo *MockUserRepository) *Service {
	return NewService(repo, jwt.NewMaker("test-secret", time.Hour))
}

func TestRegister(t *testing.T) {
	repo := new(MockUserRepository)
	service := newService(repo)

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "operator" && !u.IsAdmin && u.PasswordHash != "password123"
	})).Return(1, nil).Once()

	id, err := service.Register(context.Background(), "operator", "password123", false)
	require.NoError(t, err)
	assert.Equal(t, 1, id)
	repo.AssertExpectations(t)
}

func TestRegister_UsernameTaken(t *testing.T) {
	repo := new(MockUserRepository)
	service := newService(repo)

	repo.On("RegisterUser", mock.Anything, mock.Anything).
		Return(0, repository.ErrUsernameTaken).Once()

	_, err := service.Register(context.Background(), "operator", "password123", false)
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		username  string
		rawPass   string
		mockUser  *models.User
		mockErr   error
		wantErr   error
		wantAdmin bool
	}{
		{
			name:      "valid credentials",
			username:  "admin",
			rawPass:   "password123",
			mockUser:  &models.User{Username: "admin", PasswordHash: hashed, IsAdmin: true},
			wantAdmin: true,
		},
		{
			name:     "wrong password",
			username: "admin",
			rawPass:  "wrongpass",
			mockUser: &models.User{Username: "admin", PasswordHash: hashed},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "ghost",
			rawPass:  "password123",
			mockErr:  repository.ErrUserNotFound,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			service := newService(repo)

			repo.On("GetUserByUsername", mock.Anything, tt.username).
				Return(tt.mockUser, tt.mockErr).Once()

			token, user, err := service.Login(context.Background(), tt.username, tt.rawPass)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, tt.wantAdmin, user.IsAdmin)
		})
	}
}

func TestLogin_ValidateTokenRoundtrip(t *testing.T) {
	hashed, err := password.GetHash("password123")
	require.NoError(t, err)

	repo := new(MockUserRepository)
	service := newService(repo)
	repo.On("GetUserByUsername", mock.Anything, "operator").
		Return(&models.User{Username: "operator", PasswordHash: hashed}, nil).Once()

	token, _, err := service.Login(context.Background(), "operator", "password123")
	require.NoError(t, err)

	user, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", user.Username)
	assert.False(t, user.IsAdmin)
}

func TestValidateToken_Invalid(t *testing.T) {
	repo := new(MockUserRepository)
	service := newService(repo)

	_, err := service.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidCredentials))
}
