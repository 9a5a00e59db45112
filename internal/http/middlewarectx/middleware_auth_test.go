package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/venue-cashdesk/internal/models"
)

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) ValidateToken(token string) (*models.User, error) {
	args := m.Called(token)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) HasSession(username string) bool {
	return m.Called(username).Bool(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(v *MockValidator)
		expectedStatus int
		expectNext     bool
	}{
		{
			name:           "missing header",
			authHeader:     "",
			setupMock:      func(_ *MockValidator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			setupMock: func(v *MockValidator) {
				v.On("ValidateToken", "bad-token").Return(nil, errors.New("token is invalid"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			setupMock: func(v *MockValidator) {
				v.On("ValidateToken", "good-token").
					Return(&models.User{Username: "operator", IsAdmin: true}, nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validatorMock := new(MockValidator)
			tt.setupMock(validatorMock)

			var gotUsername string
			var gotAdmin bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUsername, _ = r.Context().Value(User).(string)
				gotAdmin, _ = r.Context().Value(Admin).(bool)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/shift", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			JWTMiddleware(validatorMock, discardLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectNext {
				assert.Equal(t, "operator", gotUsername)
				assert.True(t, gotAdmin)
			}
			validatorMock.AssertExpectations(t)
		})
	}
}

func TestActiveShiftMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		username       string
		hasSession     bool
		expectedStatus int
	}{
		{name: "open shift", username: "operator", hasSession: true, expectedStatus: http.StatusOK},
		{name: "no open shift", username: "operator", hasSession: false, expectedStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessionsMock := new(MockSessions)
			sessionsMock.On("HasSession", tt.username).Return(tt.hasSession)

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/visitors", nil)
			req = req.WithContext(context.WithValue(req.Context(), User, tt.username))
			rec := httptest.NewRecorder()

			ActiveShiftMiddleware(sessionsMock, discardLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestActiveShiftMiddleware_NoUsername(t *testing.T) {
	sessionsMock := new(MockSessions)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/visitors", nil)
	rec := httptest.NewRecorder()

	ActiveShiftMiddleware(sessionsMock, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	sessionsMock.AssertNotCalled(t, "HasSession", mock.Anything)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		isAdmin        any
		expectedStatus int
	}{
		{name: "admin", isAdmin: true, expectedStatus: http.StatusOK},
		{name: "operator", isAdmin: false, expectedStatus: http.StatusForbidden},
		{name: "missing flag", isAdmin: nil, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
			if tt.isAdmin != nil {
				req = req.WithContext(context.WithValue(req.Context(), Admin, tt.isAdmin))
			}
			rec := httptest.NewRecorder()

			AdminOnlyMiddleware(discardLogger())(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
