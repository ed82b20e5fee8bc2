package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-backoffice/internal/http/middlewarectx"
	customjwt "github.com/magabrotheeeer/gym-backoffice/internal/lib/jwt"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"

	"io"
	"log/slog"
)

// Mock for auth service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (*customjwt.CustomClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*customjwt.CustomClaims)
	return claims, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handlerCalled := false

	// Test handler which checks context values
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		staffID := r.Context().Value(middlewarectx.StaffID)
		username := r.Context().Value(middlewarectx.User)
		role := r.Context().Value(middlewarectx.Role)
		assert.Equal(t, "3f6c1f7a-0001-4f3a-9f1e-000000000001", staffID)
		assert.Equal(t, "Maria Silva", username)
		assert.Equal(t, "administrator", role)
		w.WriteHeader(http.StatusOK)
	})

	middleware := middlewarectx.JWTMiddleware(authMock, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		mockClaims     *customjwt.CustomClaims
		mockErr        error
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing Authorization header",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "invalid Authorization header prefix",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "token validation error",
			authHeader:     "Bearer token",
			mockClaims:     nil,
			mockErr:        errors.New("token is expired"),
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer validtoken",
			mockClaims: &customjwt.CustomClaims{
				StaffID:     "3f6c1f7a-0001-4f3a-9f1e-000000000001",
				Name:        "Maria Silva",
				AccessLevel: "administrator",
			},
			mockErr:        nil,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			authMock.ExpectedCalls = nil // reset calls
			authMock.Calls = nil
			if tt.mockClaims != nil || tt.mockErr != nil {
				authMock.On("ValidateToken", mock.Anything, strings.TrimPrefix(tt.authHeader, "Bearer ")).
					Return(tt.mockClaims, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestRequireAccessLevel(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		role           string
		allowed        []models.AccessLevel
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "administrator allowed",
			role:           "administrator",
			allowed:        []models.AccessLevel{models.AccessAdministrator, models.AccessSuperAdmin},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "employee rejected",
			role:           "employee",
			allowed:        []models.AccessLevel{models.AccessAdministrator, models.AccessSuperAdmin},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
		},
		{
			name:           "role missing in context",
			role:           "",
			allowed:        []models.AccessLevel{models.AccessAdministrator},
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			middleware := middlewarectx.RequireAccessLevel(logger, tt.allowed...)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.role != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.Role, tt.role)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}
