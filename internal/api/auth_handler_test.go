package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/dailyplan-api/internal/api/shared"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/mocks"
	"github.com/phrazzld/dailyplan-api/internal/service"
	"github.com/phrazzld/dailyplan-api/internal/service/auth"
	"github.com/phrazzld/dailyplan-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = req.WithContext(shared.SetTraceID(req.Context()))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	jwtService := auth.RequireTestJWTService(t)
	userID := uuid.New()

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       `{"email":"ada@example.com","password":"correct-horse-battery"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "email taken",
			body:       `{"email":"ada@example.com","password":"correct-horse-battery"}`,
			err:        store.ErrEmailExists,
			wantStatus: http.StatusConflict,
			wantError:  "Email already exists",
		},
		{
			name:       "short password",
			body:       `{"email":"ada@example.com","password":"short"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid Password: too short",
		},
		{
			name:       "bad email",
			body:       `{"email":"not-an-email","password":"correct-horse-battery"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid Email: invalid email format",
		},
		{
			name:       "malformed",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserService{
				registerFn: func(_ context.Context, email, _ string) (*domain.User, error) {
					if tc.err != nil {
						return nil, tc.err
					}
					return &domain.User{ID: userID, Email: email}, nil
				},
			}
			handler := NewAuthHandler(users, jwtService)

			rec := postJSON(handler.Register, tc.body)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.wantStatus == http.StatusCreated {
				resp := decodeBody[AuthResponse](t, rec.Body.Bytes())
				assert.Equal(t, userID, resp.UserID)
				claims, err := jwtService.ValidateToken(context.Background(), resp.Token)
				require.NoError(t, err)
				assert.Equal(t, userID, claims.UserID)
				return
			}
			assert.Equal(t, tc.wantError, decodeBody[shared.ErrorResponse](t, rec.Body.Bytes()).Error)
		})
	}
}

func TestLogin(t *testing.T) {
	jwtService := auth.RequireTestJWTService(t)
	userID := uuid.New()

	users := &mockUserService{
		authenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			if email == "ada@example.com" && password == "correct-horse-battery" {
				return &domain.User{ID: userID, Email: email}, nil
			}
			if email == "broken@example.com" {
				return nil, errors.New("pq: connection reset")
			}
			return nil, service.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(users, jwtService)

	rec := postJSON(handler.Login, `{"email":"ada@example.com","password":"correct-horse-battery"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, decodeBody[AuthResponse](t, rec.Body.Bytes()).UserID)

	rec = postJSON(handler.Login, `{"email":"ada@example.com","password":"wrong-password-here"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody[shared.ErrorResponse](t, rec.Body.Bytes()).Error)

	rec = postJSON(handler.Login, `{"email":"broken@example.com","password":"whatever"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to authenticate user", decodeBody[shared.ErrorResponse](t, rec.Body.Bytes()).Error)
}

func TestLoginTokenFailure(t *testing.T) {
	users := &mockUserService{
		authenticateFn: func(_ context.Context, email, _ string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email}, nil
		},
	}
	jwtService := &mocks.MockJWTService{Err: errors.New("signing key unavailable")}
	handler := NewAuthHandler(users, jwtService)

	rec := postJSON(handler.Login, `{"email":"ada@example.com","password":"correct-horse-battery"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to generate authentication token",
		decodeBody[shared.ErrorResponse](t, rec.Body.Bytes()).Error)
	assert.NotContains(t, rec.Body.String(), "signing key")
}
