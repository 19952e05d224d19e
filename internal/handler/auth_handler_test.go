package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/techfest-api/internal/middleware"
	"github.com/noah-isme/techfest-api/internal/models"
	appErrors "github.com/noah-isme/techfest-api/pkg/errors"
)

type stubAuthService struct {
	resp     *models.LoginResponse
	history  *models.LoginHistory
	err      error
	lastReq  models.LoginRequest
	lastUser string
}

func (s *stubAuthService) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	s.lastReq = req
	return s.resp, s.err
}

func (s *stubAuthService) LoginHistory(_ context.Context, userID string) (*models.LoginHistory, error) {
	s.lastUser = userID
	return s.history, s.err
}

func TestAuthHandlerLogin(t *testing.T) {
	svc := &stubAuthService{resp: &models.LoginResponse{
		AccessToken: "token-123",
		ExpiresIn:   3600,
		User:        models.UserInfo{ID: "admin-1", Role: models.RoleAdmin},
	}}
	h := NewAuthHandler(svc)

	c, recorder := newTestContext(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.org",
		"password": "s3cret-pass",
	})
	c.Request.Header.Set("User-Agent", "console/1.0")
	h.Login(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "admin@example.org", svc.lastReq.Email)
	assert.Equal(t, "console/1.0", svc.lastReq.UserAgent, "caller details captured for auditing")

	env := decodeEnvelope(t, recorder)
	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, "token-123", resp.AccessToken)
}

func TestAuthHandlerLoginRejectsMissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: appErrors.ErrValidation})

	c, recorder := newTestContext(t, http.MethodPost, "/api/auth/login", map[string]string{})
	h.Login(c)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestAuthHandlerLoginFailure(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{err: appErrors.ErrInvalidCredentials})

	c, recorder := newTestContext(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@example.org",
		"password": "wrong",
	})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	env := decodeEnvelope(t, recorder)
	require.NotNil(t, env.Error)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, env.Error.Code)
}

func TestAuthHandlerLoginHistory(t *testing.T) {
	lastLogin := time.Date(2026, time.March, 9, 8, 0, 0, 0, time.UTC)
	svc := &stubAuthService{history: &models.LoginHistory{
		LastLogin:    &lastLogin,
		LastLoginIP:  "10.0.0.1",
		LoginHistory: []models.LoginRecord{{IP: "10.0.0.1", Timestamp: lastLogin}},
	}}
	h := NewAuthHandler(svc)

	c, recorder := newTestContext(t, http.MethodGet, "/api/admin/login-history", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "admin-1"})
	h.LoginHistory(c)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "admin-1", svc.lastUser)

	env := decodeEnvelope(t, recorder)
	var history models.LoginHistory
	require.NoError(t, json.Unmarshal(env.Data, &history))
	assert.Equal(t, "10.0.0.1", history.LastLoginIP)
	require.Len(t, history.LoginHistory, 1)
}

func TestAuthHandlerLoginHistoryRequiresClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, recorder := newTestContext(t, http.MethodGet, "/api/admin/login-history", nil)
	h.LoginHistory(c)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
