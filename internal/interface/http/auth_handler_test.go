package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/aquapure-store/internal/infra/kv"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": "wrong"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Incorrect password!", decodeBody(t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	token := env.login(t, "admin123")

	flag, err := env.store.Get(context.Background(), kv.KeyAdminLoggedIn)
	require.NoError(t, err)
	require.Equal(t, "true", flag)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/session", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	remaining := decodeBody(t, rec)["remaining_seconds"].(float64)
	require.InDelta(t, 7200, remaining, 5)
}

func TestLogout_EndsSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")

	rec := env.do(t, http.MethodPost, "/api/v1/admin/logout", nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/session", nil, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	_, err := env.store.Get(context.Background(), kv.KeyAdminLoggedIn)
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestLogout_ImmediateReloginRevokesOldToken(t *testing.T) {
	env := newTestEnv(t)
	first := env.login(t, "admin123")

	require.Equal(t, http.StatusNoContent, env.do(t, http.MethodPost, "/api/v1/admin/logout", nil, first).Code)
	second := env.login(t, "admin123")

	require.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/admin/session", nil, first).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/admin/session", nil, second).Code)
}

func TestRenewSession(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")

	rec := env.do(t, http.MethodPost, "/api/v1/admin/session/renew", nil, token)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.NotEmpty(t, body["token"])
	require.Equal(t, "Session renewed!", body["message"])
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t, "admin123")

	tests := []struct {
		name    string
		body    map[string]string
		wantErr string
	}{
		{
			name:    "missing fields",
			body:    map[string]string{"current_password": "admin123"},
			wantErr: "please fill all password fields",
		},
		{
			name:    "wrong current",
			body:    map[string]string{"current_password": "x", "new_password": "secret99", "confirm_password": "secret99"},
			wantErr: "current password is incorrect",
		},
		{
			name:    "mismatch",
			body:    map[string]string{"current_password": "admin123", "new_password": "secret99", "confirm_password": "secret98"},
			wantErr: "new passwords do not match",
		},
		{
			name:    "too short",
			body:    map[string]string{"current_password": "admin123", "new_password": "abc", "confirm_password": "abc"},
			wantErr: "password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/api/v1/admin/password", tt.body, token)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			require.Equal(t, tt.wantErr, decodeBody(t, rec)["error"])
		})
	}

	rec := env.do(t, http.MethodPut, "/api/v1/admin/password", map[string]string{
		"current_password": "admin123",
		"new_password":     "secret99",
		"confirm_password": "secret99",
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The session ended with the password change.
	rec = env.do(t, http.MethodGet, "/api/v1/admin/session", nil, token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/login", map[string]string{"password": "admin123"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token = env.login(t, "secret99")

	rec = env.do(t, http.MethodPost, "/api/v1/admin/password/reset", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	env.login(t, "admin123")
}

func TestLogin_RateLimitedPerIP(t *testing.T) {
	env := newTestEnv(t, withLoginRate(2))

	attempt := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"wrong"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusUnauthorized, attempt("203.0.113.7"))
	require.Equal(t, http.StatusUnauthorized, attempt("203.0.113.7"))
	require.Equal(t, http.StatusTooManyRequests, attempt("203.0.113.7"))
	require.Equal(t, http.StatusUnauthorized, attempt("203.0.113.8"))
}

func TestPasswordStrength(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		password string
		label    string
	}{
		{"abc", "Very Weak"},
		{"abcdefgh", "Weak"},
		{"Abcdefgh", "Medium"},
		{"Abcdefg1", "Strong"},
		{"Abcdef1!", "Very Strong"},
	}

	for _, tt := range tests {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/password/strength", map[string]string{"password": tt.password}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, tt.label, decodeBody(t, rec)["label"], tt.password)
	}
}
