package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/urbanchill/cafe-console/internal/auth"
	"github.com/urbanchill/cafe-console/internal/middleware"
	"github.com/urbanchill/cafe-console/internal/repository"
)

func newTestAuth(t *testing.T) *auth.Manager {
	t.Helper()
	mgr, err := auth.NewManager(
		repository.NewMemoryDocumentStore(),
		repository.NewMemorySessionStore(),
		"test-secret", bcrypt.MinCost, time.Hour, "admin", "peterl123")
	require.NoError(t, err)
	return mgr
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	mgr := newTestAuth(t)
	e := echo.New()
	h := NewAuthHandler(mgr)
	e.POST("/v1/auth/login", h.Login)

	rec := postJSON(e, "/v1/auth/login", `{"username":"admin","password":"peterl123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, "admin", resp.User.Role)
	assert.NotEmpty(t, resp.Token.Token)
	assert.True(t, resp.Token.Expires.After(time.Now()))
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	mgr := newTestAuth(t)
	e := echo.New()
	e.POST("/v1/auth/login", NewAuthHandler(mgr).Login)

	rec := postJSON(e, "/v1/auth/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLoginEndpointMissingFields(t *testing.T) {
	mgr := newTestAuth(t)
	e := echo.New()
	e.POST("/v1/auth/login", NewAuthHandler(mgr).Login)

	rec := postJSON(e, "/v1/auth/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestLogoutEndpointRequiresToken guards the server-wide session records:
// only the token holder may revoke the session.
func TestLogoutEndpointRequiresToken(t *testing.T) {
	mgr := newTestAuth(t)
	h := NewAuthHandler(mgr)
	e := echo.New()
	e.POST("/v1/auth/login", h.Login)
	e.POST("/v1/auth/logout", h.Logout, middleware.SessionAuth(mgr))

	rec := postJSON(e, "/v1/auth/login", `{"username":"admin","password":"peterl123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// An anonymous logout is rejected and leaves the session alive.
	rec = postJSON(e, "/v1/auth/logout", ``)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	sess, ok := mgr.Validate(context.Background(), resp.Token.Token)
	require.True(t, ok)
	assert.Equal(t, "admin", sess.Username)

	// The token holder can log out, which revokes the token.
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token.Token)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusNoContent, out.Code)
	_, ok = mgr.Validate(context.Background(), resp.Token.Token)
	assert.False(t, ok)
}

// TestProtectedRoute walks the full middleware chain: login, call a
// protected endpoint with and without the token, then logout and verify the
// token is revoked.
func TestProtectedRoute(t *testing.T) {
	mgr := newTestAuth(t)
	h := NewAuthHandler(mgr)
	e := echo.New()
	e.POST("/v1/auth/login", h.Login)
	admin := e.Group("/v1/admin")
	admin.Use(middleware.SessionAuth(mgr))
	admin.Use(middleware.RequireRole(auth.RoleAdmin))
	admin.GET("/me", h.Me)

	rec := postJSON(e, "/v1/auth/login", `{"username":"admin","password":"peterl123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp loginResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Without a token.
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)

	// With the issued token.
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token.Token)
	out = httptest.NewRecorder()
	e.ServeHTTP(out, req)
	require.Equal(t, http.StatusOK, out.Code)
	assert.Contains(t, out.Body.String(), `"username":"admin"`)

	// After logout the same token is rejected.
	require.NoError(t, mgr.Logout(req.Context()))
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token.Token)
	out = httptest.NewRecorder()
	e.ServeHTTP(out, req)
	assert.Equal(t, http.StatusUnauthorized, out.Code)
}

func TestChangePasswordEndpoint(t *testing.T) {
	mgr := newTestAuth(t)
	e := echo.New()
	h := NewAuthHandler(mgr)
	e.POST("/v1/admin/password", h.ChangePassword)
	e.POST("/v1/auth/login", h.Login)

	rec := postJSON(e, "/v1/admin/password", `{"current_password":"peterl123","new_password":"espresso42"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = postJSON(e, "/v1/auth/login", `{"username":"admin","password":"espresso42"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = postJSON(e, "/v1/auth/login", `{"username":"admin","password":"peterl123"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordEndpointWrongCurrent(t *testing.T) {
	mgr := newTestAuth(t)
	e := echo.New()
	e.POST("/v1/admin/password", NewAuthHandler(mgr).ChangePassword)

	rec := postJSON(e, "/v1/admin/password", `{"current_password":"nope","new_password":"espresso42"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
