package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/urbanchill/cafe-console/internal/auth"
)

// AuthHandler bundles dependencies for the session endpoints.
type AuthHandler struct {
	Manager *auth.Manager
}

func NewAuthHandler(m *auth.Manager) *AuthHandler { return &AuthHandler{Manager: m} }

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type userPart struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type loginResp struct {
	User  userPart  `json:"user"`
	Token tokenPart `json:"token"`
}

// Login verifies the admin credentials and issues a session. Bad credentials
// come back as 401 with a generic message; nothing distinguishes a wrong
// username from a wrong password.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	issued, err := h.Manager.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if issued == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	return c.JSON(http.StatusOK, loginResp{
		User:  userPart{Username: issued.Session.Username, Role: issued.Session.Role},
		Token: tokenPart{Token: issued.Token, Expires: issued.Expires},
	})
}

// Logout deletes the session records and always returns 204 (protected; the
// route's session middleware keeps anonymous clients from revoking the
// admin's session).
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Manager.Logout(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity of the authenticated session (protected).
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"username": c.Get("username"),
		"role":     c.Get("role"),
	})
}

// ChangePassword verifies the current password and replaces the stored
// credential record with one hashed from the new password (protected).
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_password/new_password required"})
	}

	ok, err := h.Manager.ChangePassword(c.Request().Context(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "change password failed"})
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	return c.NoContent(http.StatusNoContent)
}
