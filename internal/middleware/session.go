package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/urbanchill/cafe-console/internal/auth" // session manager validating bearer tokens
)

// SessionAuth returns an Echo middleware that validates a Bearer session
// token against the session manager and injects the session's username and
// role into the request context. Validation covers both the token signature
// and the live session record, so a logout immediately revokes outstanding
// tokens. Handlers behind this middleware can read the identity via
// `c.Get("username")` and `c.Get("role")`.
func SessionAuth(mgr *auth.Manager) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the token.
            // Anything else means the request is unauthenticated.
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            sess, ok := mgr.Validate(c.Request().Context(), raw)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            // Store the session identity in the context for handlers and
            // downstream middleware (role checks, rate-limit keys).
            c.Set("username", sess.Username)
            c.Set("role", sess.Role)
            return next(c)
        }
    }
}
