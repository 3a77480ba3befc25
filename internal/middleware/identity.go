package middleware

// identity.go defines helpers shared across middleware files. currentUsername
// pulls the username placed in the Echo context by SessionAuth; "guest" is
// returned for unauthenticated requests so rate-limit keys stay stable.

import "github.com/labstack/echo/v4"

// currentUsername extracts the authenticated username from context, or
// "guest" when the request carries no session.
func currentUsername(c echo.Context) string {
	if v := c.Get("username"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "guest"
}
