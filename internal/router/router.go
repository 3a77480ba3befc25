package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/urbanchill/cafe-console/internal/auth"       // session manager backing the auth middleware
	"github.com/urbanchill/cafe-console/internal/handler"    // import the handlers that implement business logic
	"github.com/urbanchill/cafe-console/internal/middleware" // import middleware for session authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler. This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. Login lives under /v1/auth
// and requires no existing session; logout, /v1/admin/me and the password
// change sit behind the session middleware so only the holder of a live
// session token can reach them.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, mgr *auth.Manager) {
	g := e.Group("/v1/auth")
	// Login verifies credentials and issues the session token.
	g.POST("/login", a.Login)
	// Logout wipes the session records. The records are server-wide, so the
	// route demands a valid bearer token; otherwise any anonymous client
	// could revoke the admin's session. An expired token needs no logout,
	// the records are already gone.
	g.POST("/logout", a.Logout, middleware.SessionAuth(mgr))

	// Protected identity endpoints under /v1/admin.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.SessionAuth(mgr))
	admin.Use(middleware.RequireRole(auth.RoleAdmin))
	admin.GET("/me", a.Me)
	admin.POST("/password", a.ChangePassword)
}

// RegisterPublic registers the unauthenticated site endpoints. The optional
// cache middleware (nil when Redis is unavailable) fronts these GETs so the
// marketing pages stay cheap to serve.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if cache != nil {
		g.Use(cache)
	}
	// Business profile shown on the home and contact pages.
	g.GET("/business", p.GetBusiness)
	// Seven-day operating hours map.
	g.GET("/hours", p.GetHours)
	// Branding document (colors, font, logo) for the site shell.
	g.GET("/branding", p.GetBranding)
	// Menu listing with optional ?category= and ?available= filters.
	g.GET("/menu", p.GetMenu)
	// Distinct category names for the filter bar.
	g.GET("/menu/categories", p.GetCategories)
}

// RegisterAdmin registers the content-mutation endpoints. Every route runs
// the session middleware followed by the admin role check.
func RegisterAdmin(e *echo.Echo, mgr *auth.Manager,
	b *handler.AdminBusinessHandler, m *handler.AdminMenuHandler, s *handler.SettingsHandler) {

	admin := e.Group("/v1/admin")
	admin.Use(middleware.SessionAuth(mgr))
	admin.Use(middleware.RequireRole(auth.RoleAdmin))

	// Business profile and hours.
	admin.PUT("/business", b.UpdateBusiness)
	admin.PUT("/hours", b.UpdateHours)
	admin.PATCH("/hours/:day", b.PatchDayHours)
	admin.PUT("/branding", b.UpdateBranding)

	// Menu collection.
	admin.GET("/menu", m.List)
	admin.POST("/menu", m.Add)
	admin.PATCH("/menu/:id", m.Update)
	admin.DELETE("/menu/:id", m.Delete)
	admin.GET("/stats", m.Stats)

	// Backup, restore and the PWA install flag.
	admin.GET("/export", s.Export)
	admin.POST("/import", s.Import)
	admin.GET("/pwa/install-dismissed", s.GetInstallDismissed)
	admin.PUT("/pwa/install-dismissed", s.PutInstallDismissed)
}
