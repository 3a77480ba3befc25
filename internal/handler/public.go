package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/store"
)

// PublicHandler serves the read-only site endpoints: business profile,
// operating hours and the menu. These routes carry no authentication and sit
// behind the response cache when Redis is configured.
type PublicHandler struct {
	Store *store.Store
}

func NewPublicHandler(s *store.Store) *PublicHandler { return &PublicHandler{Store: s} }

// GetBusiness returns the business profile.
func (h *PublicHandler) GetBusiness(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Profile())
}

// GetHours returns the seven-day operating hours map.
func (h *PublicHandler) GetHours(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Hours())
}

// GetBranding returns the branding aggregate so the site can style itself.
func (h *PublicHandler) GetBranding(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Branding())
}

// GetMenu returns menu items in insertion order. Optional query parameters
// narrow the slice: ?category=Coffee filters by category, ?available=true|false
// by availability. The public site passes available=true; the values are
// derived views, the stored collection is never filtered in place.
func (h *PublicHandler) GetMenu(c echo.Context) error {
	items := h.Store.Menu()

	if cat := c.QueryParam("category"); cat != "" {
		filtered := make([]model.MenuItem, 0, len(items))
		for _, it := range items {
			if it.Category == cat {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	if avail := c.QueryParam("available"); avail != "" {
		want, err := strconv.ParseBool(avail)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "available must be true or false"})
		}
		filtered := make([]model.MenuItem, 0, len(items))
		for _, it := range items {
			if it.Available == want {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}
	return c.JSON(http.StatusOK, items)
}

// GetCategories returns the distinct menu categories in first-seen order,
// used by the public menu filter bar.
func (h *PublicHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Categories())
}
