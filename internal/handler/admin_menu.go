package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/queue"
	"github.com/urbanchill/cafe-console/internal/store"
)

// AdminMenuHandler owns the menu collection endpoints behind the admin
// session middleware.
type AdminMenuHandler struct {
	Store   *store.Store
	Publish EventPublisher
}

func NewAdminMenuHandler(s *store.Store, publish EventPublisher) *AdminMenuHandler {
	return &AdminMenuHandler{Store: s, Publish: publish}
}

type menuItemReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

// List returns the full collection in insertion order, unavailable items
// included, for the admin table view.
func (h *AdminMenuHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Menu())
}

// Add creates a menu item. The id is assigned by the store; any id in the
// request body is ignored by construction since the DTO has no id field.
func (h *AdminMenuHandler) Add(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	item, err := h.Store.AddMenuItem(c.Request().Context(), model.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Image:       req.Image,
		Available:   req.Available,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateMenuItems, "add", item.ID)
	return c.JSON(http.StatusCreated, item)
}

// Update shallow-merges the provided fields onto the item with the given id.
// An unknown id leaves the collection unchanged and still returns 204, the
// same silent no-op the store performs.
func (h *AdminMenuHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var patch model.MenuItemPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	if err := h.Store.UpdateMenuItem(c.Request().Context(), id, patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateMenuItems, "update", id)
	return c.NoContent(http.StatusNoContent)
}

// Delete removes the item with the given id. Deleting an absent id is
// idempotent and returns 204 as well.
func (h *AdminMenuHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	if err := h.Store.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateMenuItems, "delete", id)
	return c.NoContent(http.StatusNoContent)
}

// Stats returns the dashboard aggregates derived from the menu collection.
func (h *AdminMenuHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Stats())
}
