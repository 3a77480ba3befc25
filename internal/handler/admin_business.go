package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/queue"
	"github.com/urbanchill/cafe-console/internal/store"
)

// EventPublisher pushes a content-change event to the broker. Publishing is
// best effort: handlers log nothing themselves and never fail the request
// over a broker problem. A nil publisher disables events entirely.
type EventPublisher func(ctx context.Context, ev queue.ContentUpdatedEvent) error

// notify fires the publisher when one is configured. The returned error is
// deliberately dropped; the publisher already logs failures.
func notify(c echo.Context, publish EventPublisher, aggregate, action string, itemID int64) {
	if publish == nil {
		return
	}
	username, _ := c.Get("username").(string)
	_ = publish(c.Request().Context(), queue.ContentUpdatedEvent{
		Aggregate:  aggregate,
		Action:     action,
		ItemID:     itemID,
		Username:   username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// AdminBusinessHandler owns the profile and hours mutations behind the admin
// session middleware.
type AdminBusinessHandler struct {
	Store   *store.Store
	Publish EventPublisher
}

func NewAdminBusinessHandler(s *store.Store, publish EventPublisher) *AdminBusinessHandler {
	return &AdminBusinessHandler{Store: s, Publish: publish}
}

// UpdateBusiness replaces the whole business profile. The caller supplies
// the complete object; there is no partial-field merge at this level.
func (h *AdminBusinessHandler) UpdateBusiness(c echo.Context) error {
	var profile model.BusinessProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Store.UpdateProfile(c.Request().Context(), profile); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateBusinessInfo, "update", 0)
	return c.JSON(http.StatusOK, profile)
}

// UpdateHours replaces the whole operating-hours map. Missing weekdays are
// filled from the defaults so all seven keys stay present.
func (h *AdminBusinessHandler) UpdateHours(c echo.Context) error {
	var hours model.OperatingHours
	if err := c.Bind(&hours); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Store.UpdateHours(c.Request().Context(), hours); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateOperatingHours, "update", 0)
	return c.JSON(http.StatusOK, h.Store.Hours())
}

type dayHoursPatch struct {
	Field string          `json:"field"` // "open", "close" or "closed"
	Value json.RawMessage `json:"value"`
}

// PatchDayHours replaces one field of one weekday, writing the whole map
// back underneath (read-modify-write, not a partial patch at the
// persistence layer).
func (h *AdminBusinessHandler) PatchDayHours(c echo.Context) error {
	day := c.Param("day")
	var req dayHoursPatch
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var value any
	switch req.Field {
	case "closed":
		var b bool
		if err := json.Unmarshal(req.Value, &b); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "closed wants a bool"})
		}
		value = b
	default:
		var s string
		if err := json.Unmarshal(req.Value, &s); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "value must be a string"})
		}
		value = s
	}

	if err := h.Store.SetDayHours(c.Request().Context(), day, req.Field, value); err != nil {
		if errors.Is(err, store.ErrBadField) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateOperatingHours, "update", 0)
	return c.JSON(http.StatusOK, h.Store.Hours())
}

// UpdateBranding replaces the branding aggregate.
func (h *AdminBusinessHandler) UpdateBranding(c echo.Context) error {
	var branding model.Branding
	if err := c.Bind(&branding); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Store.UpdateBranding(c.Request().Context(), branding); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	notify(c, h.Publish, queue.AggregateBranding, "update", 0)
	return c.JSON(http.StatusOK, branding)
}
