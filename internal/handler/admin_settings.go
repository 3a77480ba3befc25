package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbanchill/cafe-console/internal/queue"
	"github.com/urbanchill/cafe-console/internal/repository"
	"github.com/urbanchill/cafe-console/internal/store"
)

// importBodyLimit bounds how much of an uploaded backup is read.
const importBodyLimit = 4 << 20 // 4 MiB

// SettingsHandler owns data export/import and the PWA install-prompt flag.
type SettingsHandler struct {
	Store   *store.Store
	Docs    repository.DocumentStore
	Publish EventPublisher
}

func NewSettingsHandler(s *store.Store, docs repository.DocumentStore, publish EventPublisher) *SettingsHandler {
	return &SettingsHandler{Store: s, Docs: docs, Publish: publish}
}

// Export bundles the four business aggregates plus an export timestamp into
// a single downloadable JSON document.
func (h *SettingsHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="cafe-data-export.json"`)
	return c.JSONPretty(http.StatusOK, h.Store.Export(), "  ")
}

// Import accepts an export bundle and overwrites the stored documents for
// every section it contains. No schema versioning or validation is applied;
// a body that is not JSON at all is rejected. The store reloads afterwards
// so the change takes effect without restarting the service.
func (h *SettingsHandler) Import(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, importBodyLimit))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid file format"})
	}
	ctx := c.Request().Context()
	if err := h.Store.Import(ctx, body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid file format"})
	}
	h.Store.Load(ctx)
	notify(c, h.Publish, queue.AggregateAll, "import", 0)
	return c.JSON(http.StatusOK, echo.Map{"status": "imported"})
}

type installDismissedDoc struct {
	Dismissed bool `json:"dismissed"`
}

// GetInstallDismissed reports whether the PWA install prompt was dismissed.
// An absent or malformed flag reads as false.
func (h *SettingsHandler) GetInstallDismissed(c echo.Context) error {
	var doc installDismissedDoc
	if body, err := h.Docs.Get(c.Request().Context(), repository.KeyPWADismissed); err == nil {
		_ = json.Unmarshal(body, &doc)
	}
	return c.JSON(http.StatusOK, doc)
}

// PutInstallDismissed persists the install-prompt flag.
func (h *SettingsHandler) PutInstallDismissed(c echo.Context) error {
	var doc installDismissedDoc
	if err := c.Bind(&doc); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	if err := h.Docs.Put(c.Request().Context(), repository.KeyPWADismissed, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	return c.JSON(http.StatusOK, doc)
}
