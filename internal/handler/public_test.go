package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/repository"
	"github.com/urbanchill/cafe-console/internal/store"
)

func newPublicTestServer(t *testing.T) (*echo.Echo, *store.Store) {
	t.Helper()
	st := store.New(repository.NewMemoryDocumentStore())
	st.Load(context.Background())

	e := echo.New()
	h := NewPublicHandler(st)
	e.GET("/v1/business", h.GetBusiness)
	e.GET("/v1/hours", h.GetHours)
	e.GET("/v1/branding", h.GetBranding)
	e.GET("/v1/menu", h.GetMenu)
	e.GET("/v1/menu/categories", h.GetCategories)
	return e, st
}

func TestGetBusiness(t *testing.T) {
	e, _ := newPublicTestServer(t)

	out := do(e, http.MethodGet, "/v1/business", "")
	require.Equal(t, http.StatusOK, out.Code)

	var profile model.BusinessProfile
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &profile))
	assert.Equal(t, "Urban Chill Cafe", profile.Name)
}

func TestGetHoursHasSevenDays(t *testing.T) {
	e, _ := newPublicTestServer(t)

	out := do(e, http.MethodGet, "/v1/hours", "")
	require.Equal(t, http.StatusOK, out.Code)

	var hours model.OperatingHours
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &hours))
	assert.Len(t, hours, 7)
}

func TestGetMenuFilters(t *testing.T) {
	e, st := newPublicTestServer(t)
	ctx := context.Background()

	avail := false
	require.NoError(t, st.UpdateMenuItem(ctx, st.Menu()[0].ID, model.MenuItemPatch{Available: &avail}))

	out := do(e, http.MethodGet, "/v1/menu?category=Coffee", "")
	require.Equal(t, http.StatusOK, out.Code)
	var items []model.MenuItem
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	out = do(e, http.MethodGet, "/v1/menu?category=Coffee&available=true", "")
	require.Equal(t, http.StatusOK, out.Code)
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "Cappuccino", items[0].Name)

	out = do(e, http.MethodGet, "/v1/menu?available=maybe", "")
	assert.Equal(t, http.StatusBadRequest, out.Code)
}

func TestGetCategories(t *testing.T) {
	e, _ := newPublicTestServer(t)

	out := do(e, http.MethodGet, "/v1/menu/categories", "")
	require.Equal(t, http.StatusOK, out.Code)

	var cats []string
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &cats))
	assert.Equal(t, []string{"Coffee", "Food", "Pastries"}, cats)
}
