package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/queue"
	"github.com/urbanchill/cafe-console/internal/repository"
	"github.com/urbanchill/cafe-console/internal/store"
)

// recordingPublisher captures events instead of dialing a broker.
type recordingPublisher struct{ events []queue.ContentUpdatedEvent }

func (r *recordingPublisher) publish(_ context.Context, ev queue.ContentUpdatedEvent) error {
	r.events = append(r.events, ev)
	return nil
}

func newMenuTestServer(t *testing.T) (*echo.Echo, *store.Store, *recordingPublisher) {
	t.Helper()
	docs := repository.NewMemoryDocumentStore()
	st := store.New(docs)
	st.Load(context.Background())
	rec := &recordingPublisher{}

	e := echo.New()
	h := NewAdminMenuHandler(st, rec.publish)
	e.GET("/v1/admin/menu", h.List)
	e.POST("/v1/admin/menu", h.Add)
	e.PATCH("/v1/admin/menu/:id", h.Update)
	e.DELETE("/v1/admin/menu/:id", h.Delete)
	e.GET("/v1/admin/stats", h.Stats)
	return e, st, rec
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	out := httptest.NewRecorder()
	e.ServeHTTP(out, req)
	return out
}

func TestAddMenuItemEndpoint(t *testing.T) {
	e, st, pub := newMenuTestServer(t)

	out := do(e, http.MethodPost, "/v1/admin/menu",
		`{"name":"Latte","price":5,"category":"Coffee","available":true}`)
	require.Equal(t, http.StatusCreated, out.Code)

	var item model.MenuItem
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &item))
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Latte", item.Name)
	assert.Len(t, st.Menu(), 5)

	require.Len(t, pub.events, 1)
	assert.Equal(t, queue.AggregateMenuItems, pub.events[0].Aggregate)
	assert.Equal(t, "add", pub.events[0].Action)
	assert.Equal(t, item.ID, pub.events[0].ItemID)
}

func TestAddMenuItemIgnoresClientID(t *testing.T) {
	e, st, _ := newMenuTestServer(t)

	out := do(e, http.MethodPost, "/v1/admin/menu", `{"id":42,"name":"Latte","category":"Coffee"}`)
	require.Equal(t, http.StatusCreated, out.Code)

	var item model.MenuItem
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &item))
	assert.NotEqual(t, int64(42), item.ID, "ids are assigned by the store")
	assert.Len(t, st.Menu(), 5)
}

func TestUpdateMenuItemEndpoint(t *testing.T) {
	e, st, _ := newMenuTestServer(t)
	target := st.Menu()[1]

	out := do(e, http.MethodPatch, "/v1/admin/menu/"+itoa(target.ID), `{"available":false}`)
	require.Equal(t, http.StatusNoContent, out.Code)

	updated := st.Menu()[1]
	assert.False(t, updated.Available)
	assert.Equal(t, target.Name, updated.Name)
	assert.Equal(t, target.Price, updated.Price)
}

func TestUpdateMenuItemUnknownID(t *testing.T) {
	e, st, _ := newMenuTestServer(t)
	before := st.Menu()

	out := do(e, http.MethodPatch, "/v1/admin/menu/999999", `{"available":false}`)
	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.Equal(t, before, st.Menu())
}

func TestDeleteMenuItemEndpointIdempotent(t *testing.T) {
	e, st, _ := newMenuTestServer(t)
	id := st.Menu()[0].ID

	out := do(e, http.MethodDelete, "/v1/admin/menu/"+itoa(id), "")
	assert.Equal(t, http.StatusNoContent, out.Code)
	out = do(e, http.MethodDelete, "/v1/admin/menu/"+itoa(id), "")
	assert.Equal(t, http.StatusNoContent, out.Code)
	assert.Len(t, st.Menu(), 3)
}

func TestDeleteMenuItemBadID(t *testing.T) {
	e, _, _ := newMenuTestServer(t)
	out := do(e, http.MethodDelete, "/v1/admin/menu/latte", "")
	assert.Equal(t, http.StatusBadRequest, out.Code)
}

func TestStatsEndpoint(t *testing.T) {
	e, _, _ := newMenuTestServer(t)

	out := do(e, http.MethodGet, "/v1/admin/stats", "")
	require.Equal(t, http.StatusOK, out.Code)

	var stats model.MenuStats
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &stats))
	assert.Equal(t, 4, stats.TotalItems)
	assert.Equal(t, 3, stats.Categories)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
