package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/repository"
)

func newTestStore(t *testing.T) (*Store, *repository.MemoryDocumentStore) {
	t.Helper()
	docs := repository.NewMemoryDocumentStore()
	s := New(docs)
	s.Load(context.Background())
	return s, docs
}

func TestDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.Equal(t, "Urban Chill Cafe", s.Profile().Name)
	assert.Len(t, s.Menu(), 4)
	assert.Equal(t, []string{"Coffee", "Food", "Pastries"}, s.Categories())

	hours := s.Hours()
	require.Len(t, hours, 7)
	assert.Equal(t, model.DayHours{Open: "07:00", Close: "18:00"}, hours["monday"])
	assert.Equal(t, model.DayHours{Open: "08:00", Close: "17:00"}, hours["sunday"])
}

func TestAddMenuItem(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	item, err := s.AddMenuItem(ctx, model.MenuItem{
		Name: "Latte", Price: 5, Category: "Coffee", Available: true,
	})
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	menu := s.Menu()
	assert.Len(t, menu, 5)
	for _, existing := range menu[:4] {
		assert.NotEqual(t, existing.ID, item.ID)
	}
	assert.Contains(t, s.Categories(), "Coffee")
	assert.Equal(t, item, menu[4], "insertion order defines display order")
}

func TestAddMenuItemIDsIncrease(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	a, err := s.AddMenuItem(ctx, model.MenuItem{Name: "Flat White", Category: "Coffee"})
	require.NoError(t, err)
	b, err := s.AddMenuItem(ctx, model.MenuItem{Name: "Mocha", Category: "Coffee"})
	require.NoError(t, err)
	assert.Greater(t, b.ID, a.ID)
}

func TestAddMenuItemPersists(t *testing.T) {
	s, docs := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddMenuItem(ctx, model.MenuItem{Name: "Latte", Price: 5, Category: "Coffee"})
	require.NoError(t, err)

	reloaded := New(docs)
	reloaded.Load(ctx)
	assert.Len(t, reloaded.Menu(), 5)
}

func TestUpdateMenuItemMergesOnlyGivenFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before := s.Menu()[0]
	avail := false
	require.NoError(t, s.UpdateMenuItem(ctx, before.ID, model.MenuItemPatch{Available: &avail}))

	after := s.Menu()[0]
	assert.False(t, after.Available)
	after.Available = before.Available
	assert.Equal(t, before, after, "all other fields must be untouched")
}

func TestUpdateMenuItemUnknownIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before := s.Menu()
	name := "Ghost"
	require.NoError(t, s.UpdateMenuItem(ctx, 999999, model.MenuItemPatch{Name: &name}))
	assert.Equal(t, before, s.Menu())
}

func TestDeleteMenuItemIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	id := s.Menu()[0].ID
	require.NoError(t, s.DeleteMenuItem(ctx, id))
	afterOnce := s.Menu()
	require.NoError(t, s.DeleteMenuItem(ctx, id))
	assert.Equal(t, afterOnce, s.Menu())
	assert.Len(t, s.Menu(), 3)
}

func TestSetDayHours(t *testing.T) {
	s, docs := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetDayHours(ctx, "monday", "open", "06:30"))
	assert.Equal(t, "06:30", s.Hours()["monday"].Open)

	require.NoError(t, s.SetDayHours(ctx, "sunday", "closed", true))
	sunday := s.Hours()["sunday"]
	assert.True(t, sunday.Closed)
	// Times are retained for display when the day reopens.
	assert.Equal(t, "08:00", sunday.Open)

	// The whole map is written back, not a partial patch.
	body, err := docs.Get(ctx, repository.KeyOperatingHours)
	require.NoError(t, err)
	var stored model.OperatingHours
	require.NoError(t, json.Unmarshal(body, &stored))
	assert.Len(t, stored, 7)

	assert.ErrorIs(t, s.SetDayHours(ctx, "funday", "open", "09:00"), ErrBadField)
	assert.ErrorIs(t, s.SetDayHours(ctx, "monday", "brunch", "09:00"), ErrBadField)
	assert.ErrorIs(t, s.SetDayHours(ctx, "monday", "closed", "yes"), ErrBadField)
}

func TestUpdateHoursFillsMissingDays(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.UpdateHours(context.Background(), model.OperatingHours{
		"monday": {Open: "09:00", Close: "15:00"},
	}))
	hours := s.Hours()
	assert.Len(t, hours, 7)
	assert.Equal(t, "09:00", hours["monday"].Open)
	assert.Equal(t, "07:00", hours["tuesday"].Open)
}

func TestUpdateProfileReplacesWholeDocument(t *testing.T) {
	s, docs := newTestStore(t)
	ctx := context.Background()

	p := model.BusinessProfile{Name: "Urban Chill", Email: "hello@urbanchill.com.au"}
	require.NoError(t, s.UpdateProfile(ctx, p))
	assert.Equal(t, p, s.Profile())

	reloaded := New(docs)
	reloaded.Load(ctx)
	assert.Equal(t, p, reloaded.Profile())
}

func TestLoadKeepsDefaultsOnMalformedDocument(t *testing.T) {
	docs := repository.NewMemoryDocumentStore()
	ctx := context.Background()
	require.NoError(t, docs.Put(ctx, repository.KeyMenuItems, []byte("{broken")))
	require.NoError(t, docs.Put(ctx, repository.KeyBranding, []byte("[]")))

	s := New(docs)
	s.Load(ctx)
	assert.Len(t, s.Menu(), 4, "malformed menu document falls back to defaults")
	assert.Equal(t, "#8B4513", s.Branding().PrimaryColor)
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	stats := s.Stats()
	assert.Equal(t, 4, stats.TotalItems)
	assert.Equal(t, 4, stats.AvailableItems)
	assert.Equal(t, 3, stats.Categories)
	assert.InDelta(t, 6.375, stats.AveragePrice, 1e-9)

	avail := false
	require.NoError(t, s.UpdateMenuItem(ctx, s.Menu()[0].ID, model.MenuItemPatch{Available: &avail}))
	assert.Equal(t, 3, s.Stats().AvailableItems)
}

func TestStatsEmptyMenu(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	for _, item := range s.Menu() {
		require.NoError(t, s.DeleteMenuItem(ctx, item.ID))
	}
	stats := s.Stats()
	assert.Zero(t, stats.TotalItems)
	assert.Zero(t, stats.AveragePrice)
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddMenuItem(ctx, model.MenuItem{Name: "Green Tea", Category: "Tea"})
	require.NoError(t, err)
	_, err = s.AddMenuItem(ctx, model.MenuItem{Name: "Ristretto", Category: "Coffee"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Coffee", "Food", "Pastries", "Tea"}, s.Categories())
}

func TestExportImportRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.AddMenuItem(ctx, model.MenuItem{Name: "Latte", Price: 5, Category: "Coffee", Available: true})
	require.NoError(t, err)
	require.NoError(t, s.SetDayHours(ctx, "sunday", "closed", true))

	bundle := s.Export()
	require.NotEmpty(t, bundle.ExportDate)
	raw, err := json.Marshal(bundle)
	require.NoError(t, err)

	fresh := New(repository.NewMemoryDocumentStore())
	require.NoError(t, fresh.Import(ctx, raw))
	fresh.Load(ctx)

	assert.Equal(t, s.Profile(), fresh.Profile())
	assert.Equal(t, s.Hours(), fresh.Hours())
	assert.Equal(t, s.Menu(), fresh.Menu())
	assert.Equal(t, s.Branding(), fresh.Branding())
}

func TestExportImportRoundTripEmptyMenu(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, item := range s.Menu() {
		require.NoError(t, s.DeleteMenuItem(ctx, item.ID))
	}
	require.Empty(t, s.Menu())

	raw, err := json.Marshal(s.Export())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"menuItems":[]`, "an empty menu is still a present section")

	fresh := New(repository.NewMemoryDocumentStore())
	require.NoError(t, fresh.Import(ctx, raw))
	fresh.Load(ctx)

	assert.Empty(t, fresh.Menu(), "importing an empty menu must not resurrect the defaults")
}

func TestImportOverwritesOnlyPresentSections(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Import(ctx, []byte(`{"branding":{"primaryColor":"#000000"}}`)))
	s.Load(ctx)

	assert.Equal(t, "#000000", s.Branding().PrimaryColor)
	assert.Len(t, s.Menu(), 4, "absent sections keep their current data")
}

func TestImportRejectsNonJSON(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Error(t, s.Import(context.Background(), []byte("not a json file")))
}

func TestImportDoesNotTouchMemoryUntilLoad(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Import(ctx, []byte(`{"businessInfo":{"name":"Renamed"}}`)))
	assert.Equal(t, "Urban Chill Cafe", s.Profile().Name)
	s.Load(ctx)
	assert.Equal(t, "Renamed", s.Profile().Name)
}
