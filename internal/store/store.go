// Package store implements the business data store: four independently
// persisted aggregates (profile, operating hours, menu, branding) mirrored
// between in-memory state and the durable document store, plus the derived
// views the admin dashboard and public menu need. Every mutation persists
// immediately; aggregates are written one document at a time with no
// cross-document transaction, last writer wins.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/urbanchill/cafe-console/internal/model"
	"github.com/urbanchill/cafe-console/internal/repository"
)

// ErrBadField is returned by SetDayHours for an unknown day, an unknown
// field name or a value of the wrong type.
var ErrBadField = errors.New("unknown day or field")

// Store holds the in-memory copy of the four aggregates. The mutex makes the
// read-modify-write mutations safe under concurrent HTTP handlers.
type Store struct {
	docs repository.DocumentStore

	mu       sync.RWMutex
	profile  model.BusinessProfile
	hours    model.OperatingHours
	menu     []model.MenuItem
	branding model.Branding
}

// New builds a store seeded with the compiled-in defaults. Call Load to
// replace them with any persisted overrides.
func New(docs repository.DocumentStore) *Store {
	return &Store{
		docs:     docs,
		profile:  defaultProfile(),
		hours:    defaultHours(),
		menu:     defaultMenu(),
		branding: defaultBranding(),
	}
}

// Load reads each aggregate's document and replaces the in-memory default on
// success. An absent or unparseable document keeps the default silently;
// loading never fails the caller.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile model.BusinessProfile
	if s.loadDoc(ctx, repository.KeyBusinessInfo, &profile) {
		s.profile = profile
	}
	var hours model.OperatingHours
	if s.loadDoc(ctx, repository.KeyOperatingHours, &hours) && len(hours) > 0 {
		s.hours = normalizeHours(hours)
	}
	var menu []model.MenuItem
	if s.loadDoc(ctx, repository.KeyMenuItems, &menu) {
		s.menu = menu
	}
	var branding model.Branding
	if s.loadDoc(ctx, repository.KeyBranding, &branding) {
		s.branding = branding
	}
}

func (s *Store) loadDoc(ctx context.Context, key string, out any) bool {
	body, err := s.docs.Get(ctx, key)
	if err != nil {
		return false
	}
	return json.Unmarshal(body, out) == nil
}

// normalizeHours fills any missing weekday from the defaults so all seven
// keys are always present.
func normalizeHours(h model.OperatingHours) model.OperatingHours {
	def := defaultHours()
	out := make(model.OperatingHours, len(model.Weekdays))
	for _, day := range model.Weekdays {
		if dh, ok := h[day]; ok {
			out[day] = dh
		} else {
			out[day] = def[day]
		}
	}
	return out
}

func (s *Store) persist(ctx context.Context, key string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.docs.Put(ctx, key, body)
}

// ----- read accessors (return copies) -----

func (s *Store) Profile() model.BusinessProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) Hours() model.OperatingHours {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.OperatingHours, len(s.hours))
	for k, v := range s.hours {
		out[k] = v
	}
	return out
}

func (s *Store) Menu() []model.MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MenuItem, len(s.menu))
	copy(out, s.menu)
	return out
}

func (s *Store) Branding() model.Branding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.branding
}

// ----- full-replace mutations -----

// UpdateProfile replaces the whole profile and persists it.
func (s *Store) UpdateProfile(ctx context.Context, p model.BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, repository.KeyBusinessInfo, p); err != nil {
		return err
	}
	s.profile = p
	return nil
}

// UpdateHours replaces the whole hours map (normalized to seven keys) and
// persists it.
func (s *Store) UpdateHours(ctx context.Context, h model.OperatingHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h = normalizeHours(h)
	if err := s.persist(ctx, repository.KeyOperatingHours, h); err != nil {
		return err
	}
	s.hours = h
	return nil
}

// UpdateBranding replaces the branding aggregate and persists it.
func (s *Store) UpdateBranding(ctx context.Context, b model.Branding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, repository.KeyBranding, b); err != nil {
		return err
	}
	s.branding = b
	return nil
}

// SetDayHours replaces one field of one day and writes the whole map back.
// field is one of "open", "close" or "closed"; value must be a string for
// the time fields and a bool for "closed".
func (s *Store) SetDayHours(ctx context.Context, day, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dh, ok := s.hours[day]
	if !ok {
		return fmt.Errorf("%w: %q", ErrBadField, day)
	}
	switch field {
	case "open":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: open wants a string", ErrBadField)
		}
		dh.Open = v
	case "close":
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: close wants a string", ErrBadField)
		}
		dh.Close = v
	case "closed":
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: closed wants a bool", ErrBadField)
		}
		dh.Closed = v
	default:
		return fmt.Errorf("%w: %q", ErrBadField, field)
	}

	updated := make(model.OperatingHours, len(s.hours))
	for k, v := range s.hours {
		updated[k] = v
	}
	updated[day] = dh
	if err := s.persist(ctx, repository.KeyOperatingHours, updated); err != nil {
		return err
	}
	s.hours = updated
	return nil
}

// ----- menu collection -----

// AddMenuItem assigns a fresh id, appends the item to the collection,
// persists and returns the stored item. IDs come from the creation timestamp
// in milliseconds, bumped past the current maximum so rapid additions still
// get unique, increasing ids.
func (s *Store) AddMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	for _, existing := range s.menu {
		if existing.ID >= id {
			id = existing.ID + 1
		}
	}
	item.ID = id

	updated := append(append([]model.MenuItem(nil), s.menu...), item)
	if err := s.persist(ctx, repository.KeyMenuItems, updated); err != nil {
		return model.MenuItem{}, err
	}
	s.menu = updated
	return item, nil
}

// UpdateMenuItem shallow-merges the patch onto the item with the given id.
// An unknown id leaves the collection unchanged and is not an error.
func (s *Store) UpdateMenuItem(ctx context.Context, id int64, patch model.MenuItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]model.MenuItem, len(s.menu))
	copy(updated, s.menu)
	found := false
	for i, item := range updated {
		if item.ID == id {
			updated[i] = patch.Apply(item)
			found = true
			break
		}
	}
	if !found {
		return nil
	}
	if err := s.persist(ctx, repository.KeyMenuItems, updated); err != nil {
		return err
	}
	s.menu = updated
	return nil
}

// DeleteMenuItem removes the item with the given id if present and persists
// either way, which makes the operation idempotent.
func (s *Store) DeleteMenuItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]model.MenuItem, 0, len(s.menu))
	for _, item := range s.menu {
		if item.ID != id {
			updated = append(updated, item)
		}
	}
	if err := s.persist(ctx, repository.KeyMenuItems, updated); err != nil {
		return err
	}
	s.menu = updated
	return nil
}

// ----- derived views -----

// Categories returns the distinct category values across current menu items
// in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.menu))
	out := make([]string, 0, len(s.menu))
	for _, item := range s.menu {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// Stats derives the dashboard aggregates over the menu collection. The
// average price of an empty menu is zero.
func (s *Store) Stats() model.MenuStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.MenuStats{TotalItems: len(s.menu)}
	seen := make(map[string]bool)
	var sum float64
	for _, item := range s.menu {
		if item.Available {
			stats.AvailableItems++
		}
		if !seen[item.Category] {
			seen[item.Category] = true
			stats.Categories++
		}
		sum += item.Price
	}
	if len(s.menu) > 0 {
		stats.AveragePrice = sum / float64(len(s.menu))
	}
	return stats
}

// ----- export / import -----

// Export bundles the four aggregates and the export timestamp into one
// document suitable for download and later import.
func (s *Store) Export() model.ExportBundle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile := s.profile
	branding := s.branding
	hours := make(model.OperatingHours, len(s.hours))
	for k, v := range s.hours {
		hours[k] = v
	}
	menu := make([]model.MenuItem, len(s.menu))
	copy(menu, s.menu)

	return model.ExportBundle{
		BusinessInfo:   &profile,
		OperatingHours: hours,
		MenuItems:      menu,
		Branding:       &branding,
		ExportDate:     time.Now().UTC().Format(time.RFC3339),
	}
}

// Import overwrites the stored documents for every section present in the
// uploaded bundle; absent sections are left alone and no schema validation
// is performed. In-memory state is untouched until the next Load, mirroring
// the original console's "refresh after import" behavior.
func (s *Store) Import(ctx context.Context, raw []byte) error {
	var bundle model.ExportBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if bundle.BusinessInfo != nil {
		if err := s.persist(ctx, repository.KeyBusinessInfo, bundle.BusinessInfo); err != nil {
			return err
		}
	}
	if bundle.OperatingHours != nil {
		if err := s.persist(ctx, repository.KeyOperatingHours, bundle.OperatingHours); err != nil {
			return err
		}
	}
	if bundle.MenuItems != nil {
		if err := s.persist(ctx, repository.KeyMenuItems, bundle.MenuItems); err != nil {
			return err
		}
	}
	if bundle.Branding != nil {
		if err := s.persist(ctx, repository.KeyBranding, bundle.Branding); err != nil {
			return err
		}
	}
	return nil
}
