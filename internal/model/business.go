package model

// BusinessProfile holds the public-facing identity of the café. It is a
// singleton aggregate: updates always replace the whole document, partial
// merges are not performed at the store level.
//
// Fields:
//  Name        – display name shown on the public site.
//  Company     – registered company name.
//  Email       – contact email address.
//  Phone       – contact phone number.
//  Website     – canonical site URL.
//  Address     – street address (may be empty).
//  Description – short marketing blurb.
//  SocialMedia – per-network profile URLs (empty string = not set).
type BusinessProfile struct {
	Name        string      `json:"name"`
	Company     string      `json:"company"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Website     string      `json:"website"`
	Address     string      `json:"address"`
	Description string      `json:"description"`
	SocialMedia SocialMedia `json:"socialMedia"`
}

// SocialMedia groups the supported social network links.
type SocialMedia struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
}

// DayHours describes one weekday's opening window. When Closed is true the
// Open/Close values are not meaningful for display but are retained so that
// re-opening a day restores the previous times.
type DayHours struct {
	Open   string `json:"open"`  // "HH:MM"
	Close  string `json:"close"` // "HH:MM"
	Closed bool   `json:"closed"`
}

// OperatingHours maps lowercase weekday names ("monday".."sunday") to their
// hours. All seven keys are always present once the document passes through
// the store.
type OperatingHours map[string]DayHours

// Weekdays lists the seven valid OperatingHours keys in display order.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// MenuItem is one entry of the ordered menu collection. IDs are assigned by
// the store from the creation timestamp in milliseconds and are unique and
// monotonically increasing; callers never supply their own.
type MenuItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

// MenuItemPatch carries a partial update for a menu item. Nil fields are left
// untouched; set fields are shallow-merged onto the stored item.
type MenuItemPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Available   *bool    `json:"available"`
}

// Apply merges the set fields of the patch onto item and returns the result.
func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Available != nil {
		item.Available = *p.Available
	}
	return item
}

// Branding is the singleton look-and-feel aggregate; replaced wholesale on
// update like the profile.
type Branding struct {
	Logo           string `json:"logo"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
	CustomCSS      string `json:"customCSS"`
}

// MenuStats is the derived dashboard view over the menu collection.
type MenuStats struct {
	TotalItems     int     `json:"total_items"`
	AvailableItems int     `json:"available_items"`
	Categories     int     `json:"categories"`
	AveragePrice   float64 `json:"average_price"`
}

// ExportBundle is the downloadable backup document: the four business
// aggregates plus the export timestamp. On import, only the sections present
// in the uploaded document overwrite stored data; absent sections are left
// alone. No schema versioning is applied.
//
// The collection sections must not carry omitempty: an exported empty menu
// has to serialize as [] so that importing the bundle overwrites the target's
// menu instead of skipping the section.
type ExportBundle struct {
	BusinessInfo   *BusinessProfile `json:"businessInfo,omitempty"`
	OperatingHours OperatingHours   `json:"operatingHours"`
	MenuItems      []MenuItem       `json:"menuItems"`
	Branding       *Branding        `json:"branding,omitempty"`
	ExportDate     string           `json:"exportDate,omitempty"`
}
