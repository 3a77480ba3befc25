package store

import "github.com/urbanchill/cafe-console/internal/model"

// Compiled-in defaults used until an override is persisted. Each function
// returns a fresh value so callers can never mutate shared state behind the
// store's back.

func defaultProfile() model.BusinessProfile {
	return model.BusinessProfile{
		Name:        "Urban Chill Cafe",
		Company:     "nnn",
		Email:       "me@peterlockwood.com",
		Phone:       "1234-5678",
		Website:     "https://urbanchill.com.au",
		Address:     "",
		Description: "Premium cafe experience with modern convenience",
		SocialMedia: model.SocialMedia{},
	}
}

func defaultHours() model.OperatingHours {
	weekday := model.DayHours{Open: "07:00", Close: "18:00"}
	weekend := model.DayHours{Open: "08:00", Close: "17:00"}
	return model.OperatingHours{
		"monday":    weekday,
		"tuesday":   weekday,
		"wednesday": weekday,
		"thursday":  weekday,
		"friday":    weekday,
		"saturday":  weekend,
		"sunday":    weekend,
	}
}

func defaultMenu() []model.MenuItem {
	return []model.MenuItem{
		{
			ID:          1,
			Name:        "Espresso",
			Description: "Rich and bold espresso shot",
			Price:       3.50,
			Category:    "Coffee",
			Image:       "https://images.unsplash.com/photo-1510707577719-ae7c14805e3a?w=400",
			Available:   true,
		},
		{
			ID:          2,
			Name:        "Cappuccino",
			Description: "Perfect blend of espresso, steamed milk, and foam",
			Price:       4.50,
			Category:    "Coffee",
			Image:       "https://images.unsplash.com/photo-1572442388796-11668a67e53d?w=400",
			Available:   true,
		},
		{
			ID:          3,
			Name:        "Avocado Toast",
			Description: "Fresh avocado on sourdough with lime and herbs",
			Price:       12.00,
			Category:    "Food",
			Image:       "https://images.unsplash.com/photo-1603046891744-8c2a4dca4e6d?w=400",
			Available:   true,
		},
		{
			ID:          4,
			Name:        "Croissant",
			Description: "Buttery, flaky French pastry",
			Price:       5.50,
			Category:    "Pastries",
			Image:       "https://images.unsplash.com/photo-1549903072-7e6e0bedb7fb?w=400",
			Available:   true,
		},
	}
}

func defaultBranding() model.Branding {
	return model.Branding{
		Logo:           "",
		PrimaryColor:   "#8B4513",
		SecondaryColor: "#D2691E",
		FontFamily:     "Inter",
		CustomCSS:      "",
	}
}
