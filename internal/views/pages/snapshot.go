package pages

import (
	"sort"
	"strings"
	"time"

	"delights/internal/inventory"
	"delights/models"
)

// DashboardSnapshot aggregates what the kitchen dashboard displays.
type DashboardSnapshot struct {
	UserName     string
	Currency     string
	Availability []inventory.Availability
	Ingredients  []models.Ingredient
	ShoppingList []models.Ingredient
	Summary      inventory.Summary
	BestSeller   *inventory.BestSeller
	Notice       string // shown once above the stats
}

// NewDashboardSnapshot explains availability for every menu item and sorts
// the rows for display.
func NewDashboardSnapshot(userName, currency string, items []models.MenuItem, ingredients []models.Ingredient, summary inventory.Summary, best *inventory.BestSeller) DashboardSnapshot {
	availability := make([]inventory.Availability, 0, len(items))
	for _, item := range items {
		availability = append(availability, inventory.Explain(item))
	}
	sort.SliceStable(availability, func(i, j int) bool {
		return strings.ToLower(availability[i].Title) < strings.ToLower(availability[j].Title)
	})

	sort.SliceStable(ingredients, func(i, j int) bool {
		return strings.ToLower(ingredients[i].Name) < strings.ToLower(ingredients[j].Name)
	})
	shopping := make([]models.Ingredient, 0)
	for _, ingredient := range ingredients {
		if ingredient.Buy() {
			shopping = append(shopping, ingredient)
		}
	}

	return DashboardSnapshot{
		UserName:     userName,
		Currency:     currency,
		Availability: availability,
		Ingredients:  ingredients,
		ShoppingList: shopping,
		Summary:      summary,
		BestSeller:   best,
	}
}

// EmptyDashboardSnapshot is rendered when no database is configured.
func EmptyDashboardSnapshot() DashboardSnapshot {
	return DashboardSnapshot{Summary: inventory.Summarize(nil)}
}

// DefaultDash substitutes a dash for blank values.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// FormatReportDate renders a day month year date.
func FormatReportDate(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format("02 Jan 2006")
}
