package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"delights/models"
)

// Summary aggregates the whole purchase history.
type Summary struct {
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	Purchases int             `json:"purchases"`
	Portions  int64           `json:"portions"`
	// Orphaned counts purchases whose menu item was deleted; they carry no
	// price and are left out of the money totals.
	Orphaned int         `json:"orphaned"`
	Lines    []SalesLine `json:"lines"`
}

// SalesLine is the per-dish breakdown of a Summary.
type SalesLine struct {
	Title    string          `json:"title"`
	Portions int64           `json:"portions"`
	Price    decimal.Decimal `json:"price"`
	DishCost decimal.Decimal `json:"dish_cost"`
	Revenue  decimal.Decimal `json:"revenue"`
	Cost     decimal.Decimal `json:"cost"`
	Profit   decimal.Decimal `json:"profit"`
}

// BestSeller is the menu item with the highest total portions sold.
type BestSeller struct {
	Title    string `json:"title"`
	Quantity int64  `json:"quantity"`
}

// BuildSummary re-scans every purchase and prices it against the current
// menu and ingredient costs.
func BuildSummary(ctx context.Context, db *gorm.DB) (Summary, error) {
	if db == nil {
		return Summary{}, gorm.ErrInvalidDB
	}
	var purchases []models.Purchase
	if err := db.WithContext(ctx).
		Preload("MenuItem").
		Preload("MenuItem.Recipes").
		Preload("MenuItem.Recipes.Ingredient").
		Order("timestamp asc, id asc").
		Find(&purchases).Error; err != nil {
		return Summary{}, fmt.Errorf("load purchases: %w", err)
	}
	return Summarize(purchases), nil
}

// Summarize computes revenue, cost and profit for preloaded purchases.
// Totals are rounded to cents.
func Summarize(purchases []models.Purchase) Summary {
	summary := Summary{
		Revenue: decimal.Zero,
		Cost:    decimal.Zero,
		Lines:   make([]SalesLine, 0),
	}
	lines := make(map[uint]*SalesLine)
	order := make([]uint, 0)

	for _, purchase := range purchases {
		summary.Purchases++
		summary.Portions += purchase.Quantity
		if purchase.MenuItem == nil {
			summary.Orphaned++
			continue
		}
		qty := decimal.NewFromInt(purchase.Quantity)
		dishCost := purchase.MenuItem.DishCost()
		revenue := purchase.MenuItem.Price.Mul(qty)
		cost := dishCost.Mul(qty)

		summary.Revenue = summary.Revenue.Add(revenue)
		summary.Cost = summary.Cost.Add(cost)

		line, ok := lines[purchase.MenuItem.ID]
		if !ok {
			line = &SalesLine{
				Title:    purchase.MenuItem.Title,
				Price:    purchase.MenuItem.Price,
				DishCost: dishCost,
				Revenue:  decimal.Zero,
				Cost:     decimal.Zero,
			}
			lines[purchase.MenuItem.ID] = line
			order = append(order, purchase.MenuItem.ID)
		}
		line.Portions += purchase.Quantity
		line.Revenue = line.Revenue.Add(revenue)
		line.Cost = line.Cost.Add(cost)
	}

	for _, id := range order {
		line := lines[id]
		line.Revenue = line.Revenue.Round(2)
		line.Cost = line.Cost.Round(2)
		line.Profit = line.Revenue.Sub(line.Cost)
		summary.Lines = append(summary.Lines, *line)
	}
	sort.SliceStable(summary.Lines, func(i, j int) bool {
		if !summary.Lines[i].Revenue.Equal(summary.Lines[j].Revenue) {
			return summary.Lines[i].Revenue.GreaterThan(summary.Lines[j].Revenue)
		}
		return strings.ToLower(summary.Lines[i].Title) < strings.ToLower(summary.Lines[j].Title)
	})

	summary.Revenue = summary.Revenue.Round(2)
	summary.Cost = summary.Cost.Round(2)
	summary.Profit = summary.Revenue.Sub(summary.Cost)
	return summary
}

// FindBestSeller sums quantities per menu item title, including purchases
// whose menu item was later deleted.
func FindBestSeller(ctx context.Context, db *gorm.DB) (BestSeller, error) {
	if db == nil {
		return BestSeller{}, gorm.ErrInvalidDB
	}
	var rows []BestSeller
	if err := db.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("menu_item_title AS title, SUM(quantity) AS quantity").
		Group("menu_item_title").
		Order("quantity desc, title asc").
		Limit(1).
		Scan(&rows).Error; err != nil {
		return BestSeller{}, fmt.Errorf("aggregate purchases: %w", err)
	}
	if len(rows) == 0 {
		return BestSeller{}, ErrNoSales
	}
	return rows[0], nil
}
