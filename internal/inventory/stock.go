package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	applog "delights/internal/log"
	"delights/models"
)

// AdjustStock moves every ingredient of the menu item's recipe by
// recipe quantity times delta. Positive deltas restock, negative deltas
// consume. All rows change together or not at all.
func AdjustStock(ctx context.Context, db *gorm.DB, menuItemID uint, delta int64) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return adjustStock(ctx, tx, menuItemID, delta)
	})
}

func adjustStock(ctx context.Context, tx *gorm.DB, menuItemID uint, delta int64) error {
	if delta == 0 {
		return nil
	}

	var recipes []models.Recipe
	if err := tx.Where("menu_item_id = ?", menuItemID).Order("id asc").Find(&recipes).Error; err != nil {
		return fmt.Errorf("load recipe for menu item %d: %w", menuItemID, err)
	}

	applog.Debug(ctx, "adjusting stock", "menuItemID", menuItemID, "delta", delta, "rows", len(recipes))

	factor := decimal.NewFromInt(delta)
	ids := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		change := recipe.Quantity.Mul(factor)
		result := tx.Model(&models.Ingredient{}).
			Where("id = ?", recipe.IngredientID).
			Update("quantity", gorm.Expr("quantity + ?", change))
		if result.Error != nil {
			return fmt.Errorf("adjust ingredient %d: %w", recipe.IngredientID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("adjust ingredient %d: %w", recipe.IngredientID, ErrNotFound)
		}
		ids = append(ids, recipe.IngredientID)
	}

	if len(ids) > 0 && delta < 0 {
		var short []string
		if err := tx.Model(&models.Ingredient{}).
			Where("id IN ? AND quantity < 0", ids).
			Pluck("name", &short).Error; err != nil {
			return fmt.Errorf("check negative stock: %w", err)
		}
		if len(short) > 0 {
			applog.Warn(ctx, "stock went negative", "menuItemID", menuItemID, "ingredients", short)
		}
	}

	return nil
}

// StockLevel sets the on-hand quantity of one ingredient.
type StockLevel struct {
	IngredientID uint            `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// SetStockLevels overwrites ingredient quantities after a stock count.
func SetStockLevels(ctx context.Context, db *gorm.DB, levels []StockLevel) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	for _, level := range levels {
		if level.IngredientID == 0 || level.Quantity.IsNegative() {
			return fmt.Errorf("stock level for ingredient %d: %w", level.IngredientID, ErrInvalidInput)
		}
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, level := range levels {
			result := tx.Model(&models.Ingredient{}).
				Where("id = ?", level.IngredientID).
				Update("quantity", level.Quantity)
			if result.Error != nil {
				return fmt.Errorf("set stock for ingredient %d: %w", level.IngredientID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("set stock for ingredient %d: %w", level.IngredientID, ErrNotFound)
			}
		}
		return nil
	})
}

// Availability explains how many portions of a menu item can be made.
type Availability struct {
	MenuItemID uint     `json:"menu_item_id"`
	Title      string   `json:"title"`
	Available  int64    `json:"available"`
	Limiting   string   `json:"limiting_ingredient,omitempty"`
	Problems   []string `json:"problems,omitempty"`
}

// Explain computes the same figure as MenuItem.Available and also records
// which ingredient binds and why a dish evaluates to zero.
func Explain(item models.MenuItem) Availability {
	out := Availability{
		MenuItemID: item.ID,
		Title:      item.Title,
		Available:  item.Available(),
	}
	if len(item.Recipes) == 0 {
		out.Problems = append(out.Problems, "recipe has no ingredients")
		return out
	}

	var least int64 = -1
	for _, recipe := range item.Recipes {
		portions, ok := recipe.Portions()
		if !ok {
			switch {
			case recipe.Ingredient == nil:
				out.Problems = append(out.Problems, fmt.Sprintf("ingredient %d is missing", recipe.IngredientID))
			default:
				out.Problems = append(out.Problems, fmt.Sprintf("%s has a non-positive recipe quantity", recipe.Ingredient.Name))
			}
			continue
		}
		if least < 0 || portions < least {
			least = portions
			out.Limiting = recipe.Ingredient.Name
		}
	}
	if len(out.Problems) > 0 {
		out.Limiting = ""
	}
	return out
}
