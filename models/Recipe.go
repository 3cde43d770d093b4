package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipe is one bill-of-materials row: how much of an ingredient a single
// portion of a menu item consumes.
type Recipe struct {
	gorm.Model
	MenuItemID   uint            `gorm:"not null;uniqueIndex:idx_recipe_menu_ingredient" json:"menu_item_id"`
	IngredientID uint            `gorm:"not null;uniqueIndex:idx_recipe_menu_ingredient;index" json:"ingredient_id"`
	Quantity     decimal.Decimal `gorm:"type:numeric(10,3);not null;default:1" json:"quantity"`

	MenuItem   *MenuItem   `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

// Portions returns how many portions the linked ingredient's stock covers.
// ok is false when the row cannot be evaluated.
func (r Recipe) Portions() (portions int64, ok bool) {
	if r.Ingredient == nil || !r.Quantity.IsPositive() {
		return 0, false
	}
	ratio := r.Ingredient.Quantity.Div(r.Quantity).Floor()
	if ratio.IsNegative() {
		return 0, true
	}
	return ratio.IntPart(), true
}

// LineCost is the cost of the ingredient portion this row consumes.
func (r Recipe) LineCost() (decimal.Decimal, bool) {
	if r.Ingredient == nil {
		return decimal.Zero, false
	}
	return r.Ingredient.UnitPrice.Mul(r.Quantity), true
}
