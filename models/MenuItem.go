package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Title       string          `gorm:"uniqueIndex;not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0" json:"price"`
	CategoryID  *uint           `json:"category_id,omitempty"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Display     bool            `gorm:"not null" json:"display"`
	Description string          `gorm:"type:text" json:"description"`
	StockItem   bool            `gorm:"not null;default:false" json:"stock_item"`

	// Recipes must be preloaded with their Ingredient for the derived values below.
	Recipes []Recipe `gorm:"foreignKey:MenuItemID" json:"recipes,omitempty"`
}

// Available returns how many portions can be made from current stock. The
// scarcest ingredient binds. An empty recipe, or any row that cannot be
// evaluated, yields zero.
func (m MenuItem) Available() int64 {
	if len(m.Recipes) == 0 {
		return 0
	}
	var least int64 = -1
	for _, recipe := range m.Recipes {
		portions, ok := recipe.Portions()
		if !ok {
			return 0
		}
		if least < 0 || portions < least {
			least = portions
		}
	}
	return least
}

// DishCost sums unit price times required quantity across the recipe. Rows
// without a loaded ingredient make the whole cost zero.
func (m MenuItem) DishCost() decimal.Decimal {
	total := decimal.Zero
	for _, recipe := range m.Recipes {
		cost, ok := recipe.LineCost()
		if !ok {
			return decimal.Zero
		}
		total = total.Add(cost)
	}
	return total
}

// Margin is the menu price minus the dish cost.
func (m MenuItem) Margin() decimal.Decimal {
	return m.Price.Sub(m.DishCost())
}
