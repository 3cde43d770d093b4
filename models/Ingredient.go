package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ingredient is a unit of raw stock consumed by recipes.
type Ingredient struct {
	gorm.Model
	Name      string          `gorm:"uniqueIndex;not null" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`
	Unit      string          `gorm:"type:varchar(10)" json:"unit"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(9,3);not null;default:0" json:"unit_price"`
	Kanban    bool            `gorm:"not null;default:false" json:"kanban"`
	Threshold decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"threshold"`
	ReOrder   decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"re_order"`
	Recipes   []Recipe        `gorm:"foreignKey:IngredientID" json:"recipes,omitempty"`
}

// Buy reports whether the ingredient is tracked on the kanban board and has
// fallen to or below its reorder threshold.
func (i Ingredient) Buy() bool {
	return i.Kanban && i.Quantity.LessThanOrEqual(i.Threshold)
}

// InStock reports whether any quantity of the ingredient is on hand.
func (i Ingredient) InStock() bool {
	return i.Quantity.IsPositive()
}

// Label renders the ingredient as "name, unit".
func (i Ingredient) Label() string {
	if i.Unit == "" {
		return i.Name
	}
	return i.Name + ", " + i.Unit
}
