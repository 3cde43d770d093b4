package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Basket holds an ingredient waiting to be ordered. There is at most one row
// per ingredient.
type Basket struct {
	gorm.Model
	IngredientID uint            `gorm:"not null;uniqueIndex" json:"ingredient_id"`
	Ingredient   *Ingredient     `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     decimal.Decimal `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`
}

// OrderNumber groups the order rows produced by flushing the basket once.
type OrderNumber struct {
	gorm.Model
	Reference uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"reference"`
	PlacedAt  time.Time `gorm:"not null" json:"placed_at"`
	Orders    []Order   `gorm:"foreignKey:OrderNumberID" json:"orders,omitempty"`
}

// Order is a single restocked ingredient line. The ingredient name is
// copied so the history survives ingredient deletion.
type Order struct {
	gorm.Model
	OrderNumberID  uint            `gorm:"not null;index" json:"order_number_id"`
	IngredientID   *uint           `gorm:"index" json:"ingredient_id"`
	IngredientName string          `gorm:"not null" json:"ingredient_name"`
	Quantity       decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(9,3);not null;default:0" json:"unit_price"`
}
