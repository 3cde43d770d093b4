package models

import (
	"time"

	"gorm.io/gorm"
)

// Purchase records the sale of one or more portions of a menu item. The
// title snapshot keeps the row readable after the menu item is deleted.
type Purchase struct {
	gorm.Model
	MenuItemID    *uint     `gorm:"index" json:"menu_item_id"`
	MenuItem      *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	MenuItemTitle string    `gorm:"not null" json:"menu_item_title"`
	Timestamp     time.Time `gorm:"not null;index" json:"timestamp"`
	Quantity      int64     `gorm:"not null;default:1" json:"quantity"`
}
