package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	applog "delights/internal/log"
	"delights/models"
)

// PurchaseInput records a sale.
type PurchaseInput struct {
	MenuItemID uint      `json:"menu_item_id"`
	Quantity   int64     `json:"quantity"`
	Timestamp  time.Time `json:"timestamp"`
}

// ListPurchases returns the purchase history in time order.
func ListPurchases(ctx context.Context, db *gorm.DB) ([]models.Purchase, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var purchases []models.Purchase
	if err := db.WithContext(ctx).Order("timestamp asc, id asc").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}

// GetPurchase loads one purchase.
func GetPurchase(ctx context.Context, db *gorm.DB, id uint) (*models.Purchase, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var purchase models.Purchase
	if err := db.WithContext(ctx).First(&purchase, id).Error; err != nil {
		return nil, translate(err)
	}
	return &purchase, nil
}

// CreatePurchase records a sale and consumes the recipe's ingredients.
func CreatePurchase(ctx context.Context, db *gorm.DB, in PurchaseInput) (*models.Purchase, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if in.MenuItemID == 0 {
		return nil, fmt.Errorf("menu_item_id is required: %w", ErrInvalidInput)
	}

	timestamp := in.Timestamp
	if timestamp.IsZero() {
		timestamp = nowFunc()
	}

	var purchase models.Purchase
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := loadMenuItem(tx, in.MenuItemID)
		if err != nil {
			return err
		}
		menuItemID := item.ID
		purchase = models.Purchase{
			MenuItemID:    &menuItemID,
			MenuItemTitle: item.Title,
			Timestamp:     timestamp.UTC(),
			Quantity:      in.Quantity,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return fmt.Errorf("create purchase: %w", err)
		}
		return adjustStock(ctx, tx, item.ID, -in.Quantity)
	})
	if err != nil {
		return nil, err
	}

	applog.Info(ctx, "purchase recorded", "purchaseID", purchase.ID, "menuItem", purchase.MenuItemTitle, "quantity", purchase.Quantity)
	return &purchase, nil
}

// UpdatePurchaseQuantity corrects the quantity sold and moves stock by the
// difference only.
func UpdatePurchaseQuantity(ctx context.Context, db *gorm.DB, id uint, quantity int64) (*models.Purchase, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	var purchase models.Purchase
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&purchase, id).Error; err != nil {
			return translate(err)
		}
		delta := purchase.Quantity - quantity
		if delta == 0 {
			return nil
		}
		if purchase.MenuItemID == nil {
			return ErrMenuItemGone
		}
		if err := adjustStock(ctx, tx, *purchase.MenuItemID, delta); err != nil {
			return err
		}
		if err := tx.Model(&purchase).Update("quantity", quantity).Error; err != nil {
			return fmt.Errorf("update purchase %d: %w", id, err)
		}
		purchase.Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// DeletePurchase cancels a sale. With restock the consumed ingredients are
// returned to stock, which needs the menu item to still exist.
func DeletePurchase(ctx context.Context, db *gorm.DB, id uint, restock bool) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.First(&purchase, id).Error; err != nil {
			return translate(err)
		}
		if restock {
			if purchase.MenuItemID == nil {
				return ErrMenuItemGone
			}
			if _, err := loadMenuItem(tx, *purchase.MenuItemID); err != nil {
				if errors.Is(err, ErrNotFound) {
					return ErrMenuItemGone
				}
				return err
			}
			if err := adjustStock(ctx, tx, *purchase.MenuItemID, purchase.Quantity); err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Delete(&purchase).Error; err != nil {
			return fmt.Errorf("delete purchase %d: %w", id, err)
		}
		applog.Debug(ctx, "purchase deleted", "purchaseID", id, "restocked", restock)
		return nil
	})
}
