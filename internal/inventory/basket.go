package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	applog "delights/internal/log"
	"delights/models"
)

// ListBasket returns the basket rows with their ingredients.
func ListBasket(ctx context.Context, db *gorm.DB) ([]models.Basket, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var rows []models.Basket
	if err := db.WithContext(ctx).
		Preload("Ingredient").
		Joins("JOIN ingredients ON ingredients.id = baskets.ingredient_id").
		Order("ingredients.name asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list basket: %w", err)
	}
	return rows, nil
}

// AddToBasket puts an ingredient in the basket, or increases the quantity
// already there.
func AddToBasket(ctx context.Context, db *gorm.DB, ingredientID uint, quantity decimal.Decimal) (*models.Basket, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if !quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	var row models.Basket
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.First(&ingredient, ingredientID).Error; err != nil {
			return translate(err)
		}
		entry := models.Basket{IngredientID: ingredientID, Quantity: quantity}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "ingredient_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("baskets.quantity + excluded.quantity"),
				"updated_at": nowFunc().UTC(),
			}),
		}).Create(&entry).Error; err != nil {
			return fmt.Errorf("add %s to basket: %w", ingredient.Name, err)
		}
		return tx.Preload("Ingredient").Where("ingredient_id = ?", ingredientID).First(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AddFromShoppingList basketises an ingredient from the shopping list. A
// zero quantity falls back to the ingredient's re-order quantity.
func AddFromShoppingList(ctx context.Context, db *gorm.DB, ingredientID uint, quantity decimal.Decimal) (*models.Basket, error) {
	if quantity.IsZero() {
		ingredient, err := GetIngredient(ctx, db, ingredientID)
		if err != nil {
			return nil, err
		}
		quantity = ingredient.ReOrder
	}
	return AddToBasket(ctx, db, ingredientID, quantity)
}

// SetBasketQuantity overwrites a basket row's quantity. Zero removes the row.
func SetBasketQuantity(ctx context.Context, db *gorm.DB, id uint, quantity decimal.Decimal) (*models.Basket, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if quantity.IsNegative() {
		return nil, ErrInvalidQuantity
	}
	if quantity.IsZero() {
		return nil, RemoveFromBasket(ctx, db, id)
	}
	result := db.WithContext(ctx).Model(&models.Basket{}).Where("id = ?", id).Update("quantity", quantity)
	if result.Error != nil {
		return nil, fmt.Errorf("update basket row %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	var row models.Basket
	if err := db.WithContext(ctx).Preload("Ingredient").First(&row, id).Error; err != nil {
		return nil, translate(err)
	}
	return &row, nil
}

// RemoveFromBasket deletes a basket row.
func RemoveFromBasket(ctx context.Context, db *gorm.DB, id uint) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	result := db.WithContext(ctx).Unscoped().Delete(&models.Basket{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete basket row %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PlaceOrder flushes the basket: each row becomes an order line under a new
// order number, the ingredient is restocked and the row is removed.
func PlaceOrder(ctx context.Context, db *gorm.DB) (*models.OrderNumber, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}

	var number models.OrderNumber
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Basket
		if err := tx.Preload("Ingredient").Order("id asc").Find(&rows).Error; err != nil {
			return fmt.Errorf("load basket: %w", err)
		}
		if len(rows) == 0 {
			return ErrEmptyBasket
		}

		number = models.OrderNumber{
			Reference: uuid.New(),
			PlacedAt:  nowFunc().UTC(),
		}
		if err := tx.Create(&number).Error; err != nil {
			return fmt.Errorf("create order number: %w", err)
		}

		for _, row := range rows {
			if row.Ingredient == nil {
				return fmt.Errorf("basket row %d: ingredient %d: %w", row.ID, row.IngredientID, ErrNotFound)
			}
			ingredientID := row.IngredientID
			line := models.Order{
				OrderNumberID:  number.ID,
				IngredientID:   &ingredientID,
				IngredientName: row.Ingredient.Name,
				Quantity:       row.Quantity,
				UnitPrice:      row.Ingredient.UnitPrice,
			}
			if err := tx.Create(&line).Error; err != nil {
				return fmt.Errorf("create order line for %s: %w", row.Ingredient.Name, err)
			}
			if err := tx.Model(&models.Ingredient{}).
				Where("id = ?", row.IngredientID).
				Update("quantity", gorm.Expr("quantity + ?", row.Quantity)).Error; err != nil {
				return fmt.Errorf("restock %s: %w", row.Ingredient.Name, err)
			}
			if err := tx.Unscoped().Delete(&models.Basket{}, row.ID).Error; err != nil {
				return fmt.Errorf("clear basket row %d: %w", row.ID, err)
			}
			number.Orders = append(number.Orders, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	applog.Info(ctx, "restock order placed", "reference", number.Reference.String(), "lines", len(number.Orders))
	return &number, nil
}

// ListOrders returns every order line, newest first.
func ListOrders(ctx context.Context, db *gorm.DB) ([]models.Order, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var orders []models.Order
	if err := db.WithContext(ctx).Order("id desc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListOrderNumbers returns the placed orders with their lines, newest first.
func ListOrderNumbers(ctx context.Context, db *gorm.DB) ([]models.OrderNumber, error) {
	if db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var numbers []models.OrderNumber
	if err := db.WithContext(ctx).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.id asc")
		}).
		Order("placed_at desc, id desc").
		Find(&numbers).Error; err != nil {
		return nil, fmt.Errorf("list order numbers: %w", err)
	}
	return numbers, nil
}
